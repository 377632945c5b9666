package answer_handler

import (
	"context"
	"errors"

	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/callback"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/question_sender"
	messageService "github.com/IT-Nick/quizbot/internal/domain/messages/service"
	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/presenter"
	quiz "github.com/IT-Nick/quizbot/internal/domain/quiz/service"
	"github.com/rs/zerolog/log"
	"gopkg.in/telebot.v4"
)

var errForeignSession = errors.New("answer button belongs to another session")

// AnswerHandler принимает ответ на текущий вопрос
type AnswerHandler struct {
	quizService    *quiz.QuizService
	messageService *messageService.MessageService
	presenter      *presenter.Presenter
	sender         *question_sender.QuestionSender
}

func NewAnswerHandler(
	quizService *quiz.QuizService,
	messageService *messageService.MessageService,
	presenter *presenter.Presenter,
	sender *question_sender.QuestionSender,
) *AnswerHandler {
	return &AnswerHandler{
		quizService:    quizService,
		messageService: messageService,
		presenter:      presenter,
		sender:         sender,
	}
}

// Handle обрабатывает callback вида "opt_<индекс>|<ID сессии>"
func (h *AnswerHandler) Handle(c telebot.Context) error {
	ctx := context.Background()
	userID := c.Sender().ID

	data := c.Callback().Data
	optionIndex, err := callback.ParseInt(data, model.AnswerPrefix)
	if err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("bad answer callback")
		return nil
	}

	session, err := h.quizService.GetSession(ctx, userID)
	if err != nil {
		return h.fail(c, err, userID, "")
	}

	if !belongsTo(data, session) {
		return h.fail(c, errForeignSession, userID, session.ID)
	}

	wasRandom := session.IsRandomTest
	result, err := h.quizService.SubmitAnswer(ctx, session, optionIndex)
	if err != nil {
		return h.fail(c, err, userID, session.ID)
	}

	retry := !result.IsCorrect && !wasRandom
	if err := c.Send(h.presenter.AnswerText(result, retry)); err != nil {
		return err
	}
	if result.Finished {
		return c.Send(h.presenter.ResultText(result.Result))
	}

	if err := h.sender.Send(ctx, c, session); err != nil {
		return h.fail(c, err, userID, session.ID)
	}
	return nil
}

func (h *AnswerHandler) fail(c telebot.Context, err error, userID int64, sessionID string) error {
	if quiz.IsStale(err) || errors.Is(err, quiz.ErrInvalidOption) || errors.Is(err, errForeignSession) {
		log.Debug().Err(err).Int64("user_id", userID).Str("session_id", sessionID).Msg("stale answer")
		return c.Send(h.messageService.Text(messageService.StaleInteraction))
	}
	log.Error().Err(err).Int64("user_id", userID).Str("session_id", sessionID).Msg("failed to process answer")
	return c.Send(h.messageService.Text(messageService.TryAgain))
}

// belongsTo сообщает, что кнопка была показана для вопроса этой сессии
func belongsTo(data string, session *model.UserSession) bool {
	return callback.Payload(data) == session.ID
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *AnswerHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
