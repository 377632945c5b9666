package question_sender

import (
	"context"
	"fmt"

	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/keyboards"
	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/presenter"
	quiz "github.com/IT-Nick/quizbot/internal/domain/quiz/service"
	"gopkg.in/telebot.v4"
)

// QuestionSender показывает пользователю текущий вопрос сессии
type QuestionSender struct {
	quizService *quiz.QuizService
	presenter   *presenter.Presenter
}

// NewQuestionSender создает новый экземпляр QuestionSender
func NewQuestionSender(quizService *quiz.QuizService, presenter *presenter.Presenter) *QuestionSender {
	return &QuestionSender{
		quizService: quizService,
		presenter:   presenter,
	}
}

// Send фиксирует правильный вариант текущего вопроса и отправляет вопрос с клавиатурой ответов
func (s *QuestionSender) Send(ctx context.Context, c telebot.Context, session *model.UserSession) error {
	view, err := s.quizService.NextQuestion(ctx, session)
	if err != nil {
		return fmt.Errorf("failed to prepare question: %w", err)
	}

	if err := c.Send(s.presenter.QuestionText(view), keyboards.Answers(len(view.Options), session.ID)); err != nil {
		return fmt.Errorf("failed to send question: %w", err)
	}
	return nil
}
