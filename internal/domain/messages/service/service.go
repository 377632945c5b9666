package service

import (
	"fmt"

	"github.com/IT-Nick/quizbot/internal/domain/messages/repository"
	"github.com/rs/zerolog/log"
)

// Ключи сообщений каталога
const (
	Welcome              = "welcome"
	ButtonRandomTest     = "button_random_test"
	ButtonTickets        = "button_tickets"
	ButtonSolveTicket    = "button_solve_ticket"
	TicketButton         = "ticket_button"
	ChooseTicket         = "choose_ticket"
	ChooseTicketToSolve  = "choose_ticket_to_solve"
	NoTickets            = "no_tickets"
	TicketNotFound       = "ticket_not_found"
	TicketHeader         = "ticket_header"
	QuestionHeader       = "question_header"
	TicketQuestionHeader = "ticket_question_header"
	OptionsHeader        = "options_header"
	TicketSeparator      = "ticket_separator"
	StartFailed          = "start_failed"
	InsufficientData     = "insufficient_data"
	AnswerCorrect        = "answer_correct"
	AnswerWrong          = "answer_wrong"
	AnswerWrongRetry     = "answer_wrong_retry"
	TestFinished         = "test_finished"
	StaleInteraction     = "stale_interaction"
	TryAgain             = "try_again"
	UploadSuccess        = "upload_success"
	UploadWrongFormat    = "upload_wrong_format"
	UploadFailed         = "upload_failed"
	UploadNoQuestions    = "upload_no_questions"
	UploadForbidden      = "upload_forbidden"
)

// MessageService содержит логику для работы с сообщениями
type MessageService struct {
	messageRepo *repository.MessageRepository
}

// NewMessageService создает новый экземпляр MessageService
func NewMessageService(messageRepo *repository.MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

// GetMessageByKey возвращает сообщение по ключу
func (s *MessageService) GetMessageByKey(messageKey string) (string, error) {
	message, err := s.messageRepo.GetMessageByKey(messageKey)
	if err != nil {
		return "", fmt.Errorf("failed to get message by key: %w", err)
	}
	return message, nil
}

// Text возвращает сообщение по ключу, подставляя аргументы.
// Если ключа нет в каталоге, возвращает сам ключ.
func (s *MessageService) Text(messageKey string, args ...interface{}) string {
	message, err := s.GetMessageByKey(messageKey)
	if err != nil {
		log.Warn().Err(err).Str("key", messageKey).Msg("message missing from catalog")
		return messageKey
	}
	if len(args) == 0 {
		return message
	}
	return fmt.Sprintf(message, args...)
}
