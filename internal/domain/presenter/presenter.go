package presenter

import (
	"fmt"
	"strings"

	"github.com/IT-Nick/quizbot/internal/domain/messages/service"
	"github.com/IT-Nick/quizbot/internal/domain/model"
	quiz "github.com/IT-Nick/quizbot/internal/domain/quiz/service"
)

// Texts источник текстов сообщений
type Texts interface {
	Text(messageKey string, args ...interface{}) string
}

// Presenter форматирует вопросы, билеты и результаты для отправки пользователю
type Presenter struct {
	texts Texts
}

// NewPresenter создает новый экземпляр Presenter
func NewPresenter(texts Texts) *Presenter {
	return &Presenter{texts: texts}
}

// QuestionText текст текущего вопроса. Для билета добавляется его номер.
func (p *Presenter) QuestionText(view *quiz.QuestionView) string {
	var b strings.Builder
	if !view.IsRandomTest && view.TicketNumber > 0 {
		b.WriteString(p.texts.Text(service.TicketHeader, view.TicketNumber))
		b.WriteString("\n\n")
	}
	b.WriteString(p.texts.Text(service.QuestionHeader, view.Number, view.Total))
	b.WriteString("\n\n")
	b.WriteString(view.Text)
	b.WriteString("\n\n")
	b.WriteString(p.texts.Text(service.OptionsHeader))
	b.WriteString("\n")
	for _, option := range view.Options {
		fmt.Fprintf(&b, "%s) %s\n", option.Label, option.Text)
	}
	return b.String()
}

// MaxMessageLength предел длины текста сообщения Telegram в UTF-16 символах
const MaxMessageLength = 4096

// TicketSheet полный текст билета, правильный вариант помечен "+ "
func (p *Presenter) TicketSheet(ticket *model.Ticket) string {
	return strings.Join(p.ticketBlocks(ticket), "")
}

// TicketMessages текст билета, разбитый на сообщения не длиннее limit.
// Вопрос переносится в следующее сообщение целиком, если он помещается в limit.
func (p *Presenter) TicketMessages(ticket *model.Ticket, limit int) []string {
	if limit <= 0 {
		limit = MaxMessageLength
	}

	var messages []string
	var current strings.Builder
	currentLen := 0
	flush := func() {
		if currentLen > 0 {
			messages = append(messages, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, block := range p.ticketBlocks(ticket) {
		blockLen := textLength(block)
		if currentLen+blockLen > limit {
			flush()
		}
		if blockLen > limit {
			messages = append(messages, splitText(block, limit)...)
			continue
		}
		current.WriteString(block)
		currentLen += blockLen
	}
	flush()
	return messages
}

// ticketBlocks заголовок билета и по одному блоку на вопрос
func (p *Presenter) ticketBlocks(ticket *model.Ticket) []string {
	blocks := make([]string, 0, len(ticket.Questions)+1)
	blocks = append(blocks, p.texts.Text(service.TicketHeader, ticket.TicketNumber)+"\n\n")
	separator := p.texts.Text(service.TicketSeparator)
	for i, q := range ticket.Questions {
		var b strings.Builder
		b.WriteString(p.texts.Text(service.TicketQuestionHeader, i+1))
		b.WriteString("\n")
		b.WriteString(q.Text)
		b.WriteString("\n\n")
		b.WriteString(p.texts.Text(service.OptionsHeader))
		b.WriteString("\n")
		for j, option := range q.Options {
			if option == q.CorrectAnswer {
				b.WriteString("+ ")
			}
			fmt.Fprintf(&b, "%s) %s\n", quiz.Label(j), option)
		}
		b.WriteString("\n")
		b.WriteString(separator)
		b.WriteString("\n\n")
		blocks = append(blocks, b.String())
	}
	return blocks
}

// textLength длина текста так, как ее считает Telegram
func textLength(text string) int {
	n := 0
	for _, r := range text {
		n += runeLength(r)
	}
	return n
}

// runeLength символы вне BMP Telegram считает за два
func runeLength(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}

// splitText режет text на части не длиннее limit, не разрывая символы
func splitText(text string, limit int) []string {
	var parts []string
	var b strings.Builder
	n := 0
	for _, r := range text {
		l := runeLength(r)
		if n+l > limit {
			parts = append(parts, b.String())
			b.Reset()
			n = 0
		}
		b.WriteRune(r)
		n += l
	}
	if n > 0 {
		parts = append(parts, b.String())
	}
	return parts
}

// AnswerText реакция на ответ. retry означает, что вопрос будет показан повторно.
func (p *Presenter) AnswerText(result *quiz.AnswerResult, retry bool) string {
	switch {
	case result.IsCorrect:
		return p.texts.Text(service.AnswerCorrect)
	case retry:
		return p.texts.Text(service.AnswerWrongRetry)
	default:
		return p.texts.Text(service.AnswerWrong, result.CorrectAnswer)
	}
}

// ResultText итог завершенного теста
func (p *Presenter) ResultText(result quiz.Result) string {
	return p.texts.Text(service.TestFinished, result.Score, result.Total)
}

// TicketButton подпись кнопки билета
func (p *Presenter) TicketButton(ticketNumber int) string {
	return p.texts.Text(service.TicketButton, ticketNumber)
}
