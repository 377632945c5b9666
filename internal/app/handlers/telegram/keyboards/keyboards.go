package keyboards

import (
	"strconv"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	quiz "github.com/IT-Nick/quizbot/internal/domain/quiz/service"
	"gopkg.in/telebot.v4"
)

const (
	answersPerRow = 2
	ticketsPerRow = 3
)

// MainMenu клавиатура главного меню
func MainMenu(randomTestText, ticketsText string) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}
	markup.Reply(markup.Row(markup.Text(randomTestText), markup.Text(ticketsText)))
	return markup
}

// Answers инлайн-клавиатура с метками вариантов, по две кнопки в ряду.
// Данные кнопки содержат ID сессии, для которой показан вопрос.
func Answers(optionsCount int, sessionID string) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	buttons := make([]telebot.Btn, 0, optionsCount)
	for i := 0; i < optionsCount; i++ {
		buttons = append(buttons, markup.Data(quiz.Label(i), model.AnswerPrefix+strconv.Itoa(i), sessionID))
	}
	markup.Inline(markup.Split(answersPerRow, buttons)...)
	return markup
}

// Tickets инлайн-клавиатура билетов, по три кнопки в ряду.
// label формирует подпись кнопки по номеру билета.
func Tickets(numbers []int, prefix string, label func(int) string) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(ticketRows(markup, numbers, prefix, label)...)
	return markup
}

// TicketsWithSolve клавиатура билетов с дополнительной кнопкой "решить билет"
func TicketsWithSolve(numbers []int, label func(int) string, solveText string) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	rows := ticketRows(markup, numbers, model.TicketViewPrefix, label)
	rows = append(rows, markup.Row(markup.Data(solveText, model.SolveTicketListKey)))
	markup.Inline(rows...)
	return markup
}

func ticketRows(markup *telebot.ReplyMarkup, numbers []int, prefix string, label func(int) string) []telebot.Row {
	buttons := make([]telebot.Btn, 0, len(numbers))
	for _, n := range numbers {
		buttons = append(buttons, markup.Data(label(n), prefix+strconv.Itoa(n)))
	}
	return markup.Split(ticketsPerRow, buttons)
}
