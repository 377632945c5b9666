package service

import (
	"math/rand"
	"strings"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// minRowFields вопрос, правильный ответ и три неправильных
const minRowFields = 5

// ParseRows превращает строки таблицы в вопросы.
// Строки короче пяти полей, с пустым вопросом или ответом, а также с повтором
// правильного ответа среди неправильных пропускаются. Варианты перемешиваются один раз.
func ParseRows(rows [][]string, rnd *rand.Rand) []model.Question {
	questions := make([]model.Question, 0, len(rows))
	for _, row := range rows {
		if len(row) < minRowFields {
			continue
		}

		text := strings.TrimSpace(row[0])
		correct := strings.TrimSpace(row[1])
		if text == "" || correct == "" {
			continue
		}

		options := []string{
			correct,
			strings.TrimSpace(row[2]),
			strings.TrimSpace(row[3]),
			strings.TrimSpace(row[4]),
		}
		if !containsOnce(options, correct) {
			continue
		}

		rnd.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		questions = append(questions, model.Question{
			Text:          text,
			CorrectAnswer: correct,
			Options:       options,
		})
	}
	return questions
}

// BuildTickets разбивает вопросы на билеты по size штук.
// Номера идут подряд, начиная с firstNumber; последний билет может быть неполным.
func BuildTickets(questions []model.Question, size, firstNumber int) []model.Ticket {
	if size <= 0 {
		size = model.TicketSize
	}
	tickets := make([]model.Ticket, 0, (len(questions)+size-1)/size)
	for i := 0; i < len(questions); i += size {
		end := i + size
		if end > len(questions) {
			end = len(questions)
		}
		chunk := make([]model.Question, end-i)
		copy(chunk, questions[i:end])
		tickets = append(tickets, model.Ticket{
			TicketNumber: firstNumber + i/size,
			Questions:    chunk,
		})
	}
	return tickets
}

func containsOnce(options []string, value string) bool {
	count := 0
	for _, option := range options {
		if option == value {
			count++
		}
	}
	return count == 1
}
