package model

import "time"

const (
	// TicketSize количество вопросов в одном билете
	TicketSize = 10
	// OptionsCount количество вариантов ответа в вопросе
	OptionsCount = 4
)

// Question представляет вопрос с вариантами ответа.
// Порядок Options фиксируется при загрузке и больше не меняется.
type Question struct {
	Text          string   `json:"question" bson:"question"`
	CorrectAnswer string   `json:"correct_answer" bson:"correctAnswer"`
	Options       []string `json:"options" bson:"options"`
}

// CorrectIndex возвращает индекс правильного ответа в Options или -1
func (q Question) CorrectIndex() int {
	for i, option := range q.Options {
		if option == q.CorrectAnswer {
			return i
		}
	}
	return -1
}

// Clone возвращает копию вопроса, не разделяющую срез Options
func (q Question) Clone() Question {
	if q.Options == nil {
		return q
	}
	options := make([]string, len(q.Options))
	copy(options, q.Options)
	q.Options = options
	return q
}

// Ticket представляет билет: пронумерованный набор вопросов
type Ticket struct {
	TicketNumber int        `json:"ticket_number" bson:"ticketNumber"`
	Questions    []Question `json:"questions" bson:"questions"`
	CreatedAt    time.Time  `json:"created_at" bson:"createdAt"`
}

// Clone возвращает глубокую копию билета
func (t Ticket) Clone() Ticket {
	questions := make([]Question, len(t.Questions))
	for i, q := range t.Questions {
		questions[i] = q.Clone()
	}
	t.Questions = questions
	return t
}
