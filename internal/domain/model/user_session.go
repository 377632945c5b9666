package model

import "time"

// UnsetIndex означает, что индекс правильного ответа еще не вычислен
const UnsetIndex = -1

// SessionQuestion копия вопроса внутри сессии вместе с ответом пользователя.
// Ответы пишутся только сюда, сохраненные билеты не меняются.
type SessionQuestion struct {
	Question   `bson:",inline"`
	UserAnswer *string `json:"user_answer,omitempty" bson:"userAnswer,omitempty"`
}

// UserSession состояние прохождения теста пользователем.
// У пользователя одновременно может быть не больше одной сессии.
type UserSession struct {
	ID                   string            `json:"id" bson:"sessionId"`
	UserID               int64             `json:"user_id" bson:"userId"`
	CurrentTest          []SessionQuestion `json:"current_test" bson:"currentTest"`
	CurrentQuestionIndex int               `json:"current_question_index" bson:"currentQuestionIndex"`
	CurrentCorrectIndex  int               `json:"current_correct_index" bson:"currentCorrectIndex"`
	Score                int               `json:"score" bson:"score"`
	IsRandomTest         bool              `json:"is_random_test" bson:"isRandomTest"`
	TicketNumber         *int              `json:"ticket_number,omitempty" bson:"ticketNumber,omitempty"`
	CreatedAt            time.Time         `json:"created_at" bson:"createdAt"`
	UpdatedAt            time.Time         `json:"updated_at" bson:"updatedAt"`
}

// Total возвращает количество вопросов в тесте
func (s *UserSession) Total() int {
	return len(s.CurrentTest)
}

// Exhausted сообщает, что все вопросы сессии уже пройдены
func (s *UserSession) Exhausted() bool {
	return s.CurrentQuestionIndex >= len(s.CurrentTest)
}

// Clone возвращает глубокую копию сессии
func (s *UserSession) Clone() *UserSession {
	c := *s
	c.CurrentTest = make([]SessionQuestion, len(s.CurrentTest))
	for i, q := range s.CurrentTest {
		c.CurrentTest[i] = SessionQuestion{Question: q.Question.Clone()}
		if q.UserAnswer != nil {
			answer := *q.UserAnswer
			c.CurrentTest[i].UserAnswer = &answer
		}
	}
	if s.TicketNumber != nil {
		n := *s.TicketNumber
		c.TicketNumber = &n
	}
	return &c
}
