package service

import "github.com/IT-Nick/quizbot/internal/domain/model"

// Advancer определяет, на сколько сдвигается индекс вопроса после ответа
type Advancer interface {
	Step(isCorrect bool) int
}

// AlwaysAdvance переходит к следующему вопросу после любого ответа (случайный тест)
type AlwaysAdvance struct{}

func (AlwaysAdvance) Step(bool) int { return 1 }

// AdvanceOnCorrect переходит дальше только после правильного ответа (решение билета)
type AdvanceOnCorrect struct{}

func (AdvanceOnCorrect) Step(isCorrect bool) int {
	if isCorrect {
		return 1
	}
	return 0
}

// AdvancerFor выбирает стратегию по режиму сессии
func AdvancerFor(session *model.UserSession) Advancer {
	if session.IsRandomTest {
		return AlwaysAdvance{}
	}
	return AdvanceOnCorrect{}
}
