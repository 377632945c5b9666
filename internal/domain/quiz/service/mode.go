package service

import "fmt"

// Mode режим создания сессии: случайная выборка или конкретный билет
type Mode struct {
	random       bool
	count        int
	ticketNumber int
}

// Random выборка count случайных вопросов из всех билетов
func Random(count int) Mode {
	return Mode{random: true, count: count}
}

// FixedTicket вопросы билета ticketNumber в сохраненном порядке
func FixedTicket(ticketNumber int) Mode {
	return Mode{ticketNumber: ticketNumber}
}

func (m Mode) IsRandom() bool { return m.random }

func (m Mode) String() string {
	if m.random {
		return fmt.Sprintf("random(%d)", m.count)
	}
	return fmt.Sprintf("ticket(%d)", m.ticketNumber)
}

func (m Mode) validate() error {
	if m.random && m.count <= 0 {
		return fmt.Errorf("%w: count must be positive, got %d", ErrInvalidMode, m.count)
	}
	if !m.random && m.ticketNumber <= 0 {
		return fmt.Errorf("%w: ticket number must be positive, got %d", ErrInvalidMode, m.ticketNumber)
	}
	return nil
}
