package service

import "errors"

var (
	// ErrTicketNotFound запрошенный билет отсутствует, сессия не создается
	ErrTicketNotFound = errors.New("ticket not found")
	// ErrInsufficientData в базе меньше вопросов, чем требуется для случайного теста
	ErrInsufficientData = errors.New("insufficient questions for random test")
	// ErrSessionExhausted все вопросы сессии уже пройдены
	ErrSessionExhausted = errors.New("session exhausted")
	// ErrNoActiveQuestion нет вопроса, на который можно ответить
	ErrNoActiveQuestion = errors.New("no active question")
	// ErrSessionNotFound у пользователя нет активной сессии
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidOption индекс варианта вне диапазона
	ErrInvalidOption = errors.New("invalid option index")
	// ErrInvalidMode неверные параметры режима теста
	ErrInvalidMode = errors.New("invalid test mode")
)

// IsStale сообщает, что ошибка вызвана устаревшим нажатием кнопки
// (сессия завершена, удалена или вопрос еще не показан).
func IsStale(err error) bool {
	return errors.Is(err, ErrSessionExhausted) ||
		errors.Is(err, ErrNoActiveQuestion) ||
		errors.Is(err, ErrSessionNotFound)
}
