package service

// OptionLabels метки вариантов ответа в порядке Options
var OptionLabels = [...]string{"А", "Б", "В", "Г"}

// Option вариант ответа для отображения
type Option struct {
	Label string
	Text  string
}

// QuestionView данные для показа текущего вопроса
type QuestionView struct {
	Number       int // номер вопроса, начиная с 1
	Total        int
	Text         string
	Options      []Option
	IsRandomTest bool
	TicketNumber int // 0 для случайного теста
}

// Result итог завершенного теста
type Result struct {
	Score int
	Total int
}

// AnswerResult результат обработки ответа
type AnswerResult struct {
	IsCorrect     bool
	SelectedText  string
	CorrectAnswer string
	Score         int
	// Finished true, если тест завершен и сессия удалена
	Finished bool
	Result   Result
}

// Label возвращает метку варианта по индексу
func Label(index int) string {
	if index >= 0 && index < len(OptionLabels) {
		return OptionLabels[index]
	}
	return "?"
}
