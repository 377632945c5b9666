package model

// Префиксы callback-данных инлайн-кнопок. Привязаны к обработчикам в internal/app.
// Не следует менять префиксы без изменения маршрутизации в bootstrapHandlersTelegram.
const (
	AnswerPrefix       = "opt_"
	TicketViewPrefix   = "bilet_"
	TicketSolvePrefix  = "solve_"
	SolveTicketListKey = "solve_ticket"
)
