package middleware

import "gopkg.in/telebot.v4"

// AutoRespond отвечает на callback, чтобы у кнопки пропал индикатор загрузки
func AutoRespond() telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			if c.Callback() != nil {
				defer func() { _ = c.Respond() }()
			}
			return next(c)
		}
	}
}
