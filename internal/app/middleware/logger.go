package middleware

import (
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/telebot.v4"
)

// Logger логирует входящие обновления и время их обработки
func Logger() telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			start := time.Now()
			err := next(c)

			event := log.Debug()
			if err != nil {
				event = log.Error().Err(err)
			}
			if sender := c.Sender(); sender != nil {
				event = event.Int64("user_id", sender.ID)
			}
			event.
				Str("action", Action(c)).
				Dur("elapsed", time.Since(start)).
				Msg("update handled")
			return err
		}
	}
}

// Action краткое описание обновления для логов
func Action(c telebot.Context) string {
	if cb := c.Callback(); cb != nil {
		return "callback:" + cb.Data
	}
	if msg := c.Message(); msg != nil {
		if msg.Document != nil {
			return "document:" + msg.Document.FileName
		}
		return "message:" + msg.Text
	}
	return "unknown"
}
