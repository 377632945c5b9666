package middleware

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/telebot.v4"
)

// Recover перехватывает панику в обработчике и превращает ее в ошибку.
// onError вызывается с полученной ошибкой, по умолчанию паника логируется.
func Recover(onError ...func(error, telebot.Context)) telebot.MiddlewareFunc {
	handleError := func(err error, c telebot.Context) {
		log.Error().Err(err).Str("action", Action(c)).Msg("recovered from panic")
	}
	if len(onError) > 0 {
		handleError = onError[0]
	}

	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					switch x := r.(type) {
					case error:
						err = x
					case string:
						err = errors.New(x)
					default:
						err = fmt.Errorf("panic: %v", x)
					}
					handleError(err, c)
				}
			}()
			return next(c)
		}
	}
}
