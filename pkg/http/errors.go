package http

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Error тело ответа с ошибкой
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse отправляет ошибку в формате JSON
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Error{Status: status, Message: message}); err != nil {
		log.Error().Err(err).Msg("failed to encode error response")
	}
}

// JSONResponse отправляет v в формате JSON со статусом status
func JSONResponse(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
