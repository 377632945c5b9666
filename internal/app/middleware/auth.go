package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	httpError "github.com/IT-Nick/quizbot/pkg/http"
)

// BearerAuth пропускает только запросы с заголовком "Authorization: Bearer <token>".
// Пустой token закрывает доступ полностью.
func BearerAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				httpError.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
