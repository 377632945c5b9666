package app

import (
	"net/http"
	"time"

	"github.com/IT-Nick/quizbot/internal/app/handlers/http/answer_sheet_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/http/health_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/http/import_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/http/session_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/http/ticket_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/http/tickets_handler"
	"github.com/IT-Nick/quizbot/internal/app/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Router собирает маршруты HTTP API администратора
func (app *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Method(http.MethodGet, "/healthz", health_handler.NewHealthHandler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(app.config.Server.AdminToken))

		r.Method(http.MethodGet, "/tickets", tickets_handler.NewTicketsHandler(app.quizService))
		r.Method(http.MethodPost, "/tickets/import", import_handler.NewImportHandler(app.ingestService))
		r.Method(http.MethodGet, "/tickets/{number}", ticket_handler.NewTicketHandler(app.quizService))
		r.Method(http.MethodGet, "/tickets/{number}/answer-sheet.pdf", answer_sheet_handler.NewAnswerSheetHandler(app.quizService, app.answerSheet))

		sessions := session_handler.NewSessionHandler(app.quizService)
		r.Get("/sessions/{userID}", sessions.Get)
		r.Delete("/sessions/{userID}", sessions.Delete)
	})

	return r
}
