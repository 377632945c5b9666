package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/answer_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/callback"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/question_sender"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/random_test_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/solve_list_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/solve_ticket_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/start_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/ticket_view_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/tickets_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/upload_handler"
	"github.com/IT-Nick/quizbot/internal/app/middleware"
	ingestService "github.com/IT-Nick/quizbot/internal/domain/ingest/service"
	msgRepo "github.com/IT-Nick/quizbot/internal/domain/messages/repository"
	msgService "github.com/IT-Nick/quizbot/internal/domain/messages/service"
	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/presenter"
	quizService "github.com/IT-Nick/quizbot/internal/domain/quiz/service"
	"github.com/IT-Nick/quizbot/internal/domain/report"
	"github.com/IT-Nick/quizbot/internal/infra/config"
	"github.com/rs/zerolog/log"
	"gopkg.in/telebot.v4"
)

const shutdownTimeout = 10 * time.Second

type Services struct {
	quizService    *quizService.QuizService
	ingestService  *ingestService.IngestService
	messageService *msgService.MessageService
	presenter      *presenter.Presenter
	answerSheet    *report.AnswerSheet
}

type App struct {
	config  *config.Config
	bot     *telebot.Bot
	storage *Storage
	server  *http.Server

	Services
}

// NewApp открывает хранилище и создает сервисы
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	storage, err := InitStorage(ctx, cfg, rnd)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	app := &App{
		config:  cfg,
		storage: storage,
	}

	if err := app.initServices(rnd); err != nil {
		_ = storage.Close()
		return nil, err
	}

	return app, nil
}

// Функция для инициализации сервисов
func (app *App) initServices(rnd *rand.Rand) error {
	messageRepo, err := msgRepo.NewMessageRepository(app.config.MessagesPath)
	if err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}

	app.messageService = msgService.NewMessageService(messageRepo)
	app.presenter = presenter.NewPresenter(app.messageService)
	app.quizService = quizService.NewQuizService(app.storage.Tickets, app.storage.Sessions)
	app.ingestService = ingestService.NewIngestService(app.storage.Tickets, app.config.Quiz.TicketSize, rnd)
	app.answerSheet = report.NewAnswerSheet(app.config.Report.FontDir)
	return nil
}

// QuizService сервис тестов, используется командами CLI
func (app *App) QuizService() *quizService.QuizService {
	return app.quizService
}

// IngestService сервис загрузки билетов, используется командами CLI
func (app *App) IngestService() *ingestService.IngestService {
	return app.ingestService
}

// StartTelegram создает бота и запускает получение обновлений в фоне
func (app *App) StartTelegram() error {
	poller, err := NewPoller(app.config)
	if err != nil {
		return err
	}

	bot, err := telebot.NewBot(telebot.Settings{
		Token:  app.config.TelegramBot.Token,
		Poller: poller,
		OnError: func(err error, c telebot.Context) {
			event := log.Error().Err(err)
			if c != nil {
				event = event.Str("action", middleware.Action(c))
			}
			event.Msg("telegram handler failed")
		},
	})
	if err != nil {
		return fmt.Errorf("telebot.NewBot: %w", err)
	}
	app.bot = bot

	app.bot.Use(middleware.Recover(), middleware.Logger(), middleware.AutoRespond())
	app.bootstrapHandlersTelegram()

	go app.bot.Start()
	log.Info().Str("mode", app.config.TelegramBot.Mode).Str("bot", bot.Me.Username).Msg("telegram bot started")

	return nil
}

// bootstrapHandlersTelegram - регистрирует обработчики для бота
func (app *App) bootstrapHandlersTelegram() {
	sender := question_sender.NewQuestionSender(app.quizService, app.presenter)

	app.bot.Handle("/start", start_handler.NewStartHandler(app.messageService).GetHandlerFunc())
	app.bot.Handle(app.messageService.Text(msgService.ButtonRandomTest),
		random_test_handler.NewRandomTestHandler(app.quizService, app.messageService, sender, app.config.Quiz.RandomCount).GetHandlerFunc())
	app.bot.Handle(app.messageService.Text(msgService.ButtonTickets),
		tickets_handler.NewTicketsHandler(app.quizService, app.messageService, app.presenter).GetHandlerFunc())
	app.bot.Handle(telebot.OnDocument,
		upload_handler.NewUploadHandler(app.ingestService, app.messageService, app.config.Quiz.TicketSize, app.config.IsAdmin).GetHandlerFunc())

	answer := answer_handler.NewAnswerHandler(app.quizService, app.messageService, app.presenter, sender)
	ticketView := ticket_view_handler.NewTicketViewHandler(app.quizService, app.messageService, app.presenter)
	solveList := solve_list_handler.NewSolveListHandler(app.quizService, app.messageService)
	solveTicket := solve_ticket_handler.NewSolveTicketHandler(app.quizService, app.messageService, sender)

	// Все inline-кнопки приходят сюда, маршрутизация по префиксу данных
	app.bot.Handle(telebot.OnCallback, func(c telebot.Context) error {
		data := callback.Clean(c.Callback().Data)

		switch {
		case strings.HasPrefix(data, model.AnswerPrefix):
			return answer.Handle(c)
		case data == model.SolveTicketListKey:
			return solveList.Handle(c)
		case strings.HasPrefix(data, model.TicketSolvePrefix):
			return solveTicket.Handle(c)
		case strings.HasPrefix(data, model.TicketViewPrefix):
			return ticketView.Handle(c)
		}

		log.Debug().Str("data", data).Msg("unhandled callback")
		return nil
	})
}

func (app *App) newHTTPServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%s", app.config.Server.Host, app.config.Server.Port),
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// ListenAndServeHTTP запускает HTTP сервер администратора и блокируется до его остановки
func (app *App) ListenAndServeHTTP() error {
	if app.server == nil {
		app.server = app.newHTTPServer()
	}

	log.Info().Str("addr", app.server.Addr).Msg("http server started")
	if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe запускает бота и HTTP сервер и работает до отмены ctx
func (app *App) ListenAndServe(ctx context.Context) error {
	if err := app.StartTelegram(); err != nil {
		return fmt.Errorf("failed to start Telegram bot: %w", err)
	}

	app.server = app.newHTTPServer()
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.ListenAndServeHTTP()
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			serveErr = fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}

	app.shutdown()
	return serveErr
}

func (app *App) shutdown() {
	if app.bot != nil {
		app.bot.Stop()
	}
	if app.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("failed to shutdown http server")
		}
	}
}

// Close освобождает хранилище
func (app *App) Close() error {
	if err := app.storage.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return nil
}

// Presenter форматирование билетов для вывода в CLI
func (app *App) Presenter() *presenter.Presenter {
	return app.presenter
}
