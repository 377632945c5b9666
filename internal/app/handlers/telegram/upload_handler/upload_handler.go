package upload_handler

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	ingest "github.com/IT-Nick/quizbot/internal/domain/ingest/service"
	messageService "github.com/IT-Nick/quizbot/internal/domain/messages/service"
	"github.com/rs/zerolog/log"
	"gopkg.in/telebot.v4"
)

// XLSXMime MIME-тип файлов Excel
const XLSXMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// UploadHandler загружает билеты из присланного Excel-файла
type UploadHandler struct {
	ingestService  *ingest.IngestService
	messageService *messageService.MessageService
	ticketSize     int
	isAdmin        func(userID int64) bool
}

// NewUploadHandler возвращает структуру обработчика. isAdmin проверяет право загрузки.
func NewUploadHandler(
	ingestService *ingest.IngestService,
	messageService *messageService.MessageService,
	ticketSize int,
	isAdmin func(userID int64) bool,
) *UploadHandler {
	return &UploadHandler{
		ingestService:  ingestService,
		messageService: messageService,
		ticketSize:     ticketSize,
		isAdmin:        isAdmin,
	}
}

func (h *UploadHandler) Handle(c telebot.Context) error {
	userID := c.Sender().ID
	doc := c.Message().Document
	if doc == nil {
		return nil
	}

	if !h.isAdmin(userID) {
		log.Warn().Int64("user_id", userID).Msg("upload rejected: not an admin")
		return c.Send(h.messageService.Text(messageService.UploadForbidden))
	}
	if !IsXLSX(doc.MIME, doc.FileName) {
		return c.Send(h.messageService.Text(messageService.UploadWrongFormat))
	}

	reader, err := c.Bot().File(&doc.File)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Str("file", doc.FileName).Msg("failed to download file")
		return c.Send(h.messageService.Text(messageService.UploadFailed))
	}
	defer reader.Close()

	count, err := h.ingestService.IngestXLSX(context.Background(), reader)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Str("file", doc.FileName).Msg("failed to ingest file")
		switch {
		case errors.Is(err, ingest.ErrInvalidFormat):
			return c.Send(h.messageService.Text(messageService.UploadWrongFormat))
		case errors.Is(err, ingest.ErrNoQuestions):
			return c.Send(h.messageService.Text(messageService.UploadNoQuestions))
		default:
			return c.Send(h.messageService.Text(messageService.UploadFailed))
		}
	}

	log.Info().Int64("user_id", userID).Str("file", doc.FileName).Int("tickets", count).Msg("tickets uploaded")
	return c.Send(h.messageService.Text(messageService.UploadSuccess, count, h.ticketSize))
}

// IsXLSX проверяет тип документа по MIME или расширению имени файла
func IsXLSX(mime, fileName string) bool {
	if mime == XLSXMime {
		return true
	}
	return mime == "" && strings.EqualFold(filepath.Ext(fileName), ".xlsx")
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *UploadHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
