package import_handler

import (
	"errors"
	"fmt"
	"net/http"

	ingest "github.com/IT-Nick/quizbot/internal/domain/ingest/service"
	httpError "github.com/IT-Nick/quizbot/pkg/http"
)

const maxUploadSize = 32 << 20

// ImportResponse структура для ответа
type ImportResponse struct {
	Tickets int `json:"tickets"`
}

// ImportHandler загружает билеты из XLSX, переданного в поле формы "file"
type ImportHandler struct {
	ingestService *ingest.IngestService
}

// NewImportHandler создает новый экземпляр обработчика
func NewImportHandler(ingestService *ingest.IngestService) *ImportHandler {
	return &ImportHandler{ingestService: ingestService}
}

func (h *ImportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Missing file in multipart form")
		return
	}
	defer file.Close()

	count, err := h.ingestService.IngestXLSX(r.Context(), file)
	switch {
	case errors.Is(err, ingest.ErrInvalidFormat):
		httpError.ErrorResponse(w, http.StatusBadRequest, "File is not a valid XLSX spreadsheet")
		return
	case errors.Is(err, ingest.ErrNoQuestions):
		httpError.ErrorResponse(w, http.StatusUnprocessableEntity, "No valid questions found")
		return
	case err != nil:
		httpError.ErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Failed to import tickets: %v", err))
		return
	}

	httpError.JSONResponse(w, http.StatusCreated, ImportResponse{Tickets: count})
}
