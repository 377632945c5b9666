package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/IT-Nick/quizbot/internal/domain/messages/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCatalogComplete проверяет, что для каждого ключа есть текст во встроенном каталоге
func TestCatalogComplete(t *testing.T) {
	repo, err := repository.NewMessageRepository("")
	require.NoError(t, err)
	svc := NewMessageService(repo)

	keys := []string{
		Welcome, ButtonRandomTest, ButtonTickets, ButtonSolveTicket, TicketButton,
		ChooseTicket, ChooseTicketToSolve, NoTickets, TicketNotFound, TicketHeader,
		QuestionHeader, TicketQuestionHeader, OptionsHeader, TicketSeparator,
		StartFailed, InsufficientData, AnswerCorrect, AnswerWrong, AnswerWrongRetry,
		TestFinished, StaleInteraction, TryAgain, UploadSuccess, UploadWrongFormat,
		UploadFailed, UploadNoQuestions, UploadForbidden,
	}
	for _, key := range keys {
		text, err := svc.GetMessageByKey(key)
		require.NoError(t, err, key)
		assert.NotEmpty(t, text, key)
	}
}

func TestText(t *testing.T) {
	repo, err := repository.NewMessageRepository("")
	require.NoError(t, err)
	svc := NewMessageService(repo)

	assert.Equal(t, "Билет топилмади!", svc.Text(TicketNotFound))
	assert.Equal(t, "7-билет", svc.Text(TicketButton, 7))
	assert.Equal(t,
		"Excel файл муваффақиятли қайта ишланди!\nЖами 3 та билет яратилди.\nҲар бир билетда 10 тадан савол мавжуд.",
		svc.Text(UploadSuccess, 3, 10))
	assert.Equal(t, "unknown_key", svc.Text("unknown_key"))
}

// TestOverride проверяет частичное переопределение каталога файлом
func TestOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yaml")
	require.NoError(t, os.WriteFile(path, []byte("welcome: \"Hello!\"\n"), 0o600))

	repo, err := repository.NewMessageRepository(path)
	require.NoError(t, err)
	svc := NewMessageService(repo)

	assert.Equal(t, "Hello!", svc.Text(Welcome))
	assert.Equal(t, "📚 Билетлар", svc.Text(ButtonTickets))
}

func TestOverride_Errors(t *testing.T) {
	_, err := repository.NewMessageRepository(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("welcome: [unclosed"), 0o600))
	_, err = repository.NewMessageRepository(path)
	assert.Error(t, err)
}
