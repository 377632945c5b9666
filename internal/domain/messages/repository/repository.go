package repository

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var defaultCatalog []byte

// MessageRepository каталог текстов сообщений.
// Встроенный каталог можно частично переопределить YAML-файлом.
type MessageRepository struct {
	messages map[string]string
}

// NewMessageRepository загружает встроенный каталог и, если задан overridePath, накладывает его поверх
func NewMessageRepository(overridePath string) (*MessageRepository, error) {
	messages := make(map[string]string)
	if err := yaml.Unmarshal(defaultCatalog, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse default messages: %w", err)
	}

	if overridePath != "" {
		data, err := os.ReadFile(overridePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read messages file: %w", err)
		}
		overrides := make(map[string]string)
		if err := yaml.Unmarshal(data, &overrides); err != nil {
			return nil, fmt.Errorf("failed to parse messages file %s: %w", overridePath, err)
		}
		for key, text := range overrides {
			messages[key] = text
		}
	}

	return &MessageRepository{messages: messages}, nil
}

// GetMessageByKey возвращает текст сообщения по ключу
func (r *MessageRepository) GetMessageByKey(messageKey string) (string, error) {
	text, ok := r.messages[messageKey]
	if !ok {
		return "", fmt.Errorf("message with key %s not found", messageKey)
	}
	return text, nil
}
