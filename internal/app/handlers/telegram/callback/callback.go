package callback

import (
	"fmt"
	"strconv"
	"strings"
)

// Clean очищает данные callback от служебного префикса telebot
func Clean(data string) string {
	cleaned := strings.TrimSpace(data)
	cleaned = strings.ReplaceAll(cleaned, "\f", "")
	cleaned = strings.ReplaceAll(cleaned, "\\f", "")
	return cleaned
}

// ParseInt извлекает число после префикса, например 3 из "bilet_3"
func ParseInt(data, prefix string) (int, error) {
	cleaned := Clean(data)
	if !strings.HasPrefix(cleaned, prefix) {
		return 0, fmt.Errorf("callback %q has no prefix %q", cleaned, prefix)
	}
	raw := strings.TrimPrefix(cleaned, prefix)
	// данные кнопки могут идти после "|"
	if i := strings.IndexByte(raw, '|'); i >= 0 {
		raw = raw[:i]
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("failed to parse callback %q: %w", cleaned, err)
	}
	return value, nil
}

// Payload возвращает данные кнопки после "|", например ID сессии из "opt_1|<id>"
func Payload(data string) string {
	cleaned := Clean(data)
	if i := strings.IndexByte(cleaned, '|'); i >= 0 {
		return cleaned[i+1:]
	}
	return ""
}
