package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath путь к конфигурации по умолчанию
const DefaultPath = "configs/config.yaml"

// Драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Режимы получения обновлений бота
const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

type Config struct {
	Server struct {
		Host       string `yaml:"host"`
		Port       string `yaml:"port"`
		AdminToken string `yaml:"admin_token"`
	} `yaml:"server"`
	TelegramBot struct {
		Token       string        `yaml:"token"`
		Mode        string        `yaml:"mode"`
		WebhookURL  string        `yaml:"webhook_url"`
		ListenAddr  string        `yaml:"listen_addr"`
		PollTimeout time.Duration `yaml:"poll_timeout"`
		AdminIDs    []int64       `yaml:"admin_ids"`
	} `yaml:"telegram_bot"`
	Storage struct {
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Database string `yaml:"database"`
	} `yaml:"storage"`
	Quiz struct {
		RandomCount int `yaml:"random_count"`
		TicketSize  int `yaml:"ticket_size"`
	} `yaml:"quiz"`
	Report struct {
		FontDir string `yaml:"font_dir"`
	} `yaml:"report"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	MessagesPath string `yaml:"messages_path"`
}

// LoadConfig читает .env (если есть), YAML-файл и переменные окружения.
// Переменные окружения имеют приоритет над файлом.
func LoadConfig(filename string) (*Config, error) {
	_ = godotenv.Load()

	config := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	config.applyDefaults()

	return config, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.TelegramBot.Mode == "" {
		c.TelegramBot.Mode = ModePolling
	}
	if c.TelegramBot.ListenAddr == "" {
		c.TelegramBot.ListenAddr = ":8443"
	}
	if c.TelegramBot.PollTimeout == 0 {
		c.TelegramBot.PollTimeout = 10 * time.Second
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverMemory
	}
	if c.Storage.Database == "" {
		c.Storage.Database = "quizbot"
	}
	if c.Quiz.RandomCount == 0 {
		c.Quiz.RandomCount = 40
	}
	if c.Quiz.TicketSize == 0 {
		c.Quiz.TicketSize = 10
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.TelegramBot.Token = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv("HTTP_ADMIN_TOKEN"); v != "" {
		c.Server.AdminToken = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ADMIN_IDS"); v != "" {
		ids, err := parseIDs(v)
		if err != nil {
			return err
		}
		c.TelegramBot.AdminIDs = ids
	}
	return nil
}

// parseIDs разбирает список Telegram ID, разделенных запятой
func parseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid admin id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Validate проверяет конфигурацию. requireBot требует наличия токена бота.
func (c *Config) Validate(requireBot bool) error {
	var errs []error

	if requireBot && c.TelegramBot.Token == "" {
		errs = append(errs, errors.New("telegram_bot.token is required"))
	}
	switch c.TelegramBot.Mode {
	case ModePolling:
	case ModeWebhook:
		if c.TelegramBot.WebhookURL == "" {
			errs = append(errs, errors.New("telegram_bot.webhook_url is required in webhook mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown telegram_bot.mode %q", c.TelegramBot.Mode))
	}
	switch c.Storage.Driver {
	case DriverPostgres, DriverSQLite, DriverMongo:
		if c.Storage.Driver != DriverSQLite && c.Storage.DSN == "" {
			errs = append(errs, fmt.Errorf("storage.dsn is required for driver %s", c.Storage.Driver))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown storage.driver %q", c.Storage.Driver))
	}
	if c.Quiz.RandomCount <= 0 {
		errs = append(errs, errors.New("quiz.random_count must be positive"))
	}
	if c.Quiz.TicketSize <= 0 {
		errs = append(errs, errors.New("quiz.ticket_size must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// IsAdmin сообщает, разрешена ли пользователю загрузка билетов.
// Пустой список admin_ids разрешает загрузку всем.
func (c *Config) IsAdmin(userID int64) bool {
	if len(c.TelegramBot.AdminIDs) == 0 {
		return true
	}
	for _, id := range c.TelegramBot.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
