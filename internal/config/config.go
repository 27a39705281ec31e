// Package config собирает конфигурацию сервиса из значений по умолчанию,
// JSON-файла, флагов командной строки и переменных окружения.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Значения по умолчанию
const (
	DefaultServerAddress     = ":8080"
	DefaultBaseURL           = "http://localhost:8080"
	DefaultFileStoragePath   = "logos.json"
	DefaultSecretKey         = "your-secret-key"
	DefaultTLSCertFile       = "server.crt"
	DefaultTLSKeyFile        = "server.key"
	DefaultOpenAIBaseURL     = "https://api.openai.com/v1"
	DefaultEditDelay         = time.Second
	DefaultGenerateRateLimit = 1.0
	DefaultGenerateRateBurst = 5
)

// ErrInsecureSecretKey возвращается, если ключ подписи сессий пуст или равен значению по умолчанию
var ErrInsecureSecretKey = errors.New("SECRET_KEY is not set: refusing to sign sessions with the default key")

// Config хранит конфигурацию приложения.
type Config struct {
	ServerAddress   string `env:"SERVER_ADDRESS"`    // Адрес для запуска HTTP-сервера
	BaseURL         string `env:"BASE_URL"`          // Публичный адрес сервиса
	FileStoragePath string `env:"FILE_STORAGE_PATH"` // Путь к файловому хранилищу логотипов
	DatabaseDSN     string `env:"DATABASE_DSN"`      // Строка подключения к PostgreSQL
	SecretKey       string `env:"SECRET_KEY"`        // Ключ подписи JWT сессий
	ConfigFile      string `env:"CONFIG"`            // Путь к JSON-файлу конфигурации

	EnableHTTPS string `env:"ENABLE_HTTPS"`
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`

	OpenAIAPIKey    string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string        `env:"OPENAI_BASE_URL"`
	ImageAPITimeout time.Duration `env:"IMAGE_API_TIMEOUT"` // 0 - таймаут транспорта по умолчанию

	EditDelay         time.Duration `env:"EDIT_DELAY"`
	GenerateRateLimit float64       `env:"GENERATE_RATE_LIMIT"` // запросов в секунду на пользователя, <= 0 отключает
	GenerateRateBurst int           `env:"GENERATE_RATE_BURST"`
}

// JSONConfig описывает JSON-файл конфигурации.
// Указатели позволяют отличить отсутствующее поле от нулевого значения.
type JSONConfig struct {
	ServerAddress     *string  `json:"server_address"`
	BaseURL           *string  `json:"base_url"`
	FileStoragePath   *string  `json:"file_storage_path"`
	DatabaseDSN       *string  `json:"database_dsn"`
	SecretKey         *string  `json:"secret_key"`
	EnableHTTPS       *bool    `json:"enable_https"`
	TLSCertFile       *string  `json:"tls_cert_file"`
	TLSKeyFile        *string  `json:"tls_key_file"`
	OpenAIAPIKey      *string  `json:"openai_api_key"`
	OpenAIBaseURL     *string  `json:"openai_base_url"`
	ImageAPITimeout   *string  `json:"image_api_timeout"`
	EditDelay         *string  `json:"edit_delay"`
	GenerateRateLimit *float64 `json:"generate_rate_limit"`
	GenerateRateBurst *int     `json:"generate_rate_burst"`
}

// newDefaultConfig возвращает конфигурацию со значениями по умолчанию
func newDefaultConfig() *Config {
	return &Config{
		ServerAddress:     DefaultServerAddress,
		BaseURL:           DefaultBaseURL,
		FileStoragePath:   DefaultFileStoragePath,
		SecretKey:         DefaultSecretKey,
		TLSCertFile:       DefaultTLSCertFile,
		TLSKeyFile:        DefaultTLSKeyFile,
		OpenAIBaseURL:     DefaultOpenAIBaseURL,
		EditDelay:         DefaultEditDelay,
		GenerateRateLimit: DefaultGenerateRateLimit,
		GenerateRateBurst: DefaultGenerateRateBurst,
	}
}

// NewConfig инициализирует конфигурацию.
// Приоритет (по возрастанию): значения по умолчанию, JSON-файл, флаги, переменные окружения.
// Файл .env, если он есть, подгружается в окружение до разбора.
func NewConfig() (*Config, error) {
	// Отсутствие .env - штатная ситуация
	_ = godotenv.Load()

	cfg := newDefaultConfig()

	// 1. Флаги командной строки
	flag.StringVar(&cfg.ServerAddress, "a", cfg.ServerAddress, "Адрес запуска HTTP-сервера (env: SERVER_ADDRESS)")
	flag.StringVar(&cfg.BaseURL, "b", cfg.BaseURL, "Публичный адрес сервиса (env: BASE_URL)")
	flag.StringVar(&cfg.FileStoragePath, "f", cfg.FileStoragePath, "Путь к файловому хранилищу (env: FILE_STORAGE_PATH)")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "Строка подключения к PostgreSQL (env: DATABASE_DSN)")
	flag.StringVar(&cfg.EnableHTTPS, "s", cfg.EnableHTTPS, "Включить HTTPS (env: ENABLE_HTTPS)")
	flag.StringVar(&cfg.ConfigFile, "c", cfg.ConfigFile, "Путь к JSON-файлу конфигурации (env: CONFIG)")
	flag.StringVar(&cfg.OpenAIAPIKey, "k", cfg.OpenAIAPIKey, "Ключ API генерации изображений (env: OPENAI_API_KEY)")
	flag.Parse()

	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	// 2. JSON-файл применяется только к тем полям, которые не заданы флагами
	configFile := cfg.ConfigFile
	if v, ok := os.LookupEnv("CONFIG"); ok && v != "" {
		configFile = v
	}
	jsonCfg, err := loadJSONConfig(configFile)
	if err != nil {
		return nil, err
	}
	flagged := snapshotFlagged(cfg, setFlags)
	if err := cfg.applyJSONConfig(jsonCfg); err != nil {
		return nil, err
	}
	flagged.restore(cfg)

	// 3. Переменные окружения (наивысший приоритет)
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}

	return cfg, nil
}

// ValidateSecretKey проверяет, что ключ подписи задан явно.
// Значение по умолчанию общеизвестно и позволяет подделать сессию любого пользователя.
func (c *Config) ValidateSecretKey() error {
	if c.SecretKey == "" || c.SecretKey == DefaultSecretKey {
		return ErrInsecureSecretKey
	}
	return nil
}

// IsHTTPSEnabled сообщает, нужно ли запускать сервер по HTTPS.
// Любое непустое значение, кроме явного false, включает HTTPS.
func (c *Config) IsHTTPSEnabled() bool {
	if c.EnableHTTPS == "" {
		return false
	}
	if b, err := strconv.ParseBool(c.EnableHTTPS); err == nil {
		return b
	}
	return true
}

// loadJSONConfig читает JSON-файл конфигурации.
// Пустое имя файла означает отсутствие файла.
func loadJSONConfig(filename string) (*JSONConfig, error) {
	if filename == "" {
		return &JSONConfig{}, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return &jc, nil
}

// applyJSONConfig переносит заданные в JSON значения в конфигурацию
func (c *Config) applyJSONConfig(jc *JSONConfig) error {
	if jc == nil {
		return nil
	}
	if jc.ServerAddress != nil {
		c.ServerAddress = *jc.ServerAddress
	}
	if jc.BaseURL != nil {
		c.BaseURL = *jc.BaseURL
	}
	if jc.FileStoragePath != nil {
		c.FileStoragePath = *jc.FileStoragePath
	}
	if jc.DatabaseDSN != nil {
		c.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.SecretKey != nil {
		c.SecretKey = *jc.SecretKey
	}
	if jc.EnableHTTPS != nil {
		c.EnableHTTPS = strconv.FormatBool(*jc.EnableHTTPS)
	}
	if jc.TLSCertFile != nil {
		c.TLSCertFile = *jc.TLSCertFile
	}
	if jc.TLSKeyFile != nil {
		c.TLSKeyFile = *jc.TLSKeyFile
	}
	if jc.OpenAIAPIKey != nil {
		c.OpenAIAPIKey = *jc.OpenAIAPIKey
	}
	if jc.OpenAIBaseURL != nil {
		c.OpenAIBaseURL = *jc.OpenAIBaseURL
	}
	if jc.ImageAPITimeout != nil {
		d, err := time.ParseDuration(*jc.ImageAPITimeout)
		if err != nil {
			return fmt.Errorf("invalid image_api_timeout: %w", err)
		}
		c.ImageAPITimeout = d
	}
	if jc.EditDelay != nil {
		d, err := time.ParseDuration(*jc.EditDelay)
		if err != nil {
			return fmt.Errorf("invalid edit_delay: %w", err)
		}
		c.EditDelay = d
	}
	if jc.GenerateRateLimit != nil {
		c.GenerateRateLimit = *jc.GenerateRateLimit
	}
	if jc.GenerateRateBurst != nil {
		c.GenerateRateBurst = *jc.GenerateRateBurst
	}
	return nil
}

// flaggedValues хранит значения, явно заданные флагами
type flaggedValues map[string]string

func snapshotFlagged(c *Config, setFlags map[string]bool) flaggedValues {
	fv := make(flaggedValues)
	for name := range setFlags {
		if p := c.flagTarget(name); p != nil {
			fv[name] = *p
		}
	}
	return fv
}

func (fv flaggedValues) restore(c *Config) {
	for name, v := range fv {
		if p := c.flagTarget(name); p != nil {
			*p = v
		}
	}
}

// flagTarget возвращает поле конфигурации, связанное с флагом
func (c *Config) flagTarget(name string) *string {
	switch name {
	case "a":
		return &c.ServerAddress
	case "b":
		return &c.BaseURL
	case "f":
		return &c.FileStoragePath
	case "d":
		return &c.DatabaseDSN
	case "s":
		return &c.EnableHTTPS
	case "k":
		return &c.OpenAIAPIKey
	}
	return nil
}
