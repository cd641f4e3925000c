package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	DBDSN        string `env:"DB_DSN" envDefault:"logs.sqlite3"`
	ImagesDir    string `env:"IMAGES_DIR" envDefault:"./images"`
	TemplatesDir string `env:"TEMPLATES_DIR" envDefault:"./web/templates"`
	LogFile      string `env:"LOG_FILE" envDefault:"./onestop.log"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty    bool   `env:"LOG_PRETTY" envDefault:"false"`

	// CatalogFile overrides the bundled catalog when set.
	CatalogFile string `env:"CATALOG_FILE"`
	DefaultSlug string `env:"DEFAULT_SLUG" envDefault:"galaxy-s25-ultra"`

	Ollama Ollama

	MaxMessageRunes int `env:"MAX_MESSAGE_RUNES" envDefault:"2000"`
	HistoryLimit    int `env:"HISTORY_LIMIT" envDefault:"20"`
	HistoryMax      int `env:"HISTORY_MAX" envDefault:"100"`
	RateLimitAsk    int `env:"RATE_LIMIT_ASK" envDefault:"20"`
}

type Ollama struct {
	URL           string        `env:"OLLAMA_URL" envDefault:"http://localhost:11434/api/generate"`
	Model         string        `env:"OLLAMA_MODEL" envDefault:"gemma3:4b"`
	Timeout       time.Duration `env:"OLLAMA_TIMEOUT" envDefault:"120s"`
	KeepAlive     string        `env:"OLLAMA_KEEP_ALIVE" envDefault:"2h"`
	Temperature   float64       `env:"OLLAMA_TEMPERATURE" envDefault:"0.2"`
	NumCtx        int           `env:"OLLAMA_NUM_CTX" envDefault:"4096"`
	Warmup        bool          `env:"OLLAMA_WARMUP" envDefault:"true"`
	WarmupTimeout time.Duration `env:"OLLAMA_WARMUP_TIMEOUT" envDefault:"600s"`
	WarmupNumCtx  int           `env:"OLLAMA_WARMUP_NUM_CTX" envDefault:"1024"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[config] no .env file found, using process environment")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.HistoryLimit < 1 {
		cfg.HistoryLimit = 20
	}
	if cfg.HistoryMax < cfg.HistoryLimit {
		cfg.HistoryMax = cfg.HistoryLimit
	}

	log.Printf("[config] PORT=%s DB_DSN=%s IMAGES_DIR=%s LOG_FILE=%s OLLAMA_URL=%s OLLAMA_MODEL=%s",
		cfg.Port, cfg.DBDSN, cfg.ImagesDir, cfg.LogFile, cfg.Ollama.URL, cfg.Ollama.Model)
	return cfg, nil
}
