package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	Port     string
	StoreDSN string
	LogFile  string

	// Per-station resync intervals, matching the legacy windows:
	// admin popup 1s, POS terminal 3s, menu page 2s.
	AdminInterval time.Duration
	POSInterval   time.Duration
	MenuInterval  time.Duration

	// WhatsAppNumber receives menu orders (digits, country code first).
	WhatsAppNumber string
}

func Load() Config {
	// .env is optional; real env vars win.
	_ = godotenv.Load()

	cfg := Config{
		Port:           getenv("PORT", "8080"),
		StoreDSN:       getenv("STORE_DSN", "beulahpos.db"),
		LogFile:        os.Getenv("LOG_FILE"),
		AdminInterval:  seconds("ADMIN_SYNC_SECONDS", 1),
		POSInterval:    seconds("POS_SYNC_SECONDS", 3),
		MenuInterval:   seconds("MENU_SYNC_SECONDS", 2),
		WhatsAppNumber: getenv("WHATSAPP_NUMBER", "5573988079359"),
	}
	log.Printf("[config] PORT=%s STORE_DSN=%s admin=%s pos=%s menu=%s",
		cfg.Port, cfg.StoreDSN, cfg.AdminInterval, cfg.POSInterval, cfg.MenuInterval)
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func seconds(key string, def int) time.Duration {
	n := cast.ToInt(os.Getenv(key))
	if n <= 0 {
		n = def
	}
	return time.Duration(n) * time.Second
}
