package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port           string
	AnthropicKey   string
	AnthropicModel string
	RedisAddr      string
	ResultsDwell   time.Duration
	DebugMode      bool
}

func FromEnv() Config {
	c := Config{}
	c.Port = getenv("PORT", "8080")
	c.AnthropicKey = os.Getenv("ANTHROPIC_API_KEY")
	c.AnthropicModel = getenv("ANTHROPIC_MODEL", "claude-3-7-sonnet-latest")
	c.RedisAddr = os.Getenv("REDIS_ADDR")
	c.ResultsDwell = time.Duration(getenvInt("RESULTS_DWELL", 5)) * time.Second
	c.DebugMode = getenv("DEBUG_MODE", "false") == "true"
	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
