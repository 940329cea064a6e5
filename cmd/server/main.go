package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"

	"github.com/lmcginley620/SeniorProject/internal/ai/anthropic"
	"github.com/lmcginley620/SeniorProject/internal/config"
	"github.com/lmcginley620/SeniorProject/internal/game"
	"github.com/lmcginley620/SeniorProject/internal/server"
	"github.com/lmcginley620/SeniorProject/internal/store"
)

const version = "v1.0.0"

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		portFlag    = flag.String("port", "", "Port to listen on (overrides PORT env var)")
	)
	flag.BoolVar(showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Parse()

	if *showHelp {
		fmt.Printf(`Trivia game server

Usage: %s [options]

Options:
  -h, --help      Show this help message
  -v, --version   Show version information
  --port PORT     Port to listen on (default: 8080 or PORT env var)

Environment Variables:
  PORT                Port to listen on (default: 8080)
  ANTHROPIC_API_KEY   Anthropic API key for question generation
  ANTHROPIC_MODEL     Model for question generation (default: claude-3-7-sonnet-latest)
  REDIS_ADDR          Redis address for game storage (empty: in-memory)
  RESULTS_DWELL       Seconds a game shows results before auto-advancing (default: 5)
  DEBUG_MODE          "true" skips AI generation and uses built-in questions

Examples:
  %s                  Start server with default settings
  %s --port 3000      Start server on port 3000
`, os.Args[0], os.Args[0], os.Args[0])
		return
	}

	if *showVersion {
		fmt.Printf("trivia-server %s\n", version)
		return
	}

	cfg := config.FromEnv()
	port := *portFlag
	if port == "" {
		port = cfg.Port
	}

	// zerolog setup (human-friendly console)
	zerolog.TimeFieldFormat = time.RFC3339
	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zerologlog.Logger = zerologlog.Output(cw)

	// Storage: Redis when configured, in-memory otherwise
	var st game.Store = store.NewMemory()
	if cfg.RedisAddr != "" {
		st = store.NewRedis(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		zerologlog.Info().Str("addr", cfg.RedisAddr).Msg("using redis game store")
	}

	engine := game.NewEngine(st)
	engine.SetResultsDwell(cfg.ResultsDwell)
	defer engine.Close()
	if cfg.DebugMode {
		zerologlog.Info().Msg("debug mode, question generation disabled")
	} else if cfg.AnthropicKey != "" {
		engine.SetGenerator(anthropic.New(cfg.AnthropicKey, cfg.AnthropicModel))
	} else {
		zerologlog.Warn().Msg("no ANTHROPIC_API_KEY set, games will use default questions")
	}

	// Gin setup with zerolog request logging
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		zerologlog.Info().
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Int("status", c.Writer.Status()).
			Dur("dur", time.Since(start)).
			Msg("http")
	})

	server.New(engine).Mount(r)

	log.Printf("listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
