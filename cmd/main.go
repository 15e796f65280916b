package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/cexll/swe-mode/internal/config"
	"github.com/cexll/swe-mode/internal/logging"
	"github.com/cexll/swe-mode/internal/modes"
	"github.com/cexll/swe-mode/internal/webhook"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var (
	loadDotEnv         = godotenv.Load
	defaultListenServe = http.ListenAndServe
)

func main() {
	if err := run(context.Background(), defaultListenServe); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, serve func(string, http.Handler) error) error {
	// Load .env file (ignore error if file doesn't exist)
	_ = loadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	log.Info().
		Int("port", cfg.Port).
		Str("trigger_phrase", cfg.TriggerPhrase).
		Bool("explicit_prompt", cfg.Prompt != "").
		Strs("modes", modes.GetAllModeNames()).
		Msg("starting swe mode dispatcher")

	handler := webhook.NewHandler(cfg.GitHubWebhookSecret, cfg.Inputs(), cfg.IgnoreBots, cfg.DedupeTTL)
	r := newRouter(handler, cfg.TriggerPhrase)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info().Str("addr", addr).Msg("server listening")

	if err := serve(addr, r); err != nil {
		return fmt.Errorf("server failed to start: %w", err)
	}

	return nil
}

func newRouter(handler *webhook.Handler, triggerPhrase string) *mux.Router {
	r := mux.NewRouter()

	// Webhook endpoint
	r.HandleFunc("/webhook", handler.Handle).Methods(http.MethodPost)

	// Mode catalog
	r.HandleFunc("/modes", handler.ListModes).Methods(http.MethodGet)
	r.HandleFunc("/modes/{name}", handler.GetMode).Methods(http.MethodGet)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	// Root endpoint with info
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"service":"swe","status":"running","trigger":%q}`, triggerPhrase)
	}).Methods(http.MethodGet)

	return r
}
