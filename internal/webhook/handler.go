package webhook

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cexll/swe-mode/internal/github"
	"github.com/cexll/swe-mode/internal/modes"
	gh "github.com/google/go-github/v66/github"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// SelectionResponse describes the mode chosen for a delivered event
type SelectionResponse struct {
	Delivery      string `json:"delivery,omitempty"`
	Event         string `json:"event"`
	Kind          string `json:"kind"`
	Mode          string `json:"mode"`
	Rule          string `json:"rule"`
	Prompt        string `json:"prompt,omitempty"`
	TrackProgress bool   `json:"track_progress"`
}

// ModeInfo describes a catalog mode
type ModeInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Handler handles GitHub webhook events and mode catalog queries
type Handler struct {
	webhookSecret string
	inputs        github.Inputs
	ignoreBots    bool
	deduper       *commentDeduper
}

// NewHandler creates a new webhook handler
func NewHandler(webhookSecret string, inputs github.Inputs, ignoreBots bool, dedupeTTL time.Duration) *Handler {
	return &Handler{
		webhookSecret: webhookSecret,
		inputs:        inputs,
		ignoreBots:    ignoreBots,
		deduper:       newCommentDeduper(dedupeTTL),
	}
}

// Handle verifies a webhook delivery, selects the mode for it and reports the decision
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	delivery := gh.DeliveryID(r)
	logger := log.With().Str("delivery", delivery).Logger()

	// 1. Verify signature and read payload
	payload, err := ReadVerifiedPayload(r, h.webhookSecret)
	if err != nil {
		logger.Warn().Err(err).Msg("webhook signature verification failed")
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	// 2. Parse event
	eventName := gh.WebHookType(r)
	if eventName == "" {
		logger.Warn().Err(ErrMissingEvent).Msg("rejecting webhook")
		http.Error(w, ErrMissingEvent.Error(), http.StatusBadRequest)
		return
	}

	ev, err := github.ParseEvent(eventName, payload)
	if err != nil {
		logger.Warn().Err(err).Str("event", eventName).Msg("failed to parse webhook payload")
		http.Error(w, "Error parsing event", http.StatusBadRequest)
		return
	}
	ev = ev.WithInputs(h.inputs)

	logger = logger.With().
		Str("event", string(ev.EventName)).
		Str("kind", string(ev.Kind)).
		Str("repo", ev.Repository.FullName).
		Logger()

	// 3. Filter bots and redeliveries
	if h.ignoreBots && ev.IsBotActor() {
		logger.Info().Str("actor", ev.Actor).Msg("ignoring event from bot")
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored", "reason": "bot"})
		return
	}

	if key, ok := dedupeKey(ev); ok && !h.deduper.markIfNew(key) {
		logger.Info().Str("key", key).Msg("ignoring duplicate comment")
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored", "reason": "duplicate"})
		return
	}

	// 4. Select and prepare
	decision := modes.Decide(ev)
	result, err := decision.Mode.Prepare(r.Context(), ev)
	if err != nil {
		logger.Error().Err(err).Str("mode", decision.Mode.Name()).Msg("failed to prepare mode")
		http.Error(w, "Preparation failed", http.StatusInternalServerError)
		return
	}

	logger.Info().
		Str("mode", decision.Mode.Name()).
		Str("rule", decision.Rule).
		Bool("track_progress", result.TrackProgress).
		Msg("mode selected")

	writeJSON(w, http.StatusOK, SelectionResponse{
		Delivery:      delivery,
		Event:         string(ev.EventName),
		Kind:          string(ev.Kind),
		Mode:          result.Mode,
		Rule:          decision.Rule,
		Prompt:        result.Prompt,
		TrackProgress: result.TrackProgress,
	})
}

// ListModes reports the names of all catalog modes
func (h *Handler) ListModes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"modes": modes.GetAllModeNames()})
}

// GetMode validates an externally supplied mode name against the catalog
func (h *Handler) GetMode(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	mode, err := modes.Lookup(name)
	if err != nil {
		if errors.Is(err, modes.ErrModeNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, ModeInfo{Name: mode.Name(), Description: mode.Description()})
}

// dedupeKey identifies a newly written comment or review. Edits are always re-evaluated.
func dedupeKey(ev *github.Context) (string, bool) {
	if !ev.Kind.IsCommentBearing() || ev.TriggerComment == nil || ev.TriggerComment.ID == 0 {
		return "", false
	}
	if ev.EventAction != github.ActionCreated && ev.EventAction != github.ActionSubmitted {
		return "", false
	}
	return fmt.Sprintf("%s:%s:%d", ev.EventName, ev.EventAction, ev.TriggerComment.ID), true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}
