package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cexll/swe-mode/internal/github"
	"github.com/cexll/swe-mode/internal/modes"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// SelectModeParams defines the input of the select_mode tool
type SelectModeParams struct {
	EventName     string `json:"event_name" jsonschema:"GitHub event name, e.g. issue_comment or schedule"`
	Payload       string `json:"payload,omitempty" jsonschema:"Event payload as JSON text"`
	Prompt        string `json:"prompt,omitempty" jsonschema:"Explicit prompt; when set agent mode is always selected"`
	TriggerPhrase string `json:"trigger_phrase,omitempty" jsonschema:"Phrase that activates tag mode when mentioned in a comment (default @claude)"`
}

// SelectModeResult is the structured output of the select_mode tool
type SelectModeResult struct {
	Mode          string `json:"mode"`
	Rule          string `json:"rule"`
	Kind          string `json:"kind"`
	Prompt        string `json:"prompt,omitempty"`
	TrackProgress bool   `json:"track_progress"`
}

// ValidateModeParams defines the input of the validate_mode tool
type ValidateModeParams struct {
	Name string `json:"name" jsonschema:"Mode name to check"`
}

// ValidateModeResult is the structured output of the validate_mode tool
type ValidateModeResult struct {
	Name  string `json:"name"`
	Valid bool   `json:"valid"`
}

// ListModesParams takes no input
type ListModesParams struct{}

// ListModesResult is the structured output of the list_modes tool
type ListModesResult struct {
	Modes []string `json:"modes"`
}

// HandleSelectMode handles the select_mode tool call
func HandleSelectMode(ctx context.Context, req *mcp.CallToolRequest, params SelectModeParams) (*mcp.CallToolResult, SelectModeResult, error) {
	if params.EventName == "" {
		return nil, SelectModeResult{}, fmt.Errorf("event_name parameter is required")
	}

	ev, err := github.ParseEvent(params.EventName, []byte(params.Payload))
	if err != nil {
		log.Warn().Err(err).Str("event", params.EventName).Msg("select_mode: invalid payload")
		return errorResult(err), SelectModeResult{}, nil
	}
	trigger := params.TriggerPhrase
	if trigger == "" {
		trigger = github.DefaultTriggerPhrase
	}
	ev = ev.WithInputs(github.Inputs{Prompt: params.Prompt, TriggerPhrase: trigger})

	decision := modes.Decide(ev)
	prepared, err := decision.Mode.Prepare(ctx, ev)
	if err != nil {
		return nil, SelectModeResult{}, fmt.Errorf("prepare %s mode: %w", decision.Mode.Name(), err)
	}

	out := SelectModeResult{
		Mode:          prepared.Mode,
		Rule:          decision.Rule,
		Kind:          string(ev.Kind),
		Prompt:        prepared.Prompt,
		TrackProgress: prepared.TrackProgress,
	}
	log.Info().Str("event", params.EventName).Str("mode", out.Mode).Str("rule", out.Rule).Msg("select_mode")
	return textResult(out), out, nil
}

// HandleValidateMode handles the validate_mode tool call
func HandleValidateMode(ctx context.Context, req *mcp.CallToolRequest, params ValidateModeParams) (*mcp.CallToolResult, ValidateModeResult, error) {
	out := ValidateModeResult{Name: params.Name, Valid: modes.IsValidMode(params.Name)}
	return textResult(out), out, nil
}

// HandleListModes handles the list_modes tool call
func HandleListModes(ctx context.Context, req *mcp.CallToolRequest, params ListModesParams) (*mcp.CallToolResult, ListModesResult, error) {
	out := ListModesResult{Modes: modes.GetAllModeNames()}
	return textResult(out), out, nil
}

func textResult(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResult(err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Error: %v", err)}},
		IsError: true,
	}
}
