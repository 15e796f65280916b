package modes

import (
	"context"

	"github.com/cexll/swe-mode/internal/github"
)

// Names of the modes in the catalog
const (
	AgentModeName = "agent"
	TagModeName   = "tag"
)

// AgentMode acts on an event without requiring a mention.
type AgentMode struct{}

// Name returns the mode name
func (m *AgentMode) Name() string { return AgentModeName }

// Description returns a short summary of the mode
func (m *AgentMode) Description() string {
	return "Autonomous mode for automation events and direct prompts"
}

// Prepare uses the configured prompt as the instruction.
func (m *AgentMode) Prepare(ctx context.Context, ev *github.Context) (*PrepareResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &PrepareResult{
		Mode:   AgentModeName,
		Prompt: ev.ExplicitPrompt(),
	}, nil
}

// TagMode responds to a trigger phrase mentioned in a comment.
type TagMode struct{}

// Name returns the mode name
func (m *TagMode) Name() string { return TagModeName }

// Description returns a short summary of the mode
func (m *TagMode) Description() string {
	return "Mention-gated mode for comments that contain the trigger phrase"
}

// Prepare takes the instruction from the text after the trigger phrase and
// asks for a progress comment on the thread. Hidden comment content never reaches the prompt.
func (m *TagMode) Prepare(ctx context.Context, ev *github.Context) (*PrepareResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prompt := github.SanitizeContent(ev.ExtractPrompt(ev.TriggerPhrase()))
	if prompt == "" {
		prompt = github.SanitizeContent(ev.CommentBody())
	}
	return &PrepareResult{
		Mode:          TagModeName,
		Prompt:        prompt,
		TrackProgress: true,
	}, nil
}

// defaultRegistry holds the closed catalog for the lifetime of the process.
var defaultRegistry = mustNewRegistry(&AgentMode{}, &TagMode{})

func mustNewRegistry(ms ...Mode) *Registry {
	r, err := NewRegistry(ms...)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultRegistry returns the process-wide catalog
func DefaultRegistry() *Registry { return defaultRegistry }

// Lookup returns the catalog mode with exactly this name.
// It is meant for names arriving from outside, such as configuration.
func Lookup(name string) (Mode, error) {
	return defaultRegistry.Get(name)
}

// GetAllModeNames returns the names of all catalog modes
func GetAllModeNames() []string {
	return defaultRegistry.Names()
}

// IsValidMode reports whether name is a known mode. Matching is exact and case-sensitive.
func IsValidMode(name string) bool {
	return defaultRegistry.IsValid(name)
}

// Agent returns the agent mode
func Agent() Mode { return defaultRegistry.mustGet(AgentModeName) }

// Tag returns the tag mode
func Tag() Mode { return defaultRegistry.mustGet(TagModeName) }
