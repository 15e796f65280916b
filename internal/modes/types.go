package modes

import (
	"context"

	"github.com/cexll/swe-mode/internal/github"
)

// Mode is a named strategy for handling a triggered event
type Mode interface {
	// Name returns the stable identifier of the mode
	Name() string

	// Description explains when the mode applies
	Description() string

	// Prepare derives how the mode should be invoked for this event
	Prepare(ctx context.Context, ev *github.Context) (*PrepareResult, error)
}

// PrepareResult is handed to the execution layer once a mode has been chosen
type PrepareResult struct {
	Mode          string // name of the mode that prepared the run
	Prompt        string // instruction the run starts from, may be empty
	TrackProgress bool   // whether a progress comment should be kept on the thread
}
