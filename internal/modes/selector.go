package modes

import "github.com/cexll/swe-mode/internal/github"

// Rule names reported with a Decision
const (
	RuleExplicitPrompt  = "explicit-prompt"
	RuleAutomationEvent = "automation-event"
	RuleTriggerPhrase   = "trigger-phrase"
	RuleDefault         = "default"
)

type selectionRule struct {
	name  string
	mode  string
	match func(ev *github.Context) bool
}

// selectionRules is evaluated top to bottom; the first match wins.
var selectionRules = []selectionRule{
	{
		name: RuleExplicitPrompt,
		mode: AgentModeName,
		match: func(ev *github.Context) bool {
			return ev.ExplicitPrompt() != ""
		},
	},
	{
		// nothing human-written to scan for a mention
		name: RuleAutomationEvent,
		mode: AgentModeName,
		match: func(ev *github.Context) bool {
			return !ev.Kind.IsCommentBearing()
		},
	},
	{
		name: RuleTriggerPhrase,
		mode: TagModeName,
		match: func(ev *github.Context) bool {
			return ev.ContainsTrigger(ev.TriggerPhrase())
		},
	},
}

// Decision is the selected mode together with the rule that chose it.
type Decision struct {
	Mode Mode
	Rule string
}

// Selector picks a mode for an event from a registry.
type Selector struct {
	registry *Registry
}

// NewSelector returns a selector over r. r must contain the agent and tag modes.
func NewSelector(r *Registry) *Selector {
	return &Selector{registry: r}
}

// Decide applies the selection rules to ev. It never fails and has no side effects.
func (s *Selector) Decide(ev *github.Context) Decision {
	if ev != nil {
		for _, rule := range selectionRules {
			if rule.match(ev) {
				return Decision{Mode: s.registry.mustGet(rule.mode), Rule: rule.name}
			}
		}
	}
	return Decision{Mode: s.registry.mustGet(AgentModeName), Rule: RuleDefault}
}

// Select returns the mode that should handle ev.
func (s *Selector) Select(ev *github.Context) Mode {
	return s.Decide(ev).Mode
}

var defaultSelector = NewSelector(defaultRegistry)

// Decide applies the selection rules against the process-wide catalog.
func Decide(ev *github.Context) Decision { return defaultSelector.Decide(ev) }

// Select returns the catalog mode that should handle ev.
func Select(ev *github.Context) Mode { return defaultSelector.Select(ev) }
