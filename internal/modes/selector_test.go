package modes

import (
	"testing"

	"github.com/cexll/swe-mode/internal/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentEvent(body string, in github.Inputs) *github.Context {
	ev := github.NewContext(github.EventIssueComment, github.ActionCreated)
	ev.TriggerComment = &github.Comment{Body: body}
	return ev.WithInputs(in)
}

func TestSelect_Scenarios(t *testing.T) {
	prOpened := github.NewContext(github.EventPullRequest, github.ActionOpened)
	prOpened.IsPR = true

	tests := []struct {
		name     string
		ev       *github.Context
		wantMode string
		wantRule string
	}{
		{
			name:     "issue comment without trigger",
			ev:       commentEvent("Test comment without trigger", github.Inputs{}),
			wantMode: AgentModeName,
			wantRule: RuleDefault,
		},
		{
			name:     "workflow dispatch",
			ev:       github.NewContext(github.EventWorkflowDispatch, ""),
			wantMode: AgentModeName,
			wantRule: RuleAutomationEvent,
		},
		{
			name:     "schedule",
			ev:       github.NewContext(github.EventSchedule, ""),
			wantMode: AgentModeName,
			wantRule: RuleAutomationEvent,
		},
		{
			name:     "pull request opened",
			ev:       prOpened,
			wantMode: AgentModeName,
			wantRule: RuleAutomationEvent,
		},
		{
			name:     "prompt wins over mention",
			ev:       commentEvent("@claude please help", github.Inputs{Prompt: "/review"}),
			wantMode: AgentModeName,
			wantRule: RuleExplicitPrompt,
		},
		{
			name:     "prompt wins even with trigger phrase configured",
			ev:       commentEvent("@claude please help", github.Inputs{Prompt: "/review", TriggerPhrase: "@claude"}),
			wantMode: AgentModeName,
			wantRule: RuleExplicitPrompt,
		},
		{
			name:     "mention without prompt",
			ev:       commentEvent("@claude please help", github.Inputs{TriggerPhrase: "@claude"}),
			wantMode: TagModeName,
			wantRule: RuleTriggerPhrase,
		},
		{
			name:     "mention but no trigger phrase configured",
			ev:       commentEvent("@claude please help", github.Inputs{}),
			wantMode: AgentModeName,
			wantRule: RuleDefault,
		},
		{
			name:     "whitespace prompt is not a prompt",
			ev:       commentEvent("@claude please help", github.Inputs{Prompt: "   ", TriggerPhrase: "@claude"}),
			wantMode: TagModeName,
			wantRule: RuleTriggerPhrase,
		},
		{
			name:     "trigger phrase is case-sensitive",
			ev:       commentEvent("@Claude please help", github.Inputs{TriggerPhrase: "@claude"}),
			wantMode: AgentModeName,
			wantRule: RuleDefault,
		},
		{
			name:     "nil context",
			ev:       nil,
			wantMode: AgentModeName,
			wantRule: RuleDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.ev)
			require.NotNil(t, d.Mode)
			assert.Equal(t, tt.wantMode, d.Mode.Name())
			assert.Equal(t, tt.wantRule, d.Rule)
			assert.Same(t, d.Mode, Select(tt.ev))
		})
	}
}

func TestSelect_CommentKinds(t *testing.T) {
	in := github.Inputs{TriggerPhrase: "@claude"}

	for _, kind := range []struct {
		name   github.EventType
		action github.EventAction
	}{
		{github.EventIssueComment, github.ActionCreated},
		{github.EventIssueComment, github.ActionEdited},
		{github.EventPullRequestReviewComment, github.ActionCreated},
		{github.EventPullRequestReview, github.ActionSubmitted},
	} {
		ev := github.NewContext(kind.name, kind.action)
		ev.TriggerComment = &github.Comment{Body: "ping @claude"}
		assert.Equal(t, TagModeName, Select(ev.WithInputs(in)).Name(), "%s/%s", kind.name, kind.action)
	}
}

func TestSelect_TextlessKindsIgnoreComment(t *testing.T) {
	// a body on a non-comment event is never scanned
	ev := github.NewContext(github.EventIssues, github.ActionOpened)
	ev.TriggerComment = &github.Comment{Body: "@claude fix this"}
	d := Decide(ev.WithInputs(github.Inputs{TriggerPhrase: "@claude"}))
	assert.Equal(t, AgentModeName, d.Mode.Name())
	assert.Equal(t, RuleAutomationEvent, d.Rule)

	deleted := github.NewContext(github.EventIssueComment, github.ActionDeleted)
	deleted.TriggerComment = &github.Comment{Body: "@claude"}
	assert.Equal(t, AgentModeName, Select(deleted.WithInputs(github.Inputs{TriggerPhrase: "@claude"})).Name())
}

func TestSelect_Idempotent(t *testing.T) {
	ev := commentEvent("@claude please help", github.Inputs{TriggerPhrase: "@claude"})

	first := Decide(ev)
	second := Decide(ev)
	assert.Equal(t, first, second)
	assert.Equal(t, "@claude please help", ev.CommentBody())
}

func TestSelect_AlwaysReturnsCatalogMode(t *testing.T) {
	events := []github.EventType{
		github.EventIssueComment, github.EventIssues, github.EventPullRequest,
		github.EventPullRequestReview, github.EventPullRequestReviewComment,
		github.EventWorkflowDispatch, github.EventRepositoryDispatch, github.EventSchedule,
		github.EventPush, "check_suite",
	}
	for _, name := range events {
		for _, in := range []github.Inputs{{}, {Prompt: "go"}, {TriggerPhrase: "@claude"}} {
			ev := github.NewContext(name, github.ActionCreated)
			ev.TriggerComment = &github.Comment{Body: "@claude"}
			m := Select(ev.WithInputs(in))
			require.NotNil(t, m)
			assert.True(t, IsValidMode(m.Name()))
		}
	}
}

func TestSelector_CustomRegistry(t *testing.T) {
	agent := stubMode{AgentModeName}
	tag := stubMode{TagModeName}
	r, err := NewRegistry(agent, tag)
	require.NoError(t, err)

	s := NewSelector(r)
	assert.Equal(t, tag, s.Select(commentEvent("@bot go", github.Inputs{TriggerPhrase: "@bot"})))
	assert.Equal(t, agent, s.Select(commentEvent("@bot go", github.Inputs{})))
}
