package github

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v66/github"
)

// DefaultTriggerPhrase is the mention that activates tag mode unless configured otherwise.
const DefaultTriggerPhrase = "@claude"

// EventType defines GitHub event names the bot understands
type EventType string

const (
	EventIssueComment             EventType = "issue_comment"
	EventIssues                   EventType = "issues"
	EventPullRequest              EventType = "pull_request"
	EventPullRequestReview        EventType = "pull_request_review"
	EventPullRequestReviewComment EventType = "pull_request_review_comment"
	EventWorkflowDispatch         EventType = "workflow_dispatch"
	EventRepositoryDispatch       EventType = "repository_dispatch"
	EventSchedule                 EventType = "schedule"
	EventPush                     EventType = "push"
)

// EventAction defines GitHub event actions
type EventAction string

const (
	ActionOpened    EventAction = "opened"
	ActionClosed    EventAction = "closed"
	ActionCreated   EventAction = "created"
	ActionEdited    EventAction = "edited"
	ActionDeleted   EventAction = "deleted"
	ActionSubmitted EventAction = "submitted"
	ActionLabeled   EventAction = "labeled"
)

// EventKind is the category of repository event, derived from event name and action.
type EventKind string

const (
	KindCommentCreated     EventKind = "comment-created"
	KindCommentEdited      EventKind = "comment-edited"
	KindReviewComment      EventKind = "review-comment"
	KindReviewSubmitted    EventKind = "review-submitted"
	KindPullRequestOpened  EventKind = "pull-request-opened"
	KindPullRequest        EventKind = "pull-request"
	KindIssues             EventKind = "issues"
	KindWorkflowDispatch   EventKind = "workflow-dispatch"
	KindSchedule           EventKind = "schedule"
	KindRepositoryDispatch EventKind = "repository-dispatch"
	KindPush               EventKind = "push"
	KindUnknown            EventKind = "unknown"
)

// IsCommentBearing reports whether events of this kind carry human-authored comment text.
func (k EventKind) IsCommentBearing() bool {
	switch k {
	case KindCommentCreated, KindCommentEdited, KindReviewComment, KindReviewSubmitted:
		return true
	default:
		return false
	}
}

// ClassifyEvent maps a GitHub event name and action onto an EventKind.
func ClassifyEvent(name EventType, action EventAction) EventKind {
	switch name {
	case EventIssueComment:
		switch action {
		case ActionCreated:
			return KindCommentCreated
		case ActionEdited:
			return KindCommentEdited
		}
		// deleted comments have nothing left to act on
		return KindUnknown
	case EventPullRequestReviewComment:
		if action == ActionDeleted {
			return KindUnknown
		}
		return KindReviewComment
	case EventPullRequestReview:
		if action == ActionSubmitted || action == ActionEdited {
			return KindReviewSubmitted
		}
		return KindUnknown
	case EventPullRequest:
		if action == ActionOpened {
			return KindPullRequestOpened
		}
		return KindPullRequest
	case EventIssues:
		return KindIssues
	case EventWorkflowDispatch:
		return KindWorkflowDispatch
	case EventSchedule:
		return KindSchedule
	case EventRepositoryDispatch:
		return KindRepositoryDispatch
	case EventPush:
		return KindPush
	default:
		return KindUnknown
	}
}

// Inputs are the configured values supplied alongside an event.
type Inputs struct {
	// Prompt is a direct instruction that bypasses trigger phrase detection.
	Prompt string
	// TriggerPhrase is the text tag mode looks for in comments, e.g. "@claude".
	TriggerPhrase string
}

// Context is a read-only view of the event that triggered evaluation
type Context struct {
	EventName   EventType
	EventAction EventAction
	Kind        EventKind
	Repository  Repository
	Actor       string
	ActorType   string

	// Issue/PR identification
	IsPR        bool
	IssueNumber int
	PRNumber    int

	// Branch information
	BaseBranch string
	HeadBranch string

	// Trigger information
	TriggerComment *Comment

	Inputs Inputs
}

// Repository represents a GitHub repository
type Repository struct {
	Owner         string
	Name          string
	FullName      string
	DefaultBranch string
}

// Comment represents the free text that accompanied the event
type Comment struct {
	ID       int64
	Body     string
	User     string
	UserType string
}

// NewContext builds a context for an event that carries no payload.
func NewContext(name EventType, action EventAction) *Context {
	return &Context{
		EventName:   name,
		EventAction: action,
		Kind:        ClassifyEvent(name, action),
	}
}

// ParseEvent parses a GitHub event payload into Context.
// Events GitHub delivers as webhooks are decoded with go-github's typed events; Actions-only
// events such as schedule only contribute repository and sender information.
func ParseEvent(eventName string, payload []byte) (*Context, error) {
	name := EventType(strings.TrimSpace(eventName))
	if name == "" {
		return nil, fmt.Errorf("missing event name")
	}

	ctx := &Context{EventName: name}

	switch {
	case len(bytes.TrimSpace(payload)) == 0:
		// Actions may run an event without a payload file; only the kind is known.
	case isWebhookEvent(name):
		event, err := gh.ParseWebHook(string(name), payload)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s payload: %w", name, err)
		}
		applyTypedEvent(ctx, event)
	default:
		if err := applyRawEvent(ctx, payload); err != nil {
			return nil, err
		}
	}

	ctx.Kind = ClassifyEvent(ctx.EventName, ctx.EventAction)
	return ctx, nil
}

// isWebhookEvent reports whether go-github has a typed payload for name.
func isWebhookEvent(name EventType) bool {
	switch name {
	case EventIssueComment, EventIssues, EventPullRequest, EventPullRequestReview,
		EventPullRequestReviewComment, EventWorkflowDispatch, EventRepositoryDispatch, EventPush:
		return true
	}
	return false
}

func applyTypedEvent(ctx *Context, event interface{}) {
	switch e := event.(type) {
	case *gh.IssueCommentEvent:
		ctx.EventAction = EventAction(e.GetAction())
		ctx.setRepository(e.GetRepo())
		ctx.setSender(e.GetSender())
		ctx.IssueNumber = e.GetIssue().GetNumber()
		if issue := e.GetIssue(); issue != nil && issue.IsPullRequest() {
			ctx.IsPR = true
			ctx.PRNumber = ctx.IssueNumber
		}
		if c := e.GetComment(); c != nil {
			ctx.TriggerComment = &Comment{
				ID:       c.GetID(),
				Body:     c.GetBody(),
				User:     c.GetUser().GetLogin(),
				UserType: c.GetUser().GetType(),
			}
		}
	case *gh.IssuesEvent:
		ctx.EventAction = EventAction(e.GetAction())
		ctx.setRepository(e.GetRepo())
		ctx.setSender(e.GetSender())
		ctx.IssueNumber = e.GetIssue().GetNumber()
	case *gh.PullRequestEvent:
		ctx.EventAction = EventAction(e.GetAction())
		ctx.setRepository(e.GetRepo())
		ctx.setSender(e.GetSender())
		ctx.setPullRequest(e.GetPullRequest())
	case *gh.PullRequestReviewEvent:
		ctx.EventAction = EventAction(e.GetAction())
		ctx.setRepository(e.GetRepo())
		ctx.setSender(e.GetSender())
		ctx.setPullRequest(e.GetPullRequest())
		if r := e.GetReview(); r != nil {
			ctx.TriggerComment = &Comment{
				ID:       r.GetID(),
				Body:     r.GetBody(),
				User:     r.GetUser().GetLogin(),
				UserType: r.GetUser().GetType(),
			}
		}
	case *gh.PullRequestReviewCommentEvent:
		ctx.EventAction = EventAction(e.GetAction())
		ctx.setRepository(e.GetRepo())
		ctx.setSender(e.GetSender())
		ctx.setPullRequest(e.GetPullRequest())
		if c := e.GetComment(); c != nil {
			ctx.TriggerComment = &Comment{
				ID:       c.GetID(),
				Body:     c.GetBody(),
				User:     c.GetUser().GetLogin(),
				UserType: c.GetUser().GetType(),
			}
		}
	case *gh.WorkflowDispatchEvent:
		ctx.setRepository(e.GetRepo())
		ctx.setSender(e.GetSender())
	case *gh.RepositoryDispatchEvent:
		ctx.EventAction = EventAction(e.GetAction())
		ctx.setRepository(e.GetRepo())
		ctx.setSender(e.GetSender())
	case *gh.PushEvent:
		ctx.setSender(e.GetSender())
		if repo := e.GetRepo(); repo != nil {
			ctx.Repository = Repository{
				Owner:         repo.GetOwner().GetLogin(),
				Name:          repo.GetName(),
				FullName:      repo.GetFullName(),
				DefaultBranch: repo.GetDefaultBranch(),
			}
		}
	}
}

// applyRawEvent reads the fields shared by every payload for events go-github has no type for.
func applyRawEvent(ctx *Context, payload []byte) error {
	if len(strings.TrimSpace(string(payload))) == 0 {
		return nil
	}

	var data map[string]interface{}
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("failed to parse %s payload: %w", ctx.EventName, err)
	}

	ctx.EventAction = EventAction(getStringField(data, "action"))
	if _, ok := data["repository"].(map[string]interface{}); ok {
		ctx.Repository = Repository{
			Owner:         getStringField(data, "repository", "owner", "login"),
			Name:          getStringField(data, "repository", "name"),
			FullName:      getStringField(data, "repository", "full_name"),
			DefaultBranch: getStringField(data, "repository", "default_branch"),
		}
	}
	ctx.Actor = getStringField(data, "sender", "login")
	ctx.ActorType = getStringField(data, "sender", "type")
	return nil
}

func (c *Context) setRepository(repo *gh.Repository) {
	if repo == nil {
		return
	}
	c.Repository = Repository{
		Owner:         repo.GetOwner().GetLogin(),
		Name:          repo.GetName(),
		FullName:      repo.GetFullName(),
		DefaultBranch: repo.GetDefaultBranch(),
	}
}

func (c *Context) setSender(sender *gh.User) {
	c.Actor = sender.GetLogin()
	c.ActorType = sender.GetType()
}

func (c *Context) setPullRequest(pr *gh.PullRequest) {
	c.IsPR = true
	if pr == nil {
		return
	}
	c.PRNumber = pr.GetNumber()
	c.IssueNumber = c.PRNumber
	c.BaseBranch = pr.GetBase().GetRef()
	c.HeadBranch = pr.GetHead().GetRef()
}

// WithInputs returns a copy of the context with the configured inputs applied.
func (c *Context) WithInputs(in Inputs) *Context {
	clone := *c
	clone.Inputs = in
	return &clone
}

// CommentBody returns the body of the trigger comment if present.
func (c *Context) CommentBody() string {
	if c == nil || c.TriggerComment == nil {
		return ""
	}
	return c.TriggerComment.Body
}

// ExplicitPrompt returns the configured prompt with surrounding whitespace removed.
func (c *Context) ExplicitPrompt() string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Inputs.Prompt)
}

// TriggerPhrase returns the configured trigger phrase.
func (c *Context) TriggerPhrase() string {
	if c == nil {
		return ""
	}
	return c.Inputs.TriggerPhrase
}

// ContainsTrigger reports whether the comment contains the trigger phrase verbatim.
// An empty phrase never matches.
func (c *Context) ContainsTrigger(triggerPhrase string) bool {
	if triggerPhrase == "" {
		return false
	}
	return strings.Contains(c.CommentBody(), triggerPhrase)
}

// ExtractPrompt extracts the instruction following the trigger phrase
func (c *Context) ExtractPrompt(triggerPhrase string) string {
	if triggerPhrase == "" {
		return ""
	}
	body := c.CommentBody()
	idx := strings.Index(body, triggerPhrase)
	if idx == -1 {
		return ""
	}
	return strings.TrimSpace(body[idx+len(triggerPhrase):])
}

// IsBotActor reports whether the event was sent by, or the comment written by, a bot account.
func (c *Context) IsBotActor() bool {
	if c == nil {
		return false
	}
	if isBot(c.ActorType, c.Actor) {
		return true
	}
	return c.TriggerComment != nil && isBot(c.TriggerComment.UserType, c.TriggerComment.User)
}

// isBot matches GitHub's "Bot" account type and app logins such as "renovate[bot]".
func isBot(userType, login string) bool {
	return strings.EqualFold(userType, "Bot") || strings.HasSuffix(login, "[bot]")
}

// Helper functions for safe map access
func getStringField(data map[string]interface{}, keys ...string) string {
	current := data
	for i, key := range keys {
		if i == len(keys)-1 {
			if val, ok := current[key].(string); ok {
				return val
			}
			return ""
		}
		if next, ok := current[key].(map[string]interface{}); ok {
			current = next
		} else {
			return ""
		}
	}
	return ""
}
