package prompt

import (
	"fmt"
	"strings"

	"github.com/Lonewolfgaming5250/Augi/internal/memory"
	"github.com/Lonewolfgaming5250/Augi/internal/permission"
	"github.com/Lonewolfgaming5250/Augi/internal/personality"
)

// basePrompt anchors the assistant's identity before any personality or
// profile context is layered on.
const basePrompt = "You are Augi, a helpful personal AI assistant with access to file operations, app launching, and internet search capabilities."

// Recaller supplies past-conversation context and the learned profile.
// *memory.Manager satisfies it.
type Recaller interface {
	RelevantHistory(query string, limit int) ([]memory.Summary, error)
	ConversationContext(sessionID string, maxMessages int) string
	Profile() memory.Profile
}

// BuildOptions controls how the prompt is assembled.
type BuildOptions struct {
	Query                string
	MaxTokens            int
	MaxRelevantSessions  int
	MaxMessagesPerRecall int
}

// BuiltPrompt is the result of a build.
type BuiltPrompt struct {
	SystemPrompt string
	ContextText  string
	TokensUsed   int
	SessionsUsed int
	// Sources lists what was included, for --verbose output.
	Sources []string
}

// Builder assembles prompts within a token budget.
type Builder struct {
	recaller    Recaller
	permissions *permission.Manager
	persona     personality.Profile
	counter     Counter
}

// NewBuilder creates a Builder.
func NewBuilder(recaller Recaller, permissions *permission.Manager, persona personality.Profile, counter Counter) *Builder {
	return &Builder{
		recaller:    recaller,
		permissions: permissions,
		persona:     persona,
		counter:     counter,
	}
}

// Build assembles the system prompt and recalled-conversation context for a
// query. The system prompt (identity, personality, profile, permissions) is
// always included in full; recalled conversations are added newest-relevance
// first until the token budget runs out.
func (b *Builder) Build(opts BuildOptions) (*BuiltPrompt, error) {
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 8000
	}
	if opts.MaxRelevantSessions == 0 {
		opts.MaxRelevantSessions = 3
	}
	if opts.MaxMessagesPerRecall == 0 {
		opts.MaxMessagesPerRecall = 5
	}

	systemPrompt := b.systemPrompt()
	used := b.counter.Count(systemPrompt)
	remaining := opts.MaxTokens - used

	var sections []string
	var sources []string
	sessionsUsed := 0

	summaries, err := b.recaller.RelevantHistory(opts.Query, opts.MaxRelevantSessions)
	if err != nil {
		return nil, fmt.Errorf("prompt: recall history: %w", err)
	}
	for _, summary := range summaries {
		block := b.recaller.ConversationContext(summary.SessionID, opts.MaxMessagesPerRecall)
		if block == "" {
			continue
		}
		tokens := b.counter.Count(block)
		if tokens > remaining {
			continue
		}
		sections = append(sections, block)
		remaining -= tokens
		used += tokens
		sessionsUsed++
		sources = append(sources, "conversation: "+summary.SessionID)
	}

	return &BuiltPrompt{
		SystemPrompt: systemPrompt,
		ContextText:  strings.Join(sections, "\n"),
		TokensUsed:   used,
		SessionsUsed: sessionsUsed,
		Sources:      sources,
	}, nil
}

// systemPrompt layers identity, personality, learned profile, and the live
// permission state.
func (b *Builder) systemPrompt() string {
	parts := []string{basePrompt, b.persona.SystemPromptAddition}

	if profileCtx := b.recaller.Profile().ContextForPrompt(); profileCtx != "" {
		parts = append(parts, profileCtx)
	}
	if b.permissions != nil {
		parts = append(parts, b.capabilities())
	}

	return strings.Join(parts, "\n\n")
}

// capabilities reports the live permission levels so the model can explain
// restrictions instead of pretending to act.
func (b *Builder) capabilities() string {
	return fmt.Sprintf(`Current Permissions Status:
- File Reading: %s
- File Writing: %s
- App Launching: %s
- Internet Access: %s

Inform the user of permission restrictions when relevant.`,
		b.permissions.Check(permission.FileRead),
		b.permissions.Check(permission.FileWrite),
		b.permissions.Check(permission.AppLaunch),
		b.permissions.Check(permission.InternetAccess))
}
