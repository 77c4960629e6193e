// Package assistant wires memory, prompting, permissions, and the LLM
// adapter into the conversational turn loop.
package assistant

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/Lonewolfgaming5250/Augi/internal/adapter"
	"github.com/Lonewolfgaming5250/Augi/internal/memory"
	"github.com/Lonewolfgaming5250/Augi/internal/permission"
	"github.com/Lonewolfgaming5250/Augi/internal/personality"
	"github.com/Lonewolfgaming5250/Augi/internal/prompt"
)

// Searcher runs a web search and formats the results. *websearch.Searcher
// satisfies it; tests use a fake.
type Searcher interface {
	SearchWithSummary(ctx context.Context, query string, n int) (string, error)
}

// Options configures an Assistant.
type Options struct {
	WakeWord  string // reply with a greeting when the input is exactly this
	Model     string
	MaxTokens int

	PromptTokenBudget    int
	MaxRelevantSessions  int
	MaxMessagesPerRecall int
	MaxSearchResults     int

	// OnStream receives reply text as it arrives. Nil disables streaming.
	OnStream func(text string)

	// Diagnose runs device diagnostics and returns the report text.
	// Nil disables the diagnostic trigger phrases.
	Diagnose func() string
}

// Assistant handles one conversation, persisting every turn.
type Assistant struct {
	llm     adapter.LLMAdapter
	mem     *memory.Manager
	builder *prompt.Builder
	perms   *permission.Manager
	persona personality.Profile
	search  Searcher
	opts    Options

	sessionID string
	history   []memory.Message
}

// New creates an Assistant starting a fresh session.
func New(llm adapter.LLMAdapter, mem *memory.Manager, builder *prompt.Builder,
	perms *permission.Manager, persona personality.Profile, search Searcher, opts Options) *Assistant {
	if opts.MaxSearchResults == 0 {
		opts.MaxSearchResults = 3
	}
	return &Assistant{
		llm:     llm,
		mem:     mem,
		builder: builder,
		perms:   perms,
		persona: persona,
		search:  search,
		opts:    opts,
	}
}

// Resume continues the most recent saved session. Returns the number of
// messages carried over; zero when no prior session exists.
func (a *Assistant) Resume() int {
	id, err := a.mem.LatestSessionID()
	if err != nil {
		return 0
	}
	msgs, err := a.mem.Sessions().Load(id)
	if err != nil {
		return 0
	}
	a.sessionID = id
	a.history = msgs
	return len(msgs)
}

// SessionID returns the current session identifier, empty before the first
// recorded turn of a fresh session.
func (a *Assistant) SessionID() string { return a.sessionID }

// Greeting returns the personality's greeting, personalized when a preferred
// name is known.
func (a *Assistant) Greeting() string {
	if name := a.mem.Profile().PreferredName; name != "" {
		return fmt.Sprintf("%s Nice to see you, %s!", a.persona.Greeting, name)
	}
	return a.persona.Greeting
}

// Farewell returns the personality's farewell.
func (a *Assistant) Farewell() string { return a.persona.Farewell }

// Trigger phrases handled before the model sees the input.
var (
	locationPhrases = []string{
		"my location is ", "i'm in ", "i am in ", "i live in ", "i'm at ", "i am at ",
	}
	diagnosticPhrases = []string{
		"run diagnostic", "device diagnostic", "system diagnostic",
		"check my device", "check this computer", "run a health check",
		"run system check", "run hardware check", "run device check",
	}
	whoPhrases = []string{
		"who are you", "what are you", "who is augi", "what is augi",
		"tell me about yourself", "your name", "introduce yourself",
	}
)

// ProcessInput handles one user turn: local trigger phrases first, then a
// model completion with recalled context, then a follow-up web search when
// the reply asks for one. The turn is persisted before returning.
func (a *Assistant) ProcessInput(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}
	normalized := strings.ToLower(input)

	for _, phrase := range locationPhrases {
		if strings.HasPrefix(normalized, phrase) {
			location := strings.Trim(strings.TrimSpace(input[len(phrase):]), ".!")
			return a.rememberLocation(location), nil
		}
	}

	if a.opts.Diagnose != nil {
		for _, phrase := range diagnosticPhrases {
			if strings.Contains(normalized, phrase) {
				return a.opts.Diagnose(), nil
			}
		}
	}

	if a.opts.WakeWord != "" && normalized == strings.ToLower(a.opts.WakeWord) {
		return a.Greeting(), nil
	}

	for _, phrase := range whoPhrases {
		if strings.Contains(normalized, phrase) {
			return a.introduce(), nil
		}
	}

	return a.complete(ctx, input)
}

func (a *Assistant) rememberLocation(location string) string {
	p := a.mem.Profile()
	p.Location = location
	if err := a.mem.SaveProfile(p); err != nil {
		fmt.Fprintf(os.Stderr, "[augi] saving profile: %v\n", err)
	}
	return fmt.Sprintf("Got it! I'll remember your location as %s.", location)
}

func (a *Assistant) introduce() string {
	base := fmt.Sprintf(
		"I'm Augi, your personal AI assistant! %s. I can help you with files, launch apps, search the web, and have a %s conversation. Just ask me anything!",
		a.persona.Description, strings.ToLower(a.persona.ResponseStyle))
	if name := a.mem.Profile().PreferredName; name != "" {
		return fmt.Sprintf(
			"I'm Augi, your personal AI assistant! %s. It's great to talk with you, %s. I can help you with files, launch apps, search the web, and have a %s conversation. Just ask me anything!",
			a.persona.Description, name, strings.ToLower(a.persona.ResponseStyle))
	}
	return base
}

// complete sends the conversation to the model, persists the turn, and runs
// a follow-up search when the reply asks for one.
func (a *Assistant) complete(ctx context.Context, input string) (string, error) {
	a.history = append(a.history, memory.Message{Role: memory.RoleUser, Content: input})

	built, err := a.builder.Build(prompt.BuildOptions{
		Query:                input,
		MaxTokens:            a.opts.PromptTokenBudget,
		MaxRelevantSessions:  a.opts.MaxRelevantSessions,
		MaxMessagesPerRecall: a.opts.MaxMessagesPerRecall,
	})
	if err != nil {
		return "", fmt.Errorf("assistant: build prompt: %w", err)
	}

	req := adapter.CompletionRequest{
		SystemPrompt: built.SystemPrompt,
		Context:      built.ContextText,
		Turns:        a.turns(),
		Model:        a.opts.Model,
		MaxTokens:    a.opts.MaxTokens,
		Stream:       a.opts.OnStream != nil,
	}
	ch, err := a.llm.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("assistant: complete: %w", err)
	}

	var reply strings.Builder
	for chunk := range ch {
		if chunk.Error != nil {
			return "", fmt.Errorf("assistant: complete: %w", chunk.Error)
		}
		reply.WriteString(chunk.Text)
		if a.opts.OnStream != nil {
			a.opts.OnStream(chunk.Text)
		}
	}
	text := strings.TrimSpace(reply.String())

	a.history = append(a.history, memory.Message{Role: memory.RoleAssistant, Content: text})
	a.record()

	if a.search != nil && wantsSearch(text) {
		if extra := a.followUpSearch(ctx, text); extra != "" {
			text += "\n\n" + extra
			if a.opts.OnStream != nil {
				a.opts.OnStream("\n\n" + extra)
			}
		}
	}

	return text, nil
}

// record persists the session; failures warn rather than break the chat.
func (a *Assistant) record() {
	id, err := a.mem.RecordTurn(a.sessionID, a.history)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[augi] saving conversation: %v\n", err)
		return
	}
	a.sessionID = id
}

func (a *Assistant) turns() []adapter.Turn {
	turns := make([]adapter.Turn, len(a.history))
	for i, msg := range a.history {
		turns[i] = adapter.Turn{Role: string(msg.Role), Content: msg.Content}
	}
	return turns
}

// searchIntents are phrases in a model reply that signal it wants a live
// web search performed on its behalf.
var searchIntents = []string{
	"search the internet",
	"look up",
	"find online",
	"let me search",
	"let me look up",
	"let me check online",
}

func wantsSearch(reply string) bool {
	lower := strings.ToLower(reply)
	for _, intent := range searchIntents {
		if strings.Contains(lower, intent) {
			return true
		}
	}
	return false
}

// followUpSearch extracts a query from the reply and runs it, gated by the
// internet_access permission. Failures degrade to no extra output.
func (a *Assistant) followUpSearch(ctx context.Context, reply string) string {
	if a.perms != nil && a.perms.Check(permission.InternetAccess) != permission.Allow {
		return "(Internet access is not permitted, so I couldn't run that search. Use `augi permissions` to allow it.)"
	}
	query := extractSearchQuery(reply)
	if query == "" {
		return ""
	}
	summary, err := a.search.SearchWithSummary(ctx, query, a.opts.MaxSearchResults)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[augi] web search failed: %v\n", err)
		return ""
	}
	return summary
}

var (
	quotedRe       = regexp.MustCompile(`"([^"]+)"|'([^']+)'`)
	searchPhraseRe = []*regexp.Regexp{
		regexp.MustCompile(`(?i)search(?:ing)?(?: the internet)?(?: for)? ([^.!?\n]+)`),
		regexp.MustCompile(`(?i)look(?:ing)? up ([^.!?\n]+)`),
		regexp.MustCompile(`(?i)find(?:ing)? ([^.!?\n]+)`),
	}
)

// extractSearchQuery pulls a query out of a model reply: quoted text first,
// then text following a search phrase, then the reply itself when it is a
// question.
func extractSearchQuery(reply string) string {
	if m := quotedRe.FindStringSubmatch(reply); m != nil {
		for _, group := range m[1:] {
			if group != "" {
				return strings.TrimSpace(group)
			}
		}
	}
	for _, re := range searchPhraseRe {
		if m := re.FindStringSubmatch(reply); m != nil {
			query := m[1]
			query = strings.ReplaceAll(query, "internet", "")
			query = strings.ReplaceAll(query, "online", "")
			if query = strings.TrimSpace(query); query != "" {
				return query
			}
		}
	}
	if trimmed := strings.TrimSpace(reply); strings.HasSuffix(trimmed, "?") {
		return trimmed
	}
	return ""
}
