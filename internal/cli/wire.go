package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/Lonewolfgaming5250/Augi/internal/adapter"
	"github.com/Lonewolfgaming5250/Augi/internal/assistant"
	"github.com/Lonewolfgaming5250/Augi/internal/config"
	"github.com/Lonewolfgaming5250/Augi/internal/diagnostic"
	"github.com/Lonewolfgaming5250/Augi/internal/personality"
	"github.com/Lonewolfgaming5250/Augi/internal/prompt"
	"github.com/Lonewolfgaming5250/Augi/internal/websearch"
)

// buildAssistant wires up everything a conversation needs. The returned
// cleanup function closes the search cache and must always be called.
func buildAssistant(cfg config.GlobalConfig, personaName, model string, onStream func(string)) (*assistant.Assistant, func(), error) {
	noop := func() {}

	mem, err := openMemory(cfg)
	if err != nil {
		return nil, noop, fmt.Errorf("open memory: %w", err)
	}
	perms, err := openPermissions(cfg)
	if err != nil {
		return nil, noop, err
	}

	if personaName == "" {
		personaName = cfg.Personality
	}
	persona, err := personality.Get(personaName)
	if err != nil {
		return nil, noop, err
	}

	tokenizer, err := prompt.NewTokenizer()
	if err != nil {
		return nil, noop, fmt.Errorf("init tokenizer: %w", err)
	}
	builder := prompt.NewBuilder(mem, perms, persona, tokenizer)

	search, closeSearch := newSearcher(cfg)

	provider := cfg.DefaultModel
	if model != "" {
		provider = model
	}
	llm, err := adapter.New(provider, apiKey(cfg, provider), cfg.Ollama.Host)
	if err != nil {
		closeSearch()
		return nil, noop, fmt.Errorf("init LLM adapter: %w", err)
	}

	modelName := ""
	if provider == adapter.ProviderOllama {
		modelName = cfg.Ollama.CompletionModel
	}

	a := assistant.New(llm, mem, builder, perms, persona, search, assistant.Options{
		WakeWord:             cfg.WakeWord,
		Model:                modelName,
		PromptTokenBudget:    cfg.Context.MaxTokens,
		MaxRelevantSessions:  cfg.Context.MaxRelevantSessions,
		MaxMessagesPerRecall: cfg.Context.MaxMessagesPerRecall,
		MaxSearchResults:     cfg.WebSearch.MaxResults,
		OnStream:             onStream,
		Diagnose:             func() string { return diagnostic.Run().Summary() },
	})
	return a, closeSearch, nil
}

// newSearcher builds the web searcher with its SQLite cache. A cache failure
// degrades to uncached searches; disabled search returns nil.
func newSearcher(cfg config.GlobalConfig) (assistant.Searcher, func()) {
	noop := func() {}
	if !cfg.WebSearch.Enabled {
		return nil, noop
	}

	var cache *websearch.Cache
	if path, err := config.SearchCachePath(); err == nil {
		ttl := time.Duration(cfg.WebSearch.CacheTTLHours) * time.Hour
		if c, err := websearch.OpenCache(path, ttl); err == nil {
			cache = c
			_, _ = cache.PurgeExpired()
		} else {
			fmt.Fprintf(os.Stderr, "[augi] search cache unavailable: %v\n", err)
		}
	}

	s := websearch.NewSearcher(cfg.WebSearch.BaseURL, cfg.WebSearch.MaxResults, cache)
	if cache == nil {
		return s, noop
	}
	return s, func() { _ = cache.Close() }
}
