package vision

import (
	"os"
	"strings"
	"sync"
)

// Reason identifies why the completion service is unavailable.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonMissingLibrary
	ReasonMissingKey
	ReasonInitFailed
)

// UnavailableError reports that no client can be acquired and why.
type UnavailableError struct {
	Reason Reason
}

func (e *UnavailableError) Error() string {
	return describeReason(e.Reason)
}

// Factory constructs a provider client for the given credential.
type Factory func(apiKey string) (Client, error)

// Gate lazily constructs and caches the completion-service client, keyed by
// the resolved credential. A credential change forces reconstruction; a
// failed construction is never cached, so fixing configuration and calling
// Acquire again recovers.
type Gate struct {
	mu          sync.Mutex
	factory     Factory
	injectedKey string
	envKey      func() string
	client      Client
	keyInUse    string
	lastReason  Reason
}

// NewGate builds a gate around the given client factory. injectedKey takes
// precedence over the OPENAI_API_KEY environment variable.
func NewGate(factory Factory, injectedKey string) *Gate {
	return &Gate{
		factory:     factory,
		injectedKey: strings.TrimSpace(injectedKey),
		envKey: func() string {
			return strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
		},
	}
}

// Acquire returns a ready client or an UnavailableError.
func (g *Gate) Acquire() (Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.factory == nil {
		g.lastReason = ReasonMissingLibrary
		return nil, &UnavailableError{Reason: ReasonMissingLibrary}
	}

	key := g.injectedKey
	if key == "" {
		key = g.envKey()
	}
	if key == "" {
		g.lastReason = ReasonMissingKey
		return nil, &UnavailableError{Reason: ReasonMissingKey}
	}

	if g.client == nil || key != g.keyInUse {
		client, err := g.factory(key)
		if err != nil {
			g.client = nil
			g.keyInUse = ""
			g.lastReason = ReasonInitFailed
			return nil, &UnavailableError{Reason: ReasonInitFailed}
		}
		g.client = client
		g.keyInUse = key
	}

	g.lastReason = ReasonNone
	return g.client, nil
}

// Invalidate drops any cached client so the next Acquire reconstructs it.
func (g *Gate) Invalidate() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.client = nil
	g.keyInUse = ""
}

// SetInjectedKey replaces the explicitly configured credential.
func (g *Gate) SetInjectedKey(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.injectedKey = strings.TrimSpace(key)
}

// DescribeIssue returns a stable, human-readable description of the last
// Acquire outcome.
func (g *Gate) DescribeIssue() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return describeReason(g.lastReason)
}

func describeReason(reason Reason) string {
	switch reason {
	case ReasonMissingLibrary:
		return "OpenAI client library not loaded"
	case ReasonMissingKey:
		return "OpenAI API key not configured"
	case ReasonInitFailed:
		return "OpenAI client failed to initialize"
	default:
		return "OpenAI client unavailable"
	}
}
