// Package credential makes sure a model API key is available before any remote call,
// asking the user for one when none is configured.
package credential

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrMissing is returned when no credential is configured and none was supplied.
	ErrMissing = errors.New("missing credential")

	// ErrDeclined is returned by a Prompter when the user does not supply a secret.
	ErrDeclined = errors.New("credential entry declined")
)

// Prompter asks the user for a secret.
type Prompter interface {
	PromptSecret(ctx context.Context, label string) (string, error)
}

// Store persists a credential for later runs.
type Store interface {
	SaveCredential(key string) error
}

// Gate caches the credential for the life of the process. The zero value is not usable;
// construct with NewGate.
type Gate struct {
	mu       sync.Mutex
	key      string
	label    string
	prompter Prompter
	store    Store
	log      *zap.Logger
}

// NewGate returns a gate seeded with key, which may be empty. prompter and store may be nil,
// in which case a missing key cannot be acquired or is not persisted.
func NewGate(key, label string, prompter Prompter, store Store, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{
		key:      strings.TrimSpace(key),
		label:    label,
		prompter: prompter,
		store:    store,
		log:      logger,
	}
}

// Credential returns the cached key, prompting for and persisting one if necessary.
// Concurrent callers wait for a single prompt.
func (g *Gate) Credential(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.key != "" {
		return g.key, nil
	}
	if g.prompter == nil {
		return "", ErrMissing
	}

	key, err := g.prompter.PromptSecret(ctx, g.label)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMissing, err)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("%w: %v", ErrMissing, ErrDeclined)
	}

	g.key = key
	if g.store != nil {
		if err := g.store.SaveCredential(key); err != nil {
			g.log.Warn("credential not persisted, using it for this run only", zap.Error(err))
		} else {
			g.log.Debug("credential persisted")
		}
	}
	return key, nil
}

// Reset replaces the cached key, for example after the configuration was reloaded.
func (g *Gate) Reset(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.key = strings.TrimSpace(key)
}
