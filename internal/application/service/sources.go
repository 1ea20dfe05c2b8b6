package service

import (
	"fmt"
	"strings"

	derr "github.com/Golden-Bit/myrent-SDK/internal/domain/errors"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/ports"
)

const (
	SourceLocal  = "local"
	SourceMyRent = "myrent"
)

// Sources resolves a data source name. A name registered with a nil provider
// is known but not configured.
type Sources struct {
	defaultName string
	providers   map[string]ports.QuoteProvider
}

func NewSources(defaultName string) *Sources {
	return &Sources{
		defaultName: normalizeSource(defaultName),
		providers:   make(map[string]ports.QuoteProvider),
	}
}

func (s *Sources) Register(name string, provider ports.QuoteProvider) *Sources {
	s.providers[normalizeSource(name)] = provider
	return s
}

func (s *Sources) Default() string {
	return s.defaultName
}

// Resolve returns the normalized name and its provider. An empty name picks the default.
func (s *Sources) Resolve(name string) (string, ports.QuoteProvider, error) {
	n := normalizeSource(name)
	if n == "" {
		n = s.defaultName
	}

	provider, ok := s.providers[n]
	if !ok {
		return n, nil, fmt.Errorf("%w: %q", derr.ErrUnknownSource, name)
	}
	if provider == nil {
		return n, nil, fmt.Errorf("%w: source %q", derr.ErrUpstreamNotConfigured, n)
	}
	return n, provider, nil
}

func normalizeSource(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
