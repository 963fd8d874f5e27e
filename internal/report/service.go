package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Service coordinates summary computation with the cache layer. The
// computation itself stays pure; the service only adds parsing, optional
// strict validation, and memoisation.
type Service struct {
	cache  *Cache
	strict bool
}

// NewService wires the cache helper. strict enables range validation of
// every snapshot before computing.
func NewService(cache *Cache, strict bool) *Service {
	return &Service{cache: cache, strict: strict}
}

// Strict reports whether strict input mode is enabled.
func (s *Service) Strict() bool {
	return s != nil && s.strict
}

// BuildFromJSON parses a raw snapshot and builds its summary. Malformed
// JSON is the only boundary failure; it never reaches the calculators.
func (s *Service) BuildFromJSON(ctx context.Context, raw []byte) (Summary, error) {
	var cfg ProjectionConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Summary{}, fmt.Errorf("report: parse config: %w", err)
	}
	return s.Build(ctx, cfg)
}

// Build computes the summary for a parsed snapshot, consulting the cache
// keyed by the canonical form of the snapshot.
func (s *Service) Build(ctx context.Context, cfg ProjectionConfig) (Summary, error) {
	if s == nil {
		return BuildSummary(cfg), nil
	}
	if s.strict {
		if err := ValidateConfig(cfg); err != nil {
			return Summary{}, err
		}
	}

	key, err := s.cacheKey(ctx, cfg)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	err = s.cache.FetchJSON(ctx, key, &summary, func(context.Context) (interface{}, error) {
		return BuildSummary(cfg), nil
	})
	if err != nil {
		return Summary{}, err
	}
	return summary, nil
}

// Invalidate drops every cached summary.
func (s *Service) Invalidate(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.cache.Bump(ctx)
}

// cacheKey hashes the canonical snapshot encoding. Struct marshalling has
// a fixed field order, so equivalent snapshots share a key regardless of
// how the incoming JSON was formatted.
func (s *Service) cacheKey(ctx context.Context, cfg ProjectionConfig) (string, error) {
	canonical, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("report: canonicalise config: %w", err)
	}
	digest := sha256.Sum256(canonical)
	return s.cache.BuildKey(ctx, "report", "summary", hex.EncodeToString(digest[:]))
}
