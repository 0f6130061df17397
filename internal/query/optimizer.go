// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"context"

	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

// Optimizer expands and annotates a query before dispatch. The entity
// extraction and synonym expansion service lives outside this module; the
// pipeline only depends on this contract and treats failures as non-fatal.
type Optimizer interface {
	Optimize(ctx context.Context, raw string) (types.OptimizedQuery, error)
}

// Fallback returns the pass-through expansion used when the optimizer
// errors or times out: the raw text becomes the canonical variation.
func Fallback(raw string) types.OptimizedQuery {
	return types.OptimizedQuery{
		ExpandedText: raw,
		Entities:     map[types.EntityKind][]string{},
		Variations:   []string{raw},
	}
}

// NoopOptimizer is the default Optimizer: it returns the fallback
// expansion without any remote call.
type NoopOptimizer struct{}

// Optimize implements Optimizer.
func (NoopOptimizer) Optimize(_ context.Context, raw string) (types.OptimizedQuery, error) {
	return Fallback(raw), nil
}
