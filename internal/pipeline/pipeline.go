// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates a federated search: classify the query,
// consult the cache, optionally expand the query, fan out to the dataset
// and publication backends, then merge, deduplicate, rank, and cache the
// combined result. Backend failures degrade the result instead of failing
// it; only invalid input aborts a search.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sdodlapa/OmicsOracle-sub017/internal/backend"
	"github.com/sdodlapa/OmicsOracle-sub017/internal/cache"
	"github.com/sdodlapa/OmicsOracle-sub017/internal/dedup"
	"github.com/sdodlapa/OmicsOracle-sub017/internal/history"
	"github.com/sdodlapa/OmicsOracle-sub017/internal/hybrid"
	"github.com/sdodlapa/OmicsOracle-sub017/internal/query"
	"github.com/sdodlapa/OmicsOracle-sub017/internal/rank"
	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

// Input validation sentinels. These are the only errors Search returns;
// everything downstream degrades into the result's Errors list.
var (
	ErrEmptyQuery    = errors.New("query text is empty")
	ErrInvalidFilter = errors.New("invalid search filter")
)

const (
	defaultMaxResults       = 20
	defaultBackendTimeout   = 15 * time.Second
	defaultOptimizerTimeout = 5 * time.Second
	defaultHybridTimeout    = 20 * time.Second
)

// Options wires the pipeline's collaborators. Nil fields get inert
// defaults, so tests can construct a pipeline from only the pieces they
// exercise.
type Options struct {
	Config       types.PipelineConfig
	Optimizer    query.Optimizer
	Dataset      backend.DatasetBackend
	Publications []backend.PublicationBackend
	Cache        cache.Cache
	History      *history.Store
	Logger       *zap.Logger
	Progress     io.Writer
}

// Pipeline executes searches. Safe for concurrent use.
type Pipeline struct {
	cfg      types.PipelineConfig
	opt      query.Optimizer
	dataset  backend.DatasetBackend
	pubs     []backend.PublicationBackend
	cache    cache.Cache
	hist     *history.Store
	log      *zap.Logger
	progress io.Writer
	ranker   *rank.Ranker

	cacheWrites sync.WaitGroup
}

// New builds a Pipeline from opts.
func New(opts Options) *Pipeline {
	p := &Pipeline{
		cfg:      opts.Config,
		opt:      opts.Optimizer,
		dataset:  opts.Dataset,
		pubs:     opts.Publications,
		cache:    opts.Cache,
		hist:     opts.History,
		log:      opts.Logger,
		progress: opts.Progress,
		ranker:   rank.New(opts.Config.Rank),
	}
	if p.opt == nil {
		p.opt = query.NoopOptimizer{}
	}
	if p.cache == nil {
		p.cache = cache.NewNop()
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	if p.progress == nil {
		p.progress = io.Discard
	}
	return p
}

// Search runs one federated search end to end. Backend and optimizer
// failures are folded into the result's Errors; the returned error is
// non-nil only for invalid input.
func (p *Pipeline) Search(ctx context.Context, q types.SearchQuery) (*types.SearchResult, error) {
	start := time.Now()

	raw := strings.TrimSpace(q.RawText)
	if raw == "" {
		return nil, ErrEmptyQuery
	}
	if q.Filters.MinSampleCount < 0 {
		return nil, fmt.Errorf("%w: min sample count must not be negative", ErrInvalidFilter)
	}
	q.RawText = raw
	if q.MaxResults <= 0 {
		q.MaxResults = p.cfg.Search.MaxResults
	}
	if q.MaxResults <= 0 {
		q.MaxResults = defaultMaxResults
	}

	log := p.log.With(zap.String("request_id", uuid.NewString()))

	analysis := query.Resolve(q)
	log.Info("query analyzed",
		zap.String("query", raw),
		zap.String("type", string(analysis.Type)),
		zap.Float64("confidence", analysis.Confidence))

	key := cache.Key(raw, analysis.Type, q.Filters)
	if cached, ok := p.cacheLookup(ctx, key, log); ok {
		cached.CacheHit = true
		cached.SearchTimeMS = time.Since(start).Milliseconds()
		p.record(ctx, raw, cached, log)
		return cached, nil
	}

	result := &types.SearchResult{SearchType: analysis.Type}

	searchText := raw
	if analysis.Type != types.TypeIdentifier {
		optimized := p.optimize(ctx, raw, result, log)
		result.OptimizedQuery = &optimized
		if optimized.ExpandedText != "" {
			searchText = optimized.ExpandedText
		}
	}

	p.dispatch(ctx, analysis.Type, searchText, q, result, log)

	result.Datasets, _ = dedup.Datasets(result.Datasets)

	// Extract referenced accessions from the raw merged list, before dedup:
	// a dropped duplicate may be the only record mentioning a dataset, and
	// dedup folds each record's annotations into its group's survivor.
	var refIDs []string
	if analysis.Type == types.TypePublication || analysis.Type == types.TypeHybrid {
		refIDs = hybrid.ExtractDatasetIDs(result.Publications)
	}

	pubs, pubsRemoved := dedup.Publications(result.Publications)
	if pubsRemoved > 0 {
		log.Info("publications deduplicated", zap.Int("removed", pubsRemoved))
	}

	if analysis.Type == types.TypeHybrid && len(refIDs) > 0 {
		fetchCtx, cancel := context.WithTimeout(ctx, p.hybridTimeout())
		var fetchErrs []string
		result.Datasets, fetchErrs = hybrid.FetchAndMerge(fetchCtx, p.dataset, result.Datasets, refIDs)
		cancel()
		result.Errors = append(result.Errors, fetchErrs...)
		result.Datasets, _ = dedup.Datasets(result.Datasets)
	}

	ranked := p.ranker.Rank(searchText, pubs)
	if len(ranked) > q.MaxResults {
		ranked = ranked[:q.MaxResults]
	}
	result.Publications = make([]types.Publication, len(ranked))
	for i, r := range ranked {
		result.Publications[i] = r.Publication
	}
	if len(result.Datasets) > q.MaxResults {
		result.Datasets = result.Datasets[:q.MaxResults]
	}

	result.TotalResults = len(result.Datasets) + len(result.Publications)
	result.SearchTimeMS = time.Since(start).Milliseconds()

	// Cache only results that carry records; an all-backends-down answer
	// must not mask recovery for a full TTL.
	if result.TotalResults > 0 {
		p.cacheStore(key, analysis.Type, result, log)
	}
	p.record(ctx, raw, result, log)

	log.Info("search complete",
		zap.Int("datasets", len(result.Datasets)),
		zap.Int("publications", len(result.Publications)),
		zap.Int64("duration_ms", result.SearchTimeMS),
		zap.Int("errors", len(result.Errors)))
	return result, nil
}

// dispatch fans the query out to the backends selected by the search type
// and appends raw records and failures to result.
func (p *Pipeline) dispatch(ctx context.Context, searchType types.SearchType, text string, q types.SearchQuery, result *types.SearchResult, log *zap.Logger) {
	switch searchType {
	case types.TypeIdentifier:
		p.fetchIdentifier(ctx, q.RawText, result, log)
	case types.TypeDatasetText:
		p.searchDatasets(ctx, text, q, result, log)
	case types.TypePublication:
		p.searchPublications(ctx, text, q, result, log)
	case types.TypeHybrid:
		// Dataset and publication halves run concurrently; the dataset
		// half is one more goroutine alongside the publication fan-out.
		var wg sync.WaitGroup
		var mu sync.Mutex
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := &types.SearchResult{}
			p.searchDatasets(ctx, text, q, sub, log)
			mu.Lock()
			result.Datasets = append(result.Datasets, sub.Datasets...)
			result.Errors = append(result.Errors, sub.Errors...)
			mu.Unlock()
		}()
		sub := &types.SearchResult{}
		p.searchPublications(ctx, text, q, sub, log)
		wg.Wait()
		result.Publications = append(result.Publications, sub.Publications...)
		result.Errors = append(result.Errors, sub.Errors...)
	}
}

func (p *Pipeline) fetchIdentifier(ctx context.Context, accession string, result *types.SearchResult, log *zap.Logger) {
	if p.dataset == nil {
		result.Errors = append(result.Errors, "no dataset backend configured")
		return
	}
	accession = strings.ToUpper(strings.TrimSpace(accession))

	fetchCtx, cancel := context.WithTimeout(ctx, p.backendTimeout())
	defer cancel()

	record, err := p.dataset.Fetch(fetchCtx, accession)
	if err != nil {
		p.reportFailure(result, log, p.dataset.Name(), err)
		return
	}
	result.Datasets = append(result.Datasets, record)
}

func (p *Pipeline) searchDatasets(ctx context.Context, text string, q types.SearchQuery, result *types.SearchResult, log *zap.Logger) {
	if p.dataset == nil {
		return
	}
	searchCtx, cancel := context.WithTimeout(ctx, p.backendTimeout())
	defer cancel()

	records, err := p.dataset.Search(searchCtx, text, q.Filters, q.MaxResults)
	if err != nil {
		p.reportFailure(result, log, p.dataset.Name(), err)
		return
	}
	result.Datasets = append(result.Datasets, records...)
}

// searchPublications fans out to every publication backend concurrently.
// Each goroutine writes into its own slot so the merged list always follows
// configured backend order, regardless of which backend answers first.
func (p *Pipeline) searchPublications(ctx context.Context, text string, q types.SearchQuery, result *types.SearchResult, log *zap.Logger) {
	if len(p.pubs) == 0 {
		return
	}

	found := make([][]types.Publication, len(p.pubs))
	errs := make([]error, len(p.pubs))
	var wg sync.WaitGroup

	for i, b := range p.pubs {
		wg.Add(1)
		go func(i int, b backend.PublicationBackend) {
			defer wg.Done()
			searchCtx, cancel := context.WithTimeout(ctx, p.backendTimeout())
			defer cancel()
			found[i], errs[i] = b.Search(searchCtx, text, q.MaxResults)
		}(i, b)
	}
	wg.Wait()

	for i, b := range p.pubs {
		if errs[i] != nil {
			p.reportFailure(result, log, b.Name(), errs[i])
			continue
		}
		result.Publications = append(result.Publications, found[i]...)
	}
}

// optimize expands the query, falling back to the raw text when the
// optimizer fails or times out.
func (p *Pipeline) optimize(ctx context.Context, raw string, result *types.SearchResult, log *zap.Logger) types.OptimizedQuery {
	optCtx, cancel := context.WithTimeout(ctx, p.optimizerTimeout())
	defer cancel()

	optimized, err := p.opt.Optimize(optCtx, raw)
	if err != nil {
		msg := fmt.Sprintf("optimizer: %v", err)
		result.Errors = append(result.Errors, msg)
		fmt.Fprintf(p.progress, "warning: %s, using raw query\n", msg)
		log.Warn("optimizer failed, using raw query", zap.Error(err))
		return query.Fallback(raw)
	}
	return optimized
}

func (p *Pipeline) cacheLookup(ctx context.Context, key string, log *zap.Logger) (*types.SearchResult, bool) {
	payload, found, err := p.cache.Get(ctx, key)
	if err != nil {
		log.Warn("cache get failed", zap.Error(err))
		return nil, false
	}
	if !found {
		return nil, false
	}
	var result types.SearchResult
	if err := json.Unmarshal(payload, &result); err != nil {
		log.Warn("cache payload corrupt, ignoring", zap.Error(err))
		return nil, false
	}
	log.Info("cache hit", zap.String("key", key))
	return &result, true
}

// cacheStore writes the result asynchronously so the caller does not wait
// on cache latency. Flush waits for outstanding writes.
func (p *Pipeline) cacheStore(key string, searchType types.SearchType, result *types.SearchResult, log *zap.Logger) {
	payload, err := json.Marshal(result)
	if err != nil {
		log.Warn("cache marshal failed", zap.Error(err))
		return
	}
	ttl := cache.TTLFor(searchType, p.cfg.Cache)

	p.cacheWrites.Add(1)
	go func() {
		defer p.cacheWrites.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.cache.Set(ctx, key, payload, ttl); err != nil {
			log.Warn("cache set failed", zap.Error(err))
		}
	}()
}

// record logs the search to history, best effort.
func (p *Pipeline) record(ctx context.Context, rawQuery string, result *types.SearchResult, log *zap.Logger) {
	if p.hist == nil {
		return
	}
	if _, err := p.hist.Record(ctx, rawQuery, result); err != nil {
		log.Warn("history record failed", zap.Error(err))
	}
}

func (p *Pipeline) reportFailure(result *types.SearchResult, log *zap.Logger, name string, err error) {
	msg := fmt.Sprintf("%s: %v", name, err)
	result.Errors = append(result.Errors, msg)
	fmt.Fprintf(p.progress, "warning: backend %s failed: %v\n", name, err)
	log.Warn("backend failed", zap.String("backend", name), zap.Error(err))
}

// Flush waits for in-flight cache writes. Tests call it before asserting
// cache contents.
func (p *Pipeline) Flush() {
	p.cacheWrites.Wait()
}

// Close flushes pending writes and releases the cache. The history store is
// owned by the caller.
func (p *Pipeline) Close() error {
	p.Flush()
	m := p.cache.Metrics()
	p.log.Info("cache metrics",
		zap.Int64("hits", m.Hits),
		zap.Int64("misses", m.Misses),
		zap.Int64("sets", m.Sets),
		zap.Float64("hit_rate", m.HitRate()))
	return p.cache.Close()
}

func (p *Pipeline) backendTimeout() time.Duration {
	if p.cfg.Search.BackendTimeout > 0 {
		return p.cfg.Search.BackendTimeout
	}
	return defaultBackendTimeout
}

func (p *Pipeline) optimizerTimeout() time.Duration {
	if p.cfg.Search.OptimizerTimeout > 0 {
		return p.cfg.Search.OptimizerTimeout
	}
	return defaultOptimizerTimeout
}

func (p *Pipeline) hybridTimeout() time.Duration {
	if p.cfg.Search.HybridFetchTimeout > 0 {
		return p.cfg.Search.HybridFetchTimeout
	}
	return defaultHybridTimeout
}
