// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sdodlapa/OmicsOracle-sub017/internal/backend"
	"github.com/sdodlapa/OmicsOracle-sub017/internal/cache"
	"github.com/sdodlapa/OmicsOracle-sub017/internal/history"
	"github.com/sdodlapa/OmicsOracle-sub017/internal/pipeline"
	"github.com/sdodlapa/OmicsOracle-sub017/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search datasets and literature with one query",
	Long: `Search classifies the query and dispatches it to the GEO dataset registry,
the literature sources, or both. Accessions like "GSE12345" resolve directly.
Results are deduplicated across sources, ranked, and cached locally.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("type", "auto", "search type: auto, identifier, dataset_text, publication, hybrid")
	searchCmd.Flags().String("organism", "", "filter datasets by organism (e.g. \"Homo sapiens\")")
	searchCmd.Flags().String("record-type", "", "filter datasets by registry entry type (GSE, GDS, GPL, GSM)")
	searchCmd.Flags().Int("min-samples", 0, "drop datasets with fewer samples")
	searchCmd.Flags().Int("max-results", 20, "maximum results per list")
	searchCmd.Flags().Bool("json", false, "output the full result as JSON")
	searchCmd.Flags().Bool("csl", false, "output publications as CSL-YAML for reference managers")
	searchCmd.Flags().String("save", "", "save the query and result to a YAML file")
	searchCmd.Flags().Bool("no-cache", false, "bypass the result cache")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	searchType, _ := flags.GetString("type")
	organism, _ := flags.GetString("organism")
	recordType, _ := flags.GetString("record-type")
	minSamples, _ := flags.GetInt("min-samples")
	maxResults, _ := flags.GetInt("max-results")
	asJSON, _ := flags.GetBool("json")
	asCSL, _ := flags.GetBool("csl")
	savePath, _ := flags.GetString("save")
	noCache, _ := flags.GetBool("no-cache")

	cfg := loadPipelineConfig()
	logger := buildLogger()
	defer logger.Sync()

	c, err := buildCache(cfg.Cache, noCache)
	if err != nil {
		return err
	}

	var hist *history.Store
	if cfg.History.Dir != "" {
		hist, err = history.NewStore(cfg.History)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: history disabled: %v\n", err)
		} else {
			defer hist.Close()
		}
	}

	p := pipeline.New(pipeline.Options{
		Config:       cfg,
		Dataset:      buildDatasetBackend(cfg.Search),
		Publications: buildPublicationBackends(cfg.Search),
		Cache:        c,
		History:      hist,
		Logger:       logger,
		Progress:     os.Stderr,
	})
	defer p.Close()

	q := types.SearchQuery{
		RawText: strings.Join(args, " "),
		Filters: types.SearchFilters{
			Organism:       organism,
			RecordType:     recordType,
			MinSampleCount: minSamples,
		},
		MaxResults:    maxResults,
		RequestedType: types.SearchType(searchType),
	}

	result, err := p.Search(cmd.Context(), q)
	if err != nil {
		return err
	}

	switch {
	case asJSON:
		if err := pipeline.FormatJSON(result, os.Stdout); err != nil {
			return fmt.Errorf("writing JSON output: %w", err)
		}
	case asCSL:
		if err := pipeline.FormatCSL(result, os.Stdout); err != nil {
			return fmt.Errorf("writing CSL output: %w", err)
		}
	default:
		pipeline.FormatTable(result, os.Stdout)
	}

	if savePath != "" {
		if err := pipeline.WriteResultFile(savePath, q, result); err != nil {
			return fmt.Errorf("saving result: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved to %s\n", savePath)
	}
	return nil
}

// loadPipelineConfig assembles the pipeline configuration from viper with
// sensible defaults for every knob.
func loadPipelineConfig() types.PipelineConfig {
	v := viper.GetViper()
	v.SetDefault("search.max_results", 20)
	v.SetDefault("search.user_agent", "omicsoracle/"+version)
	v.SetDefault("search.timeout", 30*time.Second)
	v.SetDefault("search.enable_geo", true)
	v.SetDefault("search.enable_europepmc", true)
	v.SetDefault("search.enable_semantic_scholar", true)
	v.SetDefault("search.backend_timeout", 15*time.Second)
	v.SetDefault("search.optimizer_timeout", 5*time.Second)
	v.SetDefault("search.hybrid_fetch_timeout", 20*time.Second)
	v.SetDefault("cache.backend", "badger")
	v.SetDefault("cache.dir", "cache")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("history.dir", "history")

	return types.PipelineConfig{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("search.timeout"),
				UserAgent: v.GetString("search.user_agent"),
			},
			MaxResults:            v.GetInt("search.max_results"),
			EnableGEO:             v.GetBool("search.enable_geo"),
			EnableEuropePMC:       v.GetBool("search.enable_europepmc"),
			EnableSemanticScholar: v.GetBool("search.enable_semantic_scholar"),
			NCBIAPIKey:            secretDefault("ncbi-api-key", v.GetString("search.ncbi_api_key")),
			SemanticScholarAPIKey: secretDefault("semantic-scholar-api-key", v.GetString("search.semantic_scholar_api_key")),
			BackendTimeout:        v.GetDuration("search.backend_timeout"),
			OptimizerTimeout:      v.GetDuration("search.optimizer_timeout"),
			HybridFetchTimeout:    v.GetDuration("search.hybrid_fetch_timeout"),
		},
		Cache: types.CacheConfig{
			Backend:       types.CacheBackendKind(v.GetString("cache.backend")),
			RedisAddr:     v.GetString("cache.redis_addr"),
			RedisPassword: v.GetString("cache.redis_password"),
			RedisDB:       v.GetInt("cache.redis_db"),
			Dir:           v.GetString("cache.dir"),
		},
		Rank:    types.DefaultRankWeights(),
		History: types.HistoryConfig{Dir: v.GetString("history.dir")},
	}
}

func buildLogger() *zap.Logger {
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	zapCfg := zap.NewProductionConfig()
	zapCfg.OutputPaths = []string{"stderr"}
	if verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := zapCfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func buildCache(cfg types.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNop(), nil
	}
	switch cfg.Backend {
	case types.CacheRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return cache.NewRedis(ctx, cfg)
	case types.CacheBadger:
		return cache.NewBadger(cfg.Dir)
	case types.CacheNone:
		return cache.NewNop(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

func buildDatasetBackend(cfg types.SearchConfig) backend.DatasetBackend {
	if !cfg.EnableGEO {
		return nil
	}
	client := &http.Client{Timeout: cfg.Timeout}
	return backend.NewBreakerDataset(&backend.GEOBackend{
		Client:    client,
		APIKey:    cfg.NCBIAPIKey,
		UserAgent: cfg.UserAgent,
	})
}

func buildPublicationBackends(cfg types.SearchConfig) []backend.PublicationBackend {
	client := &http.Client{Timeout: cfg.Timeout}
	var backends []backend.PublicationBackend
	if cfg.EnableEuropePMC {
		backends = append(backends, backend.NewBreakerPublication(&backend.EuropePMCBackend{
			Client:    client,
			UserAgent: cfg.UserAgent,
		}))
	}
	if cfg.EnableSemanticScholar {
		backends = append(backends, backend.NewBreakerPublication(&backend.SemanticScholarBackend{
			Client:    client,
			APIKey:    cfg.SemanticScholarAPIKey,
			UserAgent: cfg.UserAgent,
		}))
	}
	return backends
}
