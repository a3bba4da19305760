package commands

import (
	"context"
	"fmt"

	"github.com/ishankgp/MF-return-tracker/internal/analysis"
	memcache "github.com/ishankgp/MF-return-tracker/internal/cache"
	"github.com/ishankgp/MF-return-tracker/internal/contracts"
	"github.com/ishankgp/MF-return-tracker/internal/external/fundapi"
	"github.com/ishankgp/MF-return-tracker/internal/stats"
	"github.com/ishankgp/MF-return-tracker/pkg/config"
	"github.com/ishankgp/MF-return-tracker/pkg/httputil"
	"github.com/ishankgp/MF-return-tracker/pkg/logger"
	"github.com/ishankgp/MF-return-tracker/pkg/redis"
)

// cacheName prefixes every Redis key written by the tool
const cacheName = "fundrank"

// deps bundles what every command needs
type deps struct {
	cfg   *config.Config
	log   *logger.Logger
	funds *fundapi.Client
	redis *redis.Client
}

// loadConfig applies the global flags on top of the environment
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadFile(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if env != "" {
		cfg.Env = env
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// newDeps loads config and wires the provider client. Payloads are cached in
// Redis when enabled, in process memory otherwise; useCache=false disables both.
func newDeps(ctx context.Context, useCache bool) (*deps, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg)

	if !useCache {
		cfg.Redis.Enabled = false
	}

	rdb := redis.Connect(ctx, cfg, log)

	var cache fundapi.Cache
	switch {
	case rdb.Enabled():
		cache = redis.NewCache(rdb, cacheName)
	case useCache:
		cache = memcache.NewMemoryCache(log)
	}

	httpClient := httputil.New(cfg, log)
	funds := fundapi.NewClient(httpClient, cfg.FundAPI.URL, cache, cfg.Redis.TTL, log)

	return &deps{
		cfg:   cfg,
		log:   log,
		funds: funds,
		redis: rdb,
	}, nil
}

// Close releases the Redis connection
func (d *deps) Close() {
	if err := d.redis.Close(); err != nil {
		d.log.WithError(err).Warn("Failed to close redis")
	}
}

// harnessOptions describes per-command overrides of the configured analysis
type harnessOptions struct {
	targets        []string
	topK           int
	legacyDrawdown bool
}

// newHarness builds the comparison harness from config plus overrides
func (d *deps) newHarness(opts harnessOptions) (*analysis.Harness, error) {
	policy := stats.DrawdownWindowDispatch
	if opts.legacyDrawdown {
		policy = stats.DrawdownFullWindow
	}

	targets := d.cfg.Analysis.TargetFunds
	if len(opts.targets) > 0 {
		targets = opts.targets
	}
	topK := d.cfg.Analysis.TopK
	if opts.topK > 0 {
		topK = opts.topK
	}

	harness, err := analysis.NewHarness(analysis.Options{
		Extractor: stats.NewExtractor(d.cfg.Analysis.BreakdownWindow, policy, d.log),
		Targets:   targets,
		TopK:      topK,
	}, d.log)
	if err != nil {
		return nil, fmt.Errorf("create harness: %w", err)
	}
	return harness, nil
}

// years parses the --years flag, falling back to the configured selection
func (d *deps) years(flag string) (contracts.YearSet, error) {
	if flag == "" {
		return contracts.NewYearSet(d.cfg.Analysis.SelectedYears...)
	}
	years, err := contracts.ParseYearSet(flag)
	if err != nil {
		return nil, fmt.Errorf("invalid --years: %w", err)
	}
	return years, nil
}
