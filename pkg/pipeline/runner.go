package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/clearmatch/clearmatch/pkg/cache"
	"github.com/clearmatch/clearmatch/pkg/errors"
	"github.com/clearmatch/clearmatch/pkg/marketio"
	"github.com/clearmatch/clearmatch/pkg/mechanism"
	"github.com/clearmatch/clearmatch/pkg/observability"
	"github.com/clearmatch/clearmatch/pkg/render"
)

// Runner encapsulates pipeline execution with caching. The Runner is
// stateless except for the cache and logger; multiple goroutines can use
// the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer gets the DefaultKeyer, a nil
// cache disables caching, a nil logger falls back to log.Default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete load → solve → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	loadStart := time.Now()
	doc, err := r.Load(opts)
	if err != nil {
		return nil, err
	}
	canonical, err := doc.Canonical()
	if err != nil {
		return nil, err
	}
	result.MarketHash = cache.Hash(canonical)
	result.Stats.LoadTime = time.Since(loadStart)

	solveStart := time.Now()
	rd, solveHit, err := r.SolveWithCacheInfo(ctx, doc, result.MarketHash, opts)
	if err != nil {
		return nil, err
	}
	result.Document = rd
	result.CacheInfo.SolveHit = solveHit
	result.Stats.SolveTime = time.Since(solveStart)

	opts.Logger.Info("solved market",
		"run_id", result.RunID,
		"mechanism", opts.Mechanism,
		"pairings", rd.Stats.Pairings,
		"cached", solveHit,
		"duration", result.Stats.SolveTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, rd, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"run_id", result.RunID,
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load resolves the market definition from the inline document or the
// file path.
func (r *Runner) Load(opts Options) (*marketio.Document, error) {
	if opts.Market != nil {
		return opts.Market, nil
	}
	return marketio.ReadFile(opts.Path)
}

// SolveWithCacheInfo runs the selected mechanism with caching and reports
// whether the result came from the cache.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, doc *marketio.Document, marketHash string, opts Options) (*marketio.ResultDocument, bool, error) {
	key := r.Keyer.SolveKey(marketHash, opts.Mechanism, opts.solveKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached marketio.ResultDocument
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "solve")
				return &cached, true, nil
			}
			// Corrupt entry: fall through and recompute.
		}
	}
	observability.Cache().OnCacheMiss(ctx, "solve")

	rd, err := r.Solve(ctx, doc, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(rd); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLSolve); err == nil {
			observability.Cache().OnCacheSet(ctx, "solve", len(data))
		}
	}
	return rd, false, nil
}

// Solve runs the selected mechanism without touching the cache.
func (r *Runner) Solve(ctx context.Context, doc *marketio.Document, opts Options) (*marketio.ResultDocument, error) {
	mkt, prio, own, err := doc.ToMarket()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Solve().OnSolveStart(ctx, opts.Mechanism, mkt.Agents.Size(), mkt.Objects.Size())

	mopts := mechanism.Options{SwapRoles: opts.SwapRoles, Logger: opts.Logger}
	var res *mechanism.Result
	switch opts.Mechanism {
	case MechanismTTC2:
		res, err = mechanism.TTC(mkt, nil, mopts)
	case MechanismTTC1:
		res, err = mechanism.HousingTTC(mkt, prio, own, mopts)
	case MechanismDA:
		res, err = mechanism.DeferredAcceptance(mkt, mopts)
	default:
		err = errors.New(errors.ErrCodeInvalidMechanism, "unknown mechanism: %q", opts.Mechanism)
	}

	pairings := 0
	if res != nil {
		pairings = res.Stats.Pairings
	}
	observability.Solve().OnSolveComplete(ctx, opts.Mechanism, pairings, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return marketio.NewResultDocument(opts.Mechanism, res), nil
}

// RenderWithCacheInfo produces the requested artifacts with caching and
// reports whether every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, rd *marketio.ResultDocument, opts Options) (map[string][]byte, bool, error) {
	resultData, err := json.Marshal(rd)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize result for cache key")
	}
	resultHash := cache.Hash(resultData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := !opts.Refresh
	if allCached {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(resultHash, format)
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				allCached = false
				break
			}
			artifacts[format] = data
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	start := time.Now()
	observability.Solve().OnRenderStart(ctx, opts.Formats)
	rendered, err := r.renderAll(ctx, rd, opts.Formats)
	observability.Solve().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(resultHash, format)
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// renderAll produces every requested format from scratch. The DOT source
// is built once and shared by the graphical formats.
func (r *Runner) renderAll(ctx context.Context, rd *marketio.ResultDocument, formats []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(formats))
	dot := ""
	for _, format := range formats {
		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			if err := rd.WriteJSON(&buf); err != nil {
				return nil, err
			}
			out[format] = buf.Bytes()
		case FormatDOT, FormatSVG, FormatPNG:
			if dot == "" {
				dot = rd.ToDOT()
			}
			data, err := render.Render(ctx, dot, render.Format(format))
			if err != nil {
				return nil, err
			}
			out[format] = data
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
		}
	}
	return out, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
