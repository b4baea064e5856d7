package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/riskflow/pkg/cache"
	"github.com/matzehuels/riskflow/pkg/dataset"
	"github.com/matzehuels/riskflow/pkg/observability"
	"github.com/matzehuels/riskflow/pkg/render/flow"
	"github.com/matzehuels/riskflow/pkg/render/flow/layout"
	"github.com/matzehuels/riskflow/pkg/render/flow/sink"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Source: opts.source()}

	// Stage 1: Load
	loadStart := time.Now()
	ds, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Dataset = ds
	result.Warnings = ds.Warnings()
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = ds.NodeCount()
	result.Stats.LinkCount = ds.LinkCount()
	result.Stats.LayerCount = ds.LayerCount()
	result.Stats.Crossings = layout.Crossings(ds)

	if result.DatasetHash, err = DatasetHash(ds); err != nil {
		return nil, err
	}
	for _, w := range result.Warnings {
		r.Logger.Warn("dataset", "code", w.Code, "msg", w.Message)
	}
	r.Logger.Info("loaded dataset",
		"source", result.Source,
		"nodes", ds.NodeCount(),
		"links", ds.LinkCount(),
		"layers", ds.LayerCount(),
		"crossings", result.Stats.Crossings,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout (flow only; Graphviz places node-link diagrams)
	if !opts.IsNodelink() {
		layoutStart := time.Now()
		if l, err := layout.Build(ds.Nodes(), opts.Canvas, opts.LayoutOptions()...); err == nil && !l.Fits() {
			result.Stats.Overflow = true
			r.Logger.Warn("layout overflows canvas height",
				"height", opts.Canvas.Height,
				"usable", opts.Canvas.UsableHeight())
		}
		scene, hit, err := r.SceneWithCacheInfo(ctx, ds, result.DatasetHash, opts)
		if err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
		result.Scene = scene
		result.Stats.LayoutTime = time.Since(layoutStart)
		result.CacheInfo.SceneHit = hit

		r.Logger.Info("computed layout",
			"nodes", len(scene.Nodes),
			"ribbons", len(scene.Links),
			"cached", hit,
			"duration", result.Stats.LayoutTime)
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, ds, result.DatasetHash, result.Scene, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the dataset and reports it to the pipeline hooks.
func (r *Runner) Load(ctx context.Context, opts Options) (*dataset.Dataset, error) {
	hooks := observability.Pipeline()
	src := opts.source()
	start := time.Now()
	hooks.OnLoadStart(ctx, src)

	ds, err := Load(opts)
	n := 0
	if ds != nil {
		n = ds.NodeCount()
	}
	hooks.OnLoadComplete(ctx, src, n, time.Since(start), err)
	return ds, err
}

// SceneWithCacheInfo composes the scene for ds with caching and returns
// cache hit info. datasetHash is the [DatasetHash] of ds.
func (r *Runner) SceneWithCacheInfo(ctx context.Context, ds *dataset.Dataset, datasetHash string, opts Options) (flow.Scene, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return flow.Scene{}, false, err
	}
	cacheKey := r.Keyer.SceneKey(datasetHash, opts.SceneKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if doc, err := sink.ParseJSON(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "scene")
				return doc.Scene, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "scene")
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnLayoutStart(ctx, ds.NodeCount())
	scene, err := Compose(ds, opts)
	hooks.OnLayoutComplete(ctx, ds.NodeCount(), ds.LinkCount(), time.Since(start), err)
	if err != nil {
		return flow.Scene{}, false, err
	}

	if data, err := sink.RenderJSON(scene); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLScene); err != nil {
			opts.Logger.Debug("cache write failed", "stage", "scene", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "scene", len(data))
		}
	}
	return scene, false, nil
}

// Scene is a convenience wrapper that discards the cache hit info.
func (r *Runner) Scene(ctx context.Context, ds *dataset.Dataset, datasetHash string, opts Options) (flow.Scene, error) {
	scene, _, err := r.SceneWithCacheInfo(ctx, ds, datasetHash, opts)
	return scene, err
}

// RenderWithCacheInfo generates artifacts with caching and returns true
// when every format came from the cache. scene is ignored for node-link
// output.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, ds *dataset.Dataset, datasetHash string, scene flow.Scene, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(datasetHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)

	var rendered map[string][]byte
	var err error
	if opts.IsNodelink() {
		rendered, err = RenderNodelink(ctx, ds, opts)
	} else {
		rendered, err = RenderScene(ctx, scene, opts)
	}
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(datasetHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Debug("cache write failed", "stage", "render", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, false, nil
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
