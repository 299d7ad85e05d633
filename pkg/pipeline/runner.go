package pipeline

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/matzehuels/gradletree/pkg/cache"
	"github.com/matzehuels/gradletree/pkg/errors"
	"github.com/matzehuels/gradletree/pkg/gradle"
	gtio "github.com/matzehuels/gradletree/pkg/io"
	"github.com/matzehuels/gradletree/pkg/observability"
)

const (
	keyTypeTree     = "tree"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can use the same Runner with different options.
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// ExecuteReader reads a whole report from rd and runs [Runner.Execute].
// A read failure is reported to the parse hooks and returned as IO_ERROR;
// no partial tree is produced.
func (r *Runner) ExecuteReader(ctx context.Context, rd io.Reader, opts Options) (*Result, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, err
	}
	report, err := io.ReadAll(rd)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeIO, err, "read report from %s", opts.Source)
		hooks := observability.Parse()
		hooks.OnParseStart(ctx, opts.Source)
		hooks.OnParseComplete(ctx, opts.Source, 0, 0, 0, err)
		return nil, err
	}
	return r.Execute(ctx, report, opts)
}

// Execute parses report and encodes the tree in opts.Format, using the cache
// for both stages.
func (r *Runner) Execute(ctx context.Context, report []byte, opts Options) (*Result, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, err
	}
	logger := opts.Logger

	result := &Result{
		ReportHash:  cache.Hash(report),
		ContentType: ContentType(opts.Format),
	}
	result.Stats.ReportSize = len(report)

	parseStart := time.Now()
	root, treeKey, parseHit, err := r.ParseWithCacheInfo(ctx, report, opts)
	if err != nil {
		return nil, err
	}
	result.Tree = root
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.Configurations = len(root.Configurations())
	result.Stats.Nodes = root.Count()
	result.CacheInfo.ParseHit = parseHit

	logger.Info("parsed report",
		"source", opts.Source,
		"size", humanize.Bytes(uint64(len(report))),
		"configurations", result.Stats.Configurations,
		"nodes", result.Stats.Nodes,
		"cached", parseHit,
		"duration", result.Stats.ParseTime)

	renderStart := time.Now()
	artifact, renderHit, err := r.RenderWithCacheInfo(ctx, root, treeKey, opts)
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Debug("encoded output",
		"format", opts.Format,
		"size", humanize.Bytes(uint64(len(artifact))),
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo parses report with caching. It returns the tree, the
// cache key it is stored under and whether it came from the cache.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, report []byte, opts Options) (*gradle.Node, string, bool, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, "", false, err
	}
	logger := opts.Logger
	key := r.Keyer.TreeKey(cache.Hash(report), opts.TreeKeyOpts())

	if !opts.Refresh {
		if root, ok := r.cachedTree(ctx, key, logger); ok {
			return root, key, true, nil
		}
	}

	hooks := observability.Parse()
	hooks.OnParseStart(ctx, opts.Source)
	start := time.Now()
	root, err := gradle.ParseWithOptions(bytes.NewReader(report), opts.ParseOptions())
	if err != nil {
		hooks.OnParseComplete(ctx, opts.Source, 0, 0, time.Since(start), err)
		return nil, "", false, err
	}
	hooks.OnParseComplete(ctx, opts.Source, len(root.Configurations()), root.Count(), time.Since(start), nil)

	var buf bytes.Buffer
	if err := gtio.WriteTreeJSON(root, &buf); err == nil {
		r.store(ctx, keyTypeTree, key, buf.Bytes(), cache.TTLTree, logger)
	}
	return root, key, false, nil
}

// Parse is [Runner.ParseWithCacheInfo] without the cache details.
func (r *Runner) Parse(ctx context.Context, report []byte, opts Options) (*gradle.Node, error) {
	root, _, _, err := r.ParseWithCacheInfo(ctx, report, opts)
	return root, err
}

func (r *Runner) cachedTree(ctx context.Context, key string, logger *log.Logger) (*gradle.Node, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache lookup failed", "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeTree)
		return nil, false
	}
	root, err := gtio.ReadTreeJSON(bytes.NewReader(data))
	if err != nil {
		logger.Debug("dropping unreadable cache entry", "key", key, "error", err)
		_ = r.Cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, keyTypeTree)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeTree)
	logger.Debug("cache hit", "type", keyTypeTree)
	return root, true
}

// RenderWithCacheInfo encodes root in opts.Format. treeKey identifies the
// tree for artifact caching; an empty key disables the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, root *gradle.Node, treeKey string, opts Options) ([]byte, bool, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, false, err
	}
	logger := opts.Logger

	var key string
	if treeKey != "" {
		key = r.Keyer.ArtifactKey(treeKey, opts.ArtifactKeyOpts())
		if !opts.Refresh {
			data, hit, err := r.Cache.Get(ctx, key)
			if err == nil && hit {
				observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
				logger.Debug("cache hit", "type", keyTypeArtifact, "format", opts.Format)
				return data, true, nil
			}
			observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		}
	}

	hooks := observability.Parse()
	hooks.OnRenderStart(ctx, opts.Format)
	start := time.Now()
	data, err := Render(ctx, root, opts)
	hooks.OnRenderComplete(ctx, opts.Format, len(data), time.Since(start), err)
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, false, err
		}
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "render %s", opts.Format)
	}

	if key != "" {
		r.store(ctx, keyTypeArtifact, key, data, cache.TTLArtifact, logger)
	}
	return data, false, nil
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration, logger *log.Logger) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// prepare applies the runner's logger and validates opts.
func (r *Runner) prepare(opts *Options) error {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	return opts.ValidateAndSetDefaults()
}
