// Package styler exposes the styling engine: tidyverse-style formatting
// of R code as text, files, directories and packages.
package styler

import (
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Polkas/styler/internal/cache"
	"github.com/Polkas/styler/internal/ignore"
	"github.com/Polkas/styler/internal/nest"
	"github.com/Polkas/styler/internal/parsetable"
	"github.com/Polkas/styler/internal/roxygen"
	"github.com/Polkas/styler/internal/style"
	"github.com/Polkas/styler/internal/transform"
	"github.com/Polkas/styler/rlang/parser"
	"github.com/Polkas/styler/serrors"
)

// Dry modes for file styling
const (
	DryOff  = "off"
	DryOn   = "on"
	DryFail = "fail"
)

// Options configure a Styler. The zero value styles with the tidyverse
// guide at full scope and no cache, but with Strict off, so spacing rules
// only enforce minimums; DefaultOptions turns Strict on.
type Options struct {
	Scope                  string
	Strict                 bool
	IncludeRoxygenExamples bool
	BaseIndention          int
	IndentBy               int

	// UseRawIndention keeps every line at its original column instead of
	// computing indentation.
	UseRawIndention bool

	Dry string
	Filetypes              []string
	ExcludeFiles           []string
	ExcludeDirs            []string

	// CacheDir enables the on-disk cache. STYLER_CACHE_DIR serves as a
	// fallback when empty and UseCacheEnv is set.
	CacheDir    string
	UseCacheEnv bool

	// Ignore marker patterns; defaults are "styler: off" / "styler: on".
	IgnoreStart string
	IgnoreStop  string

	Logger *zap.Logger
}

// DefaultOptions returns the stock configuration
func DefaultOptions() Options {
	return Options{
		Scope:       "tokens",
		Strict:      true,
		Dry:         DryOff,
		Filetypes:   []string{"r", "rprofile"},
		ExcludeDirs: []string{".git", "renv", "packrat"},
	}
}

// Styler runs styling jobs. It is safe for reuse across files; the only
// state shared between jobs is the cache store.
type Styler struct {
	guide   *style.Guide
	opts    Options
	markers ignore.Markers
	store   cache.Store
	logger  *zap.Logger
}

// New validates the options and builds a Styler
func New(opts Options) (*Styler, error) {
	scope, err := style.ParseScope(opts.Scope)
	if err != nil {
		return nil, err
	}
	switch opts.Dry {
	case "", DryOff, DryOn, DryFail:
	default:
		return nil, serrors.NewInvalidOption("dry must be one of off, on, fail")
	}
	if opts.Dry == "" {
		opts.Dry = DryOff
	}
	if err := validFiletypes(opts.Filetypes); err != nil {
		return nil, err
	}
	if opts.BaseIndention < 0 {
		return nil, serrors.NewInvalidOption("base_indention must be non-negative")
	}

	guide := style.Tidyverse(style.TidyverseOptions{
		Scope:           scope,
		Strict:          opts.Strict,
		IndentBy:        opts.IndentBy,
		BaseIndention:   opts.BaseIndention,
		UseRawIndention: opts.UseRawIndention,
		IncludeRoxygen:  opts.IncludeRoxygenExamples,
	})
	return NewWithGuide(guide, opts)
}

// NewWithGuide builds a Styler around a custom style guide
func NewWithGuide(guide *style.Guide, opts Options) (*Styler, error) {
	if err := guide.Validate(); err != nil {
		return nil, err
	}

	markers := ignore.DefaultMarkers()
	if opts.IgnoreStart != "" || opts.IgnoreStop != "" {
		start, stop := opts.IgnoreStart, opts.IgnoreStop
		if start == "" {
			start = "styler: off"
		}
		if stop == "" {
			stop = "styler: on"
		}
		var err error
		markers, err = ignore.FromPatterns(start, stop)
		if err != nil {
			return nil, err
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Styler{guide: guide, opts: opts, markers: markers, logger: logger}

	dir := opts.CacheDir
	if dir == "" && opts.UseCacheEnv {
		dir = os.Getenv("STYLER_CACHE_DIR")
	}
	if dir != "" {
		store, err := cache.NewFSStore(dir)
		if err != nil {
			logger.Warn("styling without cache", zap.Error(serrors.NewCacheIO(err)))
		} else {
			s.store = store
		}
	}
	return s, nil
}

// WithStore swaps the cache store, for shared backends and tests
func (s *Styler) WithStore(store cache.Store) *Styler {
	s.store = store
	return s
}

// Guide exposes the active style guide
func (s *Styler) Guide() *style.Guide {
	return s.guide
}

// StyleText styles a source buffer and reports whether it changed. On
// any error the original text is returned unchanged.
func (s *Styler) StyleText(text string) (string, bool, error) {
	return s.styleNamed(text, "")
}

// styleNamed runs the full pipeline over one buffer
func (s *Styler) styleNamed(text, file string) (string, bool, error) {
	if text == "" {
		return "", false, nil
	}

	t, err := parser.New(file).Parse(text)
	if err != nil {
		return text, false, err
	}
	parsetable.Enhance(t)

	// Unbalanced markers mean the author's intent about what to protect
	// is unknowable, so the whole buffer is left alone.
	if _, warn := ignore.Apply(t, s.markers, file); warn != nil {
		s.logger.Warn(warn.Message, zap.String("file", file))
		return text, false, nil
	}
	snap := transform.TakeSnapshot(t)

	styleID := s.guide.CacheKey()
	cacheActive := s.store != nil
	if cacheActive {
		if _, err := cache.PreFilter(t, s.store, styleID); err != nil {
			s.logger.Warn("styling without cache", zap.Error(serrors.NewCacheIO(err)))
			cacheActive = false
		}
	}

	nested := nest.Nest(t)
	nest.FlattenOperators(nested.Rows)
	nest.RelocateEqAssign(nested.Rows)
	nest.AssignBlocks(nested.Rows, cacheActive)

	transform.Apply(nested, s.guide)
	out := transform.SerializeWithSnapshot(nested, s.guide, snap)
	out = matchTrailingNewline(text, out)

	if s.guide.Scope < style.ScopeTokens {
		if err := transform.Validate(text, out, file); err != nil {
			return text, false, err
		}
	}

	// Example bodies restyle with the caller's guide, base indention
	// included, so a configured shift reaches code behind the #' prefix.
	if s.guide.IncludeRoxygen {
		sub := *s
		subGuide := *s.guide
		subGuide.IncludeRoxygen = false
		sub.guide = &subGuide
		sub.store = nil
		out = roxygen.StyleExamples(out, func(code string) (string, error) {
			styled, _, err := sub.styleNamed(code, file)
			return styled, err
		})
	}

	if cacheActive {
		err := cache.RecordText(out, parser.New(file), s.markers, s.store, styleID)
		if err != nil {
			s.logger.Warn("cache record failed", zap.Error(serrors.NewCacheIO(err)))
		}
	}

	return out, out != text, nil
}

// matchTrailingNewline keeps the presence of a final newline as in the
// input
func matchTrailingNewline(in, out string) string {
	hadNL := strings.HasSuffix(in, "\n")
	hasNL := strings.HasSuffix(out, "\n")
	switch {
	case hadNL && !hasNL:
		return out + "\n"
	case !hadNL && hasNL:
		return strings.TrimRight(out, "\n")
	}
	return out
}
