// Package resolver turns a CSS document into a self-contained one:
// @import statements are expanded into the referenced stylesheets and
// url() asset references are inlined as base64 data URIs.
package resolver

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/eepyfemboi/css-resolver/filters"
	"github.com/eepyfemboi/css-resolver/logger"
)

const (
	DefaultTimeout  = 30 * time.Second
	DefaultMaxDepth = 16
)

// Options configures a Resolver. It is constructed once and never
// mutated afterwards.
type Options struct {
	// UserAgent is sent with every request when non-empty.
	UserAgent string

	// Headers are extra request headers.
	Headers map[string]string

	// Timeout bounds each fetch. Zero means DefaultTimeout.
	Timeout time.Duration

	// MaxDepth bounds @import nesting. Zero means DefaultMaxDepth.
	MaxDepth int
}

// Resolver drives the resolution pipeline.
type Resolver struct {
	opts   Options
	log    *logger.Logger
	client *http.Client
}

// New returns a resolver with the given options, logging through log.
func New(opts Options, log *logger.Logger) *Resolver {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Resolver{
		opts:   opts,
		log:    log,
		client: &http.Client{Timeout: opts.Timeout},
	}
}

// state tracks one resolution run: the import chain currently being
// expanded (for cycle detection) and its depth.
type state struct {
	depth   int
	visited map[string]bool
}

// Resolve fully resolves a CSS document. Imports are expanded first,
// then assets, so assets introduced by an embedded import are inlined
// in the same pass. Per-URL failures are logged and skipped; the result
// is always best-effort.
func (r *Resolver) Resolve(css string) string {
	return r.resolve(css, &state{visited: make(map[string]bool)})
}

func (r *Resolver) resolve(css string, st *state) string {
	css = r.resolveImports(ExtractImports(css), css, st)
	r.log.Printf("Extracting URLs...")
	css = r.resolveAssets(ExtractAssets(css), css)
	return css
}

// IsURL reports whether path is an http(s) URL rather than a local file.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// Extract loads the document at path (an http(s) URL or a local file
// path), fully resolves it, and applies minify when non-nil. A root
// document that cannot be loaded is a hard error.
func (r *Resolver) Extract(path string, minify filters.Filter) (string, error) {
	var css string
	if IsURL(path) {
		r.log.Printf("Downloading css file: %s", path)
		body, _, err := r.fetch(path)
		if err != nil {
			return "", fmt.Errorf("cannot load %s: %w", path, err)
		}
		css = string(body)
	} else {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("cannot load %s: %w", path, err)
		}
		css = string(b)
	}

	css = r.Resolve(css)

	if minify != nil {
		r.log.Printf("Compressing css...")
		out, err := minify.Apply(css)
		if err != nil {
			return "", fmt.Errorf("minify: %w", err)
		}
		css = out
	}
	return css, nil
}
