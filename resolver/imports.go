package resolver

import (
	"errors"
	"strings"
)

// ErrCyclicImport reports an @import chain that references one of its
// own ancestors.
var ErrCyclicImport = errors.New("cyclic import")

// ErrMaxDepthExceeded reports an @import chain deeper than Options.MaxDepth.
var ErrMaxDepthExceeded = errors.New("max import depth exceeded")

// checkRef classifies references the resolver cannot fetch.
func checkRef(url string) error {
	if strings.HasPrefix(url, "/") {
		return ErrUnsupportedURL
	}
	return nil
}

// guardImport rejects imports that would recurse forever.
func (st *state) guardImport(url string, maxDepth int) error {
	if st.visited[url] {
		return ErrCyclicImport
	}
	if st.depth >= maxDepth {
		return ErrMaxDepthExceeded
	}
	return nil
}

// resolveImports replaces each resolvable @import statement in css with
// the fully resolved body of the imported stylesheet. Failures are
// logged and leave the original statement in place.
func (r *Resolver) resolveImports(urls []string, css string, st *state) string {
	for _, url := range urls {
		r.log.Verbosef("Embedding content of %s...", url)
		if err := checkRef(url); err != nil {
			r.log.Printf("Skipping broken import url: %s", url)
			continue
		}
		if err := st.guardImport(url, r.opts.MaxDepth); err != nil {
			r.log.Taggedf("error", "Not embedding %s: %s", url, err)
			continue
		}

		r.log.Verbosef("Requesting %s...", url)
		body, _, err := r.fetch(url)
		if err != nil {
			if errors.As(err, new(*StatusError)) {
				r.log.Taggedf(failureTag(err), "Failed to download: %s", url)
			} else {
				r.log.Taggedf("error", "Error embedding %s: %s", url, err)
			}
			continue
		}

		r.log.Verbosef("Embedding %s...", url)
		// Nested imports and assets are resolved before substitution,
		// so the replacement text is already self-contained.
		st.visited[url] = true
		st.depth++
		resolved := r.resolve(string(body), st)
		st.depth--
		delete(st.visited, url)

		css = importStatement(url).ReplaceAllLiteralString(css, resolved)
	}
	return css
}
