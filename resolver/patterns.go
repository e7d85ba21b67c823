package resolver

import (
	"regexp"
)

// The pipeline matches CSS textually rather than with a structural
// parser, so it behaves the same on malformed or partial documents.
// All patterns live here; substitution logic stays in the resolvers.

var (
	// @import, optional url(, optional quote, the URL, optional
	// closing quote, optional ), terminating semicolon.
	importRx = regexp.MustCompile(`@import\s+(url\()?['"]?(.*?)['"]?\)?;`)

	// url(...) anywhere in the document, quotes optional.
	assetRx = regexp.MustCompile(`url\(['"]?(.*?)['"]?\)`)
)

// importStatement returns a pattern matching the whole @import statement
// referencing url, tolerant of url() and quote-style variations.
func importStatement(url string) *regexp.Regexp {
	return regexp.MustCompile(`@import\s+(?:url\()?['"]?` + regexp.QuoteMeta(url) + `['"]?\)?;`)
}

// ExtractImports returns the URLs referenced by @import statements, in
// order of first appearance, duplicates preserved. URL syntax is not
// validated: whatever sits in the URL position is returned as is.
func ExtractImports(css string) []string {
	matches := importRx.FindAllStringSubmatch(css, -1)
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		urls = append(urls, m[2])
	}
	return urls
}

// ExtractAssets returns the URLs inside url(...) constructs anywhere in
// the document, in order of appearance, duplicates preserved.
func ExtractAssets(css string) []string {
	matches := assetRx.FindAllStringSubmatch(css, -1)
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		urls = append(urls, m[1])
	}
	return urls
}
