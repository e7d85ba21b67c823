package resolver

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/h2non/filetype"
)

// dataURI builds a data URI for the fetched bytes. When the server did
// not report a content type, the type is sniffed from the leading bytes.
func dataURI(body []byte, contentType string) string {
	if contentType == "" {
		if t, err := filetype.Match(body); err == nil && t != filetype.Unknown {
			contentType = t.MIME.Value
		}
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(body)
}

// resolveAssets replaces each resolvable asset reference in css with an
// inlined base64 data URI. The replacement is a plain substring
// replacement, so every literal occurrence of the URL is rewritten.
func (r *Resolver) resolveAssets(urls []string, css string) string {
	for _, url := range urls {
		if strings.HasPrefix(url, "data:") {
			r.log.Verbosef("Skipping data url...")
			continue
		}
		if err := checkRef(url); err != nil {
			r.log.Printf("Skipping broken asset url: %s", url)
			continue
		}

		r.log.Verbosef("Requesting %s...", url)
		body, contentType, err := r.fetch(url)
		if err != nil {
			if errors.As(err, new(*StatusError)) {
				r.log.Taggedf(failureTag(err), "Failed to download: %s", url)
			} else {
				r.log.Taggedf("error", "Error embedding %s: %s", url, err)
			}
			continue
		}

		r.log.Verbosef("Embedding %s...", url)
		css = strings.ReplaceAll(css, url, dataURI(body, contentType))
	}
	return css
}
