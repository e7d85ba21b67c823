package resolver

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// StatusError reports a response with a status other than 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.URL, e.StatusCode)
}

// ErrUnsupportedURL marks a root-relative reference that cannot be
// fetched without a known base domain.
var ErrUnsupportedURL = errors.New("root-relative url without a base domain")

// failureTag turns a fetch error into a short log tag: the HTTP status
// code for status errors, "error" for everything else.
func failureTag(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return strconv.Itoa(se.StatusCode)
	}
	return "error"
}

// fetch performs a GET with the configured headers and returns the body
// and the raw Content-Type header (possibly empty). Non-200 responses
// are returned as *StatusError.
func (r *Resolver) fetch(url string) (body []byte, contentType string, err error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	if r.opts.UserAgent != "" {
		req.Header.Set("User-Agent", r.opts.UserAgent)
	}
	for k, v := range r.opts.Headers {
		req.Header.Set(k, v)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return body, resp.Header.Get("Content-Type"), nil
}
