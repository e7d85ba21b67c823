package resolver

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eepyfemboi/css-resolver/filters"
	"github.com/eepyfemboi/css-resolver/logger"
)

func testResolver(t *testing.T, opts Options) *Resolver {
	t.Helper()
	log, err := logger.New(logger.MethodNone, logger.LevelNone, "")
	if err != nil {
		t.Fatalf("%s", err)
	}
	return New(opts, log)
}

type serverFile struct {
	body        string
	contentType string
}

// cssServer serves the given path → (body, content type) pairs.
// An empty content type lets the response go out without the header.
func cssServer(t *testing.T, files map[string]serverFile) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if f.contentType != "" {
			w.Header().Set("Content-Type", f.contentType)
		} else {
			w.Header()["Content-Type"] = nil
		}
		w.Write([]byte(f.body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestResolveEndToEnd(t *testing.T) {
	var srv *httptest.Server
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sub.css":
			w.Header().Set("Content-Type", "text/css")
			w.Write([]byte(".x{background:url(" + srv.URL + "/i.png)}"))
		case "/i.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte{0xff})
		default:
			http.NotFound(w, r)
		}
	})
	srv = httptest.NewServer(handler)
	defer srv.Close()

	r := testResolver(t, Options{})
	out := r.Resolve(`@import url("` + srv.URL + `/sub.css");`)

	const want = ".x{background:url(data:image/png;base64,/w==)}"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
	if strings.Contains(out, "@import") {
		t.Errorf("unresolved @import left in %q", out)
	}
}

func TestResolveUnreachableImport(t *testing.T) {
	srv := cssServer(t, map[string]serverFile{})
	r := testResolver(t, Options{})
	in := `@import url("` + srv.URL + `/missing.css"); body{color:red}`
	out := r.Resolve(in)
	if out != in {
		t.Errorf("expected unreachable import left intact, got %q", out)
	}
}

func TestResolveUnreachableAsset(t *testing.T) {
	srv := cssServer(t, map[string]serverFile{})
	r := testResolver(t, Options{})
	in := `.a{background:url(` + srv.URL + `/missing.png)}`
	out := r.Resolve(in)
	if out != in {
		t.Errorf("expected unreachable asset left intact, got %q", out)
	}
}

func TestResolveRootRelativeLeftAlone(t *testing.T) {
	r := testResolver(t, Options{})
	in := `@import url("/local/file.css"); .a{background:url(/img/x.png)}`
	out := r.Resolve(in)
	if out != in {
		t.Errorf("expected root-relative references left intact, got %q", out)
	}
}

func TestResolveDataURLSkipped(t *testing.T) {
	r := testResolver(t, Options{})
	in := `.a{background:url(data:image/png;base64,/w==)}`
	out := r.Resolve(in)
	if out != in {
		t.Errorf("expected data url left intact, got %q", out)
	}
}

func TestResolveAssetReplacesEveryOccurrence(t *testing.T) {
	srv := cssServer(t, map[string]serverFile{
		"/i.png": {body: "\xff", contentType: "image/png"},
	})
	r := testResolver(t, Options{})
	url := srv.URL + "/i.png"
	out := r.Resolve(`.a{background:url(` + url + `)} .b{content:"` + url + `"}`)
	if strings.Contains(out, url) {
		t.Errorf("raw url still present in %q", out)
	}
	if strings.Count(out, "data:image/png;base64,/w==") != 2 {
		t.Errorf("expected both occurrences replaced, got %q", out)
	}
}

func TestResolveAssetSniffsContentType(t *testing.T) {
	pngMagic := "\x89PNG\r\n\x1a\n"
	srv := cssServer(t, map[string]serverFile{
		"/i.png": {body: pngMagic}, // no Content-Type header
	})
	r := testResolver(t, Options{})
	out := r.Resolve(`.a{background:url(` + srv.URL + `/i.png)}`)
	if !strings.Contains(out, "data:image/png;base64,") {
		t.Errorf("expected sniffed image/png data uri, got %q", out)
	}
}

func TestResolveCyclicImports(t *testing.T) {
	var srv *httptest.Server
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css")
		switch r.URL.Path {
		case "/a.css":
			w.Write([]byte(`@import url("` + srv.URL + `/b.css");`))
		case "/b.css":
			w.Write([]byte(`@import '` + srv.URL + `/a.css';`))
		default:
			http.NotFound(w, r)
		}
	})
	srv = httptest.NewServer(handler)
	defer srv.Close()

	r := testResolver(t, Options{})
	out := r.Resolve(`@import url("` + srv.URL + `/a.css");`)
	// The chain must terminate with the revisited import left intact.
	if !strings.Contains(out, "@import '"+srv.URL+"/a.css';") {
		t.Errorf("expected inner cyclic import left intact, got %q", out)
	}
}

func TestResolveMaxDepth(t *testing.T) {
	var srv *httptest.Server
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css")
		switch r.URL.Path {
		case "/d1.css":
			// Quoted form: the asset pass must not pick the skipped
			// import up through its url() shape.
			w.Write([]byte(`@import "` + srv.URL + `/d2.css";`))
		case "/d2.css":
			w.Write([]byte(`.deep{color:red}`))
		default:
			http.NotFound(w, r)
		}
	})
	srv = httptest.NewServer(handler)
	defer srv.Close()

	r := testResolver(t, Options{MaxDepth: 1})
	out := r.Resolve(`@import url("` + srv.URL + `/d1.css");`)
	if !strings.Contains(out, "/d2.css") {
		t.Errorf("expected import beyond max depth left intact, got %q", out)
	}
	if strings.Contains(out, ".deep") {
		t.Errorf("import beyond max depth was resolved: %q", out)
	}
}

func TestResolveSendsConfiguredHeaders(t *testing.T) {
	var gotUA, gotExtra string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotExtra = r.Header.Get("X-Extra")
		w.Header().Set("Content-Type", "text/css")
		w.Write([]byte("body{}"))
	}))
	defer srv.Close()

	r := testResolver(t, Options{
		UserAgent: "css-resolver-test/1.0",
		Headers:   map[string]string{"X-Extra": "yes"},
	})
	r.Resolve(`@import url("` + srv.URL + `/a.css");`)
	if gotUA != "css-resolver-test/1.0" {
		t.Errorf("expected custom user agent, got %q", gotUA)
	}
	if gotExtra != "yes" {
		t.Errorf("expected extra header, got %q", gotExtra)
	}
}

func TestExtractLocalFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "in.css")
	if err := os.WriteFile(name, []byte("body {\n  color: red; /* note */\n}\n"), 0644); err != nil {
		t.Fatalf("%s", err)
	}
	r := testResolver(t, Options{})

	out, err := r.Extract(name, nil)
	if err != nil {
		t.Fatalf("%s", err)
	}
	if !strings.Contains(out, "/* note */") {
		t.Errorf("unminified output mangled: %q", out)
	}

	min, _ := filters.Make("compact")
	out, err = r.Extract(name, min)
	if err != nil {
		t.Fatalf("%s", err)
	}
	if out != "body { color: red; }" {
		t.Errorf("expected minified output, got %q", out)
	}
}

func TestExtractMissingFile(t *testing.T) {
	r := testResolver(t, Options{})
	if _, err := r.Extract(filepath.Join(t.TempDir(), "nope.css"), nil); err == nil {
		t.Errorf("expected error for missing input file")
	}
}

func TestExtractURL(t *testing.T) {
	srv := cssServer(t, map[string]serverFile{
		"/root.css": {body: "body{color:red}", contentType: "text/css"},
	})
	r := testResolver(t, Options{})
	out, err := r.Extract(srv.URL+"/root.css", nil)
	if err != nil {
		t.Fatalf("%s", err)
	}
	if out != "body{color:red}" {
		t.Errorf("unexpected output %q", out)
	}

	if _, err := r.Extract(srv.URL+"/missing.css", nil); err == nil {
		t.Errorf("expected error for unreachable root url")
	}
}

func TestIsURL(t *testing.T) {
	var tests = []struct {
		in  string
		out bool
	}{
		{"http://example.com/a.css", true},
		{"https://example.com/a.css", true},
		{"style.css", false},
		{"/var/www/style.css", false},
		{"ftp://example.com/a.css", false},
	}
	for i, v := range tests {
		if out := IsURL(v.in); out != v.out {
			t.Errorf("%d: IsURL(%q) = %v, expected %v", i, v.in, out, v.out)
		}
	}
}
