package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

// newConversionStub starts a fake Tika service. It answers version probes
// and returns converted for every document submitted to /tika.
func newConversionStub(t *testing.T, converted string) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var conversions atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("2.9.0"))
	})
	mux.HandleFunc("/tika", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if accept := r.Header.Get("Accept"); accept != "text/html" {
			t.Errorf("unexpected Accept header: %q", accept)
		}
		conversions.Add(1)
		_, _ = w.Write([]byte(converted))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &conversions
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestResolve(t *testing.T) {
	path := writeFile(t, "doc.html", []byte("<p>x</p>"))

	tests := []struct {
		name      string
		input     string
		wantLocal bool
		wantOK    bool
	}{
		{"raw markup", "<p>hi</p>", false, false},
		{"plain text", "just words", false, false},
		{"http url", "http://example.com/page", false, true},
		{"https url", "https://example.com/page", false, true},
		{"local file", path, true, true},
		{"file url", "file://" + path, true, true},
		{"missing file", filepath.Join(t.TempDir(), "nope.txt"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, local, ok := resolve(tt.input)
			if ok != tt.wantOK || local != tt.wantLocal {
				t.Errorf("resolve(%q) = local %v, ok %v; want local %v, ok %v",
					tt.input, local, ok, tt.wantLocal, tt.wantOK)
			}
		})
	}
}

func TestNew_DisableConversion(t *testing.T) {
	l, err := New(Config{DisableConversion: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer l.Close()

	if l.Backend() != BackendPlainFetch {
		t.Errorf("Backend() = %v, want %v", l.Backend(), BackendPlainFetch)
	}
}

func TestNew_NegotiatesRichBackend(t *testing.T) {
	srv, _ := newConversionStub(t, "<html></html>")

	l, err := New(Config{ConversionURL: srv.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer l.Close()

	if l.Backend() != BackendRichParser {
		t.Errorf("Backend() = %v, want %v", l.Backend(), BackendRichParser)
	}
}

func TestNew_DegradesWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	l, err := New(Config{ConversionURL: srv.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer l.Close()

	if l.Backend() != BackendPlainFetch {
		t.Errorf("Backend() = %v, want %v", l.Backend(), BackendPlainFetch)
	}
}

func TestNew_RequireConversion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(Config{ConversionURL: srv.URL, RequireConversion: true})
	if !errors.Is(err, ErrConversionUnavailable) {
		t.Errorf("New() error = %v, want ErrConversionUnavailable", err)
	}
}

func TestLoad_RawMarkupPassthrough(t *testing.T) {
	l, err := New(Config{DisableConversion: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer l.Close()

	input := "<html><body><p>raw</p></body></html>"
	got, err := l.Load(context.Background(), input)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != input {
		t.Errorf("Load() = %q, want input unchanged", got)
	}
}

func TestLoad_LocalFile(t *testing.T) {
	path := writeFile(t, "doc.html", []byte("<p>from disk</p>"))

	l, err := New(Config{DisableConversion: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer l.Close()

	got, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != "<p>from disk</p>" {
		t.Errorf("Load() = %q", got)
	}
}

func TestLoad_FileURL(t *testing.T) {
	path := writeFile(t, "doc.html", []byte("<p>from disk</p>"))

	l, err := New(Config{DisableConversion: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer l.Close()

	got, err := l.Load(context.Background(), "file://"+path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != "<p>from disk</p>" {
		t.Errorf("Load() = %q", got)
	}
}

func TestLoad_MaxContentSize(t *testing.T) {
	path := writeFile(t, "doc.txt", []byte("abcdefgh"))

	l, err := New(Config{DisableConversion: true, MaxContentSize: 4})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer l.Close()

	got, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != "abcd" {
		t.Errorf("Load() = %q, want truncation to 4 bytes", got)
	}
}

func TestLoad_ConvertsBinaryDocument(t *testing.T) {
	srv, conversions := newConversionStub(t, "<html><body><p>Converted</p></body></html>")

	// Minimal PDF header so content sniffing reports a binary format.
	path := writeFile(t, "doc.pdf", []byte("%PDF-1.4\n%binary content"))

	l, err := New(Config{ConversionURL: srv.URL, RequireConversion: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer l.Close()

	got, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !strings.Contains(got, "Converted") {
		t.Errorf("Load() = %q, want converted markup", got)
	}
	if conversions.Load() != 1 {
		t.Errorf("conversion calls = %d, want 1", conversions.Load())
	}
}

func TestLoad_HTMLBypassesConversion(t *testing.T) {
	srv, conversions := newConversionStub(t, "unused")

	path := writeFile(t, "doc.html", []byte("<html><body><p>plain html</p></body></html>"))

	l, err := New(Config{ConversionURL: srv.URL, RequireConversion: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer l.Close()

	got, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !strings.Contains(got, "plain html") {
		t.Errorf("Load() = %q", got)
	}
	if conversions.Load() != 0 {
		t.Errorf("conversion calls = %d, want 0", conversions.Load())
	}
}

func TestLoad_RemoteStaticFetch(t *testing.T) {
	content := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("<html><body><p>remote</p></body></html>"))
	}))
	defer content.Close()

	l, err := New(Config{DisableConversion: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer l.Close()

	got, err := l.Load(context.Background(), content.URL)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !strings.Contains(got, "remote") {
		t.Errorf("Load() = %q", got)
	}
}

func TestLoad_RemoteFetchSendsHeaders(t *testing.T) {
	var gotHeader string
	content := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		gotHeader = r.Header.Get("X-Test")
		_, _ = w.Write([]byte("ok"))
	}))
	defer content.Close()

	l, err := New(Config{
		DisableConversion: true,
		Headers:           map[string]string{"X-Test": "token"},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer l.Close()

	if _, err := l.Load(context.Background(), content.URL); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if gotHeader != "token" {
		t.Errorf("X-Test header = %q, want %q", gotHeader, "token")
	}
}

func TestNewFetcher_UnknownMode(t *testing.T) {
	if _, err := NewFetcher(FetchMode("bogus"), FetcherConfig{}); err == nil {
		t.Error("expected error for unknown fetch mode")
	}
}

func TestStaticFetcher_Type(t *testing.T) {
	f := NewStaticFetcher(FetcherConfig{})
	if f.Type() != "static" {
		t.Errorf("Type() = %q", f.Type())
	}
}
