package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adam-cott/nba7/internal/news"
)

func TestExtractOgImage(t *testing.T) {
	cases := []struct {
		name string
		html string
		want string
	}{
		{
			name: "property first",
			html: `<html><head><meta property="og:image" content="https://img.example.com/a.jpg"></head></html>`,
			want: "https://img.example.com/a.jpg",
		},
		{
			name: "attribute order reversed",
			html: `<html><head><meta content="https://img.example.com/b.jpg" property="og:image"></head></html>`,
			want: "https://img.example.com/b.jpg",
		},
		{
			name: "name variant",
			html: `<html><head><meta name="og:image" content="https://img.example.com/c.jpg"></head></html>`,
			want: "https://img.example.com/c.jpg",
		},
		{
			name: "missing",
			html: `<html><head><title>No image here</title></head></html>`,
			want: "",
		},
		{
			name: "truncated head",
			html: `<html><head><meta property="og:image" content="https://img.example.com/d.jpg"><meta property="og:ti`,
			want: "https://img.example.com/d.jpg",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractOgImage([]byte(tc.html)); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEnrich(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/with-og":
			w.Write([]byte(`<html><head><meta property="og:image" content="https://img.example.com/og.jpg"></head></html>`))
		case "/no-og":
			w.Write([]byte(`<html><head><title>plain</title></head></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	articles := []news.Article{
		{URL: srv.URL + "/with-og"},
		{URL: srv.URL + "/with-og", ImageURL: "https://img.example.com/already.jpg"},
		{URL: srv.URL + "/no-og"},
		{URL: srv.URL + "/missing"},
		{URL: ""},
	}

	e := NewImageEnricher(2 * time.Second)
	e.Enrich(context.Background(), articles)

	if articles[0].ImageURL != "https://img.example.com/og.jpg" {
		t.Errorf("missing image not backfilled: %q", articles[0].ImageURL)
	}
	if articles[1].ImageURL != "https://img.example.com/already.jpg" {
		t.Errorf("existing image must not be touched: %q", articles[1].ImageURL)
	}
	if articles[2].ImageURL != "" {
		t.Errorf("page without og:image must stay empty: %q", articles[2].ImageURL)
	}
	if articles[3].ImageURL != "" {
		t.Errorf("404 page must stay empty: %q", articles[3].ImageURL)
	}
}
