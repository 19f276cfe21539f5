package feeds

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/adam-cott/nba7/internal/news"
)

// ogScanLimit bounds how much of an article page is read. The og:image meta
// tag lives in <head>, so the first chunk is enough.
const ogScanLimit = 15 * 1024

// ImageEnricher backfills missing article images by scanning the article
// page for an open-graph image tag. Strictly best effort: any failure
// leaves the image absent.
type ImageEnricher struct {
	client *http.Client
}

func NewImageEnricher(timeout time.Duration) *ImageEnricher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ImageEnricher{client: &http.Client{Timeout: timeout}}
}

// Enrich fetches og:image for every article still missing one. Requests run
// concurrently and none blocks past the client timeout.
func (e *ImageEnricher) Enrich(ctx context.Context, articles []news.Article) {
	var wg sync.WaitGroup
	for i := range articles {
		if articles[i].ImageURL != "" || articles[i].URL == "" {
			continue
		}
		wg.Add(1)
		go func(a *news.Article) {
			defer wg.Done()
			img, err := e.fetchOgImage(ctx, a.URL)
			if err != nil {
				log.Printf("og:image lookup failed for %s: %v", a.URL, err)
				return
			}
			a.ImageURL = img
		}(&articles[i])
	}
	wg.Wait()
}

func (e *ImageEnricher) fetchOgImage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	head, err := io.ReadAll(io.LimitReader(resp.Body, ogScanLimit))
	if err != nil {
		return "", err
	}
	return ExtractOgImage(head), nil
}

// ExtractOgImage pulls the og:image content attribute out of a (possibly
// truncated) HTML fragment. Attribute order inside the tag does not matter.
func ExtractOgImage(fragment []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(fragment))
	if err != nil {
		return ""
	}
	for _, sel := range []string{`meta[property="og:image"]`, `meta[name="og:image"]`} {
		if content, ok := doc.Find(sel).First().Attr("content"); ok && content != "" {
			return content
		}
	}
	return ""
}
