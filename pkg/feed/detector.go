package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/mmcdole/gofeed"

	"github.com/feedgram/feedgram/pkg/cache"
	"github.com/feedgram/feedgram/pkg/domain"
)

const errBodyLimit = 16384 // enough for error pages

// Detector fetches a single RSS/Atom feed and figures out which entries
// were not yet delivered, based on the persisted cache record.
type Detector struct {
	url         string
	conditional bool
	client      *http.Client
	parser      *gofeed.Parser
}

// Result is the outcome of one detection pass.
type Result struct {
	Entries      []domain.Entry // new entries, oldest first
	NotModified  bool           // server answered 304, nothing else is set
	ETag         string         // validators refreshed from response headers
	LastModified string
}

// NewDetector creates a detector for the given feed URL. With conditional
// enabled, requests carry If-None-Match/If-Modified-Since validators taken
// from the cache record.
func NewDetector(url string, timeout time.Duration, conditional bool) *Detector {
	return &Detector{
		url:         url,
		conditional: conditional,
		client:      &http.Client{Timeout: timeout},
		parser:      gofeed.NewParser(),
	}
}

// Detect performs one fetch-and-diff pass. A 304 response short-circuits
// with NotModified set and no validator changes. On a 200 the validators in
// the result are refreshed from the response headers even when no new
// entries are found, so the caller persists them for the next run.
func (d *Detector) Detect(ctx context.Context, rec cache.Record) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, http.NoBody)
	if err != nil {
		return Result{}, fmt.Errorf("create feed request: %w", err)
	}
	if d.conditional {
		if rec.ETag != "" {
			req.Header.Set("If-None-Match", rec.ETag)
		}
		if rec.Modified != "" {
			req.Header.Set("If-Modified-Since", rec.Modified)
		}
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("fetch feed %s: %w", d.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		lgr.Printf("[INFO] feed not modified since last check")
		return Result{NotModified: true}, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))
		return Result{}, fmt.Errorf("fetch feed %s: want 200, got %d: %s", d.url, resp.StatusCode, body)
	}

	parsed, err := d.parser.Parse(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("parse feed %s: %w", d.url, err)
	}
	lgr.Printf("[DEBUG] parsed %d entries from %s", len(parsed.Items), d.url)

	res := Result{ETag: rec.ETag, LastModified: rec.Modified}
	if etag := resp.Header.Get("ETag"); etag != "" {
		res.ETag = etag
	}
	if lastModified := resp.Header.Get("Last-Modified"); lastModified != "" {
		res.LastModified = lastModified
	}

	res.Entries = diff(parsed.Items, rec.LastEntryID)
	return res, nil
}

// diff collects entries ahead of lastSeen in the feed's natural newest-first
// order and returns them reversed, oldest-new-first, for delivery. An empty
// or unmatched lastSeen makes the whole feed new.
func diff(items []*gofeed.Item, lastSeen string) []domain.Entry {
	var fresh []domain.Entry
	for _, item := range items {
		entry := makeEntry(item)
		if lastSeen != "" && entry.ID == lastSeen {
			break
		}
		fresh = append(fresh, entry)
	}
	slices.Reverse(fresh)
	return fresh
}

func makeEntry(item *gofeed.Item) domain.Entry {
	id := strings.TrimSpace(item.GUID)
	if id == "" {
		id = strings.TrimSpace(item.Link)
	}

	body := item.Content
	if body == "" {
		body = item.Description
	}

	return domain.Entry{
		ID:       id,
		Title:    item.Title,
		Link:     item.Link,
		BodyHTML: body,
	}
}
