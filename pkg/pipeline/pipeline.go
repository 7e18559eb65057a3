package pipeline

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lgr"

	"github.com/feedgram/feedgram/pkg/cache"
	"github.com/feedgram/feedgram/pkg/domain"
	"github.com/feedgram/feedgram/pkg/feed"
	"github.com/feedgram/feedgram/pkg/sanitize"
)

//go:generate moq -out mocks/detector.go -pkg mocks -skip-ensure -fmt goimports . Detector
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier
//go:generate moq -out mocks/cache_store.go -pkg mocks -skip-ensure -fmt goimports . CacheStore

// Detector finds feed entries not yet delivered.
type Detector interface {
	Detect(ctx context.Context, rec cache.Record) (feed.Result, error)
}

// Notifier delivers one formatted message to the chat.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// CacheStore persists the relay state between runs.
type CacheStore interface {
	Load() cache.Record
	Save(rec cache.Record) error
}

const noDescription = "No description available."

// Processor wires cache, detector and notifier into a single
// poll-and-deliver pass.
type Processor struct {
	detector Detector
	notifier Notifier
	store    CacheStore
	allowed  []string
	dry      bool
}

// ProcessorConfig holds dependencies and options for Processor
type ProcessorConfig struct {
	Detector    Detector
	Notifier    Notifier
	Store       CacheStore
	AllowedTags []string // nil means sanitize.DefaultAllowed
	Dry         bool     // log messages instead of sending, don't touch the cache
}

// New creates a processor from the provided configuration.
func New(cfg ProcessorConfig) *Processor {
	allowed := cfg.AllowedTags
	if allowed == nil {
		allowed = sanitize.DefaultAllowed
	}
	return &Processor{
		detector: cfg.Detector,
		notifier: cfg.Notifier,
		store:    cfg.Store,
		allowed:  allowed,
		dry:      cfg.Dry,
	}
}

// Run performs one pass: load cache, detect changes, deliver new entries
// oldest first. The cache is committed after every successful send, so a
// failure mid-loop leaves it consistent with what was actually delivered.
func (p *Processor) Run(ctx context.Context) error {
	rec := p.store.Load()

	res, err := p.detector.Detect(ctx, rec)
	if err != nil {
		return fmt.Errorf("detect feed changes: %w", err)
	}
	if res.NotModified {
		return nil
	}

	validatorsChanged := res.ETag != rec.ETag || res.LastModified != rec.Modified
	rec.ETag = res.ETag
	rec.Modified = res.LastModified

	if len(res.Entries) == 0 {
		lgr.Printf("[INFO] no new entries")
		if validatorsChanged && !p.dry {
			if err := p.store.Save(rec); err != nil {
				return fmt.Errorf("save cache: %w", err)
			}
		}
		return nil
	}

	lgr.Printf("[INFO] %d new entries to deliver", len(res.Entries))
	for _, entry := range res.Entries {
		msg, err := p.format(entry)
		if err != nil {
			return fmt.Errorf("format entry %s: %w", entry.ID, err)
		}

		if p.dry {
			lgr.Printf("[INFO] dry run, would send: %s", msg)
			continue
		}

		if err := p.notifier.Send(ctx, msg); err != nil {
			return fmt.Errorf("deliver entry %s: %w", entry.ID, err)
		}

		rec.LastEntryID = entry.ID
		if err := p.store.Save(rec); err != nil {
			return fmt.Errorf("save cache after %s: %w", entry.ID, err)
		}
		lgr.Printf("[DEBUG] delivered entry %s", entry.ID)
	}

	return nil
}

// format builds the message text: bold title, anchored link, blank line,
// sanitized body or a fallback when the entry has none.
func (p *Processor) format(entry domain.Entry) (string, error) {
	body := noDescription
	if entry.BodyHTML != "" {
		clean, err := sanitize.Sanitize(entry.BodyHTML, p.allowed)
		if err != nil {
			return "", err
		}
		body = clean
	}
	return fmt.Sprintf("<b>%s</b>\n<a href=%q>%s</a>\n\n%s", entry.Title, entry.Link, entry.Link, body), nil
}
