package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/feedgram/feedgram/pkg/cache"
	"github.com/feedgram/feedgram/pkg/feed"
	"github.com/feedgram/feedgram/pkg/pipeline"
	"github.com/feedgram/feedgram/pkg/telegram"
)

// Opts with all CLI options
type Opts struct {
	Token     string        `long:"telegram-token" env:"TELEGRAM_BOT_TOKEN" description:"telegram bot token"`
	FeedURL   string        `long:"feed-url" env:"RSS_FEED_URL" description:"feed URL to poll"`
	ChatID    string        `long:"chat-id" env:"TELEGRAM_CHAT_ID" description:"telegram chat to deliver to"`
	CacheFile string        `long:"cache-file" env:"CACHE_FILE" default:"feed_cache.json" description:"path to the cache file"`
	Timeout   time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"timeout for feed and telegram calls"`

	NoConditional bool `long:"no-conditional" env:"NO_CONDITIONAL" description:"always fetch the full feed, skip etag/last-modified validators"`
	Dry           bool `long:"dry" description:"log messages instead of sending, don't touch the cache"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.Token)

	log.Printf("[INFO] starting feedgram %s", revision)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[WARN] termination signal received")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		log.Printf("[ERROR] run failed: %v", err)
		os.Exit(1)
	}
	log.Print("[INFO] run completed")
}

// run performs one poll-and-deliver pass with components built from opts
func run(ctx context.Context, opts Opts) error {
	if err := checkRequired(opts); err != nil {
		return err
	}

	proc := pipeline.New(pipeline.ProcessorConfig{
		Detector: feed.NewDetector(opts.FeedURL, opts.Timeout, !opts.NoConditional),
		Notifier: telegram.New(opts.Token, opts.ChatID, opts.Timeout),
		Store:    cache.NewStore(opts.CacheFile),
		Dry:      opts.Dry,
	})
	return proc.Run(ctx)
}

// checkRequired verifies the mandatory settings before any network activity
func checkRequired(opts Opts) error {
	if opts.Token == "" {
		return fmt.Errorf("telegram bot token is required, set TELEGRAM_BOT_TOKEN")
	}
	if opts.FeedURL == "" {
		return fmt.Errorf("feed URL is required, set RSS_FEED_URL")
	}
	if opts.ChatID == "" {
		return fmt.Errorf("chat ID is required, set TELEGRAM_CHAT_ID")
	}
	return nil
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(os.Stdout), lgr.Err(os.Stderr)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	var secrets []string
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
