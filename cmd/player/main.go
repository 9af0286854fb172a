// Command player plays one wheel from the terminal, either against a running
// server or fully in process.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/LuckyWheel_Go/internal/i18n"
	"github.com/osse101/LuckyWheel_Go/internal/logger"
	"github.com/osse101/LuckyWheel_Go/internal/session"
)

type options struct {
	APIURL      string
	APIKey      string
	WheelCode   string
	Email       string
	Name        string
	Lang        string
	ProofPath   string
	Resume      bool
	WheelsDir   string
	BannerDelay time.Duration
	Verbose     bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("player", flag.ContinueOnError)
	fs.StringVar(&o.APIURL, "api", os.Getenv("API_URL"), "server URL; empty plays in process")
	fs.StringVar(&o.APIKey, "key", os.Getenv("API_KEY"), "API key for the session exchange")
	fs.StringVar(&o.WheelCode, "wheel", "", "wheel code")
	fs.StringVar(&o.Email, "email", "", "participant email")
	fs.StringVar(&o.Name, "name", "", "display name")
	fs.StringVar(&o.Lang, "lang", "en", "message language (en, vi)")
	fs.StringVar(&o.ProofPath, "proof", "", "image to attach as proof of claim")
	fs.BoolVar(&o.Resume, "resume", false, "claim the oldest unclaimed prize instead of drawing")
	fs.StringVar(&o.WheelsDir, "wheels", "configs/wheels", "wheel definitions for in-process play")
	fs.DurationVar(&o.BannerDelay, "banner", session.DefaultWinBannerDelay, "how long the win banner shows")
	fs.BoolVar(&o.Verbose, "v", false, "log state transitions")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.WheelCode == "" || o.Email == "" {
		return o, fmt.Errorf("-wheel and -email are required")
	}
	if o.Name == "" {
		o.Name = o.Email
	}
	return o, nil
}

func main() {
	_ = godotenv.Load()

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level := "warn"
	if opts.Verbose {
		level = "debug"
	}
	logger.InitLoggerWithWriter(logger.NewConfig(level, logger.FormatText, "lucky-wheel-player", "dev", "dev", false), os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		stop()
		os.Exit(1)
	}
}

// run plays one session and prints localized messages to out. The returned
// error has already been printed.
func run(ctx context.Context, opts options, out io.Writer) error {
	tr := i18n.New()
	tag := i18n.Match(opts.Lang)
	fail := func(err error) error {
		fmt.Fprintln(out, tr.Error(tag, err))
		return err
	}

	backend, cleanup, err := newBackend(ctx, opts)
	if err != nil {
		return fail(err)
	}
	defer cleanup()

	log := logger.FromContext(ctx)
	sess, err := session.New(backend, session.Config{
		WinBannerDelay: opts.BannerDelay,
		OnTransition: func(from, to session.State) {
			log.Debug(session.LogMsgTransition, "from", from.String(), "to", to.String())
		},
	})
	if err != nil {
		return fail(err)
	}
	defer func() { _ = sess.Logout(context.Background()) }()

	if err := sess.Start(ctx, nil, opts.WheelCode); err != nil {
		return fail(err)
	}
	if err := sess.Authenticate(ctx, participant(opts)); err != nil {
		return fail(err)
	}

	snap := sess.Snapshot()
	if snap.Wheel != nil && snap.Wheel.HostName != "" {
		fmt.Fprintln(out, tr.Message(tag, i18n.KeyWheelTitle, snap.Wheel.HostName))
	}
	if n := len(snap.Pending); n > 0 {
		fmt.Fprintln(out, tr.Message(tag, i18n.KeyPendingClaims, n))
	}

	if opts.Resume {
		if len(snap.Pending) == 0 {
			return nil
		}
		if err := sess.ResumeClaim(ctx, snap.Pending[0].ID); err != nil {
			return fail(err)
		}
	} else {
		outcome, err := sess.Draw(ctx)
		if err != nil {
			return fail(err)
		}
		fmt.Fprintln(out, tr.Message(tag, i18n.KeyYouWon, outcome.Result.Prize.Label))
	}

	if opts.ProofPath == "" {
		return sess.SkipClaim(ctx)
	}
	f, err := os.Open(opts.ProofPath)
	if err != nil {
		_ = sess.SkipClaim(ctx)
		return fail(err)
	}
	defer f.Close()
	if _, err := sess.SubmitProof(ctx, f); err != nil {
		return fail(err)
	}
	fmt.Fprintln(out, tr.Message(tag, i18n.KeyClaimSent))
	return nil
}
