package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"timetable2json/calendar"
	"timetable2json/config"
	"timetable2json/googlecalendar"
	"timetable2json/logger"
	"timetable2json/output"
	"timetable2json/scraper"
	"timetable2json/uploader"
)

type options struct {
	configFile string
	format     string
	upload     bool
	sync       bool
	authCode   string
	syncICS    string
	input      string
	output     string
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("timetable2json", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Parses a University of Nottingham timetable to JSON or iCalendar")
		fmt.Fprintln(stderr, "usage: timetable2json [flags] <input.html> <output>")
		fs.PrintDefaults()
	}

	opts := &options{}
	fs.StringVar(&opts.configFile, "config", "", "JSON config file")
	fs.StringVar(&opts.format, "format", "", "output format, json or ics (overrides config)")
	fs.BoolVar(&opts.upload, "upload", false, "upload the output file to GitHub")
	fs.BoolVar(&opts.sync, "sync", false, "sync the timetable into Google Calendar")
	fs.StringVar(&opts.authCode, "auth-code", "", "exchange a Google authorization code for a token file and exit")
	fs.StringVar(&opts.syncICS, "sync-ics", "", "sync the events of a previously written .ics file into Google Calendar and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.format != "" && opts.format != "json" && opts.format != "ics" {
		return nil, fmt.Errorf("unknown format %q", opts.format)
	}
	if opts.authCode != "" || opts.syncICS != "" {
		return opts, nil
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return nil, fmt.Errorf("expected input and output paths, got %d arguments", fs.NArg())
	}
	opts.input, opts.output = fs.Arg(0), fs.Arg(1)
	return opts, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	cfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		fmt.Fprintln(stderr, "Error loading config:", err)
		return 1
	}
	if opts.format != "" {
		cfg.Format = opts.format
	}

	log, err := logger.NewZapLogger(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		fmt.Fprintln(stderr, "Error initializing logger:", err)
		return 1
	}
	defer log.Sync()

	if err := execute(ctx, opts, cfg, log); err != nil {
		log.Error("timetable2json failed", zap.Error(err))
		return 1
	}
	return 0
}

func execute(ctx context.Context, opts *options, cfg *config.Config, log *zap.Logger) error {
	if opts.authCode != "" {
		oauthCfg, err := googlecalendar.NewOAuthConfig(cfg.GoogleCredentialsFile)
		if err != nil {
			return err
		}
		if err := googlecalendar.ExchangeCode(ctx, oauthCfg, opts.authCode, cfg.GoogleTokenFile); err != nil {
			return err
		}
		log.Info("saved google token", zap.String("file", cfg.GoogleTokenFile))
		return nil
	}
	if opts.syncICS != "" {
		return syncFromICS(ctx, cfg, opts.syncICS, log)
	}

	if opts.upload {
		if err := cfg.CheckUpload(); err != nil {
			return err
		}
	}
	if opts.sync {
		if err := cfg.CheckSync(); err != nil {
			return err
		}
	}

	markup, err := os.ReadFile(opts.input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	days, err := scraper.ScrapeTimetable(string(markup))
	if err != nil {
		return fmt.Errorf("decode %s: %w", opts.input, err)
	}
	log.Info("timetable decoded", zap.String("input", opts.input), zap.Int("entries", len(scraper.Flatten(days))))

	if err := writeOutput(opts.output, cfg, days); err != nil {
		return err
	}
	log.Info("output written", zap.String("output", opts.output), zap.String("format", cfg.Format))

	if opts.upload {
		up := uploader.New(cfg.GithubToken, log)
		msg := "Update " + filepath.Base(cfg.GithubPath)
		if err := up.UploadToGitHub(ctx, cfg.GithubRepo, cfg.GithubPath, opts.output, msg); err != nil {
			return err
		}
	}

	if opts.sync {
		if err := syncGoogleCalendar(ctx, cfg, days, log); err != nil {
			return err
		}
	}
	return nil
}

func writeOutput(path string, cfg *config.Config, days []scraper.DayEntries) error {
	var events []calendar.Event
	if cfg.Format == "ics" {
		weekOne, err := cfg.WeekOne()
		if err != nil {
			return err
		}
		events = calendar.Events(days, weekOne, cfg.MaxWeek)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer file.Close()

	switch cfg.Format {
	case "ics":
		err = calendar.Write(file, events, cfg.CalendarName, time.Now())
	default:
		err = output.WriteJSON(file, days, cfg.Indent)
	}
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return file.Close()
}

func syncGoogleCalendar(ctx context.Context, cfg *config.Config, days []scraper.DayEntries, log *zap.Logger) error {
	weekOne, err := cfg.WeekOne()
	if err != nil {
		return err
	}
	return syncEvents(ctx, cfg, calendar.Events(days, weekOne, cfg.MaxWeek), weekOne.Location(), log)
}

// readEvents loads the events of an iCalendar file written by -format ics.
func readEvents(path string, loc *time.Location) ([]calendar.Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return calendar.ParseEvents(file, loc)
}

func syncFromICS(ctx context.Context, cfg *config.Config, path string, log *zap.Logger) error {
	if err := cfg.CheckGoogle(); err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	events, err := readEvents(path, loc)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	log.Info("calendar file read", zap.String("input", path), zap.Int("events", len(events)))
	return syncEvents(ctx, cfg, events, loc, log)
}

func syncEvents(ctx context.Context, cfg *config.Config, events []calendar.Event, loc *time.Location, log *zap.Logger) error {
	oauthCfg, err := googlecalendar.NewOAuthConfig(cfg.GoogleCredentialsFile)
	if err != nil {
		return err
	}
	service, err := googlecalendar.GetCalendarService(ctx, oauthCfg, cfg.GoogleTokenFile, log)
	if err != nil {
		return err
	}
	return googlecalendar.Sync(ctx, service, cfg.GoogleCalendarID, events, loc, log)
}
