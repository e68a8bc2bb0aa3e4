package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/ilyakutilin/telegram_notifier/metrics"
	"github.com/ilyakutilin/telegram_notifier/telegram"
)

const usage = `Usage: tgnotify [-config path] <command> [flags]

Commands:
  send     -chat <id> -text <text>     send one Markdown message
  updates                              print the raw getUpdates response
  chats                                print the username to chat id directory
  notify   -subject <s> -body <b>      send a message to the configured recipients
`

var registry = prometheus.NewRegistry()

type Application struct {
	debug  bool
	logger zerolog.Logger
	client *telegram.Client
	out    io.Writer
	errOut io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	fs := flag.NewFlagSet("tgnotify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := fs.String("config", os.Getenv("TGNOTIFY_CONFIG"), "Path to the YAML config file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}

	logger := GetLogger(stderr, cfg.Log, cfg.Debug)

	app := &Application{
		debug:  cfg.Debug,
		logger: logger,
		out:    stdout,
		errOut: stderr,
		client: telegram.New(telegram.Config{
			Token:   cfg.Telegram.Token,
			BaseURL: cfg.Telegram.BaseURL,
			Timeout: cfg.Telegram.Timeout,
		}, telegram.WithLogger(logger)),
	}

	defer func() {
		if r := recover(); r != nil {
			app.logger.Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("PANIC")
			code = 1
		}
	}()

	if cfg.Metrics.Textfile != "" {
		metrics.MustRegister(registry)
		defer func() {
			if err := metrics.WriteTextfile(cfg.Metrics.Textfile, registry); err != nil {
				app.logger.Warn().Err(err).
					Str("path", cfg.Metrics.Textfile).
					Msg("Failed to write metrics")
			}
		}()
	}

	command, commandArgs := fs.Arg(0), fs.Args()[1:]
	switch command {
	case "send":
		err = app.runSend(ctx, commandArgs)
	case "updates":
		err = app.runUpdates(ctx, commandArgs)
	case "chats":
		err = app.runChats(ctx, commandArgs)
	case "notify":
		err = app.runNotify(ctx, cfg.Telegram.Recipients, commandArgs)
	default:
		fmt.Fprintf(stderr, "Unknown command %q\n\n", command)
		fs.Usage()
		return 2
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		app.logger.Error().Err(err).Str("command", command).Msg("Command failed")
		return 1
	}
	return 0
}
