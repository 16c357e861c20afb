package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/trailfeed/internal/probe"
	"github.com/okian/trailfeed/pkg/logger"
	"github.com/spf13/pflag"
)

const defaultRunTimeout = 5 * time.Minute

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := pflag.NewFlagSet("probe", pflag.ContinueOnError)
	var (
		baseURL  = fs.StringP("url", "u", "http://localhost:9080", "Base URL of the service")
		path     = fs.String("path", probe.DefaultPath, "Dataset endpoint path")
		requests = fs.IntP("requests", "n", probe.DefaultRequests, "Requests per check")
		workers  = fs.IntP("workers", "w", runtime.NumCPU()*2, "Number of concurrent workers")
		timeout  = fs.Duration("timeout", probe.DefaultTimeout, "HTTP request timeout")
		verbose  = fs.BoolP("verbose", "v", false, "Log every response")
		jsonLogs = fs.Bool("json", false, "Emit JSON logs")
	)
	fs.Usage = func() {
		os.Stderr.WriteString("Usage: probe [flags]\n\nSmoke-tests a running trailfeed instance.\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	format := logger.FormatText
	if *jsonLogs {
		format = logger.FormatJSON
	}
	if err := logger.Init(logger.WithFormat(format)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	cfg := &probe.Config{
		BaseURL:  *baseURL,
		Path:     *path,
		Requests: *requests,
		Workers:  *workers,
		Timeout:  *timeout,
		Verbose:  *verbose,
	}
	if _, err := probe.Run(ctx, cfg, probe.DefaultChecks()); err != nil {
		logger.Get().Error(ctx, "probe failed", logger.Error(err))
		return 1
	}
	return 0
}
