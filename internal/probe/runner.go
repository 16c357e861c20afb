package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/okian/trailfeed/pkg/logger"
)

// ErrContractViolated is returned by Run when any response failed verification.
var ErrContractViolated = errors.New("response contract violated")

// Normalize fills unset fields with defaults.
func (c *Config) Normalize() {
	if c.Path == "" {
		c.Path = DefaultPath
	}
	if c.Requests <= 0 {
		c.Requests = DefaultRequests
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Run checks service health, fires Requests requests per check across Workers
// goroutines and verifies every response.
func Run(ctx context.Context, cfg *Config, checks []Check) (*Stats, error) {
	cfg.Normalize()
	log := logger.Get()
	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "starting trailfeed probe",
		logger.String("baseURL", cfg.BaseURL),
		logger.String("path", cfg.Path),
		logger.Int("requests", cfg.Requests),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout),
	)

	client := newHTTPClient(cfg.Timeout)
	if err := checkServiceHealth(ctx, client, cfg); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	results := fanOut(ctx, client, cfg, checks)
	for _, r := range results {
		stats.Sent++
		switch r.Outcome {
		case OutcomeOK:
			stats.OK++
		case OutcomeMissing:
			stats.Missing++
		case OutcomeFailed:
			stats.Failed++
			if len(stats.Failures) < maxReportedFailures {
				stats.Failures = append(stats.Failures, r)
			}
		}
		if cfg.Verbose {
			log.Debug(ctx, "response",
				logger.String("check", r.Check),
				logger.Int("status", r.Status),
				logger.Int("bytes", r.Bytes),
				logger.Duration("latency", r.Latency),
				logger.String("reason", r.Reason),
			)
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if stats.Failed > 0 {
		for _, f := range stats.Failures {
			log.Error(ctx, "contract violation", logger.String("check", f.Check), logger.String("reason", f.Reason))
		}
		return stats, fmt.Errorf("%w: %d of %d responses", ErrContractViolated, stats.Failed, stats.Sent)
	}
	return stats, nil
}

// fanOut issues every request through a bounded worker pool.
func fanOut(ctx context.Context, client *HTTPClient, cfg *Config, checks []Check) []Result {
	jobs := make(chan Check, cfg.Workers*workerChannelMultiplier)
	out := make(chan Result, cfg.Workers*workerChannelMultiplier)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for check := range jobs {
				out <- probeOnce(ctx, client, cfg, check)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < cfg.Requests; i++ {
			for _, check := range checks {
				select {
				case <-ctx.Done():
					return
				case jobs <- check:
				}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	results := make([]Result, 0, cfg.Requests*len(checks))
	for r := range out {
		results = append(results, r)
	}
	return results
}

func probeOnce(ctx context.Context, client *HTTPClient, cfg *Config, check Check) Result {
	start := time.Now()
	resp, err := client.Get(ctx, checkURL(cfg, check))
	if err != nil {
		return Result{Check: check.Name, Outcome: OutcomeFailed, Reason: err.Error(), Latency: time.Since(start)}
	}
	r := verify(check, resp)
	r.Latency = time.Since(start)
	return r
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, cfg *Config) error {
	resp, err := client.Get(ctx, healthURL(cfg))
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if resp.status != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.status)
	}
	return nil
}

// displayFinalStats logs the run summary.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var okRate, requestsPerSecond float64
	if stats.Sent > 0 {
		okRate = float64(stats.OK) / float64(stats.Sent) * percentageMultiplier
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.Sent) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("sent", stats.Sent),
		logger.Int("ok", stats.OK),
		logger.Int("missing", stats.Missing),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("okRate", okRate),
		logger.Float64("requestsPerSecond", requestsPerSecond),
	)
}
