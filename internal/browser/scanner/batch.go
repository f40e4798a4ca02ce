package scanner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/geofill/geofill-cli/api/schemas"
	"github.com/geofill/geofill-cli/internal/browser/dom"
)

// Page is a loaded document with its visibility oracle.
type Page struct {
	Document *dom.Document
	Oracle   dom.VisibilityOracle
	Info     PageInfo
	// Close releases the page. May be nil.
	Close func() error
}

// Opener loads one target.
type Opener func(ctx context.Context, target string) (*Page, error)

// Outcome is the scan of one target. Exactly one of Result and Err is set.
type Outcome struct {
	Target string              `json:"target" yaml:"target"`
	Result *schemas.ScanResult `json:"result,omitempty" yaml:"result,omitempty"`
	Err    error               `json:"-" yaml:"-"`
	Error  string              `json:"error,omitempty" yaml:"error,omitempty"`
}

// BatchOption configures ScanAll.
type BatchOption func(*batch)

type batch struct {
	concurrency int
	limiter     *rate.Limiter
}

// WithConcurrency caps the number of targets loaded at once.
func WithConcurrency(n int) BatchOption {
	return func(b *batch) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithRateLimiter makes every navigation wait on limiter.
func WithRateLimiter(limiter *rate.Limiter) BatchOption {
	return func(b *batch) { b.limiter = limiter }
}

// ScanAll opens and scans targets concurrently. Outcomes keep the order of
// targets. A failing target does not stop the others; the returned error is
// only set when ctx ends first.
func (s *Scanner) ScanAll(ctx context.Context, targets []string, open Opener, opts ...BatchOption) ([]Outcome, error) {
	b := batch{concurrency: 4}
	for _, opt := range opts {
		opt(&b)
	}

	s.logger.Info("Starting batch scan.", zap.Int("targets", len(targets)), zap.Int("concurrency", b.concurrency))
	start := time.Now()

	outcomes := make([]Outcome, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, target := range targets {
		outcomes[i].Target = target
		g.Go(func() error {
			res, err := s.scanOne(gctx, target, open, b.limiter)
			if err != nil {
				s.logger.Warn("Scan failed.", zap.String("target", target), zap.Error(err))
				outcomes[i].Err = err
				outcomes[i].Error = err.Error()
				return nil
			}
			outcomes[i].Result = res
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Info("Batch scan finished.", zap.Int("targets", len(targets)), zap.Duration("elapsed", time.Since(start)))
	return outcomes, ctx.Err()
}

func (s *Scanner) scanOne(ctx context.Context, target string, open Opener, limiter *rate.Limiter) (*schemas.ScanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}
	page, err := open(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", target, err)
	}
	if page.Close != nil {
		defer func() {
			if cerr := page.Close(); cerr != nil {
				s.logger.Debug("Failed to close page.", zap.String("target", target), zap.Error(cerr))
			}
		}()
	}
	info := page.Info
	if info.URL == "" {
		info.URL = target
	}
	res := s.Scan(page.Document, page.Oracle, info)
	return &res, nil
}
