// File: cmd/pages.go
package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/geofill/geofill-cli/internal/browser/scanner"
	"github.com/geofill/geofill-cli/internal/browser/session"
	"github.com/geofill/geofill-cli/internal/config"
)

// pageOpener opens targets with the configured backend. All pages opened by
// one opener share its navigation limiter.
type pageOpener struct {
	cfg     *config.Config
	limiter *rate.Limiter
	logger  *zap.Logger
}

func newPageOpener(cfg *config.Config, logger *zap.Logger) *pageOpener {
	return &pageOpener{cfg: cfg, limiter: newLimiter(cfg.Network()), logger: logger}
}

// newLimiter returns nil when navigations are unlimited.
func newLimiter(cfg config.NetworkConfig) *rate.Limiter {
	if cfg.RateLimit <= 0 {
		return nil
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
}

func (o *pageOpener) open(ctx context.Context, target string) (session.Page, error) {
	switch o.cfg.Browser().Backend {
	case config.BackendChrome:
		s, err := session.NewChrome(ctx, o.cfg.Browser(), o.cfg.Network(), o.logger, session.WithChromeLimiter(o.limiter))
		if err != nil {
			return nil, err
		}
		if err := s.Open(ctx, target); err != nil {
			_ = s.Close(context.Background())
			return nil, err
		}
		return s, nil
	default:
		var opts []session.Option
		if o.limiter != nil {
			opts = append(opts, session.WithLimiter(o.limiter))
		}
		s, err := session.New(o.cfg.Network(), o.logger, opts...)
		if err != nil {
			return nil, err
		}
		if err := s.Open(ctx, target); err != nil {
			_ = s.Close(context.Background())
			return nil, err
		}
		return s, nil
	}
}

// scannerOpener adapts open to the scanner's batch runner.
func (o *pageOpener) scannerOpener() scanner.Opener {
	return func(ctx context.Context, target string) (*scanner.Page, error) {
		p, err := o.open(ctx, target)
		if err != nil {
			return nil, err
		}
		doc, err := p.Document()
		if err != nil {
			_ = p.Close(context.Background())
			return nil, err
		}
		oracle, err := p.Oracle()
		if err != nil {
			_ = p.Close(context.Background())
			return nil, err
		}
		return &scanner.Page{
			Document: doc,
			Oracle:   oracle,
			Info:     scanner.PageInfo{URL: p.URL(), BrowserLanguage: p.Language()},
			Close: func() error {
				if err := p.Close(context.Background()); err != nil {
					return fmt.Errorf("closing %s: %w", target, err)
				}
				return nil
			},
		}, nil
	}
}
