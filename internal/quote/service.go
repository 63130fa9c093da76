package quote

import (
	"context"
	"time"

	"insurance-api/internal/common/logger"
	"insurance-api/internal/common/metrics"
	"insurance-api/internal/common/observability"
	"insurance-api/internal/models"
	"insurance-api/internal/pricing"
)

// RemotePricer issues a single call to the remote pricing service.
type RemotePricer interface {
	Quote(ctx context.Context, req models.QuoteRequest) (*models.QuoteResult, error)
}

// TableSource supplies the uploaded rate table, nil when none exists.
type TableSource interface {
	LoadRateTable(ctx context.Context) (*pricing.RateTable, error)
}

// Auditor records computed quotes for later analysis. Implementations must
// never fail the quoting flow.
type Auditor interface {
	RecordQuote(ctx context.Context, req models.QuoteRequest, result models.QuoteResult, source string)
}

// Service orchestrates quoting: one remote attempt, then the local fallback
// chain (uploaded table, then built-in defaults). The local chain never
// errors on a validated request, which keeps the flow total: a visitor
// always gets a quote.
type Service struct {
	remote  RemotePricer
	tables  TableSource
	auditor Auditor
	obs     *observability.Observability
	logger  logger.Logger
}

func NewService(remote RemotePricer, tables TableSource, auditor Auditor, obs *observability.Observability, log logger.Logger) *Service {
	return &Service{
		remote:  remote,
		tables:  tables,
		auditor: auditor,
		obs:     obs,
		logger:  log.WithFields(map[string]interface{}{"component": "quote"}),
	}
}

// Execute computes a quote for a validated request.
func (s *Service) Execute(ctx context.Context, req models.QuoteRequest) (*Outcome, error) {
	start := time.Now()

	outcome := s.compute(ctx, req)

	metrics.QuotesComputed.WithLabelValues(outcome.Source).Inc()
	if s.obs != nil {
		s.obs.RecordQuoteProcessed(ctx, outcome.Source)
		s.obs.RecordQuoteDuration(ctx, time.Since(start), outcome.Source)
	}
	if s.auditor != nil {
		s.auditor.RecordQuote(ctx, req, outcome.Result, outcome.Source)
	}

	s.logger.Info("quote computed", map[string]interface{}{
		"source":  outcome.Source,
		"premium": outcome.Result.Premium,
		"plan":    req.Plan,
	})

	return outcome, nil
}

func (s *Service) compute(ctx context.Context, req models.QuoteRequest) *Outcome {
	if s.remote != nil {
		result, err := s.remote.Quote(ctx, req)
		if err == nil {
			return &Outcome{Result: *result, Source: SourceRemote}
		}
		s.logger.Warn("remote pricing unavailable, falling back", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if s.tables != nil {
		table, err := s.tables.LoadRateTable(ctx)
		if err != nil {
			// Unreadable or unreachable table downgrades to defaults. Logged,
			// not fatal.
			s.logger.Warn("rate table unavailable, using default rates", map[string]interface{}{
				"error": err.Error(),
			})
		} else if table != nil {
			return &Outcome{Result: pricing.QuoteWithTable(req, table), Source: SourceFallbackTable}
		}
	}

	return &Outcome{Result: pricing.Quote(req), Source: SourceFallbackDefault}
}
