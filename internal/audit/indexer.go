// Package audit records computed quotes in Elasticsearch for later analysis.
// Indexing is best-effort and never fails the quoting flow.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"

	"insurance-api/internal/common/logger"
	"insurance-api/internal/models"
)

// Entry is one indexed quote-audit document.
type Entry struct {
	QuoteID    string                 `json:"quoteId"`
	Source     string                 `json:"source"`
	Age        int                    `json:"age"`
	Plan       string                 `json:"plan"`
	SumInsured int                    `json:"sumInsured"`
	Smoker     bool                   `json:"smoker"`
	Premium    int                    `json:"premium"`
	Breakdown  []models.BreakdownLine `json:"breakdown"`
	RecordedAt time.Time              `json:"recordedAt"`
}

type Indexer struct {
	es     *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewIndexer(es *elasticsearch.Client, index string, log logger.Logger) *Indexer {
	return &Indexer{
		es:     es,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "audit"}),
	}
}

// RecordQuote indexes the quote. Failures log at warn and are otherwise
// swallowed.
func (ix *Indexer) RecordQuote(ctx context.Context, req models.QuoteRequest, result models.QuoteResult, source string) {
	entry := Entry{
		QuoteID:    uuid.New().String(),
		Source:     source,
		Age:        req.Applicant.Age,
		Plan:       string(req.Plan),
		SumInsured: req.SumInsured,
		Smoker:     req.Applicant.Smoker,
		Premium:    result.Premium,
		Breakdown:  result.Breakdown,
		RecordedAt: time.Now(),
	}

	doc, err := json.Marshal(entry)
	if err != nil {
		ix.logger.Warn("audit entry marshal failed", map[string]interface{}{"error": err.Error()})
		return
	}

	res, err := ix.es.Index(
		ix.index,
		bytes.NewReader(doc),
		ix.es.Index.WithDocumentID(entry.QuoteID),
		ix.es.Index.WithContext(ctx),
	)
	if err != nil {
		ix.logger.Warn("quote audit indexing failed", map[string]interface{}{"error": err.Error()})
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		ix.logger.Warn("quote audit indexing rejected", map[string]interface{}{
			"status": res.Status(),
		})
	}
}
