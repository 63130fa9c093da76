// Package api wires the HTTP surface: public quoting, cart and checkout
// endpoints plus the session-guarded admin endpoints.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"insurance-api/internal/checkout"
	"insurance-api/internal/common/config"
	apperrors "insurance-api/internal/common/errors"
	"insurance-api/internal/common/logger"
	"insurance-api/internal/intents"
	"insurance-api/internal/leads"
	"insurance-api/internal/policy"
	"insurance-api/internal/quote"
	"insurance-api/internal/storage"
)

type Server struct {
	quotes    *quote.Service
	store     *storage.Store
	checkouts *checkout.Orchestrator
	policies  *policy.Store
	intents   *intents.Store
	leads     *leads.Store
	admin     config.AdminConfig
	errs      *apperrors.HTTPHandler
	logger    logger.Logger
}

func NewServer(
	quotes *quote.Service,
	store *storage.Store,
	checkouts *checkout.Orchestrator,
	policies *policy.Store,
	intentStore *intents.Store,
	leadStore *leads.Store,
	admin config.AdminConfig,
	log logger.Logger,
) *Server {
	return &Server{
		quotes:    quotes,
		store:     store,
		checkouts: checkouts,
		policies:  policies,
		intents:   intentStore,
		leads:     leadStore,
		admin:     admin,
		errs:      apperrors.NewHTTPHandler(log),
		logger:    log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

// Router assembles the chi routing tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(s.recordDuration)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/quote", s.handleQuote)
		r.Post("/quote/table", s.handleUploadRateTable)
		r.Delete("/quote/table", s.handleClearRateTable)

		r.Get("/cart", s.handleGetCart)
		r.Put("/cart", s.handlePutCart)
		r.Get("/payment-methods", s.handleListPaymentMethods)

		r.Post("/checkout/session", s.handleCheckoutSession)
		r.Post("/checkout", s.handleCheckout)
		r.Post("/webhook", s.handleWebhook)

		r.Post("/leads", s.handleCaptureLead)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", s.handleAdminLogin)

			r.Group(func(r chi.Router) {
				r.Use(s.requireSession)

				r.Post("/logout", s.handleAdminLogout)

				r.Get("/view-pref", s.handleGetViewPref)
				r.Put("/view-pref", s.handlePutViewPref)

				r.Get("/intents", s.handleListIntents)
				r.Post("/intents", s.handleCreateIntent)
				r.Post("/intents/import", s.handleImportIntents)
				r.Get("/intents/export", s.handleExportIntents)
				r.Put("/intents/{id}", s.handleUpdateIntent)
				r.Delete("/intents/{id}", s.handleDeleteIntent)
				r.Post("/intents/{id}/duplicate", s.handleDuplicateIntent)
				r.Post("/intents/{id}/toggle", s.handleToggleIntent)

				r.Get("/leads", s.handleListLeads)
				r.Put("/leads/{id}", s.handleUpdateLeadStatus)
			})
		})
	})

	r.Post("/policies", s.handleIssuePolicy)
	r.Get("/receipt/{policyID}", s.handleReceipt)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
