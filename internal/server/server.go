package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bloodlink/internal/search"
	"bloodlink/internal/stats"
	"bloodlink/internal/store"
	"bloodlink/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

// StorageModeReporter tells /healthz and /api/stats where data is served from
// and since when.
type StorageModeReporter interface {
	StorageMode() types.StorageMode
	ChangedAt() time.Time
}

type Service struct {
	logger   *logrus.Logger
	config   *types.Config
	donors   store.DonorStore
	requests store.RequestStore
	search   *search.Service
	stats    *stats.Service
	mode     StorageModeReporter

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	donors store.DonorStore,
	requests store.RequestStore,
	mode StorageModeReporter,
) (*Service, error) {
	if config.DefaultSearchRadiusKm <= 0 {
		return nil, fmt.Errorf("default search radius must be positive, got %v", config.DefaultSearchRadiusKm)
	}

	mux := flow.New()

	s := &Service{
		logger:   logger,
		config:   config,
		donors:   donors,
		requests: requests,
		search:   search.New(donors, logger),
		stats:    stats.New(donors, requests, mode),
		mode:     mode,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.NotFound = http.HandlerFunc(s.handleNotFound)
	r.MethodNotAllowed = http.HandlerFunc(s.handleMethodNotAllowed)

	r.Use(s.LoggingMiddleware)
	r.Use(s.StripTrailingSlash)

	r.HandleFunc("/", s.handleRoot, http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	// Fixed paths go before /:id, flow matches in declaration order.
	r.HandleFunc("/api/donors", s.handleListDonors, http.MethodGet)
	r.HandleFunc("/api/donors", s.handleCreateDonor, http.MethodPost)
	r.HandleFunc("/api/donors/search", s.handleSearchDonors, http.MethodGet)
	r.HandleFunc("/api/donors/nearby", s.handleNearbyDonors, http.MethodGet)
	r.HandleFunc("/api/donors/:id", s.handleGetDonor, http.MethodGet)
	r.HandleFunc("/api/donors/:id/availability", s.handleSetDonorAvailability, http.MethodPatch)

	r.HandleFunc("/api/requests", s.handleListRequests, http.MethodGet)
	r.HandleFunc("/api/requests", s.handleCreateRequest, http.MethodPost)
	r.HandleFunc("/api/requests/urgent", s.handleUrgentRequests, http.MethodGet)
	r.HandleFunc("/api/requests/status/:status", s.handleRequestsByStatus, http.MethodGet)
	r.HandleFunc("/api/requests/:id", s.handleGetRequest, http.MethodGet)
	r.HandleFunc("/api/requests/:id", s.handleDeleteRequest, http.MethodDelete)
	r.HandleFunc("/api/requests/:id/status", s.handleUpdateRequestStatus, http.MethodPatch)
	r.HandleFunc("/api/requests/:id/rate", s.handleRateRequest, http.MethodPatch)
	r.HandleFunc("/api/requests/:id/matches", s.handleRequestMatches, http.MethodGet)

	r.HandleFunc("/api/stats", s.handleStats, http.MethodGet)
}
