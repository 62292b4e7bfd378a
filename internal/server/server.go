package server

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fulfillcalc/internal/logging"
	"fulfillcalc/internal/metrics"
	"fulfillcalc/internal/pricing"
	"fulfillcalc/internal/rate"
	"fulfillcalc/internal/validation"
)

type Server struct {
	log     *logging.Logger
	metrics *metrics.Metrics
	est     rate.Estimator
	eval    *pricing.Evaluator
}

// New builds the router with the default linear self-managed rate.
// A nil logger discards output; nil metrics disables /metrics.
func New(log *logging.Logger, m *metrics.Metrics) http.Handler {
	return NewWithEstimator(log, m, nil)
}

// NewWithEstimator allows injecting a custom Estimator implementation.
func NewWithEstimator(log *logging.Logger, m *metrics.Metrics, est rate.Estimator) http.Handler {
	if log == nil {
		log = logging.Discard()
	}
	if est == nil {
		est = rate.NewLinear()
	}
	s := &Server{log: log, metrics: m, est: est, eval: pricing.NewEvaluator(est)}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(logging.Middleware(log))
	if m != nil {
		r.Use(m.Middleware)
	}
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/fees", s.handleGetFees)
	r.Get("/rates", s.handleGetRates)
	r.Post("/evaluate", s.handleEvaluate)
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Fees
type FeesResponse struct {
	Currency   string             `json:"currency"`
	Tiers      []pricing.FeeRow   `json:"tiers"`
	Surcharges pricing.Surcharges `json:"surcharges"`
}

func (s *Server) handleGetFees(w http.ResponseWriter, r *http.Request) {
	rows, surcharges := pricing.FeeTable()
	writeJSON(w, http.StatusOK, FeesResponse{Currency: "EUR", Tiers: rows, Surcharges: surcharges})
}

// Rates quotes self-managed shipping for a single parcel.
type RateResponse struct {
	Destination rate.Destination `json:"destination"`
	Volume      decimal.Decimal  `json:"volume_liters"`
	Amount      decimal.Decimal  `json:"amount"`
}

func (s *Server) handleGetRates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dest, err := rate.ParseDestination(q.Get("destination"))
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	var p rate.Parcel
	params := []struct {
		name string
		dst  *float64
	}{
		{"length", &p.Length},
		{"width", &p.Width},
		{"height", &p.Height},
		{"weight", &p.Weight},
	}
	for _, param := range params {
		v := q.Get(param.name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
			writeErrorJSON(w, http.StatusBadRequest, "invalid_request", param.name+" must be a finite non-negative number")
			return
		}
		*param.dst = f
	}
	writeJSON(w, http.StatusOK, RateResponse{
		Destination: dest,
		Volume:      rate.Volume(p),
		Amount:      s.est.Estimate(dest, p),
	})
}

// Evaluate
type ChartBar struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type EvaluateResponse struct {
	pricing.Decision
	Currency string     `json:"currency"`
	Chart    []ChartBar `json:"chart"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req pricing.Request
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if err := validation.Struct(req); err != nil {
		var fields validation.FieldErrors
		if errors.As(err, &fields) {
			writeError(w, http.StatusBadRequest, "validation_failed", "validation failed", fields)
			return
		}
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	log := s.log.WithRequestID(w.Header().Get("X-Request-ID"))
	d, err := s.eval.Evaluate(req)
	if err != nil {
		s.observe(req.Destination, metrics.OutcomeRejected)
		var tooLarge *pricing.ItemTooLargeError
		if errors.As(err, &tooLarge) {
			log.Warn("item too large for logistics program",
				"item", tooLarge.Index, "volumeLiters", tooLarge.Volume.String())
			writeError(w, http.StatusUnprocessableEntity, "item_too_large", tooLarge.Error(),
				map[string]string{"item": strconv.Itoa(tooLarge.Index)})
			return
		}
		log.Info("evaluation rejected", "error", err)
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	s.observe(req.Destination, d.Cheaper)
	log.Info("evaluation complete",
		"destination", req.Destination,
		"items", len(req.Items),
		"logisticsTotal", d.LogisticsTotal.String(),
		"selfManagedTotal", d.SelfManagedTotal.String(),
		"cheaper", d.Cheaper,
	)
	writeJSON(w, http.StatusOK, EvaluateResponse{
		Decision: d,
		Currency: "EUR",
		Chart: []ChartBar{
			{Label: pricing.OptionLogistics, Amount: d.LogisticsTotal},
			{Label: d.SelfManagedLabel, Amount: d.SelfManagedTotal},
		},
	})
}

func (s *Server) observe(dest rate.Destination, outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveEvaluation(string(dest), outcome)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErrorJSON writes a standardized JSON error response:
// {"error": {"code": string, "message": string}}
func writeErrorJSON(w http.ResponseWriter, status int, code string, message string) {
	writeError(w, status, code, message, nil)
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string, details map[string]string) {
	writeJSON(w, status, map[string]errorBody{
		"error": {Code: code, Message: message, Details: details},
	})
}

// requestIDMiddleware ensures X-Request-ID is set on the response.
// If provided in the request header, it is propagated; otherwise a UUID is generated.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if rid == "" {
			rid = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", rid)
		next.ServeHTTP(w, r)
	})
}
