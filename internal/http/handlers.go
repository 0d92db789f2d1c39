package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"donations/internal/analytics"
	"donations/internal/core"
	"donations/internal/log"
)

const readinessTimeout = 2 * time.Second

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"service":   serviceName,
		"timestamp": s.now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).Round(time.Second).String(),
	})
}

// handleReady reports whether the dataset is loaded and the server accepts traffic.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.ready.Load() || s.engine == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"checks": map[string]string{"dataset": "not loaded"},
		})
		return
	}

	o := s.engine.Overview()
	checks := map[string]any{
		"dataset": map[string]int{
			"categories": o.TotalCategories,
			"donations":  o.TotalDonations,
		},
	}

	if s.opts.HealthCheck != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()
		if err := s.opts.HealthCheck(ctx); err != nil {
			log.FromContext(r.Context()).WarnContext(r.Context(), "Readiness check failed", log.FieldError, err)
			checks["backend"] = "failed: " + err.Error()
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "not_ready", "checks": checks})
			return
		}
		checks["backend"] = "ok"
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "ready", "checks": checks})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	NotFoundError().Write(w)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	data := s.cached("overview", func() any { return s.engine.Overview() })
	NewResponse().Data(data).Timestamp(s.now()).Write(w)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	provided := r.PathValue("chartType")
	ct, ok := analytics.ParseChartType(provided)
	if !ok {
		log.FromContext(r.Context()).DebugContext(r.Context(), "Invalid chart type requested",
			log.FieldChartType, provided)
		BadRequestError("Invalid chart type", "").
			Field("validChartTypes", chartTypeNames()).
			Field("provided", provided).
			Write(w)
		return
	}

	data := s.cached("chart:"+ct.String(), func() any { return s.engine.ChartData(ct) })
	NewResponse().ChartType(ct.String()).Data(data).Timestamp(s.now()).Write(w)
}

func chartTypeNames() []string {
	types := analytics.ChartTypes()
	names := make([]string, len(types))
	for i, ct := range types {
		names[i] = ct.String()
	}
	return names
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	data := cachedList(s, "trends", s.engine.Trends)
	NewResponse().Data(data).Count(len(data)).Timestamp(s.now()).Write(w)
}

func (s *Server) handleCategoryPerformance(w http.ResponseWriter, r *http.Request) {
	data := cachedList(s, "category-performance", s.engine.CategoryPerformance)
	NewResponse().Data(data).Count(len(data)).Timestamp(s.now()).Write(w)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	NewResponse().Data(s.engine.Summary(now)).Timestamp(now).Write(w)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	NewResponse().Data(s.engine.Export(now)).Timestamp(now).Write(w)
}

func (s *Server) handleDonations(w http.ResponseWriter, r *http.Request) {
	data := cachedList(s, "donations", s.engine.ListDonations)
	NewResponse().Data(data).Count(len(data)).Timestamp(s.now()).Write(w)
}

func (s *Server) handleRunningLow(w http.ResponseWriter, r *http.Request) {
	data := cachedList(s, "donations:running-low", s.engine.RunningLowDonations)
	NewResponse().Data(data).Count(len(data)).Timestamp(s.now()).Write(w)
}

func (s *Server) handleByGender(w http.ResponseWriter, r *http.Request) {
	data := cachedList(s, "donations:by-gender", s.engine.DonationsByGender)
	NewResponse().Data(data).Timestamp(s.now()).Write(w)
}

func (s *Server) handleDonationsByCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("categoryId")
	data := cachedList(s, "donations:category:"+id, func() []core.Donation {
		return s.engine.DonationsByCategory(id)
	})
	NewResponse().Data(data).Count(len(data)).Timestamp(s.now()).Write(w)
}

func (s *Server) handleTopDonators(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(r)
	if !ok {
		BadRequestError("Invalid limit", "limit must be an integer").Write(w)
		return
	}

	data := cachedList(s, "donators:top:"+strconv.Itoa(limit), func() []analytics.DonatorTotal {
		return s.engine.TopDonators(limit)
	})
	NewResponse().Data(data).Count(len(data)).Timestamp(s.now()).Write(w)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	data := cachedList(s, "categories", s.engine.ListCategories)
	NewResponse().Data(data).Count(len(data)).Timestamp(s.now()).Write(w)
}

// parseLimit reads ?limit=N. A missing value yields 0, which the engine
// treats as its default.
func parseLimit(r *http.Request) (int, bool) {
	v := strings.TrimSpace(r.URL.Query().Get("limit"))
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	if n < 0 {
		n = 0
	}
	return n, true
}

func writeJSON(w http.ResponseWriter, status int, v map[string]any) {
	b := NewResponse().Status(status)
	b.fields = v
	b.Write(w)
}
