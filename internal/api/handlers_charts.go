package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brightpulse/social-monitor/internal/charts"
	"github.com/brightpulse/social-monitor/internal/pkg/httputil"
	"github.com/brightpulse/social-monitor/internal/pkg/logger"
	"github.com/brightpulse/social-monitor/internal/report"
)

// chartGenerateRequest is the POST body for ad-hoc chart generation.
type chartGenerateRequest struct {
	Account  string           `json:"account"`
	Platform string           `json:"platform"`
	Month    string           `json:"month"`
	Charts   []charts.Request `json:"charts"`
}

// GenerateCharts fetches the raw streams for one account and month and
// generates the requested charts from them.
func (h *Handlers) GenerateCharts(w http.ResponseWriter, r *http.Request) {
	var req chartGenerateRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if req.Account == "" || req.Platform == "" {
		httputil.BadRequest(w, "account and platform are required")
		return
	}
	if len(req.Charts) == 0 {
		httputil.BadRequest(w, "charts list is empty")
		return
	}

	cur, _, err := report.MonthRange(req.Month)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	jobID := uuid.NewString()
	logger.Info("chart generation requested",
		"job_id", jobID, "account", req.Account, "platform", req.Platform,
		"month", req.Month, "charts", len(req.Charts))

	account := report.Account{Platform: req.Platform, ID: req.Account}
	streams := h.fetcher.FetchStreams(r.Context(), account, cur)

	result, err := charts.Generate(req.Account, req.Platform, cur, req.Charts, streams)
	if err != nil {
		if errors.Is(err, charts.ErrUnknownPlatform) {
			httputil.BadRequest(w, err.Error())
			return
		}
		httputil.InternalError(w, err)
		return
	}

	httputil.OK(w, map[string]any{
		"jobId":  jobID,
		"result": result,
	})
}

// GetKPIs computes the flat KPI summary for one company's platform account
// over a month.
func (h *Handlers) GetKPIs(w http.ResponseWriter, r *http.Request) {
	platform := chi.URLParam(r, "platform")
	companyID := r.URL.Query().Get("company")
	month := r.URL.Query().Get("month")

	company, ok := h.company(companyID)
	if !ok {
		httputil.NotFound(w, "unknown company: "+companyID)
		return
	}
	accountID, ok := company.Accounts[platform]
	if !ok || accountID == "" {
		httputil.NotFound(w, "company "+companyID+" has no "+platform+" account")
		return
	}

	cur, _, err := report.MonthRange(month)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	account := report.Account{Platform: platform, ID: accountID}
	streams := h.fetcher.FetchStreams(r.Context(), account, cur)

	kpis, err := charts.KPIs(accountID, platform, cur, streams)
	if err != nil {
		if errors.Is(err, charts.ErrUnknownPlatform) {
			httputil.BadRequest(w, err.Error())
			return
		}
		httputil.InternalError(w, err)
		return
	}

	httputil.OK(w, map[string]any{
		"company":  companyID,
		"platform": platform,
		"month":    month,
		"kpis":     kpis,
	})
}

// GetChartCatalog lists the chart definitions available for one platform.
func (h *Handlers) GetChartCatalog(w http.ResponseWriter, r *http.Request) {
	platform := chi.URLParam(r, "platform")
	if !charts.KnownPlatform(platform) {
		httputil.NotFound(w, "unknown platform: "+platform)
		return
	}
	httputil.OK(w, map[string]any{
		"platform": platform,
		"charts":   charts.ByPlatform(platform),
	})
}
