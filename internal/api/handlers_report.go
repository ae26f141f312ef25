package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brightpulse/social-monitor/internal/pkg/httputil"
	"github.com/brightpulse/social-monitor/internal/pkg/logger"
	"github.com/brightpulse/social-monitor/internal/report"
	"github.com/brightpulse/social-monitor/internal/storage"
)

// buildLocker is satisfied by the Redis-backed cache. When the configured
// cache supports it, concurrent requests for the same uncached report take
// a build lock so only one of them hits the connector.
type buildLocker interface {
	BuildLock(company, platform, month string) *storage.BuildLock
}

// GetCompanies lists the configured companies and their connected platforms.
func (h *Handlers) GetCompanies(w http.ResponseWriter, r *http.Request) {
	type companyInfo struct {
		ID        string   `json:"id"`
		Name      string   `json:"name"`
		Platforms []string `json:"platforms"`
	}

	companies := make([]companyInfo, 0, len(h.cfg.Companies))
	for _, cc := range h.cfg.Companies {
		platforms := make([]string, 0, len(cc.Accounts))
		for platform := range cc.Accounts {
			platforms = append(platforms, platform)
		}
		companies = append(companies, companyInfo{ID: cc.ID, Name: cc.Name, Platforms: platforms})
	}
	httputil.OK(w, map[string]any{"companies": companies})
}

// GetMonthlyReport assembles (or serves from cache) the monthly report for
// one company, platform, and month.
func (h *Handlers) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "company")
	month := chi.URLParam(r, "month")
	platform := r.URL.Query().Get("platform")
	if platform == "" {
		platform = h.cfg.Report.DefaultPlatform
	}

	company, ok := h.company(companyID)
	if !ok {
		httputil.NotFound(w, "unknown company: "+companyID)
		return
	}

	if h.cache != nil {
		if cached, hit := h.cache.GetReport(r.Context(), companyID, platform, month); hit {
			logger.Info("report served from cache",
				"company", companyID, "platform", platform, "month", month)
			httputil.OK(w, cached)
			return
		}
	}

	if bl, ok := h.cache.(buildLocker); ok {
		lock := bl.BuildLock(companyID, platform, month)
		if lock.TryAcquire(r.Context()) {
			defer lock.Release(r.Context())
		} else {
			// Another instance is assembling this exact report. Give it a
			// moment and serve its result if it lands in the cache.
			time.Sleep(500 * time.Millisecond)
			if cached, hit := h.cache.GetReport(r.Context(), companyID, platform, month); hit {
				httputil.OK(w, cached)
				return
			}
		}
	}

	rpt, err := h.assembler.MonthlyReport(r.Context(), company, platform, month)
	if err != nil {
		switch {
		case errors.Is(err, report.ErrNoAccount):
			httputil.NotFound(w, err.Error())
		case errors.Is(err, report.ErrBadMonth):
			httputil.BadRequest(w, err.Error())
		default:
			httputil.InternalError(w, err)
		}
		return
	}

	if h.cache != nil {
		h.cache.SetReport(r.Context(), rpt)
	}
	httputil.OK(w, rpt)
}
