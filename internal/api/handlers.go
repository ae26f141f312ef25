// Package api exposes the report, chart, and KPI endpoints over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/brightpulse/social-monitor/internal/config"
	"github.com/brightpulse/social-monitor/internal/pkg/httputil"
	"github.com/brightpulse/social-monitor/internal/report"
)

// ReportCache is the optional cache in front of report assembly. A nil
// cache means every request recomputes from the connector.
type ReportCache interface {
	GetReport(ctx context.Context, company, platform, month string) (*report.Report, bool)
	SetReport(ctx context.Context, rpt *report.Report)
}

// Handlers holds the dependencies shared by all HTTP handlers.
type Handlers struct {
	cfg       *config.Config
	assembler *report.Assembler
	fetcher   report.StreamFetcher
	cache     ReportCache
	startTime time.Time
}

// NewHandlers creates the handler set. cache may be nil.
func NewHandlers(cfg *config.Config, assembler *report.Assembler, fetcher report.StreamFetcher, cache ReportCache) *Handlers {
	return &Handlers{
		cfg:       cfg,
		assembler: assembler,
		fetcher:   fetcher,
		cache:     cache,
		startTime: time.Now(),
	}
}

// HealthCheck reports service liveness and uptime.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]any{
		"status":  "healthy",
		"service": "social-monitor",
		"uptime":  time.Since(h.startTime).Round(time.Second).String(),
	})
}

// company resolves a configured company into the report-layer shape.
func (h *Handlers) company(id string) (report.Company, bool) {
	cc, ok := h.cfg.Company(id)
	if !ok {
		return report.Company{}, false
	}
	return report.Company{ID: cc.ID, Name: cc.Name, Accounts: cc.Accounts}, true
}
