package windsor

import (
	"context"
	"sync"

	"github.com/brightpulse/social-monitor/internal/report"
)

// Fetcher resolves all raw streams for one account with one concurrent
// fan-out per report. The aggregation engine only ever sees the fully
// resolved RawStreams; per-stream failures travel in the struct so the
// assembler can apply its degradation policy.
type Fetcher struct {
	client *Client
}

// NewFetcher creates a Fetcher over the given connector client.
func NewFetcher(client *Client) *Fetcher {
	return &Fetcher{client: client}
}

// FetchStreams fetches the five raw streams concurrently and returns once
// all have resolved.
func (f *Fetcher) FetchStreams(ctx context.Context, account report.Account, r report.DateRange) report.RawStreams {
	var streams report.RawStreams
	var wg sync.WaitGroup

	wg.Add(5)
	go func() {
		defer wg.Done()
		streams.Daily, streams.DailyErr = f.client.FetchDaily(ctx, account, r)
	}()
	go func() {
		defer wg.Done()
		streams.Content, streams.ContentErr = f.client.FetchContent(ctx, account, r)
	}()
	go func() {
		defer wg.Done()
		streams.Gender, streams.GenderErr = f.client.FetchGender(ctx, account, r)
	}()
	go func() {
		defer wg.Done()
		streams.Ages, streams.AgesErr = f.client.FetchAges(ctx, account, r)
	}()
	go func() {
		defer wg.Done()
		streams.Hourly, streams.HourlyErr = f.client.FetchHourly(ctx, account, r)
	}()
	wg.Wait()

	return streams
}

// FetchDaily fetches just the daily stream, used for previous-period
// comparisons.
func (f *Fetcher) FetchDaily(ctx context.Context, account report.Account, r report.DateRange) ([]report.DailyRow, error) {
	return f.client.FetchDaily(ctx, account, r)
}
