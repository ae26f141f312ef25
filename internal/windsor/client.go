package windsor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/brightpulse/social-monitor/internal/config"
	"github.com/brightpulse/social-monitor/internal/pkg/httpretry"
	"github.com/brightpulse/social-monitor/internal/report"
)

// Client is a Windsor connector API client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpretry.HTTPDoer
}

// NewClient creates a new Windsor connector client
func NewClient(cfg config.WindsorConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: httpretry.NewRetryClient(&http.Client{
			Timeout: cfg.Timeout(),
		}, cfg.MaxRetries),
	}
}

// fetchRows requests one platform endpoint and returns the raw row maps.
func (c *Client) fetchRows(ctx context.Context, platform, accountID string, fields []string, r report.DateRange) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("date_from", r.From.Format("2006-01-02"))
	params.Set("date_to", r.To.Format("2006-01-02"))
	params.Set("fields", strings.Join(fields, ","))
	params.Set("select_accounts", accountID)

	fullURL := c.baseURL + "/" + platform + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("connector error (status %d): %s", resp.StatusCode, string(body))
	}

	var envelope connectorResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return envelope.Data, nil
}

func platformFields(platform string) (fieldMap, error) {
	fm, ok := fieldMaps[platform]
	if !ok {
		return fieldMap{}, fmt.Errorf("windsor: unsupported platform %q", platform)
	}
	return fm, nil
}

// FetchDaily returns the raw daily snapshots for one account and range,
// mapped onto canonical metric keys.
func (c *Client) FetchDaily(ctx context.Context, account report.Account, r report.DateRange) ([]report.DailyRow, error) {
	fm, err := platformFields(account.Platform)
	if err != nil {
		return nil, err
	}
	raw, err := c.fetchRows(ctx, account.Platform, account.ID, fm.dailyFields(), r)
	if err != nil {
		return nil, err
	}

	rows := make([]report.DailyRow, 0, len(raw))
	for _, m := range raw {
		row := report.DailyRow{
			Date:      stringField(m, fm.date),
			Flows:     make(map[string]any, len(fm.flows)),
			Followers: m[fm.followers],
		}
		for key, field := range fm.flows {
			if v, ok := m[field]; ok {
				row.Flows[key] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FetchContent returns the raw per-video/per-post snapshots for one
// account and range.
func (c *Client) FetchContent(ctx context.Context, account report.Account, r report.DateRange) ([]report.ContentRow, error) {
	fm, err := platformFields(account.Platform)
	if err != nil {
		return nil, err
	}
	raw, err := c.fetchRows(ctx, account.Platform, account.ID, fm.contentFields(), r)
	if err != nil {
		return nil, err
	}

	rows := make([]report.ContentRow, 0, len(raw))
	for _, m := range raw {
		row := report.ContentRow{
			ID:        stringField(m, fm.contentID),
			CreatedAt: stringField(m, fm.contentCreated),
			Title:     stringField(m, fm.contentTitle),
			Metrics:   make(map[string]any, len(fm.content)),
		}
		for key, field := range fm.content {
			if v, ok := m[field]; ok {
				row.Metrics[key] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FetchGender returns the raw gender distribution rows.
func (c *Client) FetchGender(ctx context.Context, account report.Account, r report.DateRange) ([]report.CategoryRow, error) {
	return c.fetchCategories(ctx, account, r, func(fm fieldMap) (string, string) {
		return fm.gender, fm.percent
	})
}

// FetchAges returns the raw age distribution rows.
func (c *Client) FetchAges(ctx context.Context, account report.Account, r report.DateRange) ([]report.CategoryRow, error) {
	return c.fetchCategories(ctx, account, r, func(fm fieldMap) (string, string) {
		return fm.age, fm.percent
	})
}

func (c *Client) fetchCategories(ctx context.Context, account report.Account, r report.DateRange, pick func(fieldMap) (string, string)) ([]report.CategoryRow, error) {
	fm, err := platformFields(account.Platform)
	if err != nil {
		return nil, err
	}
	labelField, valueField := pick(fm)
	raw, err := c.fetchRows(ctx, account.Platform, account.ID, []string{labelField, valueField}, r)
	if err != nil {
		return nil, err
	}

	rows := make([]report.CategoryRow, 0, len(raw))
	for _, m := range raw {
		rows = append(rows, report.CategoryRow{
			Category: stringField(m, labelField),
			Value:    m[valueField],
		})
	}
	return rows, nil
}

// FetchHourly returns the raw audience-activity-by-hour rows.
func (c *Client) FetchHourly(ctx context.Context, account report.Account, r report.DateRange) ([]report.HourRow, error) {
	fm, err := platformFields(account.Platform)
	if err != nil {
		return nil, err
	}
	raw, err := c.fetchRows(ctx, account.Platform, account.ID, []string{fm.hour, fm.activeCount}, r)
	if err != nil {
		return nil, err
	}

	rows := make([]report.HourRow, 0, len(raw))
	for _, m := range raw {
		rows = append(rows, report.HourRow{
			Hour:  m[fm.hour],
			Value: m[fm.activeCount],
		})
	}
	return rows, nil
}

func stringField(m map[string]any, field string) string {
	switch v := m[field].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
