// Package soil looks up the dominant soil of an area of interest through the
// USDA Soil Data Access (SDA) report service and turns it into basin inputs.
package soil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/geo"
)

// DefaultURL is the SDA tabular post endpoint.
const DefaultURL = "https://sdmdataaccess.sc.egov.usda.gov/Tabular/post.rest"

// preferredReport is matched case-insensitively against catalog report names.
const preferredReport = "component legend"

// ErrUpstream is returned when SDA answers with something unusable.
var ErrUpstream = errors.New("soil data access")

// Client talks to the SDA report service.
type Client struct {
	URL  string
	HTTP *http.Client
}

// NewClient creates a client for url with the given request timeout.
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{URL: url, HTTP: &http.Client{Timeout: timeout}}
}

type catalogReport struct {
	ReportID   json.Number `json:"reportid"`
	ReportName string      `json:"reportname"`
}

type catalog struct {
	Tables []struct {
		Folders []struct {
			Reports []catalogReport `json:"reports"`
		} `json:"folders"`
	} `json:"tables"`
}

// Lookup creates an area of interest for b, runs the component legend
// report over it and returns the map units sorted by acreage.
func (c *Client) Lookup(ctx context.Context, b geo.Bounds) ([]MapUnit, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	// 1. Area of interest. AOICOORDS is GeoJSON text, not an object.
	var aoi struct {
		ID json.Number `json:"id"`
	}
	err := c.postJSON(ctx, map[string]any{
		"SERVICE":   "aoi",
		"REQUEST":   "create",
		"AOICOORDS": b.FeatureCollection("Area of Interest").String(),
	}, &aoi)
	if err != nil {
		return nil, fmt.Errorf("create aoi: %w", err)
	}
	if aoi.ID == "" {
		return nil, fmt.Errorf("%w: aoi creation returned no id", ErrUpstream)
	}

	// 2. Report catalog
	var cat catalog
	err = c.postJSON(ctx, map[string]any{
		"SERVICE": "report",
		"REQUEST": "getcatalog",
		"AOIID":   aoi.ID,
	}, &cat)
	if err != nil {
		return nil, fmt.Errorf("get catalog: %w", err)
	}
	report, err := selectReport(cat)
	if err != nil {
		return nil, err
	}

	// 3. Report metadata
	var data json.RawMessage
	err = c.postJSON(ctx, map[string]any{
		"SERVICE":  "report",
		"REQUEST":  "getreportdata",
		"REPORTID": report.ReportID,
		"AOIID":    aoi.ID,
		"FORMAT":   "short",
	}, &data)
	if err != nil {
		return nil, fmt.Errorf("get report data: %w", err)
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, fmt.Errorf("%w: empty report data", ErrUpstream)
	}

	// 4. Report body
	body, err := c.post(ctx, map[string]any{
		"SERVICE":       "report",
		"REQUEST":       "getreport",
		"SHORTFORMDATA": string(data),
	})
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}

	return ParseReport(bytes.NewReader(body))
}

func selectReport(cat catalog) (catalogReport, error) {
	if len(cat.Tables) == 0 || len(cat.Tables[0].Folders) == 0 {
		return catalogReport{}, fmt.Errorf("%w: invalid catalog format", ErrUpstream)
	}
	folders := cat.Tables[0].Folders
	for _, f := range folders {
		for _, r := range f.Reports {
			if strings.Contains(strings.ToLower(r.ReportName), preferredReport) {
				return r, nil
			}
		}
	}
	if len(folders[0].Reports) == 0 {
		return catalogReport{}, fmt.Errorf("%w: catalog has no reports", ErrUpstream)
	}
	return folders[0].Reports[0], nil
}

func (c *Client) post(ctx context.Context, payload any) ([]byte, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrUpstream, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func (c *Client) postJSON(ctx context.Context, payload, out any) error {
	body, err := c.post(ctx, payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode payload: %v", ErrUpstream, err)
	}
	return nil
}
