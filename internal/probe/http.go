package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/okian/radar/internal/domain/model"
	"github.com/okian/radar/pkg/logger"
)

// maxResponseBytes bounds every response body read by the probe.
const maxResponseBytes = 1 << 20

// httpClient wraps http.Client with a base URL and timeout.
type httpClient struct {
	client  *http.Client
	baseURL string
}

func newHTTPClient(baseURL string, timeout time.Duration) *httpClient {
	return &httpClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// get issues a GET against path and returns the status code and body.
func (c *httpClient) get(ctx context.Context, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to reach %s: %w", path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(ctx, "failed to close response body", logger.Error(err))
		}
	}()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return resp.StatusCode, body, nil
}

// getJSON decodes a 200 response from path into v.
func (c *httpClient) getJSON(ctx context.Context, path string, v any) error {
	code, body, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if code != http.StatusOK {
		return fmt.Errorf("%s returned status %d", path, code)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

type yearsResponse struct {
	Years []int `json:"years"`
}

type alignmentResponse struct {
	Year   int     `json:"year"`
	Score  float64 `json:"score"`
	Status string  `json:"status"`
}

func (c *httpClient) years(ctx context.Context) ([]int, error) {
	var resp yearsResponse
	if err := c.getJSON(ctx, "/years", &resp); err != nil {
		return nil, err
	}
	return resp.Years, nil
}

func (c *httpClient) record(ctx context.Context, year int) (model.MetricRecord, error) {
	var rec model.MetricRecord
	err := c.getJSON(ctx, "/records/"+strconv.Itoa(year), &rec)
	return rec, err
}

func (c *httpClient) alignment(ctx context.Context, year int) (alignmentResponse, error) {
	var resp alignmentResponse
	err := c.getJSON(ctx, "/alignment/"+strconv.Itoa(year), &resp)
	return resp, err
}
