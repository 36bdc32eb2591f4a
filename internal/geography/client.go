package geography

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ecoleta/platform/logger"
	"ecoleta/platform/metrics"
)

const (
	resourceStates = "states"
	resourceCities = "cities"
)

// Client talks to the IBGE localidades API.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates an IBGE client. baseURL has no trailing slash.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// FetchUFs returns the state codes (sigla) in upstream order.
func (c *Client) FetchUFs(ctx context.Context) ([]string, error) {
	var raw []ibgeState
	if err := c.get(ctx, resourceStates, c.baseURL+"/estados", &raw); err != nil {
		return nil, err
	}

	ufs := make([]string, 0, len(raw))
	for _, state := range raw {
		if state.Sigla != "" {
			ufs = append(ufs, state.Sigla)
		}
	}
	return ufs, nil
}

// FetchCities returns the municipality names of uf in upstream order.
func (c *Client) FetchCities(ctx context.Context, uf string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/estados/%s/municipios", c.baseURL, url.PathEscape(uf))

	var raw []ibgeCity
	if err := c.get(ctx, resourceCities, endpoint, &raw); err != nil {
		return nil, err
	}

	cities := make([]string, 0, len(raw))
	for _, city := range raw {
		if city.Nome != "" {
			cities = append(cities, city.Nome)
		}
	}
	return cities, nil
}

func (c *Client) get(ctx context.Context, resource, endpoint string, out interface{}) error {
	start := time.Now()
	defer func() {
		metrics.GeographyUpstreamDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Ecoleta/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.GeographyUpstreamRequests.WithLabelValues(resource, "error").Inc()
		c.log.WithContext(ctx).UpstreamError("ibge", resource, 0, err)
		return fmt.Errorf("ibge %s request: %w", resource, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		metrics.GeographyUpstreamRequests.WithLabelValues(resource, "error").Inc()
		err := fmt.Errorf("ibge %s: upstream status %d", resource, resp.StatusCode)
		c.log.WithContext(ctx).UpstreamError("ibge", resource, resp.StatusCode, err)
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.GeographyUpstreamRequests.WithLabelValues(resource, "error").Inc()
		c.log.WithContext(ctx).UpstreamError("ibge", resource, resp.StatusCode, err)
		return fmt.Errorf("decode ibge %s: %w", resource, err)
	}

	metrics.GeographyUpstreamRequests.WithLabelValues(resource, "ok").Inc()
	return nil
}
