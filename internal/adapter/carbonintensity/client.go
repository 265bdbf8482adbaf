package carbonintensity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/seu-repo/energymix/internal/domain"
	"github.com/seu-repo/energymix/internal/observability/telemetry"
)

// RequestTimeLayout is the minute-precision UTC format the generation endpoint expects
const RequestTimeLayout = "2006-01-02T15:04Z"

// Browser-like defaults; the provider rejects requests that look like bots.
const (
	defaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	defaultAccept         = "application/json, text/plain, */*"
	defaultAcceptLanguage = "en-GB,en;q=0.9"
)

var (
	// ErrUpstream marks a non-retryable response from the provider
	ErrUpstream = errors.New("carbon intensity api error")
)

// Config holds client configuration
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	Horizon        time.Duration // forward window requested from now
	MaxRetries     int
	RetryDelay     time.Duration
	UserAgent      string
	AcceptLanguage string

	// Breaker
	BreakerMaxRequests      uint32
	BreakerInterval         time.Duration
	BreakerTimeout          time.Duration
	BreakerFailureThreshold uint32
}

// DefaultConfig returns the public UK Carbon Intensity API configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:                 "https://api.carbonintensity.org.uk",
		Timeout:                 15 * time.Second,
		Horizon:                 72 * time.Hour,
		MaxRetries:              2,
		RetryDelay:              500 * time.Millisecond,
		UserAgent:               defaultUserAgent,
		AcceptLanguage:          defaultAcceptLanguage,
		BreakerMaxRequests:      1,
		BreakerInterval:         time.Minute,
		BreakerTimeout:          30 * time.Second,
		BreakerFailureThreshold: 5,
	}
}

// generationResponse mirrors the {"data": [...]} envelope of /generation
type generationResponse struct {
	Data []generationData `json:"data"`
}

type generationData struct {
	From          string           `json:"from"`
	To            string           `json:"to"`
	GenerationMix []generationItem `json:"generationmix"`
}

type generationItem struct {
	Fuel string  `json:"fuel"`
	Perc float64 `json:"perc"`
}

// Client fetches generation mix forecasts from the Carbon Intensity API
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	config     *Config
	now        func() time.Time
	log        *zap.Logger
}

// NewClient creates a new Carbon Intensity API client
func NewClient(config *Config, log *zap.Logger) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	defaults := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Horizon <= 0 {
		config.Horizon = defaults.Horizon
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.UserAgent == "" {
		config.UserAgent = defaults.UserAgent
	}
	if config.AcceptLanguage == "" {
		config.AcceptLanguage = defaults.AcceptLanguage
	}
	threshold := config.BreakerFailureThreshold
	if threshold == 0 {
		threshold = defaults.BreakerFailureThreshold
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "carbon-intensity",
		MaxRequests: config.BreakerMaxRequests,
		Interval:    config.BreakerInterval,
		Timeout:     config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			// Client-side errors do not mean the provider is down
			return err == nil || errors.Is(err, ErrUpstream) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		breaker: breaker,
		config:  config,
		now:     time.Now,
		log:     log,
	}
}

// FetchForecast returns the generation forecast from now through the configured horizon
func (c *Client) FetchForecast(ctx context.Context) ([]domain.TimeSlot, error) {
	from := c.now().UTC().Truncate(time.Minute)
	return c.GetGeneration(ctx, from, from.Add(c.config.Horizon))
}

// GetGeneration fetches the generation mix for [from, to]
func (c *Client) GetGeneration(ctx context.Context, from, to time.Time) ([]domain.TimeSlot, error) {
	url := fmt.Sprintf("%s/generation/%s/%s",
		strings.TrimRight(c.config.BaseURL, "/"),
		from.UTC().Format(RequestTimeLayout),
		to.UTC().Format(RequestTimeLayout),
	)

	start := time.Now()
	var response *generationResponse
	err := RetryWithBackoff(ctx, c.config.MaxRetries, c.config.RetryDelay, func() error {
		result, err := c.breaker.Execute(func() (interface{}, error) {
			return c.doRequest(ctx, url)
		})
		if err != nil {
			return err
		}
		response = result.(*generationResponse)
		return nil
	})
	telemetry.ForecastFetchLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		telemetry.ForecastFetchTotal.WithLabelValues("error").Inc()
		c.log.Warn("Carbon Intensity request failed",
			zap.String("url", url),
			zap.Error(err),
		)
		return nil, err
	}
	telemetry.ForecastFetchTotal.WithLabelValues("success").Inc()

	slots := c.toSlots(response.Data)
	c.log.Debug("Fetched generation forecast",
		zap.Time("from", from),
		zap.Time("to", to),
		zap.Int("slots", len(slots)),
	)
	return slots, nil
}

// BreakerState reports the upstream circuit breaker state
func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}

func (c *Client) doRequest(ctx context.Context, url string) (*generationResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, Permanent(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", defaultAccept)
	req.Header.Set("Accept-Language", c.config.AcceptLanguage)
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("server error: status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, Permanent(fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var response generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, Permanent(fmt.Errorf("%w: decode response: %v", ErrUpstream, err))
	}
	return &response, nil
}

func (c *Client) toSlots(data []generationData) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0, len(data))
	for _, d := range data {
		from, err := ParseTimestamp(d.From)
		if err != nil {
			c.log.Warn("Dropping slot with invalid start", zap.String("from", d.From), zap.Error(err))
			continue
		}
		to, err := ParseTimestamp(d.To)
		if err != nil {
			c.log.Warn("Dropping slot with invalid end", zap.String("to", d.To), zap.Error(err))
			continue
		}

		mix := make([]domain.GenerationShare, len(d.GenerationMix))
		for i, item := range d.GenerationMix {
			mix[i] = domain.GenerationShare{Fuel: item.Fuel, Percent: item.Perc}
		}
		slots = append(slots, domain.TimeSlot{From: from, To: to, Mix: mix})
	}
	return slots
}

// ParseTimestamp accepts the provider's minute-precision form ("2025-01-01T12:00Z")
// as well as full RFC 3339.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04Z07:00", time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}
