package bankapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"gateway/internal/config"
	"gateway/pkg/logger"
	"gateway/pkg/serrors"
)

// Options configure the accounts service client.
type Options struct {
	BaseURL      string
	AccountsPath string
	Timeout      time.Duration
	// RateLimit is the number of requests per second allowed towards the
	// service. Zero disables limiting.
	RateLimit float64
	RateBurst int
	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		BaseURL:      cfg.BankAPI.BaseURL,
		AccountsPath: cfg.BankAPI.AccountsPath,
		Timeout:      cfg.BankAPI.Timeout,
		RateLimit:    cfg.BankAPI.RateLimit,
		RateBurst:    cfg.BankAPI.RateBurst,
	}
}

// HTTPClient talks to the accounts REST API. It is safe for concurrent use.
type HTTPClient struct {
	httpClient   *http.Client
	baseURL      string
	accountsPath string
	limiter      *rate.Limiter
}

var _ Client = (*HTTPClient)(nil)

// New constructs an HTTPClient.
func New(options Options) *HTTPClient {
	httpClient := options.HTTPClient
	if httpClient == nil {
		// the accounts service lives on the internal network and must not go
		// through an environment proxy
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.Proxy = nil
		httpClient = &http.Client{Timeout: options.Timeout, Transport: transport}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if options.RateLimit > 0 {
		burst := options.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(options.RateLimit), burst)
	}

	return &HTTPClient{
		httpClient:   httpClient,
		baseURL:      strings.TrimRight(options.BaseURL, "/"),
		accountsPath: options.AccountsPath,
		limiter:      limiter,
	}
}

// Accounts calls GET {base}{accountsPath}?clientid=&mode=.
func (c *HTTPClient) Accounts(ctx context.Context, clientID int64, mode int64) ([]Account, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, serrors.Wrap(serrors.ErrRateLimited, err, "bank api limiter")
	}

	query := url.Values{}
	query.Set("clientid", strconv.FormatInt(clientID, 10))
	query.Set("mode", strconv.FormatInt(mode, 10))

	req, err := http.NewRequestWithContext(ctx,
		http.MethodGet,
		c.baseURL+c.accountsPath+"?"+query.Encode(),
		nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "could not send request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	logger.Debug(ctx, "bank api accounts response",
		zap.Int64("clientID", clientID),
		zap.Int("status", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, serrors.With(serrors.ErrRateLimited, "rate limited: %s", strings.TrimSpace(string(b)))
	case resp.StatusCode == http.StatusNotFound:
		return nil, serrors.With(serrors.ErrNotFound, "accounts not found")
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, serrors.With(serrors.ErrUnavailable, "accounts service failed: %s", strings.TrimSpace(string(b)))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, serrors.With(serrors.ErrUpstream, "accounts request failed: %s", strings.TrimSpace(string(b)))
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var accounts []Account
	if err := dec.Decode(&accounts); err != nil {
		return nil, serrors.Wrap(serrors.ErrUpstream, err, "could not decode accounts")
	}

	return accounts, nil
}
