package deploy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"gateway/pkg/serrors"
)

// ReadyURL returns the readiness endpoint of a service listening on addr.
// Wildcard hosts are replaced by the loopback address.
func ReadyURL(addr string) string {
	host, port, err := splitAddr(addr)
	if err != nil {
		return "http://127.0.0.1:20001/health/ready"
	}

	return "http://" + net.JoinHostPort(host, port) + "/health/ready"
}

func splitAddr(addr string) (string, string, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", "", err
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}

	return host, port, nil
}

// CheckReady calls url and succeeds only when it answers 200 with
// {"status":"ok"}.
func CheckReady(ctx context.Context, client *http.Client, url string) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return serrors.Wrap(serrors.ErrUnavailable, err, "could not reach %s", url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return serrors.With(serrors.ErrUnavailable, "%s answered %d", url, resp.StatusCode)
	}

	var health struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &health); err != nil {
		return serrors.Wrap(serrors.ErrUpstream, err, "unexpected body %q", strings.TrimSpace(string(body)))
	}
	if health.Status != "ok" {
		return serrors.With(serrors.ErrUnavailable, "status is %q", health.Status)
	}

	return nil
}
