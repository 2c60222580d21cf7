package ftcscout

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxResponseBytes = 6 << 20

// poster sends one JSON POST and returns the raw status and body.
type poster interface {
	post(ctx context.Context, url string, body []byte) (int, []byte, error)
}

type httpPoster struct {
	client *http.Client
}

func newHTTPPoster(client *http.Client, timeout time.Duration) *httpPoster {
	if client == nil {
		client = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if client.Timeout <= 0 {
		client.Timeout = timeout
	}
	return &httpPoster{client: client}
}

func (p *httpPoster) post(ctx context.Context, url string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, raw, nil
}

type fastPoster struct {
	client  *fasthttp.Client
	timeout time.Duration
}

func newFastPoster(timeout time.Duration) *fastPoster {
	return &fastPoster{
		client: &fasthttp.Client{
			Name:                "ftc-team-stats",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBytes,
		},
		timeout: timeout,
	}
}

func (p *fastPoster) post(ctx context.Context, url string, body []byte) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBodyRaw(body)

	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if err := p.client.DoTimeout(req, resp, timeout); err != nil {
		return 0, nil, fmt.Errorf("send request: %w", err)
	}

	// resp is returned to the pool, so the body must be copied out.
	raw := append([]byte(nil), resp.Body()...)
	return resp.StatusCode(), raw, nil
}
