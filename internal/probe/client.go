package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"
)

// maxRedirects bounds how many redirects a device page may issue.
const maxRedirects = 10

// clientConfig collects the settings applied by ClientOption.
type clientConfig struct {
	insecureSkipVerify bool
	proxyURL           string
}

// ClientOption configures the HTTP client built by NewHTTPClient.
type ClientOption func(*clientConfig)

// WithInsecureSkipVerify disables TLS certificate verification. Embedded
// device pages are normally served with self-signed certificates.
func WithInsecureSkipVerify(skip bool) ClientOption {
	return func(c *clientConfig) {
		c.insecureSkipVerify = skip
	}
}

// WithProxy routes connections through a SOCKS5 proxy given as a URL such as
// "socks5://127.0.0.1:1080". An empty string means a direct connection.
func WithProxy(rawURL string) ClientOption {
	return func(c *clientConfig) {
		c.proxyURL = rawURL
	}
}

// NewHTTPClient creates an HTTP client for probing device pages.
//
// The timeout bounds each request from dial to the end of the body, so a
// host that accepts the TCP connection and never answers still fails within
// the timeout. Keep-alives are disabled because every host receives exactly
// one request.
func NewHTTPClient(timeout time.Duration, opts ...ClientOption) (*http.Client, error) {
	var cfg clientConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	dialer := &net.Dialer{Timeout: timeout}
	dialContext, err := buildDialContext(dialer, cfg.proxyURL)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		DialContext: dialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.insecureSkipVerify, //nolint:gosec // Opt-in for self-signed device certificates
			// Embedded device firmware commonly stops at TLS 1.0.
			MinVersion: tls.VersionTLS10, //nolint:gosec // Legacy device firmware
		},
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
		DisableKeepAlives:     true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}, nil
}

// dialFunc matches http.Transport.DialContext.
type dialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// buildDialContext returns the direct dialer, or a SOCKS5 dialer layered on
// top of it when proxyURL is set.
func buildDialContext(direct *net.Dialer, proxyURL string) (dialFunc, error) {
	if proxyURL == "" {
		return direct.DialContext, nil
	}

	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProxy, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host in %q", ErrInvalidProxy, u.Redacted())
	}

	d, err := proxy.FromURL(u, direct)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProxy, err)
	}

	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd.DialContext, nil
	}

	// Dial in a goroutine so the context deadline still applies.
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		type dialResult struct {
			conn net.Conn
			err  error
		}
		resultCh := make(chan dialResult, 1)
		go func() {
			conn, err := d.Dial(network, addr)
			resultCh <- dialResult{conn, err}
		}()

		select {
		case result := <-resultCh:
			return result.conn, result.err
		case <-ctx.Done():
			go func() {
				if result := <-resultCh; result.conn != nil {
					_ = result.conn.Close()
				}
			}()
			return nil, ctx.Err()
		}
	}, nil
}
