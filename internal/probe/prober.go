package probe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"time"

	"github.com/nao1215/phoneinv/internal/extract"
	"github.com/nao1215/phoneinv/internal/model"
)

// Defaults applied by NewProber.
const (
	// DefaultPort is the HTTPS port of the management page.
	DefaultPort = 443

	// DefaultTimeout bounds a single probe.
	DefaultTimeout = 2 * time.Second

	// DefaultMaxBodySize caps how much of a page is read.
	DefaultMaxBodySize int64 = 5 * 1024 * 1024

	// DefaultUserAgent identifies the tool in device access logs.
	DefaultUserAgent = "phoneinv/1.0 (+https://github.com/nao1215/phoneinv)"
)

// Prober fetches and parses the status page of one host at a time.
// It is safe for concurrent use.
type Prober struct {
	client      *http.Client
	layout      extract.Layout
	port        int
	timeout     time.Duration
	maxBodySize int64
	userAgent   string
	logger      *slog.Logger
}

// Option configures a Prober.
type Option func(*Prober)

// WithLayout sets the page layout used to locate the device table.
func WithLayout(layout extract.Layout) Option {
	return func(p *Prober) {
		if layout != nil {
			p.layout = layout
		}
	}
}

// WithPort sets the HTTPS port. The port is omitted from the URL when it is 443.
func WithPort(port int) Option {
	return func(p *Prober) {
		if port > 0 {
			p.port = port
		}
	}
}

// WithTimeout sets the deadline applied to each probe.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Prober) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

// WithMaxBodySize caps the number of body bytes read from a page.
func WithMaxBodySize(size int64) Option {
	return func(p *Prober) {
		if size > 0 {
			p.maxBodySize = size
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(p *Prober) {
		if ua != "" {
			p.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for per-host debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Prober) {
		p.logger = logger
	}
}

// NewProber creates a Prober that issues requests with client.
func NewProber(client *http.Client, opts ...Option) *Prober {
	p := &Prober{
		client:      client,
		layout:      extract.CenteredDivLayout{},
		port:        DefaultPort,
		timeout:     DefaultTimeout,
		maxBodySize: DefaultMaxBodySize,
		userAgent:   DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// URL returns the status page URL for host.
func (p *Prober) URL(host netip.Addr) string {
	if p.port == DefaultPort {
		return "https://" + host.String() + "/"
	}
	return "https://" + net.JoinHostPort(host.String(), strconv.Itoa(p.port)) + "/"
}

// Probe issues exactly one GET to the host's status page and classifies the
// result. It never blocks longer than the configured timeout.
func (p *Prober) Probe(ctx context.Context, host netip.Addr) model.Outcome {
	start := time.Now()
	target := p.URL(host)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	unreachable := func(err error) model.Outcome {
		elapsed := time.Since(start)
		p.logger.Debug("host unreachable", "host", host, "url", target, "elapsed", elapsed, "error", err)
		return model.NewFailure(host, model.StatusUnreachable, fmt.Errorf("%w: %w", ErrUnreachable, err), elapsed)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return unreachable(err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := p.client.Do(req)
	if err != nil {
		return unreachable(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBodySize))
	if err != nil {
		return unreachable(fmt.Errorf("failed to read body: %w", err))
	}

	fields, err := extract.Parse(body, resp.Header.Get("Content-Type"), p.layout)
	if err != nil {
		elapsed := time.Since(start)
		p.logger.Debug("unexpected page format",
			"host", host,
			"status_code", resp.StatusCode,
			"layout", p.layout.Name(),
			"elapsed", elapsed,
			"error", err,
		)
		return model.NewFailure(host, model.StatusParseFailure,
			fmt.Errorf("%w (HTTP %d, layout %s): %w", ErrParseFailure, resp.StatusCode, p.layout.Name(), err), elapsed)
	}

	elapsed := time.Since(start)
	p.logger.Debug("device found", "host", host, "mac", fields.MAC, "serial", fields.Serial, "elapsed", elapsed)

	return model.NewSuccess(model.DeviceRecord{
		Host:   host,
		MAC:    fields.MAC,
		Serial: fields.Serial,
	}, elapsed)
}
