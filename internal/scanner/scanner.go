package scanner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/netip"
	"os"
	"slices"
	"time"

	"github.com/nao1215/phoneinv/internal/model"
	"github.com/nao1215/phoneinv/internal/subnet"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultWorkers is the number of probes run at once.
	DefaultWorkers = 32

	// DefaultMaxHosts rejects anything larger than a /16.
	DefaultMaxHosts = 65536
)

// Prober checks a single host.
type Prober interface {
	Probe(ctx context.Context, host netip.Addr) model.Outcome
}

// Summary counts the outcomes of a scan.
type Summary struct {
	Total         int
	OK            int
	Unreachable   int
	ParseFailures int
	Collisions    int
	Elapsed       time.Duration
}

// Completed returns the number of hosts that produced an outcome.
func (s Summary) Completed() int {
	return s.OK + s.Unreachable + s.ParseFailures
}

// Scanner runs probes over every host of a subnet.
type Scanner struct {
	prober   Prober
	workers  int
	maxHosts int
	out      io.Writer
	logger   *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithWorkers sets the number of concurrent probes. One worker gives a
// strictly sequential scan.
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithMaxHosts sets the largest subnet Scan accepts. Zero disables the check.
func WithMaxHosts(n int) Option {
	return func(s *Scanner) {
		if n >= 0 {
			s.maxHosts = n
		}
	}
}

// WithOutput sets the writer that receives one status line per host.
func WithOutput(w io.Writer) Option {
	return func(s *Scanner) {
		if w != nil {
			s.out = w
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// New creates a Scanner that uses prober for every host.
func New(prober Prober, opts ...Option) *Scanner {
	s := &Scanner{
		prober:   prober,
		workers:  DefaultWorkers,
		maxHosts: DefaultMaxHosts,
		out:      os.Stdout,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// FormatStatusLine renders the console line printed for one host.
func FormatStatusLine(host netip.Addr, status model.Status) string {
	return fmt.Sprintf("%-13s%3s%4s", host, " - ", status)
}

// indexedOutcome carries an outcome together with the host's position in
// the subnet.
type indexedOutcome struct {
	index   int
	outcome model.Outcome
}

// Scan probes every host of sn and returns the inventory of devices found.
//
// Individual probe failures never abort the scan. The only error returned
// after probing starts is the context error when ctx is cancelled; the
// inventory built from the probes that completed is returned with it.
func (s *Scanner) Scan(ctx context.Context, sn subnet.Subnet) (*model.Inventory, Summary, error) {
	total := sn.Len()
	if s.maxHosts > 0 && total > s.maxHosts {
		return nil, Summary{}, fmt.Errorf("%w: %s has %d hosts, limit is %d", ErrTooManyHosts, sn, total, s.maxHosts)
	}

	s.logger.Info("starting scan",
		"subnet", sn.String(),
		"hosts", total,
		"workers", s.workers,
	)

	start := time.Now()
	results := make(chan indexedOutcome, s.workers)
	collected := make(chan map[int]model.Outcome, 1)

	go func() {
		collected <- s.collect(results)
	}()

	var g errgroup.Group
	g.SetLimit(s.workers)

	index := 0
	for host := range sn.Hosts() {
		if ctx.Err() != nil {
			break
		}

		i := index
		index++
		g.Go(func() error {
			outcome := s.prober.Probe(ctx, host)
			// A probe cut short by cancellation says nothing about the host.
			if ctx.Err() != nil && !outcome.OK() {
				return nil
			}
			results <- indexedOutcome{index: i, outcome: outcome}
			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck // Tasks never return an error
	close(results)
	outcomes := <-collected

	inv, summary := s.fold(outcomes)
	summary.Total = total
	summary.Elapsed = time.Since(start)

	s.logger.Info("scan complete",
		"subnet", sn.String(),
		"ok", summary.OK,
		"void", summary.Unreachable,
		"fail", summary.ParseFailures,
		"elapsed", summary.Elapsed,
	)

	if err := ctx.Err(); err != nil {
		return inv, summary, fmt.Errorf("scan of %s interrupted after %d of %d hosts: %w",
			sn, summary.Completed(), total, err)
	}

	return inv, summary, nil
}

// collect is the only reader of results and the only writer of s.out.
func (s *Scanner) collect(results <-chan indexedOutcome) map[int]model.Outcome {
	outcomes := make(map[int]model.Outcome)

	for r := range results {
		outcome := r.outcome
		outcomes[r.index] = outcome

		if _, err := fmt.Fprintln(s.out, FormatStatusLine(outcome.Host, outcome.Status)); err != nil {
			s.logger.Debug("failed to write status line", "error", err)
		}

		switch outcome.Status {
		case model.StatusParseFailure:
			s.logger.Warn("unexpected page format", "host", outcome.Host, "error", outcome.Err)
		case model.StatusUnreachable:
			s.logger.Debug("host unreachable", "host", outcome.Host, "elapsed", outcome.Elapsed)
		default:
			s.logger.Debug("device found", "host", outcome.Host, "mac", outcome.Record.MAC, "elapsed", outcome.Elapsed)
		}
	}

	return outcomes
}

// fold builds the inventory from outcomes in host order. A later host with
// the same MAC overwrites an earlier one.
func (s *Scanner) fold(outcomes map[int]model.Outcome) (*model.Inventory, Summary) {
	inv := model.NewInventory()
	var summary Summary

	for _, i := range slices.Sorted(maps.Keys(outcomes)) {
		outcome := outcomes[i]
		switch outcome.Status {
		case model.StatusOK:
			summary.OK++
		case model.StatusUnreachable:
			summary.Unreachable++
			continue
		default:
			summary.ParseFailures++
			continue
		}

		previous, replaced := inv.Put(outcome.Record)
		if replaced {
			summary.Collisions++
			s.logger.Warn("duplicate MAC address",
				"mac", outcome.Record.MAC,
				"previous_host", previous.Host,
				"previous_serial", previous.Serial,
				"host", outcome.Record.Host,
				"serial", outcome.Record.Serial,
			)
		}
	}

	return inv, summary
}
