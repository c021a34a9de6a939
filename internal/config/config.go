package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/phoneinv/internal/export"
	"github.com/nao1215/phoneinv/internal/extract"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "phoneinv"

	// DefaultTimeout bounds each HTTPS request. Hosts without a device
	// dominate a sweep, so this mostly decides how long a scan takes.
	DefaultTimeout = 2 * time.Second

	// DefaultWorkers is the number of hosts probed at once.
	DefaultWorkers = 32

	// DefaultPort is the HTTPS port of the phone web interface.
	DefaultPort = 443

	// DefaultMaxBodySize limits how much of a status page is read.
	DefaultMaxBodySize int64 = 5 * 1024 * 1024 // 5MB

	// DefaultMaxHosts rejects subnets larger than a /16.
	DefaultMaxHosts = 65536

	// DefaultOutputName is the workbook written next to the executable.
	DefaultOutputName = export.DefaultFileName

	// DefaultLayout locates the device table the way Cisco phone pages nest it.
	DefaultLayout = extract.LayoutCenteredDiv

	// DefaultUserAgent identifies the tool in device access logs.
	DefaultUserAgent = "phoneinv/1.0 (+https://github.com/nao1215/phoneinv)"
)

// Config holds all options of a single run. It is built from defaults, the
// configuration file and CLI flags, in that order of precedence.
type Config struct {
	// Subnet is the IPv4 network to sweep, in CIDR notation.
	Subnet string

	// Timeout is the per-host deadline covering connect, TLS and response.
	Timeout time.Duration

	// Workers is the number of concurrent probes. 1 gives a sequential scan.
	Workers int

	// Port is the HTTPS port probed on every host.
	Port int

	// Insecure disables TLS certificate verification. Phones ship with
	// self-signed certificates, so this is on by default.
	Insecure bool

	// ProxyURL routes probes through a SOCKS5 proxy when set.
	ProxyURL string

	// Layout names the strategy used to find the device table.
	Layout string

	// TableIndex selects the table for the table-index layout.
	TableIndex int

	// UserAgent is the User-Agent header sent with each request.
	UserAgent string

	// MaxBodySize is the maximum number of body bytes read per page.
	MaxBodySize int64

	// MaxHosts rejects larger subnets before any probe. 0 disables the check.
	MaxHosts int

	// OutputPath is the export destination. Empty means DefaultOutputName
	// in the directory of the executable.
	OutputPath string

	// Format forces the export format. Empty means derive it from OutputPath.
	Format string

	// ConfigFilePath is an explicit configuration file. When empty the
	// file is searched for as described by FindConfigFile.
	ConfigFilePath string

	// Verbose enables debug logging.
	Verbose bool
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		Workers:     DefaultWorkers,
		Port:        DefaultPort,
		Insecure:    true,
		Layout:      DefaultLayout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		MaxHosts:    DefaultMaxHosts,
	}
}

// XDGConfigDir returns the XDG config directory for phoneinv.
// On Linux: ~/.config/phoneinv
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Apply overrides fields with the values set in p. Zero values in p are ignored.
func (c *Config) Apply(p Profile) {
	if p.Timeout != 0 {
		c.Timeout = p.Timeout
	}
	if p.Workers != 0 {
		c.Workers = p.Workers
	}
	if p.Port != 0 {
		c.Port = p.Port
	}
	if p.Insecure != nil {
		c.Insecure = *p.Insecure
	}
	if p.Proxy != "" {
		c.ProxyURL = p.Proxy
	}
	if p.Layout != "" {
		c.Layout = p.Layout
	}
	if p.TableIndex != nil {
		c.TableIndex = *p.TableIndex
	}
	if p.UserAgent != "" {
		c.UserAgent = p.UserAgent
	}
	if p.MaxBodySize != 0 {
		c.MaxBodySize = p.MaxBodySize
	}
	if p.MaxHosts != nil {
		c.MaxHosts = *p.MaxHosts
	}
	if p.Output != "" {
		c.OutputPath = p.Output
	}
	if p.Format != "" {
		c.Format = p.Format
	}
}

// Validate checks the merged configuration before any network activity.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}

	if c.Port < 1 || c.Port > 65535 {
		return ErrInvalidPort
	}

	if c.TableIndex < 0 {
		return ErrInvalidTableIndex
	}

	if _, err := extract.ParseLayout(c.Layout, c.TableIndex); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}

	if c.MaxBodySize <= 0 {
		return ErrInvalidMaxBodySize
	}

	if c.MaxHosts < 0 {
		return ErrInvalidMaxHosts
	}

	if c.Format != "" {
		if _, err := export.ParseFormat(c.Format); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
		}
	} else if c.OutputPath != "" {
		if _, err := export.ResolveFormat(c.OutputPath, ""); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
		}
	}

	return nil
}
