package config

import (
	"time"

	"github.com/nao1215/phoneinv/internal/subnet"
)

// Profile holds settings that the configuration file can override, either
// for every run or for one subnet. Unset fields keep the value from the
// previous layer.
type Profile struct {
	// Timeout is the per-host deadline, e.g. "2s".
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// Workers is the number of concurrent probes.
	Workers int `yaml:"workers,omitempty"`

	// Port is the HTTPS port of the phone web interface.
	Port int `yaml:"port,omitempty"`

	// Insecure disables certificate verification. A pointer so that an
	// explicit false can override the default.
	Insecure *bool `yaml:"insecure,omitempty"`

	// Proxy is a SOCKS5 proxy URL.
	Proxy string `yaml:"proxy,omitempty"`

	// Layout is the page layout name: centered-div, table-index or auto.
	Layout string `yaml:"layout,omitempty"`

	// TableIndex selects the table for the table-index layout.
	TableIndex *int `yaml:"table_index,omitempty"`

	// UserAgent is the User-Agent header.
	UserAgent string `yaml:"user_agent,omitempty"`

	// MaxBodySize is the page size limit in bytes.
	MaxBodySize int64 `yaml:"max_body_size,omitempty"`

	// MaxHosts is the subnet size limit. 0 disables it.
	MaxHosts *int `yaml:"max_hosts,omitempty"`

	// Output is the export destination.
	Output string `yaml:"output,omitempty"`

	// Format is the export format.
	Format string `yaml:"format,omitempty"`
}

// File represents the structure of the phoneinv configuration file.
type File struct {
	// Defaults apply to every scan.
	Defaults Profile `yaml:"defaults,omitempty"`

	// Subnets maps a CIDR such as "10.1.0.0/24" to its overrides.
	Subnets map[string]Profile `yaml:"subnets,omitempty"`
}

// ProfileFor returns the defaults merged with the entry for cidr, if any.
// Keys are compared as networks, so "10.1.0.0/24" matches " 10.1.0.0/24".
func (f *File) ProfileFor(cidr string) Profile {
	if f == nil {
		return Profile{}
	}

	result := f.Defaults

	entry, ok := f.Subnets[cidr]
	if !ok {
		entry, ok = f.lookup(cidr)
	}
	if ok {
		result = merge(result, entry)
	}

	return result
}

// lookup finds the entry whose key parses to the same network as cidr.
func (f *File) lookup(cidr string) (Profile, bool) {
	want, err := subnet.Parse(cidr)
	if err != nil {
		return Profile{}, false
	}
	for key, p := range f.Subnets {
		got, err := subnet.Parse(key)
		if err == nil && got.Prefix() == want.Prefix() {
			return p, true
		}
	}
	return Profile{}, false
}

// merge overlays the set fields of top onto base.
func merge(base, top Profile) Profile {
	if top.Timeout != 0 {
		base.Timeout = top.Timeout
	}
	if top.Workers != 0 {
		base.Workers = top.Workers
	}
	if top.Port != 0 {
		base.Port = top.Port
	}
	if top.Insecure != nil {
		base.Insecure = top.Insecure
	}
	if top.Proxy != "" {
		base.Proxy = top.Proxy
	}
	if top.Layout != "" {
		base.Layout = top.Layout
	}
	if top.TableIndex != nil {
		base.TableIndex = top.TableIndex
	}
	if top.UserAgent != "" {
		base.UserAgent = top.UserAgent
	}
	if top.MaxBodySize != 0 {
		base.MaxBodySize = top.MaxBodySize
	}
	if top.MaxHosts != nil {
		base.MaxHosts = top.MaxHosts
	}
	if top.Output != "" {
		base.Output = top.Output
	}
	if top.Format != "" {
		base.Format = top.Format
	}
	return base
}
