package model

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// DefaultInterval is the poll interval used when a target doesn't set one.
const DefaultInterval = 2 * time.Second

// ConnectionTarget describes a dependency whose readiness is probed by
// dialing it. Immutable once constructed. Interval and Timeout are duration
// strings ("2s", "1m") so plan documents stay plain YAML.
type ConnectionTarget struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Protocol string `yaml:"protocol,omitempty" json:"protocol,omitempty"` // tcp (default) or udp; a udp dial proves little
	Interval string `yaml:"interval,omitempty" json:"interval,omitempty"`
	Timeout  string `yaml:"timeout,omitempty" json:"timeout,omitempty"`   // zero/unset means wait forever
	Attempts int    `yaml:"attempts,omitempty" json:"attempts,omitempty"` // zero means unbounded
}

// Addr renders the target as a dialable host:port address.
func (t ConnectionTarget) Addr() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// Network returns the dial network, defaulting to tcp.
func (t ConnectionTarget) Network() string {
	if t.Protocol == "" {
		return "tcp"
	}
	return t.Protocol
}

// PollInterval returns the parsed per-target poll interval, or def when the
// target doesn't set one. Parse errors are caught by Validate.
func (t ConnectionTarget) PollInterval(def time.Duration) time.Duration {
	if t.Interval == "" {
		return def
	}
	d, err := time.ParseDuration(t.Interval)
	if err != nil {
		return def
	}
	return d
}

// MaxWait returns the parsed per-target wait budget, or def when unset.
func (t ConnectionTarget) MaxWait(def time.Duration) time.Duration {
	if t.Timeout == "" {
		return def
	}
	d, err := time.ParseDuration(t.Timeout)
	if err != nil {
		return def
	}
	return d
}

// Validate checks the target before any network activity happens.
func (t ConnectionTarget) Validate() error {
	if strings.TrimSpace(t.Host) == "" {
		return ConfigError("connection target host must not be empty")
	}
	if t.Port < 1 || t.Port > 65535 {
		return ConfigError(fmt.Sprintf("connection target %s: port %d out of range", t.Host, t.Port))
	}
	if t.Protocol != "" && t.Protocol != "tcp" && t.Protocol != "udp" {
		return ConfigError(fmt.Sprintf("connection target %s: unsupported protocol %q", t.Addr(), t.Protocol))
	}
	if t.Interval != "" {
		if _, err := time.ParseDuration(t.Interval); err != nil {
			return ConfigError(fmt.Sprintf("connection target %s: invalid interval %q", t.Addr(), t.Interval))
		}
	}
	if t.Timeout != "" {
		if _, err := time.ParseDuration(t.Timeout); err != nil {
			return ConfigError(fmt.Sprintf("connection target %s: invalid timeout %q", t.Addr(), t.Timeout))
		}
	}
	if t.Attempts < 0 {
		return ConfigError(fmt.Sprintf("connection target %s: attempts must not be negative", t.Addr()))
	}
	return nil
}
