package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sourceplane/entrygate/internal/model"
)

// defaultDatabasePort is assumed when DATABASE_URL omits a port, matching
// the conventional postgres port used by the deployments this tool fronts.
const defaultDatabasePort = 5432

// Config is the environment-variable configuration, read once at startup.
type Config struct {
	DatabaseURL string        `env:"DATABASE_URL"`
	WaitHosts   []string      `env:"WAIT_HOSTS" envSeparator:","` // host:port pairs
	Interval    time.Duration `env:"WAIT_INTERVAL" envDefault:"2s"`
	Timeout     time.Duration `env:"WAIT_TIMEOUT"`  // zero means wait forever
	Attempts    int           `env:"WAIT_ATTEMPTS"` // zero means unbounded
	Verbose     bool          `env:"ENTRYGATE_VERBOSE"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, model.ConfigError(fmt.Sprintf("parse env: %v", err))
	}
	if cfg.Attempts < 0 {
		return nil, model.ConfigError("WAIT_ATTEMPTS must not be negative")
	}
	if cfg.Interval <= 0 {
		return nil, model.ConfigError("WAIT_INTERVAL must be positive")
	}
	return &cfg, nil
}

// Targets derives connection targets from DATABASE_URL and WAIT_HOSTS.
// Either or both may be unset; an empty result is not an error here, the
// caller decides whether a target is required.
func (c *Config) Targets() ([]model.ConnectionTarget, error) {
	var targets []model.ConnectionTarget

	if c.DatabaseURL != "" {
		target, err := databaseTarget(c.DatabaseURL)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}

	for _, hostport := range c.WaitHosts {
		if hostport == "" {
			continue
		}
		target, err := ParseTarget(hostport)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}

	for i := range targets {
		if err := targets[i].Validate(); err != nil {
			return nil, err
		}
	}

	return targets, nil
}

// databaseTarget extracts host and port from a database URL such as
// postgres://user:pass@db:5432/name. A missing port falls back to 5432.
func databaseTarget(rawURL string) (model.ConnectionTarget, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return model.ConnectionTarget{}, model.ConfigError(fmt.Sprintf("DATABASE_URL %q is not a valid URL", rawURL))
	}

	port := defaultDatabasePort
	if parsed.Port() != "" {
		port, err = strconv.Atoi(parsed.Port())
		if err != nil {
			return model.ConnectionTarget{}, model.ConfigError(fmt.Sprintf("DATABASE_URL has invalid port %q", parsed.Port()))
		}
	}

	return model.ConnectionTarget{Host: parsed.Hostname(), Port: port, Protocol: "tcp"}, nil
}

// ParseTarget parses a host:port pair into a connection target.
func ParseTarget(hostport string) (model.ConnectionTarget, error) {
	host, portStr, err := net.SplitHostPort(hostport)
	if err != nil {
		return model.ConnectionTarget{}, model.ConfigError(fmt.Sprintf("invalid target %q: expected host:port", hostport))
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return model.ConnectionTarget{}, model.ConfigError(fmt.Sprintf("invalid target %q: port is not a number", hostport))
	}
	return model.ConnectionTarget{Host: host, Port: port, Protocol: "tcp"}, nil
}
