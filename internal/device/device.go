// Package device wraps the scrapligo network driver behind a small Session
// interface. All protocol handling, prompt detection, pagination and
// privilege escalation live in scrapligo; this package only binds a run's
// configuration onto a platform driver and normalizes results.
package device

import (
	"fmt"
	"time"

	"github.com/scrapli/scrapligo/driver/network"
	"github.com/scrapli/scrapligo/driver/options"
	"github.com/scrapli/scrapligo/platform"
	"github.com/scrapli/scrapligo/transport"
	"github.com/scrapli/scrapligo/util"

	"github.com/network-dave/netrun/internal/creds"
)

// Defaults applied when the CLI leaves the corresponding flag unset.
const (
	DefaultPlatform = "cisco_iosxe"
	DefaultTimeout  = 15 * time.Second
)

// Config is the immutable per-run connection configuration. The same Config
// is reused for every target; only the host varies.
type Config struct {
	Platform     string
	Transport    string
	Port         int
	Credentials  creds.Credentials
	Timeout      time.Duration
	UseSSHConfig bool
}

// Result carries one command's raw textual response.
type Result struct {
	Host    string
	Command string
	Output  string
}

// Session is a live authenticated connection bound to exactly one target.
// The orchestrator calls Close exactly once, after the last command.
type Session interface {
	Send(command string) (*Result, error)
	Close() error
}

// NormalizeTransport maps user-facing transport names onto scrapligo's.
// "ssh" selects the standard (crypto/ssh based) transport.
func NormalizeTransport(name string) (string, error) {
	switch name {
	case "", "ssh", transport.StandardTransport:
		return transport.StandardTransport, nil
	case transport.SystemTransport:
		return transport.SystemTransport, nil
	case transport.TelnetTransport:
		return transport.TelnetTransport, nil
	default:
		return "", fmt.Errorf("unsupported transport %q (ssh, standard, system or telnet)", name)
	}
}

// DefaultPort returns the conventional TCP port for a transport: 23 for
// telnet, 22 otherwise.
func DefaultPort(transportName string) int {
	if transportName == transport.TelnetTransport {
		return 23
	}
	return 22
}

// Open builds the platform driver for one host and opens the channel,
// authenticating and escalating to the configured privilege level.
func Open(cfg Config, host string) (Session, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	platformName := cfg.Platform
	if platformName == "" {
		platformName = DefaultPlatform
	}

	opts := []util.Option{
		options.WithAuthUsername(cfg.Credentials.Username),
		options.WithAuthPassword(cfg.Credentials.Password),
		options.WithAuthSecondary(cfg.Credentials.EnableSecret),
		options.WithAuthNoStrictKey(),
		options.WithPort(cfg.Port),
		options.WithTransportType(cfg.Transport),
		options.WithTimeoutOps(timeout),
		options.WithDefaultDesiredPriv(cfg.Credentials.PrivilegeLevel),
	}
	if cfg.UseSSHConfig {
		opts = append(opts, options.WithSSHConfigFileSystem())
	}

	p, err := platform.NewPlatform(platformName, host, opts...)
	if err != nil {
		return nil, fmt.Errorf("build %s driver for %s: %w", platformName, host, err)
	}
	d, err := p.GetNetworkDriver()
	if err != nil {
		return nil, fmt.Errorf("network driver for %s: %w", host, err)
	}
	if err := d.Open(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", host, err)
	}
	return &scrapliSession{host: host, driver: d}, nil
}

type scrapliSession struct {
	host   string
	driver *network.Driver
}

func (s *scrapliSession) Send(command string) (*Result, error) {
	r, err := s.driver.SendCommand(command)
	if err != nil {
		return nil, fmt.Errorf("send %q to %s: %w", command, s.host, err)
	}
	if r.Failed != nil {
		return nil, fmt.Errorf("command %q failed on %s: %w", command, s.host, r.Failed)
	}
	return &Result{Host: s.host, Command: command, Output: r.Result}, nil
}

func (s *scrapliSession) Close() error {
	return s.driver.Close()
}
