// Package run drives the sequential host/command execution loop: connect to
// one host, run every command, route the output, close, move on. There is no
// concurrency and no retrying; a host's failure never stops the rest of the
// fleet.
package run

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/network-dave/netrun/internal/commands"
	"github.com/network-dave/netrun/internal/device"
	"github.com/network-dave/netrun/internal/lg"
	"github.com/network-dave/netrun/internal/output"
)

// ErrorPolicy controls what happens to a host's remaining commands after one
// command fails.
type ErrorPolicy string

const (
	// AbortHost stops the host's remaining commands and moves to the next
	// host.
	AbortHost ErrorPolicy = "abort"
	// ContinueHost logs the failure and proceeds with the next command.
	ContinueHost ErrorPolicy = "continue"
)

// ParsePolicy validates a policy name from the CLI.
func ParsePolicy(s string) (ErrorPolicy, error) {
	switch ErrorPolicy(s) {
	case "", AbortHost:
		return AbortHost, nil
	case ContinueHost:
		return ContinueHost, nil
	default:
		return "", fmt.Errorf("unknown on-command-error policy %q (abort or continue)", s)
	}
}

// OpenFunc establishes a session to one host. The CLI binds the run's device
// configuration here; tests substitute fakes.
type OpenFunc func(host string) (device.Session, error)

// Config is the orchestrator's immutable run configuration.
type Config struct {
	Hosts          []string
	Commands       []string
	Deploy         bool
	DeployDir      string
	OnCommandError ErrorPolicy
	FailureLog     string
}

// Runner iterates hosts strictly in order, one at a time.
type Runner struct {
	cfg    Config
	open   OpenFunc
	router *output.Router
	log    lg.Logger
	now    func() time.Time
}

func New(cfg Config, open OpenFunc, router *output.Router, log lg.Logger) *Runner {
	if cfg.OnCommandError == "" {
		cfg.OnCommandError = AbortHost
	}
	if cfg.DeployDir == "" {
		cfg.DeployDir = "."
	}
	if log == nil {
		log = lg.Discard
	}
	return &Runner{cfg: cfg, open: open, router: router, log: log, now: time.Now}
}

// Run processes every host in order. Per-host failures are contained; the
// only error returned is the context's, when the run is interrupted.
func (r *Runner) Run(ctx context.Context) error {
	for _, host := range r.cfg.Hosts {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.runHost(ctx, host)
	}
	return nil
}

// runHost walks one host through connect, optional deploy resolution,
// command execution and teardown. Every sink opened here is closed before
// the function returns, on every path.
func (r *Runner) runHost(ctx context.Context, host string) {
	log := r.log.With(lg.String("host", host))
	log.Info("connecting")

	sess, err := r.open(host)
	if err != nil {
		log.Error("connection failed", lg.Err(err))
		if ferr := r.recordFailure(host); ferr != nil {
			log.Error("recording failed host", lg.Err(ferr))
		}
		return
	}
	defer func() {
		log.Info("closing connection")
		if cerr := sess.Close(); cerr != nil {
			log.Warn("closing session", lg.Err(cerr))
		}
	}()

	cmds := r.cfg.Commands
	if r.cfg.Deploy {
		cmds, err = commands.LoadDeploy(r.cfg.DeployDir, host)
		if err != nil {
			if errors.Is(err, commands.ErrNoDeployFile) {
				log.Warn("no deploy file for host, skipping")
			} else {
				log.Error("loading deploy file", lg.Err(err))
			}
			return
		}
		log.Info("loaded deploy commands", lg.Int("count", len(cmds)))
	}

	if r.router.PerCommand() {
		r.runPerCommand(ctx, log, sess, host, cmds)
		return
	}

	sink, err := r.router.HostSink(host)
	if err != nil {
		log.Error("opening output sink", lg.Err(err))
		return
	}
	defer sink.Close()

	if r.router.HostHeader() {
		if err := sink.WriteHeader(host); err != nil {
			log.Error("writing host header", lg.Err(err))
			return
		}
	}
	if sink.Path() != "" {
		log.Info("saving output", lg.String("file", sink.Path()))
	}

	for _, cmd := range cmds {
		if ctx.Err() != nil {
			return
		}
		stamp := r.now().Format(output.FileTimeFormat)
		res, err := sess.Send(cmd)
		if err != nil {
			if !r.commandFailed(log, cmd, err) {
				return
			}
			continue
		}
		if err := sink.WriteResult(stamp, host, cmd, res.Output); err != nil {
			log.Error("writing output", lg.Err(err))
			return
		}
	}
}

// runPerCommand executes cmds with one output file per command. Each sink is
// closed before the next command's sink opens.
func (r *Runner) runPerCommand(ctx context.Context, log lg.Logger, sess device.Session, host string, cmds []string) {
	for _, cmd := range cmds {
		if ctx.Err() != nil {
			return
		}
		stamp := r.now().Format(output.FileTimeFormat)
		res, err := sess.Send(cmd)
		if err != nil {
			if !r.commandFailed(log, cmd, err) {
				return
			}
			continue
		}
		sink, err := r.router.CommandSink(host, cmd, stamp)
		if err != nil {
			log.Error("opening output sink", lg.Err(err))
			return
		}
		log.Info("saving output", lg.String("command", cmd), lg.String("file", sink.Path()))
		werr := sink.WriteResult(stamp, host, cmd, res.Output)
		cerr := sink.Close()
		if werr != nil {
			log.Error("writing output", lg.Err(werr))
			return
		}
		if cerr != nil {
			log.Error("closing output file", lg.Err(cerr))
			return
		}
	}
}

// commandFailed applies the command-error policy. It returns true when the
// host's remaining commands should still run.
func (r *Runner) commandFailed(log lg.Logger, cmd string, err error) bool {
	log.Error("command failed", lg.String("command", cmd), lg.Err(err))
	return r.cfg.OnCommandError == ContinueHost
}

// recordFailure appends the host identifier to the shared failure log,
// creating it on first use.
func (r *Runner) recordFailure(host string) error {
	if r.cfg.FailureLog == "" {
		return nil
	}
	f, err := os.OpenFile(r.cfg.FailureLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open failure log: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintln(f, host); err != nil {
		return fmt.Errorf("write failure log: %w", err)
	}
	return nil
}
