// Package output routes command responses to the console or to files.
//
// Three run flags decide sink placement: without save everything goes to the
// console; save alone writes one file per host; save with separate-output
// writes one file per command. Sinks are scoped resources: exactly one is
// open at a time for a given host, and it is closed before the next opens.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// SeparatorWidth is the width of banner rule lines.
const SeparatorWidth = 120

// FileTimeFormat is the timestamp layout used in filenames and banners.
const FileTimeFormat = "2006-01-02_15h04m05"

// Router decides where command output lands for one run.
type Router struct {
	Save        bool
	Separate    bool
	DirTemplate string // output directory, supports {date_time} {host} {username}
	Username    string
	Stamp       string // run start timestamp, embedded in per-host filenames
	Console     io.Writer
}

// PerCommand reports whether output is routed to one file per command.
func (r *Router) PerCommand() bool {
	return r.Save && r.Separate
}

// HostHeader reports whether a per-host console header should be printed
// before the host's commands.
func (r *Router) HostHeader() bool {
	return !r.Save && !r.Separate
}

// dir expands the output directory template for host and creates it if
// needed. An empty template means the current directory.
func (r *Router) dir(host string) (string, error) {
	if r.DirTemplate == "" {
		return ".", nil
	}
	d := strings.NewReplacer(
		"{date_time}", r.Stamp,
		"{host}", host,
		"{username}", r.Username,
	).Replace(r.DirTemplate)
	if err := os.MkdirAll(d, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	return d, nil
}

// HostSink opens the sink scoped to one host: the console stream when save is
// off, otherwise one output file covering all of the host's commands. Not
// valid in per-command mode; use CommandSink there.
func (r *Router) HostSink(host string) (*Sink, error) {
	if !r.Save {
		return &Sink{w: r.Console}, nil
	}
	dir, err := r.dir(host)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, fmt.Sprintf("netrun_output_%s_%s.txt", host, r.Stamp))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return &Sink{w: f, file: f, path: path}, nil
}

// CommandSink opens the sink scoped to one command in separate-output mode.
// Spaces in the command are replaced with dashes in the filename; stamp is
// the command's execution timestamp.
func (r *Router) CommandSink(host, command, stamp string) (*Sink, error) {
	dir, err := r.dir(host)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%s_%s_%s.txt", host, strings.ReplaceAll(command, " ", "-"), stamp)
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return &Sink{w: f, file: f, path: path}, nil
}

// Sink is one open output destination. File-backed sinks own their handle
// and close exactly once; console sinks close as a no-op. Close is nil-safe
// so deferred cleanup works on every exit path.
type Sink struct {
	w    io.Writer
	file *os.File
	path string
}

// Path returns the file backing the sink, empty for console sinks.
func (s *Sink) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close releases the underlying file, if any. Safe to call more than once.
func (s *Sink) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	f := s.file
	s.file = nil
	return f.Close()
}

// WriteHeader prints the fixed-width host banner, used on the console before
// a host's commands.
func (s *Sink) WriteHeader(host string) error {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(rule("*****", '*') + "\n")
	b.WriteString(rule(fmt.Sprintf("***** %s ", host), '*') + "\n")
	b.WriteString(rule("*****", '*') + "\n")
	if _, err := io.WriteString(s.w, b.String()); err != nil {
		return fmt.Errorf("write host header: %w", err)
	}
	return nil
}

// WriteResult writes the separator banner followed by the raw response and a
// trailing blank line.
func (s *Sink) WriteResult(stamp, host, command, result string) error {
	var b strings.Builder
	sep := strings.Repeat("-", SeparatorWidth)
	b.WriteString(sep + "\n")
	b.WriteString(fmt.Sprintf("[%s] %s: Output of command '%s':\n", stamp, host, command))
	b.WriteString(sep + "\n")
	b.WriteString(result + "\n")
	b.WriteString("\n")
	if _, err := io.WriteString(s.w, b.String()); err != nil {
		return fmt.Errorf("write command output: %w", err)
	}
	return nil
}

// rule pads prefix with filler up to SeparatorWidth.
func rule(prefix string, filler byte) string {
	if len(prefix) >= SeparatorWidth {
		return prefix
	}
	return prefix + strings.Repeat(string(filler), SeparatorWidth-len(prefix))
}
