// Package commands resolves the ordered command list for a run from inline
// arguments, a command file, or per-host deploy files.
package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Delimiter separates commands in an inline command list.
const Delimiter = ","

// deploy files are named netrun_deploy_<host>.txt, next to where the run is
// started unless a directory is given.
const deployPrefix = "netrun_deploy_"

var (
	// ErrNoCommands reports an inline list that resolved to nothing.
	ErrNoCommands = errors.New("no commands to execute")
	// ErrNoDeployFile reports a host without a deploy file; callers skip the
	// host rather than fail the run.
	ErrNoDeployFile = errors.New("no deploy file for host")
)

// ParseInline builds the command list from CLI tokens. Tokens are joined with
// a space before splitting on commas, so commands containing spaces survive
// shell word-splitting (e.g. `-c show version,show clock`). Entries are
// trimmed and blanks dropped.
func ParseInline(tokens []string) ([]string, error) {
	joined := strings.Join(tokens, " ")
	var cmds []string
	for _, p := range strings.Split(joined, Delimiter) {
		c := strings.TrimSpace(p)
		if c == "" {
			continue
		}
		cmds = append(cmds, c)
	}
	if len(cmds) == 0 {
		return nil, ErrNoCommands
	}
	return cmds, nil
}

// LoadFile reads a command file: one command per line, trailing whitespace
// stripped, blank lines dropped, order preserved.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open commands file: %w", err)
	}
	defer f.Close()

	var cmds []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cmds = append(cmds, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read commands file: %w", err)
	}
	return cmds, nil
}

// DeployFile returns the conventional deploy filename for a host.
func DeployFile(host string) string {
	return deployPrefix + host + ".txt"
}

// LoadDeploy resolves the per-host deploy file inside dir. A missing file
// yields ErrNoDeployFile so the orchestrator can skip the host and move on.
func LoadDeploy(dir, host string) ([]string, error) {
	path := filepath.Join(dir, DeployFile(host))
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoDeployFile)
		}
		return nil, fmt.Errorf("stat deploy file: %w", err)
	}
	return LoadFile(path)
}
