// Package inventory resolves the ordered list of target hosts for a run,
// either from an inline comma-separated string or from an inventory file.
//
// File-based inventories are treated as routing/config-style dumps: every
// IPv4 literal found on a non-comment line becomes a target, deduplicated in
// first-seen order. No DNS or reachability validation happens here; that is
// the session driver's job.
package inventory

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Delimiter separates hosts in an inline inventory string.
const Delimiter = ","

// ErrEmptyEntry reports a blank entry in an inline host list.
var ErrEmptyEntry = errors.New("empty host entry")

var ipv4Pattern = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)

// ParseInline splits a comma-separated host list, trimming whitespace around
// each entry. Order is preserved. A blank entry is a user error.
func ParseInline(s string) ([]string, error) {
	parts := strings.Split(s, Delimiter)
	hosts := make([]string, 0, len(parts))
	for _, p := range parts {
		host := strings.TrimSpace(p)
		if host == "" {
			return nil, fmt.Errorf("host list %q: %w", s, ErrEmptyEntry)
		}
		hosts = append(hosts, host)
	}
	return hosts, nil
}

// LoadFile extracts target addresses from an inventory file. Blank lines and
// lines starting with "!" or "#" are skipped; every IPv4 literal on the
// remaining lines is collected in first-seen order. Addresses in the
// broadcast/subnet-mask range (255.*) are never targets.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open inventory file: %w", err)
	}
	defer f.Close()

	var hosts []string
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "!") || strings.HasPrefix(line, "#") {
			continue
		}
		for _, addr := range ipv4Pattern.FindAllString(line, -1) {
			if strings.HasPrefix(addr, "255.") {
				continue
			}
			if _, dup := seen[addr]; dup {
				continue
			}
			seen[addr] = struct{}{}
			hosts = append(hosts, addr)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read inventory file: %w", err)
	}
	return hosts, nil
}
