// Package input reads newline-delimited root hosts from files or stdin.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ReadHosts reads lines from r, trims whitespace, drops blanks, and returns the
// deduplicated hosts in sorted order. Duplicate lines collapse to a single host,
// so the returned slice is a set.
func ReadHosts(r io.Reader) ([]string, error) {
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		seen[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	hosts := make([]string, 0, len(seen))
	for host := range seen {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)
	return hosts, nil
}

// ReadHostsFile opens path and reads hosts from it via ReadHosts.
// An unreadable file is a configuration error and aborts the run.
func ReadHostsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading hosts file %q: %w", path, err)
	}
	defer f.Close()
	return ReadHosts(f)
}
