// Package registry provides the reliability registry: a curated, read-only
// catalog of domains and source names treated as trustworthy for corroboration
// purposes. The catalog is loaded once at process start and is safe for
// unlimited concurrent readers.
package registry

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// catalogFile mirrors the embedded YAML document.
type catalogFile struct {
	Sources []string `yaml:"sources"`
}

// Registry answers whether a domain or provider source name belongs to a
// reliable outlet. It holds no mutable state after construction.
type Registry struct {
	entries []string
	// normalized entries with common TLD suffixes stripped, used for
	// source-name matching where domain parsing may have failed upstream.
	normalized []string
}

// Load parses the embedded catalog and returns a ready-to-use registry.
// Returns an error if the embedded catalog is malformed or empty.
func Load() (*Registry, error) {
	return loadFrom(catalogYAML)
}

func loadFrom(raw []byte) (*Registry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse reliability catalog: %w", err)
	}
	if len(file.Sources) == 0 {
		return nil, fmt.Errorf("reliability catalog is empty")
	}

	r := &Registry{
		entries:    make([]string, 0, len(file.Sources)),
		normalized: make([]string, 0, len(file.Sources)),
	}
	for _, entry := range file.Sources {
		entry = strings.TrimSpace(strings.ToLower(entry))
		if entry == "" {
			continue
		}
		r.entries = append(r.entries, entry)
		r.normalized = append(r.normalized, normalizeEntry(entry))
	}
	return r, nil
}

// Len returns the number of catalog entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// IsReliableDomain reports whether any catalog entry appears as a substring of
// the given domain. The match is deliberately loose: "reuters.com" matches both
// "reuters.com" and "uk.reuters.com". It also matches unrelated domains that
// merely contain a catalog entry; see the registry notes in DESIGN.md.
func (r *Registry) IsReliableDomain(domain string) bool {
	if domain == "" {
		return false
	}
	domain = strings.ToLower(domain)
	for _, entry := range r.entries {
		if strings.Contains(domain, entry) {
			return true
		}
	}
	return false
}

// IsReliableSourceName reports whether the provider-supplied source name maps
// to a catalog entry. The name is lowercased and stripped of spaces; catalog
// entries are compared with their ".com"/".org" suffixes removed, so a name
// like "Reuters" matches the "reuters.com" entry. This is the second-chance
// check for results whose domain could not be parsed (redirect/AMP URLs).
func (r *Registry) IsReliableSourceName(name string) bool {
	if name == "" {
		return false
	}
	cleaned := strings.ReplaceAll(strings.ToLower(name), " ", "")
	for _, entry := range r.normalized {
		if entry == "" {
			continue
		}
		if strings.Contains(cleaned, entry) {
			return true
		}
	}
	return false
}

// normalizeEntry strips common top-level-domain suffixes from a catalog entry
// for source-name matching.
func normalizeEntry(entry string) string {
	entry = strings.ReplaceAll(entry, ".com", "")
	return strings.ReplaceAll(entry, ".org", "")
}
