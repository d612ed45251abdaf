// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package interests standardizes research interest labels. Normalization
// is pluggable: the taxonomy-backed implementation maps known aliases to
// canonical labels, and passthrough keeps fetched values as-is when no
// taxonomy is configured.
package interests

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Normalizer produces standardized interest labels from a raw list.
type Normalizer interface {
	Normalize(raw []string) []string
}

// Passthrough returns the raw interests unchanged, deduplicated in order.
type Passthrough struct{}

// Normalize implements Normalizer.
func (Passthrough) Normalize(raw []string) []string {
	return dedupe(raw)
}

// Taxonomy maps interest aliases to canonical labels loaded from a YAML
// file of the form:
//
//	Natural Language Processing:
//	  - nlp
//	  - computational linguistics
//
// Lookup is case-insensitive; the canonical label itself always matches.
// Unmapped interests pass through unchanged.
type Taxonomy struct {
	labels map[string]string
}

// LoadTaxonomy reads a taxonomy YAML file.
func LoadTaxonomy(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy %s: %w", path, err)
	}

	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing taxonomy %s: %w", path, err)
	}

	labels := make(map[string]string)
	for label, aliases := range raw {
		labels[key(label)] = label
		for _, alias := range aliases {
			labels[key(alias)] = label
		}
	}
	return &Taxonomy{labels: labels}, nil
}

// Normalize implements Normalizer.
func (t *Taxonomy) Normalize(raw []string) []string {
	mapped := make([]string, 0, len(raw))
	for _, r := range raw {
		if label, ok := t.labels[key(r)]; ok {
			mapped = append(mapped, label)
		} else {
			mapped = append(mapped, strings.TrimSpace(r))
		}
	}
	return dedupe(mapped)
}

// New selects the normalizer for the configured taxonomy path: taxonomy
// when a path is set, passthrough otherwise.
func New(taxonomyPath string) (Normalizer, error) {
	if taxonomyPath == "" {
		return Passthrough{}, nil
	}
	return LoadTaxonomy(taxonomyPath)
}

func key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// dedupe removes duplicates while preserving first-seen order.
func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		k := key(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
