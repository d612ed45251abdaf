// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package interests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTaxonomy = `Natural Language Processing:
  - nlp
  - computational linguistics
Computer Vision:
  - cv
  - vision
`

func writeTaxonomy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPassthrough(t *testing.T) {
	var n Normalizer = Passthrough{}
	got := n.Normalize([]string{"nlp", "robotics", "NLP", "robotics"})
	assert.Equal(t, []string{"nlp", "robotics"}, got)
}

func TestTaxonomyNormalize(t *testing.T) {
	tax, err := LoadTaxonomy(writeTaxonomy(t, sampleTaxonomy))
	require.NoError(t, err)

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "aliases map to canonical labels",
			in:   []string{"nlp", "cv"},
			want: []string{"Natural Language Processing", "Computer Vision"},
		},
		{
			name: "canonical label maps to itself",
			in:   []string{"natural language processing"},
			want: []string{"Natural Language Processing"},
		},
		{
			name: "unmapped values pass through trimmed",
			in:   []string{"  quantum computing "},
			want: []string{"quantum computing"},
		},
		{
			name: "alias and label collapse to one entry",
			in:   []string{"nlp", "Natural Language Processing", "computational linguistics"},
			want: []string{"Natural Language Processing"},
		},
		{
			name: "empty input",
			in:   []string{},
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tax.Normalize(tt.in))
		})
	}
}

func TestNewSelectsImplementation(t *testing.T) {
	n, err := New("")
	require.NoError(t, err)
	assert.IsType(t, Passthrough{}, n)

	n, err = New(writeTaxonomy(t, sampleTaxonomy))
	require.NoError(t, err)
	assert.IsType(t, &Taxonomy{}, n)

	_, err = New(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadTaxonomyMalformed(t *testing.T) {
	_, err := LoadTaxonomy(writeTaxonomy(t, "label: [unclosed"))
	assert.Error(t, err)
}
