package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scholar-directory/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// StoreConfig locates the canonical directory and its audit log.
type StoreConfig struct {
	// Path is the canonical store JSON file (the directory of record).
	Path string `json:"path" yaml:"path"`

	// AuditPath is the SQLite change-audit database. Empty disables
	// auditing.
	AuditPath string `json:"audit_path,omitempty" yaml:"audit_path,omitempty"`
}

// ImageConfig holds settings for photo acquisition.
type ImageConfig struct {
	HTTPConfig `yaml:",inline"`

	// Dir is the image asset directory where acquired photos are written.
	Dir string `json:"dir" yaml:"dir"`

	// DefaultPath is the literal default-image path assigned when no
	// photo is available.
	DefaultPath string `json:"default_path" yaml:"default_path"`

	// Width and Height are the target photo dimensions (default 200x200).
	// Smaller source images are saved unscaled.
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// SheetConfig holds settings for the submissions stage.
type SheetConfig struct {
	HTTPConfig `yaml:",inline"`

	// SheetID and GID identify the published Google Sheet tab exported
	// as CSV.
	SheetID string `json:"sheet_id" yaml:"sheet_id"`
	GID     string `json:"gid" yaml:"gid"`

	// CSVPath is where the exported CSV is cached on disk.
	CSVPath string `json:"csv_path" yaml:"csv_path"`

	// DataDir is where candidate JSON files are written.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// Cutoff excludes rows submitted strictly before it. Rows are
	// processed only going forward from the last successful merge.
	Cutoff time.Time `json:"cutoff" yaml:"cutoff"`
}

// EnrichConfig holds settings for the enrichment stage.
type EnrichConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates against the bibliometric lookup service.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// TaxonomyPath is an optional YAML file mapping raw interest strings
	// to standardized labels. Empty selects passthrough normalization.
	TaxonomyPath string `json:"taxonomy_path,omitempty" yaml:"taxonomy_path,omitempty"`

	// LookupDelay is the pause between consecutive lookups (default 1s).
	LookupDelay time.Duration `json:"lookup_delay" yaml:"lookup_delay"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Store  StoreConfig  `json:"store" yaml:"store"`
	Images ImageConfig  `json:"images" yaml:"images"`
	Sheet  SheetConfig  `json:"sheet" yaml:"sheet"`
	Enrich EnrichConfig `json:"enrich" yaml:"enrich"`
}
