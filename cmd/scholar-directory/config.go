package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-directory/internal/secrets"
	"github.com/pdiddy/scholar-directory/pkg/types"
)

// cutoffLayout matches the submission timestamps: month/day/year.
const cutoffLayout = "1/2/2006"

func init() {
	viper.SetDefault("store.path", "assets/researchers_en.json")
	viper.SetDefault("store.audit_path", "")

	viper.SetDefault("images.dir", "assets/images")
	viper.SetDefault("images.default_path", "./assets/images/default.jpg")
	viper.SetDefault("images.width", 200)
	viper.SetDefault("images.height", 200)
	viper.SetDefault("images.timeout", 30*time.Second)

	viper.SetDefault("sheet.sheet_id", "")
	viper.SetDefault("sheet.gid", "0")
	viper.SetDefault("sheet.csv_path", "data/submissions.csv")
	viper.SetDefault("sheet.data_dir", "data")
	viper.SetDefault("sheet.cutoff", "")
	viper.SetDefault("sheet.timeout", 30*time.Second)

	viper.SetDefault("enrich.api_key", "")
	viper.SetDefault("enrich.taxonomy_path", "")
	viper.SetDefault("enrich.lookup_delay", time.Second)
	viper.SetDefault("enrich.timeout", 30*time.Second)

	viper.SetDefault("user_agent", "scholar-directory/"+version)
}

// pipelineConfig assembles the stage configuration from viper, which
// layers config file, SCHOLAR_DIRECTORY_* environment variables, and
// defaults. The API key falls back to the .secrets/ directory when the
// config leaves it empty.
func pipelineConfig() (types.PipelineConfig, error) {
	ua := viper.GetString("user_agent")

	cfg := types.PipelineConfig{
		Store: types.StoreConfig{
			Path:      viper.GetString("store.path"),
			AuditPath: viper.GetString("store.audit_path"),
		},
		Images: types.ImageConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("images.timeout"),
				UserAgent: ua,
			},
			Dir:         viper.GetString("images.dir"),
			DefaultPath: viper.GetString("images.default_path"),
			Width:       viper.GetInt("images.width"),
			Height:      viper.GetInt("images.height"),
		},
		Sheet: types.SheetConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("sheet.timeout"),
				UserAgent: ua,
			},
			SheetID: viper.GetString("sheet.sheet_id"),
			GID:     viper.GetString("sheet.gid"),
			CSVPath: viper.GetString("sheet.csv_path"),
			DataDir: viper.GetString("sheet.data_dir"),
		},
		Enrich: types.EnrichConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("enrich.timeout"),
				UserAgent: ua,
			},
			APIKey:       secretDefault(secrets.ScholarAPIKey, viper.GetString("enrich.api_key")),
			TaxonomyPath: viper.GetString("enrich.taxonomy_path"),
			LookupDelay:  viper.GetDuration("enrich.lookup_delay"),
		},
	}

	if raw := viper.GetString("sheet.cutoff"); raw != "" {
		cutoff, err := parseCutoff(raw)
		if err != nil {
			return types.PipelineConfig{}, err
		}
		cfg.Sheet.Cutoff = cutoff
	}

	return cfg, nil
}

func parseCutoff(raw string) (time.Time, error) {
	cutoff, err := time.Parse(cutoffLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing cutoff %q (want M/D/YYYY): %w", raw, err)
	}
	return cutoff, nil
}
