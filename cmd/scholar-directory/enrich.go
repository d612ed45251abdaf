package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-directory/internal/directory"
	"github.com/pdiddy/scholar-directory/internal/enrich"
	"github.com/pdiddy/scholar-directory/internal/images"
	"github.com/pdiddy/scholar-directory/internal/interests"
	"github.com/pdiddy/scholar-directory/internal/scholar"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Refresh bibliometric fields from the external author lookup",
	Long: `Walk the canonical directory and, for every researcher with a Google
Scholar identifier, fetch the author record and refresh h-index,
citation count, and any submission fields the profile left blank. The
store is saved after every record so a failed batch keeps its partial
progress.`,
	RunE: runEnrich,
}

func init() {
	enrichCmd.Flags().Duration("delay", 0, "pause between lookups (default from config, 1s)")
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	if delay, _ := cmd.Flags().GetDuration("delay"); delay > 0 {
		cfg.Enrich.LookupDelay = delay
	}
	if cfg.Enrich.APIKey == "" {
		return fmt.Errorf("no API key: set enrich.api_key or place it in .secrets/")
	}

	normalizer, err := interests.New(cfg.Enrich.TaxonomyPath)
	if err != nil {
		return err
	}

	var audit *directory.Audit
	if cfg.Store.AuditPath != "" {
		audit, err = directory.OpenAudit(cfg.Store.AuditPath)
		if err != nil {
			return err
		}
		defer audit.Close()
	}

	e := &enrich.Enricher{
		Source: &scholar.Client{
			HTTP: &http.Client{Timeout: cfg.Enrich.Timeout},
			Cfg:  cfg.Enrich,
		},
		Photos:       images.NewFetcher(&http.Client{Timeout: cfg.Images.Timeout}, cfg.Images, log),
		Normalizer:   normalizer,
		Store:        directory.NewStore(cfg.Store),
		Audit:        audit,
		ImagesDir:    cfg.Images.Dir,
		DefaultImage: cfg.Images.DefaultPath,
		Delay:        cfg.Enrich.LookupDelay,
		Log:          log,
	}

	summary, err := e.Run(cmd.Context())
	if err != nil {
		return err
	}

	log.Info().
		Int("enriched", summary.Enriched).
		Int("not_found", summary.NotFound).
		Int("failed", summary.Failed).
		Msg("enrichment complete")
	fmt.Printf("Enriched %d of %d researchers (%d without identifier, %d failed)\n",
		summary.Enriched, summary.Total(), summary.NotFound, summary.Failed)
	return nil
}
