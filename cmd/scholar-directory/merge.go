package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-directory/internal/directory"
	"github.com/pdiddy/scholar-directory/pkg/types"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Fold classified candidates into the canonical directory",
	Long: `Apply the candidate files produced by the submissions stage to the
canonical store. Updates are applied first with per-field precedence,
then new profiles are appended. An update naming a researcher not in
the store is dropped with a warning, never promoted to an add.`,
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}

	store := directory.NewStore(cfg.Store)
	records, err := store.Load()
	if err != nil {
		return err
	}

	newRecords, err := directory.ReadRecords(filepath.Join(cfg.Sheet.DataDir, "candidates_new.json"))
	if err != nil {
		return err
	}
	updates, err := directory.ReadRecords(filepath.Join(cfg.Sheet.DataDir, "candidates_update.json"))
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

	classified := types.Classification{New: newRecords, Updates: updates}
	merged, summary := directory.Merge(records, classified, cfg.Images.DefaultPath, audit, log)
	if err := store.Save(merged); err != nil {
		return err
	}

	log.Info().
		Int("updated", summary.Updated).
		Int("dropped", summary.Dropped).
		Int("added", summary.Added).
		Msg("merge complete")
	fmt.Printf("Merged: %d updated, %d added, %d dropped (total %d)\n",
		summary.Updated, summary.Added, summary.Dropped, len(merged))
	return nil
}
