package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-directory/internal/directory"
	"github.com/pdiddy/scholar-directory/internal/images"
	"github.com/pdiddy/scholar-directory/internal/sheet"
)

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "Classify submitted profile forms into add/update candidates",
	Long: `Download the submission sheet as CSV (unless a cached copy exists),
classify each row as a new profile or an update to an existing one, and
write candidates_new.json and candidates_update.json to the data
directory for the merge stage.`,
	RunE: runSubmissions,
}

func init() {
	submissionsCmd.Flags().Bool("refresh", false, "re-download the sheet even if a cached CSV exists")
	submissionsCmd.Flags().String("cutoff", "", "only process rows submitted on or after this date (M/D/YYYY)")
	rootCmd.AddCommand(submissionsCmd)
}

func runSubmissions(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	if raw, _ := cmd.Flags().GetString("cutoff"); raw != "" {
		cutoff, err := parseCutoff(raw)
		if err != nil {
			return err
		}
		cfg.Sheet.Cutoff = cutoff
	}

	refresh, _ := cmd.Flags().GetBool("refresh")
	if _, err := os.Stat(cfg.Sheet.CSVPath); refresh || os.IsNotExist(err) {
		if cfg.Sheet.SheetID == "" {
			return fmt.Errorf("no cached CSV at %s and sheet.sheet_id is not configured", cfg.Sheet.CSVPath)
		}
		client := &http.Client{Timeout: cfg.Sheet.Timeout}
		log.Info().Str("sheet_id", cfg.Sheet.SheetID).Msg("downloading submission sheet")
		if err := sheet.Download(cmd.Context(), client, cfg.Sheet); err != nil {
			return err
		}
	}

	rows, err := sheet.ReadRows(cfg.Sheet.CSVPath)
	if err != nil {
		return err
	}

	store := directory.NewStore(cfg.Store)
	records, err := store.Load()
	if err != nil {
		return err
	}

	classifier := &sheet.Classifier{
		Photos:    images.NewFetcher(&http.Client{Timeout: cfg.Images.Timeout}, cfg.Images, log),
		ImagesDir: cfg.Images.Dir,
		Cutoff:    cfg.Sheet.Cutoff,
		Log:       log,
	}
	classified := classifier.Classify(rows, directory.Names(records))

	newPath := filepath.Join(cfg.Sheet.DataDir, "candidates_new.json")
	updatePath := filepath.Join(cfg.Sheet.DataDir, "candidates_update.json")
	if err := directory.WriteRecords(newPath, classified.New); err != nil {
		return err
	}
	if err := directory.WriteRecords(updatePath, classified.Updates); err != nil {
		return err
	}

	log.Info().
		Int("new", len(classified.New)).
		Int("updates", len(classified.Updates)).
		Int("skipped", classified.Skipped).
		Int("ambiguous", classified.Ambiguous).
		Msg("submissions classified")
	fmt.Printf("Classified %d rows: %d new, %d updates, %d skipped\n",
		len(rows), len(classified.New), len(classified.Updates), classified.Skipped)
	return nil
}
