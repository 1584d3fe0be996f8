package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hrportal/recruiting-api/internal/services"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>...",
	Short: "Print the resume text the evaluator would receive for each file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, paths []string) error {
	_, log, err := loadRuntime()
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer log.Sync()

	extractor := services.NewDocumentExtractor()
	out := cmd.OutOrStdout()
	failed := 0

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			log.Warn("file not found, skipping", zap.String("path", path), zap.Error(err))
			failed++
			continue
		}

		result := extractor.Extract(path)
		log.Info("extracted",
			zap.String("path", path),
			zap.String("status", result.Status.String()),
			zap.Int("characters", len(result.Text)),
		)
		if result.Status == services.ExtractionFailed {
			failed++
		}

		fmt.Fprintf(out, "==> %s (%s)\n%s\n\n", path, result.Status, result.ResumeText())
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be extracted", failed, len(paths))
	}
	return nil
}
