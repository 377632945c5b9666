package main

import (
	"fmt"
	"os"

	"github.com/IT-Nick/quizbot/internal/app"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Load questions from an Excel file into tickets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, false)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		application, err := app.NewApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer application.Close()

		count, err := application.IngestService().IngestXLSX(cmd.Context(), f)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %d tickets (%d questions each)\n", count, cfg.Quiz.TicketSize)
		return nil
	},
}
