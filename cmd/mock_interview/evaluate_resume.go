package main

import (
	"path/filepath"

	"github.com/jonathan/mock-interview/internal/apiclient"
	"github.com/jonathan/mock-interview/internal/observability"
	"github.com/spf13/cobra"
)

var evaluateResumeCmd = &cobra.Command{
	Use:   "evaluate-resume <file>",
	Short: "Get a critique of a resume (PDF, DOCX or TXT)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		f, err := openResume(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		client := apiclient.New(cfg.ServerURL, "")
		critique, err := client.EvaluateResume(cmd.Context(), filepath.Base(args[0]), f)
		if err != nil {
			return err
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintHTML("Resume Evaluation", critique)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(evaluateResumeCmd)
}
