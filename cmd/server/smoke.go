package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/JustJay7/nyaya-mitra/internal/webcheck"
	"github.com/spf13/cobra"
)

func newSmokeCommand() *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Load the dashboard in a headless browser and print what it renders",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()

			if baseURL == "" {
				baseURL = fmt.Sprintf("http://localhost:%s", cfg.Port)
			}

			checker, err := webcheck.NewChecker(cfg, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := checker.Close(); err != nil {
					log.Error("Failed to close browser", "error", err)
				}
			}()

			rows, err := checker.Dashboard(cmd.Context(), baseURL)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tSUBMITTED")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Title, r.Status, r.SubmittedOn)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			log.Info("Dashboard smoke check passed", "url", baseURL, "rows", len(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "", "front end base URL (default http://localhost:$PORT)")

	return cmd
}
