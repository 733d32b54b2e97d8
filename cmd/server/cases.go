package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/JustJay7/nyaya-mitra/internal/client"
	"github.com/JustJay7/nyaya-mitra/internal/database"
	"github.com/spf13/cobra"
)

func defaultAPIURL() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	return "http://localhost:" + port + "/api"
}

func newCasesCommand() *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:   "cases",
		Short: "Work with cases through a running server",
	}
	cmd.PersistentFlags().StringVar(&apiURL, "api", defaultAPIURL(), "API root URL")

	newClient := func() *client.Client {
		return client.New(apiURL, nil)
	}

	var title, parties, description string
	submit := &cobra.Command{
		Use:   "submit",
		Short: "Submit a new case",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient().CreateCase(cmd.Context(), client.NewCase{
				CaseTitle:       title,
				PartiesInvolved: parties,
				CaseDescription: description,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), c)
		},
	}
	submit.Flags().StringVar(&title, "title", "", "case title")
	submit.Flags().StringVar(&parties, "parties", "", "parties involved")
	submit.Flags().StringVar(&description, "description", "", "case description")
	_ = submit.MarkFlagRequired("title")
	_ = submit.MarkFlagRequired("parties")
	_ = submit.MarkFlagRequired("description")

	list := &cobra.Command{
		Use:   "list",
		Short: "List cases, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cases, err := newClient().ListCases(cmd.Context())
			if err != nil {
				return err
			}
			return printTable(cmd.OutOrStdout(), cases)
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one case including its judgment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient().GetCase(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), c)
		},
	}

	judge := &cobra.Command{
		Use:   "judge <id>",
		Short: "Generate the AI judgment for a case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient().GenerateJudgment(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), c.Judgment)
			return err
		},
	}

	cmd.AddCommand(submit, list, show, judge)
	return cmd
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTable(w io.Writer, cases []database.Case) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPARTIES\tSUBMITTED\tSTATUS")
	for _, c := range cases {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.CaseTitle, c.PartiesInvolved, c.SubmittedAt.Local().Format("2006-01-02 15:04"), c.Status)
	}
	return tw.Flush()
}
