package commands

import (
	"fmt"
	"volby-scraper/internal/export"
	"volby-scraper/internal/scrapers/volby"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	localitiesMatch *string
	localitiesLimit *int
)

func init() {
	localitiesMatch = localitiesCmd.Flags().String("match", "", "Only show the localities whose name (or code) is closest to this.")
	localitiesLimit = localitiesCmd.Flags().Int("limit", 5, "How many matches to show with --match.")
	rootCmd.AddCommand(localitiesCmd)
}

var localitiesCmd = &cobra.Command{
	Use:   "localities <district_url> [--match <name>]",
	Short: "Lists the localities of a district and the pages their results are read from.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := setup(cmd)
		if err != nil {
			return err
		}

		localities, err := client.ResolveLocalities(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		t := export.NewTable(cmd.OutOrStdout())
		if *localitiesMatch == "" {
			t.AppendHeader(table.Row{"#", "Code", "Name", "Url"})
			for i, l := range localities {
				t.AppendRow(table.Row{i + 1, l.Code, l.Name, l.DetailUrl})
			}
			t.AppendFooter(table.Row{"", "", "Total", len(localities)})
			t.Render()
			return nil
		}

		matches := volby.MatchLocalities(localities, *localitiesMatch, *localitiesLimit)
		t.AppendHeader(table.Row{"Similarity", "Code", "Name", "Url"})
		for _, m := range matches {
			t.AppendRow(table.Row{
				fmt.Sprintf("%.2f", m.Similarity),
				m.Locality.Code,
				m.Locality.Name,
				m.Locality.DetailUrl,
			})
		}
		t.Render()
		return nil
	},
}
