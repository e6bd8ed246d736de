package main

import (
	"fmt"

	"github.com/bndr/gotabulate"
	"github.com/spf13/cobra"

	"observable-generator/internal/diagnostic"
)

// newCodesCmd creates the "codes" command.
func newCodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List the diagnostic codes",
		Run: func(cmd *cobra.Command, args []string) {
			rows := make([][]string, 0, len(diagnostic.Catalog))
			for _, d := range diagnostic.Catalog {
				rows = append(rows, []string{d.Code, d.Severity.String(), d.Category, d.Title})
			}

			t := gotabulate.Create(rows)
			t.SetHeaders([]string{"Code", "Severity", "Category", "Title"})
			t.SetAlign("left")
			fmt.Fprint(cmd.OutOrStdout(), t.Render("grid"))
		},
	}
}
