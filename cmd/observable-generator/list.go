package main

import (
	"fmt"
	"strings"

	"github.com/bndr/gotabulate"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"observable-generator/internal/plan"
)

// newListCmd creates the "list" command.
func newListCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list [patterns...]",
		Short: "List annotated types and their properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			res, err := p.run(cmd.Context(), args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := listRows(res.plan)
			if len(rows) == 0 {
				fmt.Fprintln(out, "no annotated types")
				return nil
			}

			t := gotabulate.Create(rows)
			t.SetHeaders([]string{"Type", "State", "Capabilities", "Properties", "Skipped"})
			t.SetAlign("left")
			t.SetWrapStrings(true)
			t.SetMaxCellSize(60)
			fmt.Fprint(out, t.Render("grid"))

			return nil
		},
	}
}

// listRows builds one table row per candidate type, validated types first.
func listRows(p *plan.ObservablePlan) [][]string {
	rows := make([][]string, 0, len(p.Types)+len(p.Rejected))

	for _, tp := range p.Types {
		state := "generated"
		if !tp.HasProperties() {
			state = "no properties"
		}

		var props, skipped []string
		for _, o := range tp.Outcomes {
			if o.Skipped() {
				skipped = append(skipped, o.Field.Name+": "+o.Explanation())
				continue
			}
			props = append(props, o.Name+" ("+o.Field.Name+")")
		}

		rows = append(rows, []string{
			tp.Candidate.DisplayName,
			state,
			capabilityText(tp.Capabilities),
			orDash(strings.Join(props, ", ")),
			orDash(strings.Join(skipped, "; ")),
		})
	}

	for _, r := range p.Rejected {
		rows = append(rows, []string{
			r.Candidate.DisplayName,
			"rejected " + r.Diagnostic.Code(),
			"-",
			"-",
			"-",
		})
	}

	return rows
}

func capabilityText(c plan.Capabilities) string {
	var parts []string
	if c.Changed {
		parts = append(parts, "changed:"+orDeclared(c.ChangedField))
	}
	if c.Changing {
		parts = append(parts, "changing:"+orDeclared(c.ChangingField))
	}

	if len(parts) == 0 {
		return "side table"
	}

	return strings.Join(parts, ", ")
}

// orDeclared names a capability provided by a declared method.
func orDeclared(field string) string {
	if field == "" {
		return "method"
	}

	return field
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}
