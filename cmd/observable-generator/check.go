package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"observable-generator/internal/gen"
)

// newCheckCmd creates the "check" command.
func newCheckCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "check [patterns...]",
		Short: "Verify generated files are up to date",
		Long: `Runs the same pipeline as gen without writing anything. Exits with status 1
when a generated file is missing, differs, or is no longer produced.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			res, err := p.run(cmd.Context(), args)
			if err != nil {
				return err
			}
			if res.failed(cmd.ErrOrStderr()) {
				return errReported
			}

			outdated, err := gen.CheckFiles(res.files)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range outdated {
				fmt.Fprintf(out, "outdated %s\n", p.rel(path))
			}
			for _, path := range res.stale {
				fmt.Fprintf(out, "stale %s\n", p.rel(path))
			}

			if len(outdated) > 0 || len(res.stale) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d generated files out of date, run gen\n", len(outdated)+len(res.stale))
				return errReported
			}

			fmt.Fprintf(out, "%d files up to date\n", len(res.files))

			return nil
		},
	}
}
