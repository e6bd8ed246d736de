package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"observable-generator/internal/gen"
)

// newGenCmd creates the "gen" command.
func newGenCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "gen [patterns...]",
		Short: "Generate observable members for annotated types",
		Long: `Loads the packages matching patterns (default "."), plans every type annotated
with // @observe.Object and writes one generated file per type next to it.
Generated files that are no longer produced are removed.`,
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

			written, err := gen.WriteFiles(res.files)
			if err != nil {
				return err
			}

			if err := gen.RemoveFiles(res.stale); err != nil {
				return err
			}

			p.logger.Info("wrote files",
				zap.Int("written", len(written)),
				zap.Int("removed", len(res.stale)))

			out := cmd.OutOrStdout()
			for _, path := range written {
				fmt.Fprintf(out, "wrote %s\n", p.rel(path))
			}
			for _, path := range res.stale {
				fmt.Fprintf(out, "removed %s\n", p.rel(path))
			}

			fmt.Fprintf(out, "%d types, %d files written, %d unchanged, %d removed\n",
				len(res.plan.Types), len(written), len(res.files)-len(written), len(res.stale))

			return nil
		},
	}
}
