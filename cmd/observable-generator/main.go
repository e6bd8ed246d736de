// Package main provides the CLI entrypoint for observable-generator.
//
// observable-generator is a Go codegen tool that:
//   - Loads Go packages (AST + go/types) and finds struct types annotated
//     with // @observe.Object
//   - Derives a property from every underscore-prefixed field
//   - Generates getters, notifying setters and subscription methods next to
//     the annotated type
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"observable-generator/internal/config"
)

const version = "0.1.0"

// envPrefix prefixes the environment variables overriding flags, e.g.
// OBSERVABLE_GENERATOR_SUFFIX.
const envPrefix = "OBSERVABLE_GENERATOR"

// errReported is returned when the failure was already printed.
var errReported = errors.New("reported")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(viper.New())
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}

		return 1
	}

	return 0
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "observable-generator",
		Short:         "Generate property change notifications for Go structs",
		Long:          "observable-generator adds getters, notifying setters and subscription methods to struct types annotated with // @observe.Object.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default: "+config.FileName+" in --dir or a parent)")
	flags.String("dir", ".", "Directory patterns are resolved in")
	flags.String("runtime", "", "Import path of the runtime package")
	flags.String("suffix", "", "Generated file name suffix")
	flags.StringSlice("tags", nil, "Build tags")
	flags.Bool("tests", false, "Include types declared in test files")
	flags.Int("workers", 0, "Concurrent workers (0 = GOMAXPROCS)")
	flags.String("debug-dir", "", "Directory for unformatted output when formatting fails")
	flags.Bool("require-prefix", true, "Only fields with a leading underscore become properties")
	flags.Bool("report-skipped", true, "Report a diagnostic for every skipped field")
	flags.Bool("warnings-as-errors", false, "Treat warnings as errors and fail without writing")
	flags.Bool("no-color", false, "Disable colored output")
	flags.BoolP("verbose", "v", false, "Verbose logging and informational diagnostics")

	// Bind flags to viper.
	flags.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})

	// Env vars: OBSERVABLE_GENERATOR_SUFFIX, OBSERVABLE_GENERATOR_DEBUG_DIR, etc.
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Add commands.
	rootCmd.AddCommand(newGenCmd(v))
	rootCmd.AddCommand(newCheckCmd(v))
	rootCmd.AddCommand(newListCmd(v))
	rootCmd.AddCommand(newCodesCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print observable-generator version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "observable-generator %s\n", version)
		},
	}
}
