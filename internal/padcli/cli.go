// Package padcli implements the padshift command line interface.
package padcli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func Main(ctx context.Context, args []string, out, errOut io.Writer) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	return cmd.ExecuteContext(ctx)
}

func NewRootCmd() *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:           "padshift",
		Short:         "Virtual controller translation layer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	newLogger := func() (*zap.Logger, error) {
		if debug {
			return zap.NewDevelopment()
		}
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "console"
		return cfg.Build()
	}

	rootCmd.AddCommand(
		newCheckCmd(),
		newCapsCmd(),
		newMonitorCmd(newLogger),
	)
	return rootCmd
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
