package commands

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/luchuanbaker/MyPojoToJson/internal/logger"
)

func NewRootCmd() *cobra.Command {
	var verbose bool
	var logJSON bool

	cmd := &cobra.Command{
		Use:   "pojo2json",
		Short: "Generate sample JSON from Java classes",
		Long: `pojo2json reads Java sources and prints a JSON skeleton for a type,
with default values for every field and field comments as // annotations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Initialize(verbose, logJSON)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write logs as JSON")

	cmd.AddCommand(NewResolveCmd())
	cmd.AddCommand(NewSchemaCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}
