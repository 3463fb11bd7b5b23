package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/luchuanbaker/MyPojoToJson/internal/config"
	"github.com/luchuanbaker/MyPojoToJson/internal/jsonschema"
)

func NewSchemaCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Generate JSON Schema for " + config.DefaultFileName + " files",
		Long: `Generate a JSON Schema that can be used for IDE autocomplete and validation
of ` + config.DefaultFileName + ` configuration files.

Reference it from yaml-language-server with a comment at the top of the file:

  # yaml-language-server: $schema=` + jsonschema.SchemaID,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schemaBytes, err := jsonschema.Generate()
			if err != nil {
				return errors.Wrap(err, "generating schema")
			}

			if outputFile == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(schemaBytes))
				return nil
			}
			if dir := filepath.Dir(outputFile); dir != "." {
				if err := os.MkdirAll(dir, 0o750); err != nil {
					return errors.Wrapf(err, "creating directory %s", dir)
				}
			}
			if err := os.WriteFile(outputFile, schemaBytes, 0o600); err != nil {
				return errors.Wrap(err, "writing schema")
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "JSON Schema written to %s\n", outputFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}
