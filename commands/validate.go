package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/siegeai/schemalike/infer"
	"github.com/siegeai/schemalike/validate"
)

func newValidateCommand() *cobra.Command {
	var (
		schemaPath string
		input      string
	)

	cmd := &cobra.Command{
		Use:   "validate --schema schema.json [file]",
		Short: "Validate a document against a JSON schema",
		Long: `Validate a JSON or YAML document against a draft-07 schema document.
Every failure is printed as "pointer: message" and the command exits non-zero.`,
		Example: `  schemalike infer good.json > schema.json
  schemalike validate --schema schema.json candidate.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readInput(cmd, schemaPath)
			if err != nil {
				return err
			}
			v, err := validate.CompileDocument(doc)
			if err != nil {
				return err
			}

			var path string
			if len(args) > 0 {
				path = args[0]
			}
			b, err := readInput(cmd, path)
			if err != nil {
				return err
			}

			var data any
			if isYAMLInput(input, path) {
				data, err = infer.DecodeSampleYAMLBytes(b)
			} else {
				data, err = infer.DecodeSampleBodyBytes(b)
			}
			if err != nil {
				return err
			}

			res := v(data)
			if res.IsValid {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "valid")
				return err
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), validate.FormatErrors(res.Errors)); err != nil {
				return err
			}
			return errors.Mark(errors.Newf("%d validation errors", len(res.Errors)), validate.ErrInvalid)
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema document path")
	cmd.Flags().StringVarP(&input, "input", "i", "", "input format: json or yaml (default from file extension)")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}
