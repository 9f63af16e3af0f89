package commands

import (
	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/siegeai/schemalike/apispec"
	"github.com/siegeai/schemalike/infer"
	"github.com/siegeai/schemalike/jsontype"
	"github.com/siegeai/schemalike/schema"
)

func newInferCommand() *cobra.Command {
	var (
		input  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "infer [file]",
		Short: "Infer a schema from an example document",
		Example: `  # Infer from a JSON file
  schemalike infer example.json

  # Infer from YAML on stdin and print an OpenAPI schema
  cat example.yaml | schemalike infer --input yaml --output openapi`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			b, err := readInput(cmd, path)
			if err != nil {
				return err
			}

			var s schema.Schema
			if isYAMLInput(input, path) {
				s, err = infer.ParseSampleYAMLBytes(b)
			} else {
				s, err = infer.ParseSampleBodyBytes(b)
			}
			if err != nil {
				return err
			}

			var out []byte
			switch output {
			case "json":
				out, err = json.MarshalIndent(s, "", "  ")
			case "openapi":
				out, err = json.MarshalIndent(apispec.ToOpenAPI(s), "", "  ")
			case "yaml":
				out, err = jsontype.EncodeYAML(s)
			default:
				return errors.Newf("unknown output format %q", output)
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if _, err := w.Write(out); err != nil {
				return err
			}
			if output != "yaml" {
				_, err = w.Write([]byte("\n"))
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input format: json or yaml (default from file extension)")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json, yaml or openapi")

	return cmd
}
