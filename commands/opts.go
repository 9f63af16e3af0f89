package commands

import (
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/siegeai/schemalike/opts"
)

type optView struct {
	Kind         string   `json:"kind"`
	Binding      string   `json:"binding,omitempty"`
	Min          *float64 `json:"min,omitempty"`
	ExclusiveMin bool     `json:"exclusiveMin,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	ExclusiveMax bool     `json:"exclusiveMax,omitempty"`
	Multiplier   float64  `json:"multiplier,omitempty"`
}

func viewOpt(o opts.Opt) optView {
	switch o := o.(type) {
	case opts.RangeOpt:
		return optView{
			Kind:         "range",
			Binding:      o.Binding,
			Min:          o.Min,
			ExclusiveMin: o.ExclusiveMin,
			Max:          o.Max,
			ExclusiveMax: o.ExclusiveMax,
		}
	case opts.MultOpt:
		return optView{Kind: "mult", Binding: o.Binding, Multiplier: o.Multiplier}
	}
	return optView{Kind: "uniq"}
}

func newOptsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "opts <spec>",
		Short:   "Show how an option string parses",
		Example: `  schemalike opts "uniq, 1 <= len < 10, 3*n"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed := opts.Parse(args[0])
			views := make([]optView, len(parsed))
			for i, o := range parsed {
				views[i] = viewOpt(o)
			}
			out, err := json.MarshalIndent(views, "", "  ")
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(out, '\n'))
			return err
		},
	}
}
