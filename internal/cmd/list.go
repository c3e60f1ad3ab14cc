package cmd

import (
	"encoding/json"
	"fmt"

	"orderedprops/internal/propfile"

	"github.com/spf13/cobra"
)

// entryJSON is the JSON shape of one entry. A list of these keeps the file
// order, which a JSON object would not.
type entryJSON struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func newListCmd(provider *AppProvider) *cobra.Command {
	var keysOnly bool

	cmd := &cobra.Command{
		Use:   "list <file>",
		Short: "List entries in file order",
		Long: `List every entry of a properties file in the order it appears.

Examples:
  props list app.properties
  props list app.xml --keys
  props --json list app.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			f, err := app.Open(args[0], propfile.FormatAuto)
			if err != nil {
				return err
			}
			props := f.Props()

			if app.JSON {
				if keysOnly {
					return json.NewEncoder(app.Out).Encode(props.Keys())
				}
				entries := make([]entryJSON, 0, props.Len())
				for k, v := range props.All() {
					entries = append(entries, entryJSON{Key: k, Value: v})
				}
				return json.NewEncoder(app.Out).Encode(entries)
			}

			if props.IsEmpty() {
				fmt.Fprintln(app.Out, "No entries.")
				return nil
			}
			for k, v := range props.All() {
				if keysOnly {
					fmt.Fprintln(app.Out, k)
				} else {
					fmt.Fprintf(app.Out, "%s=%s\n", k, v)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&keysOnly, "keys", false, "Print keys only")

	return cmd
}
