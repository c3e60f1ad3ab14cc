package cmd

import (
	"encoding/json"
	"fmt"

	"orderedprops/internal/propfile"

	"github.com/spf13/cobra"
)

func newGetCmd(provider *AppProvider) *cobra.Command {
	var def string

	cmd := &cobra.Command{
		Use:   "get <file> <key>",
		Short: "Print the value of a key",
		Long: `Print the value stored under a key.

Prints the bare value if the key is set, or "key (not set)" if missing.
With --default the given value is printed instead for a missing key.

Examples:
  props get app.properties db.url
  props get app.xml greeting --default hello`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			hasDefault := cmd.Flags().Changed("default")

			f, err := app.Open(args[0], propfile.FormatAuto)
			if err != nil {
				return err
			}

			key := args[1]
			_, ok := f.Props().Get(key)
			value := f.Props().GetOrDefault(key, def)

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]interface{}{
					"key":   key,
					"value": value,
					"found": ok,
				})
			}

			if ok || hasDefault {
				fmt.Fprintln(app.Out, value)
			} else {
				fmt.Fprintf(app.Out, "%s (not set)\n", key)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&def, "default", "", "Value to print when the key is missing")

	return cmd
}
