package cmd

import (
	"encoding/json"
	"fmt"

	"orderedprops/internal/propfile"
	"orderedprops/properties"

	"github.com/spf13/cobra"
)

func newUnsetCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unset <file> <key>",
		Short: "Remove a key",
		Long: `Remove a key and write the file back. The remaining entries keep
their order. Removing a key that is not set leaves the file untouched.

Examples:
  props unset app.properties db.url`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			f, err := app.Open(args[0], propfile.FormatAuto)
			if err != nil {
				return err
			}

			key := args[1]
			var removed bool
			if _, ok := f.Props().Get(key); ok {
				err = f.Update(func(p *properties.Properties) error {
					_, removed = p.Remove(key)
					return nil
				})
				if err != nil {
					return err
				}
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]interface{}{
					"key":     key,
					"removed": removed,
				})
			}

			if removed {
				fmt.Fprintf(app.Out, "%s %s\n", app.SuccessColor("Removed"), key)
			} else {
				fmt.Fprintf(app.Out, "%s %s (not set)\n", app.WarnColor("Skipped"), key)
			}
			return nil
		},
	}

	return cmd
}
