package cmd

import (
	"encoding/json"
	"fmt"

	"orderedprops/internal/propfile"
	"orderedprops/properties"

	"github.com/spf13/cobra"
)

func newSetCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <file> <key> <value>",
		Short: "Set the value of a key",
		Long: `Set a key to a value and write the file back.

An existing key keeps its position; a new key is appended after the
last entry. The file is created if it does not exist.

Examples:
  props set app.properties db.url jdbc:h2:mem:test
  props --no-date set app.properties greeting "hello world"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			f, err := app.Open(args[0], propfile.FormatAuto)
			if err != nil {
				return err
			}

			key, value := args[1], args[2]
			var previous string
			var existed bool
			err = f.Update(func(p *properties.Properties) error {
				previous, existed = p.Set(key, value)
				return nil
			})
			if err != nil {
				return err
			}
			app.logger().Named("set").Debugf("wrote %d entries to %s", f.Props().Len(), f.Path())

			if app.JSON {
				result := map[string]interface{}{
					"key":     key,
					"value":   value,
					"existed": existed,
				}
				if existed {
					result["previous"] = previous
				}
				return json.NewEncoder(app.Out).Encode(result)
			}

			if existed {
				fmt.Fprintf(app.Out, "%s %s (was %q)\n", app.SuccessColor("Updated"), key, previous)
			} else {
				fmt.Fprintf(app.Out, "%s %s\n", app.SuccessColor("Added"), key)
			}
			return nil
		},
	}

	return cmd
}
