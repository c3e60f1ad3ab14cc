package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"orderedprops/internal/propfile"

	"github.com/spf13/cobra"
)

func newFmtCmd(provider *AppProvider) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Rewrite a file in normalized form",
		Long: `Rewrite a properties file with one key=value line per entry,
canonical escaping and the configured header comment. Comments and
blank lines in the original are dropped; entry order is kept.

With --check the file is not modified and the command fails if it is
not already formatted. Use --no-date with --check, since the timestamp
comment changes on every write.

Examples:
  props fmt app.properties
  props --no-date fmt --check app.properties`,
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

			if check {
				current, err := os.ReadFile(f.Path())
				if err != nil && !os.IsNotExist(err) {
					return err
				}
				var want bytes.Buffer
				if err := propfile.Encode(&want, f.Format(), f.Props(), app.FileOptions(f.Format())); err != nil {
					return err
				}
				formatted := bytes.Equal(current, want.Bytes())
				if app.JSON {
					if err := json.NewEncoder(app.Out).Encode(map[string]interface{}{
						"file":      f.Path(),
						"formatted": formatted,
					}); err != nil {
						return err
					}
				}
				if !formatted {
					return fmt.Errorf("%s is not formatted", f.Path())
				}
				if !app.JSON {
					fmt.Fprintf(app.Out, "%s is formatted\n", f.Path())
				}
				return nil
			}

			if err := f.Save(); err != nil {
				return err
			}
			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]interface{}{
					"file":    f.Path(),
					"entries": f.Props().Len(),
				})
			}
			fmt.Fprintf(app.Out, "%s %s\n", app.SuccessColor("Formatted"), f.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Fail instead of rewriting if the file is not formatted")

	return cmd
}
