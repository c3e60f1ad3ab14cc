package cmd

import (
	"encoding/json"
	"fmt"

	"orderedprops/internal/propfile"

	"github.com/spf13/cobra"
)

func newConvertCmd(provider *AppProvider) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert between text, XML and YAML formats",
		Long: `Read a properties file and write its entries to another file,
possibly in another format. Entry order is preserved.

Formats are detected from the file extensions unless --from or --to
is given. Valid formats are text, xml and yaml.

Examples:
  props convert app.properties app.xml
  props convert legacy.cfg app.yaml --from text`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			inFormat, err := propfile.ParseFormat(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			outFormat, err := propfile.ParseFormat(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			f, err := app.Open(args[0], inFormat)
			if err != nil {
				return err
			}
			if err := f.SaveAs(args[1], outFormat); err != nil {
				return err
			}

			resolved := outFormat
			if resolved == propfile.FormatAuto {
				resolved = propfile.DetectFormat(args[1])
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]interface{}{
					"input":   args[0],
					"output":  args[1],
					"format":  resolved.String(),
					"entries": f.Props().Len(),
				})
			}

			fmt.Fprintf(app.Out, "%s %d entries from %s to %s (%s)\n",
				app.SuccessColor("Converted"), f.Props().Len(), args[0], args[1], resolved)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Input format (text, xml, yaml)")
	cmd.Flags().StringVar(&to, "to", "", "Output format (text, xml, yaml)")

	return cmd
}
