package cmd

import (
	"io"
	"os"
	"sync"

	"orderedprops/internal/config"
	"orderedprops/internal/logger"

	"github.com/spf13/cobra"
)

// AppProvider lazily initializes the App on first use.
type AppProvider struct {
	once sync.Once
	app  *App
	err  error

	// Config captured from flags before Execute()
	ConfigPath string
	JSONOutput bool
	NoDate     bool
	Verbose    bool
	Out        io.Writer
	Err        io.Writer
}

// Get returns the App, initializing it on first call.
func (p *AppProvider) Get() (*App, error) {
	p.once.Do(func() {
		if p.app == nil {
			p.app, p.err = p.init()
		}
	})
	return p.app, p.err
}

// NewTestProvider creates a provider pre-initialized with the given App.
// Used for testing commands with a test App.
func NewTestProvider(app *App) *AppProvider {
	return &AppProvider{
		app:        app,
		JSONOutput: app.JSON,
		Out:        app.Out,
		Err:        app.Err,
	}
}

func (p *AppProvider) init() (*App, error) {
	cfg, path, err := config.Resolve(p.ConfigPath)
	if err != nil {
		return nil, err
	}
	if p.NoDate {
		cfg.Write.SuppressDate = true
	}

	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := p.Err
	if errOut == nil {
		errOut = os.Stderr
	}

	log := logger.Nop()
	if p.Verbose {
		log = logger.New(errOut, true)
	}
	log.Named("config").Debugf("using %s (write.encoding=%s, suppress_date=%t)", path, cfg.Write.Encoding, cfg.Write.SuppressDate)

	return &App{
		Config:     cfg,
		ConfigPath: path,
		Log:        log,
		Out:        out,
		Err:        errOut,
		JSON:       p.JSONOutput || cfg.JSON,
	}, nil
}

// Execute runs the CLI.
func Execute() error {
	provider := &AppProvider{
		Out: os.Stdout,
		Err: os.Stderr,
	}

	rootCmd := newRootCmd(provider)
	err := rootCmd.Execute()
	if provider.app != nil && provider.app.Log != nil {
		_ = provider.app.Log.Sync()
	}
	return err
}

// newRootCmd creates the root command with all subcommands.
func newRootCmd(provider *AppProvider) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "props",
		Short: "Read and edit properties files without reordering them",
		Long: `props reads, edits and converts properties files while keeping entries
in the order they appear in the file.

Files ending in .xml use the XML properties format, .yaml and .yml files
hold a flat YAML mapping, and anything else uses the line-oriented
key=value format.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags - these populate the provider config
	rootCmd.PersistentFlags().BoolVar(&provider.JSONOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&provider.ConfigPath, "config", "", "Path to config.yaml (default: $PROPS_CONFIG or the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&provider.Verbose, "verbose", "v", false, "Log debug information to stderr")
	rootCmd.PersistentFlags().BoolVar(&provider.NoDate, "no-date", false, "Omit the timestamp comment when writing text files")

	// Register all commands
	rootCmd.AddCommand(newGetCmd(provider))
	rootCmd.AddCommand(newSetCmd(provider))
	rootCmd.AddCommand(newUnsetCmd(provider))
	rootCmd.AddCommand(newListCmd(provider))
	rootCmd.AddCommand(newConvertCmd(provider))
	rootCmd.AddCommand(newFmtCmd(provider))
	rootCmd.AddCommand(newWatchCmd(provider))
	rootCmd.AddCommand(newVersionCmd(provider))

	return rootCmd
}
