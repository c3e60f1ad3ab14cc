package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"orderedprops/internal/propfile"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Print changes to a file as they happen",
		Long: `Watch a properties file and print every key that is added, changed
or removed each time the file is written. Runs until interrupted.

Output lines start with + for added keys, ~ for changed keys and - for
removed keys. With --json each change is printed as one JSON object.

Examples:
  props watch app.properties`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()

			return watchFile(ctx, app, args[0], nil)
		},
	}

	return cmd
}

// watchFile reports changes to path until ctx is done. If ready is non-nil
// it is closed once the watcher is installed.
func watchFile(ctx context.Context, app *App, path string, ready chan<- struct{}) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	log := app.logger().Named("watch")

	f, err := app.Open(abs, propfile.FormatAuto)
	if err != nil {
		return err
	}
	previous := f.Props().Entries().Clone()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so atomic replacements are seen.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	log.Debugf("watching %s", abs)
	if ready != nil {
		close(ready)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != abs || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) {
				continue
			}
			current, err := app.Open(abs, propfile.FormatAuto)
			if err != nil {
				// Likely a partial write; the next event retries.
				log.Warnf("reloading %s: %v", abs, err)
				continue
			}
			next := current.Props().Entries().Clone()
			if err := printChanges(app, propfile.Diff(previous, next)); err != nil {
				return err
			}
			previous = next
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnf("watcher error: %v", err)
		}
	}
}

func printChanges(app *App, changes []propfile.Change) error {
	for _, c := range changes {
		if app.JSON {
			if err := json.NewEncoder(app.Out).Encode(c); err != nil {
				return err
			}
			continue
		}
		switch c.Kind {
		case propfile.Added:
			fmt.Fprintf(app.Out, "%s %s=%s\n", app.SuccessColor("+"), c.Key, c.NewValue)
		case propfile.Changed:
			fmt.Fprintf(app.Out, "%s %s: %s -> %s\n", app.WarnColor("~"), c.Key, c.OldValue, c.NewValue)
		case propfile.Removed:
			fmt.Fprintf(app.Out, "%s %s\n", app.WarnColor("-"), c.Key)
		}
	}
	return nil
}
