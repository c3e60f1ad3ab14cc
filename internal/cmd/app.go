// Package cmd implements the props command-line interface.
package cmd

import (
	"io"
	"os"

	"orderedprops/internal/config"
	"orderedprops/internal/logger"
	"orderedprops/internal/propfile"

	"golang.org/x/term"
)

// App holds application state shared across commands.
type App struct {
	Config     config.Config
	ConfigPath string // resolved config.yaml location; may not exist
	Log        logger.Logger
	Out        io.Writer
	Err        io.Writer
	JSON       bool // output in JSON format
}

// FileOptions returns the propfile options derived from the configuration.
func (a *App) FileOptions(format propfile.Format) propfile.Options {
	return propfile.Options{
		Format:       format,
		SuppressDate: a.Config.Write.SuppressDate,
		Encoding:     a.Config.Write.Encoding,
		XMLEncoding:  a.Config.XML.Encoding,
		Comment:      a.Config.Write.Comment,
	}
}

// Open loads a properties file using the configured options.
func (a *App) Open(path string, format propfile.Format) (*propfile.File, error) {
	f, err := propfile.Open(path, a.FileOptions(format))
	if err != nil {
		return nil, err
	}
	a.logger().Named("file").Debugf("opened %s as %s (%d entries)", path, f.Format(), f.Props().Len())
	return f, nil
}

func (a *App) logger() logger.Logger {
	if a.Log == nil {
		return logger.Nop()
	}
	return a.Log
}

// SuccessColor returns the string wrapped in green ANSI codes if stdout is a terminal,
// otherwise returns the string unchanged.
func (a *App) SuccessColor(s string) string {
	if f, ok := a.Out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "\033[32m" + s + "\033[0m"
	}
	return s
}

// WarnColor returns the string wrapped in orange ANSI codes if stdout is a terminal,
// otherwise returns the string unchanged.
func (a *App) WarnColor(s string) string {
	if f, ok := a.Out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "\033[38;5;214m" + s + "\033[0m"
	}
	return s
}
