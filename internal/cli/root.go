package cli

import (
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Categories service.CategoryService
	History    service.HistoryService
	Settings   service.SettingsService

	// IsInteractive reports whether stdin is attached to a terminal;
	// wired in main so commands can pick between the TUI and headless
	// output.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "tempo" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "tempo",
		Short: "Pomodoro-style focus timer with local session history",
	}

	root.AddCommand(
		newStartCmd(app),
		newCategoryCmd(app),
		newHistoryCmd(app),
		newSettingsCmd(app),
		newPresetCmd(),
	)

	return root
}
