package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/notify"
	"github.com/alexanderramin/tempo/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newStartCmd(app *App) *cobra.Command {
	var categoryName, presetName string
	var focusMinutes, breakMinutes int
	var autoBreak, autoFocus, noAutoBreak bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a focus session",
		Long: `Start a focus session for a category.

The durations come from --preset, from explicit --focus/--break minutes, or
from the category's defaults when neither is given. In a terminal an
interactive countdown opens; otherwise the session runs headless, printing
phase transitions until the timer returns to idle.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			category, err := app.Categories.GetByName(ctx, categoryName)
			if err != nil {
				return fmt.Errorf("resolving category %q: %w", categoryName, err)
			}

			preset, err := resolveStartPreset(category, presetName, focusMinutes, breakMinutes)
			if err != nil {
				return err
			}

			settings, err := app.Settings.Get(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("auto-break") {
				settings.AutoStartBreak = autoBreak
			}
			if noAutoBreak {
				settings.AutoStartBreak = false
			}
			if cmd.Flags().Changed("auto-focus") {
				settings.AutoStartFocus = autoFocus
			}

			recorder := notify.NewRecorder(app.History, settings.LogBreaks, func(err error) {
				fmt.Fprintf(os.Stderr, "history: %v\n", err)
			})
			defer recorder.Close()

			if app.IsInteractive != nil && app.IsInteractive() {
				return runTimerTUI(category, preset, settings, recorder)
			}
			return runHeadless(category, preset, settings, recorder)
		},
	}

	cmd.Flags().StringVar(&categoryName, "category", "Study", "Category for the session")
	cmd.Flags().StringVar(&presetName, "preset", "", `Preset name ("Classic", "Extended", "Long", "Deep Work")`)
	cmd.Flags().IntVar(&focusMinutes, "focus", 0, "Custom focus minutes (implies a custom preset)")
	cmd.Flags().IntVar(&breakMinutes, "break", 0, "Custom break minutes")
	cmd.Flags().BoolVar(&autoBreak, "auto-break", false, "Chain into a break when focus completes")
	cmd.Flags().BoolVar(&noAutoBreak, "no-auto-break", false, "Stop at idle when focus completes")
	cmd.Flags().BoolVar(&autoFocus, "auto-focus", false, "Chain into the next focus when a break completes")

	return cmd
}

// resolveStartPreset picks durations in order of precedence: explicit
// custom minutes, a named preset, then the category defaults.
func resolveStartPreset(category *domain.Category, presetName string, focusMinutes, breakMinutes int) (domain.Preset, error) {
	if focusMinutes > 0 || breakMinutes > 0 {
		return domain.ResolvePreset(domain.PresetCustom, focusMinutes, breakMinutes)
	}
	if presetName != "" {
		return domain.ResolvePreset(presetName, 0, 0)
	}
	return category.DefaultPreset(), nil
}

func runTimerTUI(category *domain.Category, preset domain.Preset, settings domain.Settings, recorder *notify.Recorder) error {
	events := notify.NewChannelSink(32)
	engine := timer.New(
		timer.MultiSink{recorder, events},
		timer.WithAutoStartBreak(settings.AutoStartBreak),
		timer.WithAutoStartFocus(settings.AutoStartFocus),
	)

	model := newTimerModel(engine, events.Events(), category, preset, settings.SoundEnabled)
	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running timer: %w", err)
	}
	if m, ok := final.(timerModel); ok && m.recorded > 0 {
		fmt.Printf("Logged %d session(s) for %s\n", m.recorded, category.Name)
	}
	return nil
}

func runHeadless(category *domain.Category, preset domain.Preset, settings domain.Settings, recorder *notify.Recorder) error {
	notifier := notify.NewTerminalNotifier(os.Stdout, settings.SoundEnabled, settings.NotificationsEnabled)
	engine := timer.New(
		timer.MultiSink{recorder, notifier},
		timer.WithAutoStartBreak(settings.AutoStartBreak),
		timer.WithAutoStartFocus(settings.AutoStartFocus),
	)

	if err := engine.StartFocus(category.ID, preset); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := timer.NewRunner(engine, time.Second)
	if err := runner.Run(ctx); err != nil {
		// Interrupted: cancel the in-flight phase without logging it.
		_ = engine.Reset()
		return nil
	}
	return nil
}
