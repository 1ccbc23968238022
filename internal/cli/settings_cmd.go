package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change timer settings",
	}

	cmd.AddCommand(
		newSettingsShowCmd(app),
		newSettingsSetCmd(app),
	)

	return cmd
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Settings.Get(cmd.Context())
			if err != nil {
				return err
			}

			headers := []string{"KEY", "VALUE"}
			rows := [][]string{
				{"auto-break", onOff(s.AutoStartBreak)},
				{"auto-focus", onOff(s.AutoStartFocus)},
				{"sound", onOff(s.SoundEnabled)},
				{"notifications", onOff(s.NotificationsEnabled)},
				{"log-breaks", onOff(s.LogBreaks)},
			}
			fmt.Print(formatter.RenderBox("Settings", formatter.RenderTable(headers, rows)))
			return nil
		},
	}
}

func newSettingsSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one setting (on/off)",
		Long: `Change one setting. Keys: auto-break, auto-focus, sound,
notifications, log-breaks. Values: on, off, true, false.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := app.Settings.Get(ctx)
			if err != nil {
				return err
			}

			value, err := parseOnOff(args[1])
			if err != nil {
				return err
			}

			if err := applySetting(&s, args[0], value); err != nil {
				return err
			}
			if err := app.Settings.Save(ctx, s); err != nil {
				return err
			}
			fmt.Printf("Set %s to %s\n", args[0], onOff(value))
			return nil
		},
	}
}

func applySetting(s *domain.Settings, key string, value bool) error {
	switch key {
	case "auto-break":
		s.AutoStartBreak = value
	case "auto-focus":
		s.AutoStartFocus = value
	case "sound":
		s.SoundEnabled = value
	case "notifications":
		s.NotificationsEnabled = value
	case "log-breaks":
		s.LogBreaks = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func parseOnOff(raw string) (bool, error) {
	switch raw {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid value %q (want on/off)", raw)
	}
	return value, nil
}

func onOff(v bool) string {
	if v {
		return formatter.StyleGreen.Render("on")
	}
	return formatter.Dim("off")
}
