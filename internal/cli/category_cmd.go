package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/spf13/cobra"
)

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage session categories",
	}

	cmd.AddCommand(
		newCategoryListCmd(app),
		newCategoryAddCmd(app),
		newCategoryEditCmd(app),
		newCategoryRemoveCmd(app),
	)

	return cmd
}

func newCategoryListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := app.Categories.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(categories) == 0 {
				fmt.Println("No categories found.")
				return nil
			}

			headers := []string{"", "NAME", "FOCUS", "BREAK", "ID"}
			rows := make([][]string, 0, len(categories))
			for _, c := range categories {
				rows = append(rows, []string{
					formatter.Swatch(c.Color),
					formatter.Bold(c.Name),
					fmt.Sprintf("%dm", c.FocusMinutes),
					fmt.Sprintf("%dm", c.BreakMinutes),
					formatter.Dim(formatter.TruncID(c.ID)),
				})
			}

			fmt.Print(formatter.RenderBox("Categories", formatter.RenderTable(headers, rows)))
			return nil
		},
	}
}

func newCategoryAddCmd(app *App) *cobra.Command {
	var name, color string
	var focusMinutes, breakMinutes int

	cmd := &cobra.Command{
		Use:   "add [NAME]",
		Short: "Add a category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				name = args[0]
			}

			c := &domain.Category{
				Name:         name,
				FocusMinutes: focusMinutes,
				BreakMinutes: breakMinutes,
				Color:        color,
			}

			// No name on the command line: collect everything in a form.
			if name == "" {
				interactive := app.IsInteractive == nil || app.IsInteractive()
				if !interactive {
					return fmt.Errorf("category name is required (pass it as an argument)")
				}
				if err := runCategoryForm(c); err != nil {
					return err
				}
			}

			if err := app.Categories.Create(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Printf("Created category %s (%dm focus / %dm break)\n", c.Name, c.FocusMinutes, c.BreakMinutes)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Hex color like #8ec07c")
	cmd.Flags().IntVar(&focusMinutes, "focus", 25, "Default focus minutes")
	cmd.Flags().IntVar(&breakMinutes, "break", 5, "Default break minutes")

	return cmd
}

func newCategoryEditCmd(app *App) *cobra.Command {
	var newName, color string
	var focusMinutes, breakMinutes int

	cmd := &cobra.Command{
		Use:   "edit NAME",
		Short: "Edit a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := app.Categories.GetByName(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				c.Name = newName
			}
			if cmd.Flags().Changed("color") {
				c.Color = color
			}
			if cmd.Flags().Changed("focus") {
				c.FocusMinutes = focusMinutes
			}
			if cmd.Flags().Changed("break") {
				c.BreakMinutes = breakMinutes
			}

			if err := app.Categories.Update(ctx, c); err != nil {
				return err
			}
			fmt.Printf("Updated category %s\n", c.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&newName, "name", "", "New name")
	cmd.Flags().StringVar(&color, "color", "", "Hex color like #8ec07c")
	cmd.Flags().IntVar(&focusMinutes, "focus", 0, "Default focus minutes")
	cmd.Flags().IntVar(&breakMinutes, "break", 0, "Default break minutes")

	return cmd
}

func newCategoryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a category and its session history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := app.Categories.GetByName(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Categories.Delete(ctx, c.ID); err != nil {
				return err
			}
			fmt.Printf("Removed category %s and its history\n", c.Name)
			return nil
		},
	}
}

func newPresetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List built-in duration presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			headers := []string{"NAME", "FOCUS", "BREAK"}
			rows := make([][]string, 0, len(domain.BuiltinPresets))
			for _, p := range domain.BuiltinPresets {
				rows = append(rows, []string{
					formatter.Bold(p.Name),
					strconv.Itoa(p.FocusMinutes) + "m",
					strconv.Itoa(p.BreakMinutes) + "m",
				})
			}
			fmt.Print(formatter.RenderBox("Presets", formatter.RenderTable(headers, rows)))
			return nil
		},
	}
}
