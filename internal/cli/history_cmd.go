package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and export session history",
	}

	cmd.AddCommand(
		newHistoryListCmd(app),
		newHistorySummaryCmd(app),
		newHistoryExportCmd(app),
		newHistoryNoteCmd(app),
		newHistoryRemoveCmd(app),
	)

	return cmd
}

func newHistoryListCmd(app *App) *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List session records",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			filter, err := flags.toRecordFilter(ctx, app)
			if err != nil {
				return err
			}

			records, err := app.History.List(ctx, filter)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No sessions found.")
				return nil
			}

			categories, err := app.Categories.List(ctx)
			if err != nil {
				return err
			}
			names := make(map[string]string, len(categories))
			for _, c := range categories {
				names[c.ID] = c.Name
			}

			headers := []string{"ID", "CATEGORY", "PHASE", "STARTED", "ACTUAL", "PLANNED", ""}
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				name := names[r.CategoryID]
				if name == "" {
					name = formatter.TruncID(r.CategoryID)
				}
				rows = append(rows, []string{
					formatter.Dim(formatter.TruncID(r.ID)),
					name,
					formatter.PhaseColor(r.Phase).Render(string(r.Phase)),
					formatter.HumanTimestamp(r.StartedAt),
					formatter.FormatMinutes(r.Actual),
					formatter.Dim(formatter.FormatMinutes(r.Planned)),
					formatter.CompletedMark(r.Completed),
				})
			}

			fmt.Print(formatter.RenderBox("Sessions", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	addFilterFlags(cmd.Flags(), &flags)
	return cmd
}

func newHistorySummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show focus totals for today, this week, and per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := app.History.Summary(cmd.Context())
			if err != nil {
				return err
			}

			var content string
			content += formatter.Dim("Today  ") + formatter.Bold(formatter.FormatMinutes(summary.TodayFocus)) + "\n"
			content += formatter.Dim("Week   ") + formatter.Bold(formatter.FormatMinutes(summary.WeekFocus)) + "\n"

			if len(summary.Categories) > 0 {
				var grand float64
				for _, t := range summary.Categories {
					grand += t.TotalFocus.Minutes()
				}
				content += "\n"
				for _, t := range summary.Categories {
					share := 0.0
					if grand > 0 {
						share = t.TotalFocus.Minutes() / grand
					}
					content += fmt.Sprintf("%s %-12s %s  %s %s\n",
						formatter.Swatch(t.Category.Color),
						t.Category.Name,
						formatter.RenderProgress(share, 20, t.Category.Color),
						formatter.Bold(formatter.FormatMinutes(t.TotalFocus)),
						formatter.Dim(fmt.Sprintf("(%d sessions)", t.Sessions)),
					)
				}
			}

			fmt.Print(formatter.RenderBox("Summary", content))
			return nil
		},
	}
}

func newHistoryExportCmd(app *App) *cobra.Command {
	var flags filterFlags
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export session records as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			filter, err := flags.toRecordFilter(ctx, app)
			if err != nil {
				return err
			}

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating %s: %w", outPath, err)
				}
				defer f.Close()
				out = f
			}

			n, err := app.History.ExportCSV(ctx, out, filter)
			if err != nil {
				return err
			}
			if outPath != "" {
				fmt.Printf("Exported %d record(s) to %s\n", n, outPath)
			}
			return nil
		},
	}

	addFilterFlags(cmd.Flags(), &flags)
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default stdout)")
	return cmd
}

func newHistoryNoteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "note ID TEXT",
		Short: "Attach a note to a session record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.History.UpdateNote(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Noted session %s\n", formatter.TruncID(args[0]))
			return nil
		},
	}
}

func newHistoryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a session record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.History.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed session %s\n", formatter.TruncID(args[0]))
			return nil
		},
	}
}
