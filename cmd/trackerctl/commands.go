package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"expensetracker/internal/analytics"
	"expensetracker/internal/models"
	"expensetracker/internal/persistence"
)

func newRootCmd(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:   "trackerctl",
		Short: "Inspect and maintain the expense tracker state",
		Long: `trackerctl reads the persisted expense tracker record from the configured
storage (DB_DRIVER, SQLITE_PATH, STATE_FILE, ...) and reports on it or
replaces it. Stop the API server before running reset or import.`,
		SilenceUsage: true,
	}

	root.AddCommand(usersCmd(open))
	root.AddCommand(stateCmd(open))
	root.AddCommand(summaryCmd(open))
	root.AddCommand(exportCmd(open))
	root.AddCommand(resetCmd(open))
	root.AddCommand(importCmd(open))

	return root
}

// withWorkspace opens a workspace for the duration of fn.
func withWorkspace(cmd *cobra.Command, open opener, fn func(ws *workspace) error) error {
	ws, err := open(cmd.Context())
	if err != nil {
		return err
	}
	defer ws.close()
	return fn(ws)
}

func usersCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List the known users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withWorkspace(cmd, open, func(ws *workspace) error {
				st := ws.store.State()

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSIGNED IN")
				for _, u := range ws.users.Users() {
					signedIn := st.IsAuthenticated && st.CurrentUser != nil && st.CurrentUser.ID == u.ID
					fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", u.ID, u.Name, u.Email, signedIn)
				}
				return w.Flush()
			})
		},
	}
}

func stateCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Print the persisted record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withWorkspace(cmd, open, func(ws *workspace) error {
				payload, err := persistence.Encode(ws.maintenance.Snapshot())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
				return err
			})
		},
	}
}

func summaryCmd(open opener) *cobra.Command {
	var userID string
	var allTime bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income, expenses and balance of a user",
		Long: `Show the totals of a user's transactions inside the stored date range,
or across all of them with --all.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withWorkspace(cmd, open, func(ws *workspace) error {
				if _, err := ws.user(userID); err != nil {
					return err
				}

				st := ws.store.State()
				txns := analytics.FilterByRange(st.Transactions, st.DateRange, userID, ws.loc)
				scope := fmt.Sprintf("%s to %s", st.DateRange.Start.In(ws.loc).Format(time.DateOnly), st.DateRange.End.In(ws.loc).Format(time.DateOnly))
				if allTime {
					txns = analytics.FilterByUser(st.Transactions, userID)
					scope = "all time"
				}

				return writeSummary(cmd.OutOrStdout(), scope, txns, st.Categories)
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().BoolVar(&allTime, "all", false, "ignore the stored date range")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func writeSummary(out io.Writer, scope string, txns []models.Transaction, cats []models.Category) error {
	summary := analytics.Summarize(txns)
	counts := analytics.Counts(txns)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Period\t%s\n", scope)
	fmt.Fprintf(w, "Income\t%s\t(%d)\n", formatMinor(summary.Income), counts.Income)
	fmt.Fprintf(w, "Expenses\t%s\t(%d)\n", formatMinor(summary.Expenses), counts.Expense)
	fmt.Fprintf(w, "Balance\t%s\n", formatMinor(summary.Balance))

	if breakdown := analytics.GroupByCategory(txns, cats); len(breakdown) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "CATEGORY\tTOTAL")
		for _, c := range breakdown {
			fmt.Fprintf(w, "%s\t%s\n", c.CategoryName, formatMinor(c.Total))
		}
	}
	return w.Flush()
}

func exportCmd(open opener) *cobra.Command {
	var userID string
	var report bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the export rows of a user as JSON",
		Long: `Print the spreadsheet rows and summary metrics of a user's transactions in
the stored date range, or the document report with --report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withWorkspace(cmd, open, func(ws *workspace) error {
				user, err := ws.user(userID)
				if err != nil {
					return err
				}

				st := ws.store.State()
				txns := analytics.FilterByRange(st.Transactions, st.DateRange, userID, ws.loc)

				var doc any = map[string]any{
					"transactions": analytics.ExportRecords(txns, st.Categories, ws.loc),
					"summary":      analytics.ExportMetrics(txns),
				}
				if report {
					doc = analytics.BuildReport(user, txns, st.Categories, time.Now(), ws.loc)
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().BoolVar(&report, "report", false, "print the document report instead of the rows")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func resetCmd(open opener) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the persisted record with the initial state",
		Long: `Replace the persisted record with the initial state: signed out, no
transactions, the default categories and the current month as date range.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				return fmt.Errorf("reset discards every transaction; pass --force to confirm")
			}
			return withWorkspace(cmd, open, func(ws *workspace) error {
				ws.maintenance.Reset()
				if err := ws.save(cmd.Context()); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "State reset")
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm the reset")

	return cmd
}

func importCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the persisted record with a saved one",
		Long: `Replace the persisted record with the JSON record in file ("-" reads
stdin). Invalid entries are skipped and reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			return withWorkspace(cmd, open, func(ws *workspace) error {
				issues, err := ws.maintenance.Import(payload)
				if err != nil {
					return err
				}
				if err := ws.save(cmd.Context()); err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				for _, issue := range issues {
					fmt.Fprintf(out, "skipped: %s\n", issue)
				}
				st := ws.store.State()
				_, err = fmt.Fprintf(out, "Imported %d transactions and %d categories\n", len(st.Transactions), len(st.Categories))
				return err
			})
		},
	}
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return payload, nil
}

// formatMinor renders an amount in minor units with two decimals.
func formatMinor(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
