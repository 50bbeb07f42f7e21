package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"httplatencies/internal/storage"
	"httplatencies/internal/tui/styles"
)

func newHistoryCmd(v *viper.Viper) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "List saved runs, or print one run as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.Open(v.GetString("history-db"))
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				item, err := store.Get(args[0])
				if err != nil {
					return err
				}

				data, err := json.MarshalIndent(item, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))

				return nil
			}

			items, err := store.List(limit)
			if err != nil {
				return err
			}

			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no saved runs")

				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderHistory(items))

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 = all)")

	return cmd
}

func renderHistory(items []storage.HistoryItem) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.ColorBorder)).
		Headers("ID", "TIME", "URLS", "WORKERS", "OK", "ERR", "P50", "P95").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TableHeader
			}

			return styles.TableCell
		})

	for _, item := range items {
		rep := item.Report

		p50, p95 := "-", "-"
		if rep.Summary != nil {
			p50 = strconv.FormatInt(rep.Summary.P50, 10) + "ms"
			p95 = strconv.FormatInt(rep.Summary.P95, 10) + "ms"
		}

		t.Row(
			item.ID,
			item.Timestamp.Local().Format("2006-01-02 15:04:05"),
			strings.Join(rep.URLs, " "),
			fmt.Sprintf("%dx%d", rep.Tasks, rep.Probes),
			strconv.Itoa(rep.Successes),
			strconv.Itoa(rep.ProtocolErrors+rep.TransportErrors),
			p50,
			p95,
		)
	}

	return t.Render()
}
