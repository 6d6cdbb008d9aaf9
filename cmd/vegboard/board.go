package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"text/tabwriter"

	"github.com/Veraticus/veggie-board/internal/board"
	"github.com/Veraticus/veggie-board/internal/cli"
	"github.com/Veraticus/veggie-board/internal/common"
	"github.com/Veraticus/veggie-board/internal/model"
	"github.com/Veraticus/veggie-board/internal/tui/components"
	"github.com/spf13/cobra"
)

func boardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the public price board",
		Long: `Print every price entry on the board, optionally searched, filtered and sorted.

Sort directives: price-asc, price-desc, date-asc, date-desc, status-good, status-low.
The status directives keep only entries of that quality.`,
		Example: `  vegboard board --search carrot
  vegboard board --vegetable Onion --sort price-asc`,
		RunE: runBoard,
	}

	addCriteriaFlags(cmd)
	return cmd
}

func addCriteriaFlags(cmd *cobra.Command) {
	cmd.Flags().String("search", "", "match vegetable or commissioner names")
	cmd.Flags().String("vegetable", "", "only this vegetable")
	cmd.Flags().String("commissioner", "", "only entries by this commissioner")
	cmd.Flags().String("sort", "", "sort directive (price-asc, price-desc, date-asc, date-desc, status-good, status-low)")
}

func criteriaFromFlags(cmd *cobra.Command) (board.Criteria, error) {
	search, _ := cmd.Flags().GetString("search")
	vegetable, _ := cmd.Flags().GetString("vegetable")
	commissioner, _ := cmd.Flags().GetString("commissioner")
	sortFlag, _ := cmd.Flags().GetString("sort")

	directive := board.ParseSortDirective(sortFlag)
	if sortFlag != "" && directive.Label() == "Default order" {
		return board.Criteria{}, fmt.Errorf("%w: unknown sort %q", common.ErrInvalidConfig, sortFlag)
	}

	return board.Criteria{
		Search:       search,
		Vegetable:    vegetable,
		Commissioner: commissioner,
		Sort:         directive,
	}, nil
}

// loadBoard fetches the public list and applies the command's criteria.
func loadBoard(cmd *cobra.Command) (shown []model.PriceEntry, total int, err error) {
	criteria, err := criteriaFromFlags(cmd)
	if err != nil {
		return nil, 0, err
	}

	client, err := initClient()
	if err != nil {
		return nil, 0, err
	}

	entries, err := client.ReadAll(cmd.Context())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load price board: %w", err)
	}

	return board.Apply(entries, criteria), len(entries), nil
}

func runBoard(cmd *cobra.Command, _ []string) error {
	shown, total, err := loadBoard(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, cli.FormatTitle("Vegetable Price Board")); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, cli.SubtleStyle.Render(board.ResultsLine(len(shown), total))); err != nil {
		return err
	}

	if len(shown) == 0 {
		_, err := fmt.Fprintln(out, cli.InfoStyle.Render("No price entries found."))
		return err
	}
	return renderEntries(out, shown, true)
}

// renderEntries prints entries as an aligned table. The commissioner
// column is left out for a commissioner's own listing.
func renderEntries(w io.Writer, entries []model.PriceEntry, withCommissioner bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := tw.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	headers := []string{"ID", "Vegetable", "Price", "Unit", "Qty", "Status"}
	if withCommissioner {
		headers = append(headers, "Commissioner")
	}
	headers = append(headers, "Updated")

	for i, h := range headers {
		sep := "\t"
		if i == len(headers)-1 {
			sep = "\n"
		}
		if _, err := fmt.Fprint(tw, cli.HeaderStyle.Render(h)+sep); err != nil {
			return err
		}
	}

	for _, e := range entries {
		qty := "-"
		if e.Quantity > 0 {
			qty = strconv.Itoa(e.Quantity)
		}
		row := fmt.Sprintf("%d\t%s\t%s\t%s\t%s\t%s", e.ID, e.VegetableName, components.FormatPrice(e.Price), e.Unit, qty, cli.FormatStatus(e.Status))
		if withCommissioner {
			row += "\t" + e.CommissionerName
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", row, e.UpdatedAt); err != nil {
			return err
		}
	}
	return nil
}
