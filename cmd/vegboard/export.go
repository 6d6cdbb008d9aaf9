package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Veraticus/veggie-board/internal/common"
	"github.com/Veraticus/veggie-board/internal/model"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatCSV  = "csv"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the price board as JSON, YAML or CSV",
		Long: `Write the price board to stdout or a file. The board flags narrow and order
the export the same way they do for 'vegboard board'.`,
		Example: `  vegboard export --format csv --output prices.csv
  vegboard export --format yaml --vegetable Carrot`,
		RunE: runExport,
	}

	addCriteriaFlags(cmd)
	cmd.Flags().StringP("format", "f", formatJSON, "output format (json, yaml, csv)")
	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	if !validFormat(format) {
		return fmt.Errorf("%w: unknown format %q", common.ErrInvalidConfig, format)
	}

	entries, _, err := loadBoard(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := writeExport(out, format, entries); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	common.LogInfo("Exported price board", common.Fields{"format": format, "entries": len(entries)})
	return nil
}

func validFormat(format string) bool {
	switch format {
	case formatJSON, formatYAML, formatCSV:
		return true
	}
	return false
}

func writeExport(w io.Writer, format string, entries []model.PriceEntry) error {
	if entries == nil {
		entries = []model.PriceEntry{}
	}

	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)

	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()

	case formatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"id", "vegetable", "price", "unit", "quantity", "status", "notes", "commissioner", "updated_at"}); err != nil {
			return err
		}
		for _, e := range entries {
			record := []string{
				strconv.Itoa(e.ID),
				e.VegetableName,
				strconv.FormatFloat(e.Price, 'f', 2, 64),
				e.Unit,
				strconv.Itoa(e.Quantity),
				string(e.Status),
				e.Notes,
				e.CommissionerName,
				e.UpdatedAt,
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	}

	return fmt.Errorf("%w: unknown format %q", common.ErrInvalidConfig, format)
}
