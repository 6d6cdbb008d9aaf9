package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/veggie-board/internal/board"
	"github.com/Veraticus/veggie-board/internal/cli"
	"github.com/Veraticus/veggie-board/internal/common"
	"github.com/Veraticus/veggie-board/internal/model"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// importColumns are the recognized CSV headers. vegetable and price are required.
var importColumns = []string{"vegetable", "price", "unit", "quantity", "status", "notes"}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Create price entries from a CSV file",
		Long: `Create one price entry per CSV row for the logged in commissioner.

The first row is a header naming the columns: vegetable, price, unit, quantity,
status and notes, in any order. Only vegetable and price are required; unit
defaults to kg and status to good. Rows that repeat an existing vegetable and
status are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("dry-run", false, "validate the file without saving anything")
	return cmd
}

// importRow is one data row of the CSV file.
type importRow struct {
	form board.EntryForm
	line int
}

// parseImportCSV reads rows keyed by the header line.
func parseImportCSV(r io.Reader) ([]importRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: the file is empty", common.ErrInvalidConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := map[string]int{}
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range importColumns[:2] {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: missing %q column", common.ErrInvalidConfig, required)
		}
	}

	var rows []importRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		if strings.TrimSpace(strings.Join(record, "")) == "" {
			continue
		}

		form := board.EntryForm{
			Vegetable: field("vegetable"),
			Price:     field("price"),
			Unit:      field("unit"),
			Quantity:  field("quantity"),
			Status:    field("status"),
			Notes:     field("notes"),
		}
		if form.Unit == "" {
			form.Unit = model.DefaultUnit
		}
		if form.Status == "" {
			form.Status = string(model.StatusGood)
		}
		form.Status = string(parseStatus(form.Status))

		rows = append(rows, importRow{line: line, form: form})
	}
	return rows, nil
}

// importReport counts what happened to each row.
type importReport struct {
	failures   []string
	created    int
	duplicates int
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer func() { _ = f.Close() }()

	rows, err := parseImportCSV(f)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No rows to import."))
		return err
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.requireUser()
	if err != nil {
		return err
	}

	interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Import")
	ctx := interrupts.HandleInterrupts(cmd.Context())

	// One snapshot for the whole file; created rows are added so repeats
	// inside the file are caught too.
	own, err := a.client.ReadByCommissioner(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to load your entries: %w", err)
	}
	snapshot := own.Entries

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	bar := newImportBar(cmd.ErrOrStderr(), len(rows))
	report := importReport{}

	for _, row := range rows {
		if ctx.Err() != nil {
			break
		}

		draft, errs := board.ValidateEntry(row.form)
		switch {
		case len(errs) > 0:
			report.failures = append(report.failures, fmt.Sprintf("line %d: %v", row.line, errs))
		case hasDuplicate(snapshot, draft):
			report.duplicates++
		case dryRun:
			report.created++
			snapshot = append(snapshot, draftEntry(draft))
		default:
			if _, err := a.client.Save(ctx, user.ID, draft); err != nil {
				report.failures = append(report.failures, fmt.Sprintf("line %d: %s", row.line, common.UserMessage(err)))
				break
			}
			report.created++
			snapshot = append(snapshot, draftEntry(draft))
		}

		interrupts.SetProgress(report.created, len(rows))
		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}

	if interrupts.WasInterrupted() {
		return common.NewUserError("Import interrupted.", ctx.Err())
	}
	return printImportReport(cmd.OutOrStdout(), report, dryRun)
}

func hasDuplicate(snapshot []model.PriceEntry, draft model.EntryDraft) bool {
	_, dup := board.FindDuplicate(snapshot, draft, nil)
	return dup
}

func draftEntry(d model.EntryDraft) model.PriceEntry {
	return model.PriceEntry{VegetableName: d.Vegetable, Status: d.Status, Price: d.Price, Unit: d.Unit}
}

func newImportBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[green][bold]Importing prices...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

func printImportReport(w io.Writer, r importReport, dryRun bool) error {
	verb := "Created"
	if dryRun {
		verb = "Would create"
	}

	lines := []string{
		fmt.Sprintf("%s: %d", verb, r.created),
		fmt.Sprintf("Skipped duplicates: %d", r.duplicates),
		fmt.Sprintf("Failed: %d", len(r.failures)),
	}
	if _, err := fmt.Fprintln(w, cli.RenderBox("Import summary", lines...)); err != nil {
		return err
	}

	for _, failure := range r.failures {
		if _, err := fmt.Fprintln(w, cli.FormatError(failure)); err != nil {
			return err
		}
	}
	return nil
}
