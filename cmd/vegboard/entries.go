package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/veggie-board/internal/board"
	"github.com/Veraticus/veggie-board/internal/cli"
	"github.com/Veraticus/veggie-board/internal/common"
	"github.com/Veraticus/veggie-board/internal/model"
	"github.com/Veraticus/veggie-board/internal/tui/components"
	"github.com/spf13/cobra"
)

func entriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Manage your price entries",
		Long:  `List, add, edit, bulk update and delete the price entries of the logged in commissioner.`,
	}

	cmd.AddCommand(entriesListCmd())
	cmd.AddCommand(entriesAddCmd())
	cmd.AddCommand(entriesEditCmd())
	cmd.AddCommand(entriesDeleteCmd())
	cmd.AddCommand(entriesBulkCmd())

	return cmd
}

func entriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your entries with statistics",
		RunE:  runEntriesList,
	}
}

func runEntriesList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.requireUser()
	if err != nil {
		return err
	}

	own, err := a.client.ReadByCommissioner(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to load your entries: %w", err)
	}

	out := cmd.OutOrStdout()
	stats := own.Statistics
	lastUpdate := stats.LastUpdate
	if lastUpdate == "" {
		lastUpdate = board.NoUpdatesYet
	}
	summary := cli.RenderBox("Dashboard for "+user.Name,
		fmt.Sprintf("Total vegetables: %d", stats.TotalVegetables),
		"Average price:    "+components.FormatPrice(stats.AveragePrice),
		fmt.Sprintf("Needs update:     %d", stats.StaleCount),
		"Last update:      "+lastUpdate,
	)
	if _, err := fmt.Fprintln(out, summary); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, board.DashboardHeader(stats, own.Entries)); err != nil {
		return err
	}

	if len(own.Entries) == 0 {
		_, err := fmt.Fprintln(out, cli.InfoStyle.Render("You have no price entries yet. Add one with 'vegboard entries add'."))
		return err
	}
	return renderEntries(out, own.Entries, false)
}

const msgVegetableLocked = "The vegetable of an existing entry cannot be changed. Add a new entry instead."

func addEntryFlags(cmd *cobra.Command) {
	cmd.Flags().String("vegetable", "", "vegetable name")
	cmd.Flags().String("price", "", "price per unit")
	cmd.Flags().String("unit", model.DefaultUnit, "unit ("+strings.Join(model.Units, ", ")+")")
	cmd.Flags().String("quantity", "", "quantity available")
	cmd.Flags().String("status", "good", "quality status (good, low)")
	cmd.Flags().String("notes", "", "notes")
}

func entriesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a price entry",
		Long: `Add a price entry. A vegetable can only have one entry per quality status;
use 'entries edit' to change an existing one.`,
		Example: `  vegboard entries add --vegetable Carrot --price 45.50
  vegboard entries add --vegetable Onion --price 120 --status low --notes "Small bulbs"`,
		RunE: runEntriesAdd,
	}

	addEntryFlags(cmd)
	return cmd
}

func runEntriesAdd(cmd *cobra.Command, _ []string) error {
	form := board.EntryForm{}
	if err := applyEntryFlags(cmd, &form, true); err != nil {
		return err
	}
	return saveEntry(cmd, form, nil)
}

func entriesEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit one of your price entries",
		Long:  `Change the given fields of a price entry. Fields without a flag keep their value.
The vegetable cannot be changed; add a new entry instead.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runEntriesEdit,
	}

	addEntryFlags(cmd)
	return cmd
}

func runEntriesEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
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

	entry, err := findOwnEntry(cmd.Context(), a, user.ID, id)
	if err != nil {
		return err
	}

	form := formFromEntry(entry)
	if err := applyEntryFlags(cmd, &form, false); err != nil {
		return err
	}

	status := entry.Status
	if status == "" {
		status = model.StatusGood
	}
	origin := &board.EditOrigin{ID: entry.ID, Vegetable: entry.VegetableName, Status: status}
	return saveEntryWith(cmd, a, user, form, origin)
}

// applyEntryFlags copies flag values into form. With all set, defaults
// count too; otherwise only flags given on the command line do, and the
// vegetable of an existing entry is fixed.
func applyEntryFlags(cmd *cobra.Command, form *board.EntryForm, all bool) error {
	if !all && cmd.Flags().Changed("vegetable") {
		return common.NewUserError(msgVegetableLocked, common.ErrInvalidConfig)
	}

	set := func(name string, dst *string) {
		if !all && !cmd.Flags().Changed(name) {
			return
		}
		*dst, _ = cmd.Flags().GetString(name)
	}

	set("vegetable", &form.Vegetable)
	set("price", &form.Price)
	set("unit", &form.Unit)
	set("quantity", &form.Quantity)
	set("notes", &form.Notes)

	status := string(parseStatus(form.Status))
	set("status", &status)
	form.Status = string(parseStatus(status))
	return nil
}

func formFromEntry(e model.PriceEntry) board.EntryForm {
	form := board.EntryForm{
		ID:        e.ID,
		Vegetable: e.VegetableName,
		Price:     strconv.FormatFloat(e.Price, 'f', -1, 64),
		Unit:      e.Unit,
		Status:    string(e.Status),
		Notes:     e.Notes,
	}
	if e.Quantity != 0 {
		form.Quantity = strconv.Itoa(e.Quantity)
	}
	return form
}

func saveEntry(cmd *cobra.Command, form board.EntryForm, origin *board.EditOrigin) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.requireUser()
	if err != nil {
		return err
	}
	return saveEntryWith(cmd, a, user, form, origin)
}

// saveEntryWith validates form, checks it against a fresh copy of the
// commissioner's entries and saves it.
func saveEntryWith(cmd *cobra.Command, a *app, user model.Commissioner, form board.EntryForm, origin *board.EditOrigin) error {
	ctx := cmd.Context()

	draft, errs := board.ValidateEntry(form)
	if len(errs) > 0 {
		return errs
	}

	own, err := a.client.ReadByCommissioner(ctx, user.ID)
	if err != nil {
		common.LogError(err, "Duplicate check skipped", common.Fields{"vegetable": draft.Vegetable})
	} else if _, dup := board.FindDuplicate(own.Entries, draft, origin); dup {
		return fmt.Errorf("%w: %s", common.ErrDuplicateEntry, board.DuplicateMessage(draft))
	}

	message, err := a.client.Save(ctx, user.ID, draft)
	if err != nil {
		return err
	}
	if message == "" {
		message = "Entry saved successfully."
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(message))
	return err
}

func entriesDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your price entries",
		Args:  cobra.ExactArgs(1),
		RunE:  runEntriesDelete,
	}

	cmd.Flags().BoolP("yes", "y", false, "delete without asking")
	return cmd
}

func runEntriesDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.requireUser()
	if err != nil {
		return err
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		reader := cli.NewNonBlockingReader(cmd.InOrStdin())
		answer, err := reader.Prompt(ctx, cmd.OutOrStdout(), components.DefaultDeleteMessage+" [y/N]")
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Nothing deleted."))
			return err
		}
	}

	message, err := a.client.Delete(ctx, user.ID, id)
	if err != nil {
		return err
	}
	if message == "" {
		message = "Entry deleted successfully."
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(message))
	return err
}

func entriesBulkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Update the price and status of several entries at once",
		Long: `Update several of your entries in one request. Each --set names an entry id,
its new price and optionally its new status. Rows that end up unchanged are not sent.`,
		Example: `  vegboard entries bulk --set 12=48.50 --set 15=110:low`,
		RunE:    runEntriesBulk,
	}

	cmd.Flags().StringArray("set", nil, "id=price[:status], repeatable")
	_ = cmd.MarkFlagRequired("set")
	return cmd
}

// bulkChange is one parsed --set value.
type bulkChange struct {
	status model.Status
	price  float64
	id     int
}

// parseBulkSet parses "12=48.5" or "12=48.5:low".
func parseBulkSet(s string) (bulkChange, error) {
	idPart, rest, ok := strings.Cut(s, "=")
	if !ok {
		return bulkChange{}, fmt.Errorf("%w: %q must look like id=price[:status]", common.ErrInvalidConfig, s)
	}

	id, err := parseID(idPart)
	if err != nil {
		return bulkChange{}, err
	}

	pricePart, statusPart, hasStatus := strings.Cut(rest, ":")
	price, err := strconv.ParseFloat(strings.TrimSpace(pricePart), 64)
	if err != nil || price < 0 {
		return bulkChange{}, fmt.Errorf("%w: invalid price in %q", common.ErrInvalidConfig, s)
	}

	change := bulkChange{id: id, price: price}
	if hasStatus {
		change.status = parseStatus(statusPart)
		if !change.status.IsValid() {
			return bulkChange{}, fmt.Errorf("%w: invalid status in %q", common.ErrInvalidConfig, s)
		}
	}
	return change, nil
}

// planBulk applies changes on top of the commissioner's entries and returns the rows to send.
func planBulk(entries []model.PriceEntry, changes []bulkChange) ([]model.PriceUpdate, error) {
	pending := board.NewPendingEdits(entries)
	for _, c := range changes {
		if _, ok := pending.Get(c.id); !ok {
			return nil, fmt.Errorf("%w: you have no entry %d", common.ErrNotFound, c.id)
		}
		pending.SetPrice(c.id, c.price)
		if c.status != "" {
			pending.SetStatus(c.id, c.status)
		}
	}

	updates := pending.Diff()
	if len(updates) == 0 {
		return nil, common.NewUserError(components.MsgNoChanges, common.ErrNoChanges)
	}
	return updates, nil
}

func runEntriesBulk(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	sets, _ := cmd.Flags().GetStringArray("set")
	changes := make([]bulkChange, 0, len(sets))
	for _, s := range sets {
		c, err := parseBulkSet(s)
		if err != nil {
			return err
		}
		changes = append(changes, c)
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.requireUser()
	if err != nil {
		return err
	}

	own, err := a.client.ReadByCommissioner(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to load your entries: %w", err)
	}

	updates, err := planBulk(own.Entries, changes)
	if err != nil {
		return err
	}

	result, err := a.client.BulkUpdate(ctx, updates)
	if err != nil {
		return err
	}

	line := cli.FormatSuccess(result.Summary())
	if result.Partial() {
		line = cli.FormatWarning(result.Summary())
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), line)
	return err
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid entry id %q", common.ErrInvalidConfig, s)
	}
	return id, nil
}

func findOwnEntry(ctx context.Context, a *app, commissionerID, id int) (model.PriceEntry, error) {
	own, err := a.client.ReadByCommissioner(ctx, commissionerID)
	if err != nil {
		return model.PriceEntry{}, fmt.Errorf("failed to load your entries: %w", err)
	}
	for _, e := range own.Entries {
		if e.ID == id {
			return e, nil
		}
	}
	return model.PriceEntry{}, fmt.Errorf("%w: you have no entry %d", common.ErrNotFound, id)
}
