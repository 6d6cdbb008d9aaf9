package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Veraticus/veggie-board/internal/model"
)

type listResponse struct {
	envelope
	Entries    []model.PriceEntry `json:"entries"`
	Statistics model.Statistics   `json:"statistics"`
}

type entryRequest struct {
	Vegetable      string       `json:"vegetable"`
	Unit           string       `json:"unit"`
	Status         model.Status `json:"status"`
	Notes          string       `json:"notes"`
	Price          float64      `json:"price"`
	Quantity       int          `json:"quantity"`
	CommissionerID int          `json:"commissioner_id"`
	ID             int          `json:"id,omitempty"`
}

type bulkRequest struct {
	Updates []model.PriceUpdate `json:"updates"`
}

type bulkResponse struct {
	envelope
	Errors       []string `json:"errors"`
	UpdatedCount int      `json:"updatedCount"`
}

type deleteRequest struct {
	ID             int `json:"id"`
	CommissionerID int `json:"commissioner_id"`
}

// CommissionerEntries is one commissioner's entries with their summary.
type CommissionerEntries struct {
	Entries    []model.PriceEntry
	Statistics model.Statistics
}

// BulkResult describes the outcome of a bulk update.
type BulkResult struct {
	Message      string
	Errors       []string
	UpdatedCount int
}

// Partial reports whether some rows were saved and others failed.
func (r BulkResult) Partial() bool {
	return len(r.Errors) > 0 && r.UpdatedCount > 0
}

// Summary is the message shown after a successful or partial bulk update.
func (r BulkResult) Summary() string {
	if r.Partial() {
		return fmt.Sprintf("%d item(s) updated. Some updates failed: %s", r.UpdatedCount, strings.Join(r.Errors, ", "))
	}
	if r.Message == "" {
		return MsgBulkUpdated
	}
	return r.Message
}

// ReadAll fetches every entry on the public board.
func (c *Client) ReadAll(ctx context.Context) ([]model.PriceEntry, error) {
	var resp listResponse
	if err := c.get(ctx, "read_all.php", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, rejected("read_all.php", resp.Message, "Error loading price board.")
	}
	return resp.Entries, nil
}

// ReadByCommissioner fetches one commissioner's entries, newest first, with statistics.
func (c *Client) ReadByCommissioner(ctx context.Context, commissionerID int) (CommissionerEntries, error) {
	var resp listResponse
	query := url.Values{"commissioner_id": {strconv.Itoa(commissionerID)}}
	if err := c.get(ctx, "read.php", query, &resp); err != nil {
		return CommissionerEntries{}, err
	}
	if !resp.Success {
		return CommissionerEntries{}, rejected("read.php", resp.Message, "Error loading dashboard.")
	}
	return CommissionerEntries{Entries: resp.Entries, Statistics: resp.Statistics}, nil
}

// Save creates the draft, or updates it when draft.ID is set. It returns the server's message.
func (c *Client) Save(ctx context.Context, commissionerID int, draft model.EntryDraft) (string, error) {
	endpoint := "create.php"
	if draft.IsEdit() {
		endpoint = "update.php"
	}

	req := entryRequest{
		Vegetable:      draft.Vegetable,
		Price:          draft.Price,
		Unit:           draft.Unit,
		Quantity:       draft.Quantity,
		Status:         draft.Status,
		Notes:          draft.Notes,
		CommissionerID: commissionerID,
		ID:             draft.ID,
	}

	var resp envelope
	if err := c.post(ctx, endpoint, req, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", rejected(endpoint, resp.Message, MsgSaveFailed)
	}
	return resp.Message, nil
}

// BulkUpdate applies several price/status changes at once.
// A partial success is returned without an error; check BulkResult.Partial.
func (c *Client) BulkUpdate(ctx context.Context, updates []model.PriceUpdate) (BulkResult, error) {
	var resp bulkResponse
	if err := c.post(ctx, "bulk_update.php", bulkRequest{Updates: updates}, &resp); err != nil {
		return BulkResult{}, err
	}

	result := BulkResult{
		Message:      resp.Message,
		Errors:       resp.Errors,
		UpdatedCount: resp.UpdatedCount,
	}

	if resp.Success || result.Partial() {
		return result, nil
	}

	if len(resp.Errors) > 0 {
		apiErr := rejected("bulk_update.php", strings.Join(resp.Errors, ", "), MsgBulkFailed)
		apiErr.Details = resp.Errors
		return result, apiErr
	}
	return result, rejected("bulk_update.php", resp.Message, MsgBulkFailed)
}

// Delete removes one of the commissioner's entries and returns the server's message.
func (c *Client) Delete(ctx context.Context, commissionerID, id int) (string, error) {
	var resp envelope
	if err := c.post(ctx, "delete.php", deleteRequest{ID: id, CommissionerID: commissionerID}, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", rejected("delete.php", resp.Message, MsgDeleteFailed)
	}
	return resp.Message, nil
}
