package board

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Veraticus/veggie-board/internal/common"
	"github.com/Veraticus/veggie-board/internal/model"
)

// Form field names used as ValidationErrors keys.
const (
	FieldName      = "name"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldConfirm   = "confirm"
	FieldVegetable = "vegetable"
	FieldPrice     = "price"
	FieldUnit      = "unit"
	FieldQuantity  = "quantity"
	FieldStatus    = "status"
)

// Validation messages.
const (
	MsgRequired         = "Please fill out this field."
	MsgInvalidEmail     = "Please enter a valid email address."
	MsgPasswordTooShort = "Password must be at least 6 characters long."
	MsgPasswordMismatch = "Passwords do not match."
	MsgSelectVegetable  = "Please select a vegetable."
	MsgPriceNotPositive = "Price must be greater than 0."
	MsgPriceInvalid     = "Please enter a valid price."
	MsgSelectUnit       = "Please select a unit."
	MsgSelectStatus     = "Please select a status."
	MsgQuantityInvalid  = "Quantity must be a whole number of 0 or more."
)

// MinPasswordLength is the shortest password signup accepts.
const MinPasswordLength = 6

// ValidationErrors maps form fields to the message shown next to them.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, v[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Err returns v as an error, or nil when there are no problems.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// ValidateLogin checks the login form.
func ValidateLogin(email, password string) ValidationErrors {
	errs := ValidationErrors{}

	email = strings.TrimSpace(email)
	switch {
	case email == "":
		errs[FieldEmail] = MsgRequired
	case !common.IsValidEmail(email):
		errs[FieldEmail] = MsgInvalidEmail
	}

	if common.IsBlank(password) {
		errs[FieldPassword] = MsgRequired
	}

	return errs
}

// ValidateSignup checks the signup form.
func ValidateSignup(name, email, password, confirm string) ValidationErrors {
	errs := ValidateLogin(email, password)

	if common.IsBlank(name) {
		errs[FieldName] = MsgRequired
	}

	if _, missing := errs[FieldPassword]; !missing && len(password) < MinPasswordLength {
		errs[FieldPassword] = MsgPasswordTooShort
	}

	switch {
	case common.IsBlank(confirm):
		errs[FieldConfirm] = MsgRequired
	case password != confirm:
		errs[FieldConfirm] = MsgPasswordMismatch
	}

	return errs
}

// EntryForm is the raw text of the add/edit form.
type EntryForm struct {
	Vegetable string
	Price     string
	Unit      string
	Quantity  string
	Status    string
	Notes     string
	ID        int
}

// ValidateEntry checks the entry form and converts it into a draft.
func ValidateEntry(form EntryForm) (model.EntryDraft, ValidationErrors) {
	errs := ValidationErrors{}
	draft := model.EntryDraft{
		ID:        form.ID,
		Vegetable: strings.TrimSpace(form.Vegetable),
		Unit:      strings.TrimSpace(form.Unit),
		Status:    model.Status(strings.TrimSpace(form.Status)),
		Notes:     form.Notes,
	}

	if draft.Vegetable == "" {
		errs[FieldVegetable] = MsgSelectVegetable
	}

	price := strings.TrimSpace(form.Price)
	if price == "" {
		errs[FieldPrice] = MsgRequired
	} else if p, err := strconv.ParseFloat(price, 64); err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
		errs[FieldPrice] = MsgPriceInvalid
	} else if p <= 0 {
		errs[FieldPrice] = MsgPriceNotPositive
	} else {
		draft.Price = p
	}

	if draft.Unit == "" {
		errs[FieldUnit] = MsgSelectUnit
	}

	if quantity := strings.TrimSpace(form.Quantity); quantity != "" {
		q, err := strconv.Atoi(quantity)
		if err != nil || q < 0 {
			errs[FieldQuantity] = MsgQuantityInvalid
		} else {
			draft.Quantity = q
		}
	}

	if !draft.Status.IsValid() {
		errs[FieldStatus] = MsgSelectStatus
	}

	return draft, errs
}

// EditOrigin records what an entry looked like when the edit form opened.
type EditOrigin struct {
	Vegetable string
	Status    model.Status
	ID        int
}

// FindDuplicate looks for another entry in the commissioner's snapshot with
// the same vegetable and status as draft. When editing, the check is skipped
// entirely if neither vegetable nor status changed, and the entry being
// edited never counts as its own duplicate.
func FindDuplicate(snapshot []model.PriceEntry, draft model.EntryDraft, origin *EditOrigin) (model.PriceEntry, bool) {
	if origin != nil &&
		model.NormalizeName(draft.Vegetable) == model.NormalizeName(origin.Vegetable) &&
		strings.EqualFold(strings.TrimSpace(string(draft.Status)), strings.TrimSpace(string(origin.Status))) {
		return model.PriceEntry{}, false
	}

	want := model.NormalizeName(draft.Vegetable)
	for _, entry := range snapshot {
		if origin != nil && entry.ID == origin.ID {
			continue
		}
		if entry.NormalizedVegetable() == want && entry.Status == draft.Status {
			return entry, true
		}
	}

	return model.PriceEntry{}, false
}

// DuplicateMessage is the inline error shown on the vegetable field.
func DuplicateMessage(draft model.EntryDraft) string {
	return fmt.Sprintf("%s with %s already exists. Use a different status or edit the existing entry.",
		draft.Vegetable, draft.Status)
}
