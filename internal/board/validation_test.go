package board

import (
	"testing"

	"github.com/Veraticus/veggie-board/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		want     ValidationErrors
		name     string
		email    string
		password string
	}{
		{name: "valid", email: "ana@example.com", password: "secret", want: ValidationErrors{}},
		{name: "missing both", want: ValidationErrors{FieldEmail: MsgRequired, FieldPassword: MsgRequired}},
		{name: "malformed email", email: "ana@example", password: "x", want: ValidationErrors{FieldEmail: MsgInvalidEmail}},
		{name: "whitespace password", email: "ana@example.com", password: "   ", want: ValidationErrors{FieldPassword: MsgRequired}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateLogin(tt.email, tt.password))
		})
	}
}

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		want     ValidationErrors
		name     string
		fullName string
		email    string
		password string
		confirm  string
	}{
		{
			name:     "valid",
			fullName: "Ana Reyes", email: "ana@example.com", password: "secret1", confirm: "secret1",
			want: ValidationErrors{},
		},
		{
			name:     "short password",
			fullName: "Ana", email: "ana@example.com", password: "abc", confirm: "abc",
			want: ValidationErrors{FieldPassword: MsgPasswordTooShort},
		},
		{
			name:     "mismatch",
			fullName: "Ana", email: "ana@example.com", password: "secret1", confirm: "secret2",
			want: ValidationErrors{FieldConfirm: MsgPasswordMismatch},
		},
		{
			name: "everything missing",
			want: ValidationErrors{
				FieldName:     MsgRequired,
				FieldEmail:    MsgRequired,
				FieldPassword: MsgRequired,
				FieldConfirm:  MsgRequired,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateSignup(tt.fullName, tt.email, tt.password, tt.confirm))
		})
	}
}

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		wantErrs  ValidationErrors
		name      string
		form      EntryForm
		wantDraft model.EntryDraft
	}{
		{
			name: "valid add",
			form: EntryForm{Vegetable: " Carrot ", Price: "55.50", Unit: "kg", Quantity: "12", Status: "Good Quality", Notes: "fresh"},
			wantDraft: model.EntryDraft{
				Vegetable: "Carrot", Price: 55.5, Unit: "kg", Quantity: 12, Status: model.StatusGood, Notes: "fresh",
			},
			wantErrs: ValidationErrors{},
		},
		{
			name:      "quantity is optional",
			form:      EntryForm{ID: 7, Vegetable: "Onion", Price: "30", Unit: "kg", Status: "Low Quality"},
			wantDraft: model.EntryDraft{ID: 7, Vegetable: "Onion", Price: 30, Unit: "kg", Status: model.StatusLow},
			wantErrs:  ValidationErrors{},
		},
		{
			name:      "zero price",
			form:      EntryForm{Vegetable: "Onion", Price: "0", Unit: "kg", Status: "Low Quality"},
			wantDraft: model.EntryDraft{Vegetable: "Onion", Unit: "kg", Status: model.StatusLow},
			wantErrs:  ValidationErrors{FieldPrice: MsgPriceNotPositive},
		},
		{
			name:      "garbage price and quantity",
			form:      EntryForm{Vegetable: "Onion", Price: "abc", Unit: "kg", Quantity: "-2", Status: "Low Quality"},
			wantDraft: model.EntryDraft{Vegetable: "Onion", Unit: "kg", Status: model.StatusLow},
			wantErrs:  ValidationErrors{FieldPrice: MsgPriceInvalid, FieldQuantity: MsgQuantityInvalid},
		},
		{
			name:      "unknown status",
			form:      EntryForm{Vegetable: "Carrot", Price: "10", Unit: "kg", Status: "Medium Quality"},
			wantDraft: model.EntryDraft{Vegetable: "Carrot", Price: 10, Unit: "kg", Status: "Medium Quality"},
			wantErrs:  ValidationErrors{FieldStatus: MsgSelectStatus},
		},
		{
			name: "missing required fields",
			form: EntryForm{},
			wantErrs: ValidationErrors{
				FieldVegetable: MsgSelectVegetable,
				FieldPrice:     MsgRequired,
				FieldUnit:      MsgSelectUnit,
				FieldStatus:    MsgSelectStatus,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft, errs := ValidateEntry(tt.form)
			assert.Equal(t, tt.wantErrs, errs)
			assert.Equal(t, tt.wantDraft, draft)
		})
	}
}

func TestValidationErrors_Err(t *testing.T) {
	assert.NoError(t, ValidationErrors{}.Err())

	err := ValidationErrors{FieldPrice: MsgRequired, FieldEmail: MsgInvalidEmail}.Err()
	require.Error(t, err)
	assert.Equal(t, "validation failed: email: Please enter a valid email address.; price: Please fill out this field.", err.Error())
}

func TestFindDuplicate(t *testing.T) {
	snapshot := []model.PriceEntry{
		{ID: 10, VegetableName: "Carrot", Status: model.StatusGood},
		{ID: 11, VegetableName: "Carrot ", Status: model.StatusLow},
		{ID: 12, VegetableName: "Onion", Status: model.StatusGood},
	}

	tests := []struct {
		origin *EditOrigin
		name   string
		draft  model.EntryDraft
		wantID int
		want   bool
	}{
		{
			name:   "new entry duplicates existing pair",
			draft:  model.EntryDraft{Vegetable: " carrot", Status: model.StatusLow},
			want:   true,
			wantID: 11,
		},
		{
			name:  "new entry with unused status",
			draft: model.EntryDraft{Vegetable: "Onion", Status: model.StatusLow},
		},
		{
			name:  "status comparison is exact",
			draft: model.EntryDraft{Vegetable: "Onion", Status: "good quality"},
		},
		{
			name:   "edit without changes skips the check",
			draft:  model.EntryDraft{ID: 10, Vegetable: "Carrot", Status: model.StatusGood},
			origin: &EditOrigin{ID: 10, Vegetable: "carrot ", Status: model.StatusGood},
		},
		{
			name:   "edit switching to a taken status",
			draft:  model.EntryDraft{ID: 10, Vegetable: "Carrot", Status: model.StatusLow},
			origin: &EditOrigin{ID: 10, Vegetable: "Carrot", Status: model.StatusGood},
			want:   true,
			wantID: 11,
		},
		{
			name:   "edited entry is not its own duplicate",
			draft:  model.EntryDraft{ID: 12, Vegetable: "Onion", Status: model.StatusGood},
			origin: &EditOrigin{ID: 12, Vegetable: "Onion", Status: model.StatusLow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dup, found := FindDuplicate(snapshot, tt.draft, tt.origin)
			assert.Equal(t, tt.want, found)
			if tt.want {
				assert.Equal(t, tt.wantID, dup.ID)
			}
		})
	}
}

func TestDuplicateMessage(t *testing.T) {
	msg := DuplicateMessage(model.EntryDraft{Vegetable: "Carrot", Status: model.StatusLow})
	assert.Equal(t, "Carrot with Low Quality already exists. Use a different status or edit the existing entry.", msg)
}
