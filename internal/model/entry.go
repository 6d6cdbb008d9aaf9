// Package model defines the core domain types shared across the application.
package model

import "strings"

// Status is the quality label attached to a price entry.
type Status string

// Known quality statuses.
const (
	StatusGood Status = "Good Quality"
	StatusLow  Status = "Low Quality"
)

// Statuses lists the selectable statuses in display order.
var Statuses = []Status{StatusGood, StatusLow}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	return s == StatusGood || s == StatusLow
}

// Units lists the measurement units offered by the entry form.
// The API accepts any string; these are the common ones.
var Units = []string{"kg", "g", "piece", "bundle", "pack", "sack"}

// DefaultUnit is preselected when adding a new entry.
const DefaultUnit = "kg"

// PriceEntry is one commissioner's price for one vegetable.
// The API owns these records; the client only keeps read-only copies.
type PriceEntry struct {
	VegetableName    string  `json:"vegetableName" yaml:"vegetable"`
	Unit             string  `json:"unit" yaml:"unit"`
	Status           Status  `json:"status" yaml:"status"`
	Notes            string  `json:"notes,omitempty" yaml:"notes,omitempty"`
	CommissionerName string  `json:"commissionerName" yaml:"commissioner"`
	UpdatedAt        string  `json:"updatedAt" yaml:"updated_at"`
	Price            float64 `json:"price" yaml:"price"`
	ID               int     `json:"id" yaml:"id"`
	Quantity         int     `json:"quantity" yaml:"quantity"`
	CommissionerID   int     `json:"commissionerId" yaml:"commissioner_id"`
}

// NormalizedVegetable returns the trimmed, lowercased vegetable name used for
// duplicate detection and exact-match filtering.
func (e PriceEntry) NormalizedVegetable() string {
	return NormalizeName(e.VegetableName)
}

// NormalizeName trims and lowercases a vegetable name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Statistics summarizes a commissioner's entries as reported by the API.
type Statistics struct {
	LastUpdate      string  `json:"lastUpdate"`
	AveragePrice    float64 `json:"averagePrice"`
	TotalVegetables int     `json:"totalVegetables"`
	StaleCount      int     `json:"staleCount"`
}

// EntryDraft holds the fields a commissioner submits when creating or editing an entry.
type EntryDraft struct {
	Vegetable string
	Unit      string
	Status    Status
	Notes     string
	Price     float64
	Quantity  int
	// ID is zero for new entries.
	ID int
}

// IsEdit reports whether the draft updates an existing entry.
func (d EntryDraft) IsEdit() bool {
	return d.ID != 0
}

// PriceUpdate is one row of a bulk price/status update.
type PriceUpdate struct {
	Status Status  `json:"status"`
	Price  float64 `json:"price"`
	ID     int     `json:"id"`
}
