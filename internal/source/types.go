package source

import "github.com/shopspring/decimal"

// RawTransaction is one line of an import file.
type RawTransaction struct {
	ID          string           `json:"id,omitempty"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    string           `json:"category"`
	Description string           `json:"description,omitempty"`
	Date        string           `json:"date"`
}

// LineError describes a line that could not be imported.
type LineError struct {
	Line   int
	Reason string
}

// DiscoveredFile is an import file found by ScanDir.
type DiscoveredFile struct {
	Path string
	Name string
}
