// Package source reads transaction import files (one JSON object per line).
package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/finmate/internal/model"
	"github.com/theirongolddev/finmate/internal/pipeline"

	"github.com/google/uuid"
)

// ParseResult holds the output of parsing a single JSONL file.
type ParseResult struct {
	Transactions []model.Transaction
	ParseErrors  int
	Errors       []LineError
	Err          error
}

// ParseFile reads a JSONL import file. Lines that are not valid JSON, carry a
// negative or missing amount, or have an unparsable date are counted and
// reported, never coerced. Records sharing an id are deduplicated, keeping
// the last one. Records without an id get a fresh one.
func ParseFile(path string) ParseResult {
	f, err := os.Open(path) //nolint:gosec // user-selected import file
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()

	var (
		res   ParseResult
		order []string
	)
	byID := make(map[string]model.Transaction)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		tx, reason := parseLine(line)
		if reason != "" {
			res.ParseErrors++
			res.Errors = append(res.Errors, LineError{Line: lineNo, Reason: reason})
			continue
		}
		if _, seen := byID[tx.ID]; !seen {
			order = append(order, tx.ID)
		}
		byID[tx.ID] = tx
	}

	if err := scanner.Err(); err != nil {
		return ParseResult{Err: err}
	}

	res.Transactions = make([]model.Transaction, 0, len(order))
	for _, id := range order {
		res.Transactions = append(res.Transactions, byID[id])
	}
	return res
}

func parseLine(line []byte) (model.Transaction, string) {
	var raw RawTransaction
	if err := json.Unmarshal(line, &raw); err != nil {
		return model.Transaction{}, fmt.Sprintf("invalid JSON: %v", err)
	}
	if raw.Amount == nil {
		return model.Transaction{}, "missing amount"
	}
	if raw.Amount.IsNegative() {
		return model.Transaction{}, "negative amount " + raw.Amount.String()
	}
	if _, err := pipeline.ParseDate(raw.Date); err != nil {
		return model.Transaction{}, fmt.Sprintf("malformed date %q", raw.Date)
	}

	id := strings.TrimSpace(raw.ID)
	if id == "" {
		id = uuid.NewString()
	}
	category := strings.TrimSpace(raw.Category)
	if category == "" {
		category = "Other"
	}
	return model.Transaction{
		ID:          id,
		Amount:      *raw.Amount,
		Category:    category,
		Description: strings.TrimSpace(raw.Description),
		Date:        strings.TrimSpace(raw.Date),
	}, ""
}
