package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeImport creates a temp JSONL file and returns its path.
func writeImport(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "import.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFile_Basic(t *testing.T) {
	path := writeImport(t,
		`{"id":"t1","amount":"120.50","category":"Food","description":"dosa","date":"2025-09-01T09:15:00+05:30"}`,
		`{"id":"t2","amount":80,"category":"Transport","date":"2025-09-01"}`,
	)

	result := ParseFile(path)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("len(Transactions) = %d, want 2", len(result.Transactions))
	}
	first := result.Transactions[0]
	if first.ID != "t1" || first.Amount.String() != "120.5" || first.Description != "dosa" {
		t.Errorf("first = %+v", first)
	}
	if result.Transactions[1].Amount.String() != "80" {
		t.Errorf("numeric amount = %s, want 80", result.Transactions[1].Amount)
	}
}

func TestParseFile_DedupLastWins(t *testing.T) {
	// Two entries with the same id; the later correction wins.
	path := writeImport(t,
		`{"id":"dup","amount":100,"category":"Food","date":"2025-09-01"}`,
		`{"id":"other","amount":5,"category":"Food","date":"2025-09-01"}`,
		`{"id":"dup","amount":150,"category":"Food","date":"2025-09-01"}`,
	)

	result := ParseFile(path)
	if len(result.Transactions) != 2 {
		t.Fatalf("len(Transactions) = %d, want 2 (dedup)", len(result.Transactions))
	}
	if result.Transactions[0].ID != "dup" || result.Transactions[0].Amount.String() != "150" {
		t.Errorf("dup = %+v, want amount 150 in first position", result.Transactions[0])
	}
}

func TestParseFile_BadLines(t *testing.T) {
	path := writeImport(t,
		`not json at all`,
		`{"id":"neg","amount":-3,"category":"Food","date":"2025-09-01"}`,
		`{"id":"nodate","amount":3,"category":"Food","date":"someday"}`,
		`{"id":"noamount","category":"Food","date":"2025-09-01"}`,
		``,
		`# comment`,
		`{"id":"good","amount":3,"date":"2025-09-02"}`,
	)

	result := ParseFile(path)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.ParseErrors != 4 {
		t.Errorf("ParseErrors = %d, want 4", result.ParseErrors)
	}
	if len(result.Errors) != 4 || result.Errors[2].Line != 3 {
		t.Errorf("Errors = %+v", result.Errors)
	}
	if len(result.Transactions) != 1 || result.Transactions[0].Category != "Other" {
		t.Errorf("Transactions = %+v, want one with default category", result.Transactions)
	}
}

func TestParseFile_GeneratesMissingIDs(t *testing.T) {
	path := writeImport(t,
		`{"amount":1,"category":"Food","date":"2025-09-01"}`,
		`{"amount":1,"category":"Food","date":"2025-09-01"}`,
	)

	result := ParseFile(path)
	if len(result.Transactions) != 2 {
		t.Fatalf("len(Transactions) = %d, want 2", len(result.Transactions))
	}
	if result.Transactions[0].ID == "" || result.Transactions[0].ID == result.Transactions[1].ID {
		t.Errorf("ids = %q, %q; want distinct generated ids", result.Transactions[0].ID, result.Transactions[1].ID)
	}
}

func TestParseFile_Missing(t *testing.T) {
	if result := ParseFile(filepath.Join(t.TempDir(), "missing.jsonl")); result.Err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParsePath_Directory(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body+"\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	write("b.jsonl", `{"id":"b","amount":2,"category":"Food","date":"2025-09-02"}`)
	write("a.jsonl", `{"id":"a","amount":1,"category":"Food","date":"2025-09-01"}`)
	write("notes.txt", `{"id":"x","amount":1,"category":"Food","date":"2025-09-01"}`)

	files, err := ScanDir(dir)
	if err != nil || len(files) != 2 || files[0].Name != "a.jsonl" {
		t.Fatalf("ScanDir = %+v, %v", files, err)
	}

	result := ParsePath(dir)
	if result.Err != nil {
		t.Fatalf("ParsePath: %v", result.Err)
	}
	if len(result.Transactions) != 2 || result.Transactions[0].ID != "a" {
		t.Fatalf("Transactions = %+v", result.Transactions)
	}
}
