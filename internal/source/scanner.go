package source

import (
	"os"
	"path/filepath"
	"sort"
)

// ScanDir lists the .jsonl files directly inside dir, sorted by name.
// A missing directory yields no files and no error.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []DiscoveredFile
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".jsonl" {
			continue
		}
		files = append(files, DiscoveredFile{
			Path: filepath.Join(dir, e.Name()),
			Name: e.Name(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// ParsePath parses a single file, or every .jsonl file in a directory.
// Results from several files are merged in file order.
func ParsePath(path string) ParseResult {
	info, err := os.Stat(path)
	if err != nil {
		return ParseResult{Err: err}
	}
	if !info.IsDir() {
		return ParseFile(path)
	}

	files, err := ScanDir(path)
	if err != nil {
		return ParseResult{Err: err}
	}
	var merged ParseResult
	for _, df := range files {
		r := ParseFile(df.Path)
		if r.Err != nil {
			return ParseResult{Err: r.Err}
		}
		merged.Transactions = append(merged.Transactions, r.Transactions...)
		merged.ParseErrors += r.ParseErrors
		merged.Errors = append(merged.Errors, r.Errors...)
	}
	return merged
}
