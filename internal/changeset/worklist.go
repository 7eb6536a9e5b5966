package changeset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/atomic"
)

// SaveWorkList writes records to path as one JSON record per line. The write
// is atomic: a crash mid-write cannot leave a torn file behind.
func SaveWorkList(path string, records []ChangeRecord) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			return fmt.Errorf("encoding record %s: %w", records[i].Label, err)
		}
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("writing work list %s: %w", path, err)
	}
	return nil
}

// LoadWorkList reads a work list written by SaveWorkList. A file with
// suggestion fields still unset is valid; an unparsable line is not, and
// makes the whole list unusable for resumption.
func LoadWorkList(path string) ([]ChangeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening work list: %w", err)
	}
	defer f.Close()

	var records []ChangeRecord
	seen := make(map[string]bool)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var rec ChangeRecord
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, fmt.Errorf("work list %s line %d is corrupt: %w", path, lineNo, err)
		}
		if rec.Label == "" {
			return nil, fmt.Errorf("work list %s line %d has no address label", path, lineNo)
		}
		if seen[rec.Label] {
			return nil, fmt.Errorf("work list %s has duplicate address %s", path, rec.Label)
		}
		seen[rec.Label] = true
		rec.Decision = DecisionPending
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading work list %s: %w", path, err)
	}
	return records, nil
}
