// Package export writes tasks to CSV for spreadsheets and to a JSON backup.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/manav03panchal/smarttask/internal/model"
)

// BackupVersion is the format version written into JSON backups.
const BackupVersion = 1

// utf8BOM makes spreadsheet applications detect UTF-8.
const utf8BOM = "\ufeff"

// CSVHeader lists the exported columns.
var CSVHeader = []string{"ID", "Title", "Description", "Due Date", "Status", "Priority", "Category", "Tags"}

// CSVOptions controls CSV output.
type CSVOptions struct {
	// Delimiter separates fields. Zero means ';'.
	Delimiter rune
	// BOM prefixes the output with a UTF-8 byte order mark.
	BOM bool
}

// Data is everything needed to render tasks with readable category and
// tag names.
type Data struct {
	Tasks      []*model.Task
	Categories []*model.Category
	Tags       []*model.Tag
}

// ParseDelimiter validates a configured delimiter string.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "", ";":
		return ';', nil
	case `\t`, "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid CSV delimiter %q", s)
	}
	return r, nil
}

// WriteCSV writes one row per task, sorted by id. It returns the number
// of task rows written.
func WriteCSV(w io.Writer, data Data, opts CSVOptions) (int, error) {
	if opts.BOM {
		if _, err := io.WriteString(w, utf8BOM); err != nil {
			return 0, err
		}
	}

	cw := csv.NewWriter(w)
	cw.Comma = opts.Delimiter
	if cw.Comma == 0 {
		cw.Comma = ';'
	}

	if err := cw.Write(CSVHeader); err != nil {
		return 0, err
	}

	categories := make(map[int64]string, len(data.Categories))
	for _, c := range data.Categories {
		categories[c.ID] = c.Name
	}
	tags := make(map[int64]string, len(data.Tags))
	for _, t := range data.Tags {
		tags[t.ID] = t.Name
	}

	tasks := sortedByID(data.Tasks)
	for _, t := range tasks {
		var tagNames []string
		for _, id := range t.TagIDs {
			if name, ok := tags[id]; ok {
				tagNames = append(tagNames, name)
			}
		}
		row := []string{
			strconv.FormatInt(t.ID, 10),
			t.Title,
			t.Description,
			t.DueDate,
			string(t.Status),
			string(t.Priority),
			categories[t.CategoryID],
			strings.Join(tagNames, ", "),
		}
		if err := cw.Write(row); err != nil {
			return 0, err
		}
	}

	cw.Flush()
	return len(tasks), cw.Error()
}

// Backup is the JSON backup document.
type Backup struct {
	Version    int               `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	Categories []*model.Category `json:"categories"`
	Tags       []*model.Tag      `json:"tags"`
	Tasks      []*model.Task     `json:"tasks"`
}

// WriteJSON writes an indented JSON backup.
func WriteJSON(w io.Writer, data Data, now time.Time) error {
	b := Backup{
		Version:    BackupVersion,
		ExportedAt: now.UTC().Truncate(time.Second),
		Categories: nonNil(data.Categories),
		Tags:       nonNil(data.Tags),
		Tasks:      nonNil(sortedByID(data.Tasks)),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// ReadJSON decodes a backup written by WriteJSON.
func ReadJSON(r io.Reader) (*Backup, error) {
	var b Backup
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	if b.Version != BackupVersion {
		return nil, fmt.Errorf("unsupported backup version %d", b.Version)
	}
	return &b, nil
}

func sortedByID(tasks []*model.Task) []*model.Task {
	out := make([]*model.Task, len(tasks))
	copy(out, tasks)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
