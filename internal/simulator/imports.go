package simulator

import (
	"encoding/csv"
	"strings"

	"github.com/pkg/errors"

	"faultline/internal/domain"
)

const defaultTaskCSV = "title,description,priority\n" +
	"Fix login,Users can't log in,high\n" +
	"Update docs,Add API examples,2"

// ImportedTask is one row of a CSV task import.
type ImportedTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
}

// ImportTasksCSV parses a CSV upload into tasks, coercing the priority
// column to its numeric form.
func (s *Service) ImportTasksCSV(body string) ([]ImportedTask, error) {
	if strings.TrimSpace(body) == "" {
		body = defaultTaskCSV
	}

	records, err := csv.NewReader(strings.NewReader(body)).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read task csv")
	}
	if len(records) < 2 {
		return nil, nil
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.TrimSpace(name)] = i
	}

	tasks := make([]ImportedTask, 0, len(records)-1)
	for _, row := range records[1:] {
		priority, err := domain.ParsePriority(row[columns["priority"]])
		if err != nil {
			return nil, errors.Wrapf(err, "import task %q", row[columns["title"]])
		}
		tasks = append(tasks, ImportedTask{
			Title:       row[columns["title"]],
			Description: row[columns["description"]],
			Priority:    priority,
		})
	}
	return tasks, nil
}

// importItem is one record of a bulk import. Data pads each item to roughly
// 1KiB, matching the payloads the harness is meant to stress with.
type importItem struct {
	ID   int
	Data string
}

const importItemBytes = 1024 + 64 // payload plus struct and map overhead
const crossRefBytes = 16          // one pointer slot in a duplicates slice

// BulkImport builds the cross-reference index for a bulk import of count
// items. Every item records a duplicates list of everything indexed before
// it, so memory grows with the square of count; the configured byte budget
// is the explicit stand-in for the allocator falling over.
func (s *Service) BulkImport(count int) (int, error) {
	if count <= 0 {
		count = s.defaultCount
	}
	budget := newCapacityTracker(s.byteBudget)

	items := make([]*importItem, 0, count)
	for i := 0; i < count; i++ {
		if err := budget.grow(importItemBytes); err != nil {
			return 0, errors.Wrapf(err, "generate import payload (%d of %d items)", i, count)
		}
		items = append(items, &importItem{ID: i, Data: strings.Repeat("x", 1024)})
	}

	index := make(map[int]*importItem, count)
	refs := make(map[int][]*importItem, count)
	for _, item := range items {
		index[item.ID] = item
		if err := budget.grow(int64(len(index)) * crossRefBytes); err != nil {
			return 0, errors.Wrapf(err, "cross-reference import item %d", item.ID)
		}
		duplicates := make([]*importItem, 0, len(index))
		for _, indexed := range index {
			duplicates = append(duplicates, indexed)
		}
		refs[item.ID] = duplicates
	}

	return len(index) + len(refs), nil
}

// capacityTracker accounts approximate bytes allocated by an import and
// fails once the budget is exceeded. A real out-of-memory condition in Go
// kills the process, so the budget is what makes the fault survivable.
type capacityTracker struct {
	budget int64
	used   int64
}

func newCapacityTracker(budget int64) *capacityTracker {
	return &capacityTracker{budget: budget}
}

func (t *capacityTracker) grow(n int64) error {
	t.used += n
	if t.used > t.budget {
		return errors.Wrapf(domain.ErrCapacityExceeded, "%d of %d bytes used", t.used, t.budget)
	}
	return nil
}
