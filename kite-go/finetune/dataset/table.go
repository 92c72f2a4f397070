package dataset

import "sort"

// Row is one labeled example
type Row struct {
	UserInput string `parquet:"user_input" csv:"user_input" json:"user_input"`
	Label     int64  `parquet:"label" csv:"label" json:"label"`
}

// Table holds the rows of a split in storage order
type Table struct {
	rows []Row
}

// NewTable ...
func NewTable(rows []Row) *Table {
	return &Table{rows: rows}
}

// Columns of every table
func (t *Table) Columns() []string {
	return []string{"user_input", "label"}
}

// Len ...
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns the i-th row
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Rows returns all rows, callers must not modify them
func (t *Table) Rows() []Row {
	return t.rows
}

// Texts returns the user inputs in row order
func (t *Table) Texts() []string {
	texts := make([]string, 0, len(t.rows))
	for _, r := range t.rows {
		texts = append(texts, r.UserInput)
	}
	return texts
}

// Labels returns the distinct labels in ascending order
func (t *Table) Labels() []int64 {
	seen := make(map[int64]bool)
	var labels []int64
	for _, r := range t.rows {
		if !seen[r.Label] {
			seen[r.Label] = true
			labels = append(labels, r.Label)
		}
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}
