package snowflake

import (
	"strconv"
	"time"
)

// Table is the tabular result of a single query execution: ordered columns
// and rows as scanned from the driver. It is what the cache stores and what
// the presentation layer renders, so it must survive a JSON round trip.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

func (t Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// String returns the cell as a string, tolerating the driver's and the JSON
// decoder's differing representations. TIMESTAMP and DATE columns arrive as
// time.Time straight from the driver and as RFC 3339 strings after a cache
// round trip; both render the same.
func (t Table) String(row int, col string) string {
	v := t.cell(row, col)
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return ""
	default:
		return ""
	}
}

// Float returns the cell as a float64. Numeric columns come back as float64
// after a cache round trip and as int64/float64/string straight from the
// driver; all three are accepted. Missing or non-numeric cells yield zero.
func (t Table) Float(row int, col string) float64 {
	v := t.cell(row, col)
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int64:
		return float64(val)
	case int:
		return float64(val)
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0
		}
		return f
	case []byte:
		f, err := strconv.ParseFloat(string(val), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func (t Table) cell(row int, col string) any {
	idx := t.ColumnIndex(col)
	if idx < 0 || row < 0 || row >= len(t.Rows) || idx >= len(t.Rows[row]) {
		return nil
	}
	return t.Rows[row][idx]
}
