package insights

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pradeepsavadi/snowflake-observability/internal/snowflake"
)

// digestRowCap bounds how many rows of each table reach the prompt; more
// rows add tokens without adding signal.
const digestRowCap = 20

// Digest renders tables as a compact text block for a completion prompt.
// Sections come out in name order so identical inputs give identical
// prompts.
func Digest(tables map[string]snowflake.Table) string {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		table := tables[name]
		b.WriteString(fmt.Sprintf("## %s\n", name))
		if table.Empty() {
			b.WriteString("(no data)\n\n")
			continue
		}

		b.WriteString(strings.Join(table.Columns, " | "))
		b.WriteString("\n")

		rows := table.Len()
		if rows > digestRowCap {
			rows = digestRowCap
		}
		for i := 0; i < rows; i++ {
			cells := make([]string, len(table.Columns))
			for j, col := range table.Columns {
				cells[j] = table.String(i, col)
			}
			b.WriteString(strings.Join(cells, " | "))
			b.WriteString("\n")
		}
		if table.Len() > digestRowCap {
			b.WriteString(fmt.Sprintf("(%d more rows omitted)\n", table.Len()-digestRowCap))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// DigestMetrics renders scalar key metrics one per line, sorted by name.
func DigestMetrics(metrics map[string]string) string {
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, metrics[k]))
	}
	return strings.Join(lines, "\n")
}
