package stats

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Render builds the results table. Cell values come from a file the local
// pipeline wrote and are inserted as they are, without escaping.
func Render(records []Record) string {
	var rows = lo.Map(records, func(r Record, _ int) string {
		return fmt.Sprintf(
			"<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			r.Barcode, r.Status, r.TotalLength, r.MeanCoverage,
		)
	})
	var b strings.Builder
	b.WriteString("<table>\n<tr>")
	for _, title := range Title {
		fmt.Fprintf(&b, "<th>%s</th>", title)
	}
	b.WriteString("</tr>\n")
	b.WriteString(strings.Join(rows, ""))
	b.WriteString("\n</table>")
	return b.String()
}

// Table is the rendered result of one run.
type Table struct {
	RunID   string
	Records []Record
	HTML    string
}

func NewTable(runID string, records []Record) Table {
	return Table{
		RunID:   runID,
		Records: records,
		HTML:    Render(records),
	}
}

// Container collects the tables of successive runs. It is not safe for
// concurrent use.
type Container struct {
	tables []Table
}

func (c *Container) Append(t Table) {
	c.tables = append(c.tables, t)
}

// Tables returns the tables in the order they were appended.
func (c *Container) Tables() []Table {
	return append([]Table(nil), c.tables...)
}

func (c *Container) Len() int {
	return len(c.tables)
}

// Last returns the most recent table.
func (c *Container) Last() (Table, bool) {
	if len(c.tables) == 0 {
		return Table{}, false
	}
	return c.tables[len(c.tables)-1], true
}

func (c *Container) Clear() {
	c.tables = nil
}
