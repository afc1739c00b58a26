// Package report renders a mask derivation as a plain-text table.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	gojson "github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"

	"github.com/lambdamechanic/jsnore/internal/maskgen"
)

// MaxValueWidth caps the display width of the VALUE column.
const MaxValueWidth = 40

// Write prints the summary line, the constant prefixes with their hit counts
// and shared values, and the kept paths.
func Write(w io.Writer, d *maskgen.Derivation) error {
	bw := bufio.NewWriter(w)
	mask := d.Mask
	if mask == "" {
		mask = `""`
	}
	fmt.Fprintf(bw, "mask: %s\n", mask)
	fmt.Fprintf(bw, "candidates: %d  evaluated: %d  skipped: %d  constant: %d  kept: %d\n",
		d.Candidates, d.Evaluated, d.Skipped, len(d.Constants), len(d.Kept))

	if len(d.Constants) > 0 {
		rows := make([][3]string, 0, len(d.Constants))
		for _, c := range d.Constants {
			rows = append(rows, [3]string{patternText(c.Path), strconv.Itoa(c.Hits), valueText(c.Value)})
		}
		writeTable(bw, [3]string{"PATTERN", "HITS", "VALUE"}, rows)
	}
	if len(d.Kept) > 0 {
		fmt.Fprintln(bw, "kept:")
		for _, p := range d.Kept {
			fmt.Fprintf(bw, "  %s\n", p.String())
		}
	}
	return bw.Flush()
}

func writeTable(w io.Writer, header [3]string, rows [][3]string) {
	var widths [3]int
	for _, r := range append([][3]string{header}, rows...) {
		for i, cell := range r {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	line := func(r [3]string) {
		fmt.Fprintf(w, "%s  %s  %s\n",
			runewidth.FillRight(r[0], widths[0]),
			runewidth.FillLeft(r[1], widths[1]),
			r[2])
	}
	line(header)
	for _, r := range rows {
		line(r)
	}
}

func patternText(p maskgen.Path) string {
	if len(p) == 0 {
		return "(root)"
	}
	return p.String()
}

func valueText(v any) string {
	if maskgen.IsMissing(v) {
		return "<missing>"
	}
	b, err := gojson.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return runewidth.Truncate(string(b), MaxValueWidth, "...")
}
