package structdiff

import (
	"bytes"
	"fmt"
	"strings"
)

// String renders a diff as indented lines, one per entry, for debugging &
// test failure messages
func (d Diff) String() string {
	buf := &bytes.Buffer{}
	formatEntries(buf, d, 0)
	return buf.String()
}

func formatEntries(buf *bytes.Buffer, d Diff, indent int) {
	for _, e := range d {
		buf.WriteString(strings.Repeat("  ", indent))
		buf.WriteString(e.String())
		buf.WriteRune('\n')
		if e.Op == OpPatch {
			formatEntries(buf, e.Diff, indent+1)
		}
	}
}

// FormatPrettyStats prints a string of stats info
func FormatPrettyStats(diffStat *Stats) string {
	return formatStats(diffStat, false)
}

// FormatPrettyStatsColor prints a string of stats info with ANSI colors
func FormatPrettyStatsColor(diffStat *Stats) string {
	return formatStats(diffStat, true)
}

func formatStats(ds *Stats, color bool) string {
	var (
		neutralColor, insertColor, deleteColor, updateColor, closeColor string
	)

	if ds == nil {
		return ""
	}

	if color {
		neutralColor = "\x1b[37m"
		insertColor = "\x1b[32m"
		deleteColor = "\x1b[31m"
		updateColor = "\x1b[34m"
		closeColor = "\x1b[0m"
	}

	buf := &bytes.Buffer{}

	elsColor := insertColor
	change := ds.NodeChange()
	sign := "+"
	if change < 0 {
		elsColor = deleteColor
		sign = ""
	} else if change == 0 {
		elsColor = neutralColor
		sign = ""
	}
	fmt.Fprintf(buf, "%s%s%d %s%s%s%s.",
		elsColor, sign, change, closeColor,
		neutralColor, plural(change, "element", "elements"), closeColor,
	)

	fmt.Fprintf(buf, " %s%d %s.%s", insertColor, ds.Inserted, plural(ds.Inserted, "insert", "inserts"), closeColor)
	fmt.Fprintf(buf, " %s%d %s.%s", deleteColor, ds.Deleted, plural(ds.Deleted, "delete", "deletes"), closeColor)
	fmt.Fprintf(buf, " %s%d %s.%s", updateColor, ds.Replaces, plural(ds.Replaces, "replace", "replaces"), closeColor)
	if ds.Patches > 0 {
		fmt.Fprintf(buf, " %s%d %s.%s", updateColor, ds.Patches, plural(ds.Patches, "patch", "patches"), closeColor)
	}

	buf.WriteRune('\n')
	return buf.String()
}

func plural(n int, one, many string) string {
	if n == 1 || n == -1 {
		return one
	}
	return many
}
