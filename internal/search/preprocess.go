package search

import (
	"bufio"
	"strings"
)

// PrepareContent flattens journal entry text before indexing. Users paste
// markdown-style tables (habit trackers, meal logs) into entries; each table
// row is turned into a standalone fact so its cells become searchable.
// Plain text passes through with blank lines collapsed.
//
// Notes:
//   - Avoids emitting a leading blank line.
//   - Normalizes the tail to end with exactly one newline.
func PrepareContent(content string) string {
	var b strings.Builder
	sc := bufio.NewScanner(strings.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	wroteAny := false
	wroteBlank := true // start true to avoid a leading blank
	sawTable := false

	writeFact := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || strings.EqualFold(s, "text") {
			return
		}
		b.WriteString(s)
		b.WriteByte('\n')
		b.WriteByte('\n')
		wroteAny = true
		wroteBlank = true
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			if !wroteBlank {
				b.WriteByte('\n')
				wroteBlank = true
			}
			continue
		}

		// table row: "| ... |"
		if strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|") {
			sawTable = true
			raw := strings.Trim(line, "|")
			cols := strings.Split(raw, "|")

			allSep := true
			cleaned := make([]string, 0, len(cols))
			for _, c := range cols {
				cell := strings.TrimSpace(c)
				if cell != "" {
					cleaned = append(cleaned, cell)
				}
				tmp := strings.ReplaceAll(cell, ":", "")
				tmp = strings.ReplaceAll(tmp, "-", "")
				if strings.TrimSpace(tmp) != "" {
					allSep = false
				}
			}
			if allSep || len(cleaned) == 0 {
				continue
			}
			if len(cleaned) == 1 {
				writeFact(cleaned[0])
				continue
			}
			writeFact(strings.Join(cleaned, " "))
			continue
		}

		// non-table line → one fact per line
		wroteBlank = false
		writeFact(line)
	}
	if err := sc.Err(); err != nil {
		// Scanner only errors on oversized lines; fall back to the raw text.
		return content
	}

	// No transform → original text
	if !sawTable && !wroteAny {
		return content
	}

	out := b.String()
	if sawTable {
		// Table flows expect a single trailing newline
		out = strings.TrimRight(out, "\n") + "\n"
	}
	// For non-table flows, keep the natural "\n\n" tail
	return out
}
