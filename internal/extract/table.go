package extract

import "strings"

// parseTableRow splits a markdown pipe-row into trimmed, non-empty cells.
// It returns nil unless the raw split yields at least 3 parts, the minimum
// for a framed "| header | value |" row.
func parseTableRow(line string) []string {
	if !strings.Contains(line, "|") {
		return nil
	}
	parts := strings.Split(strings.TrimSpace(line), "|")
	if len(parts) < 3 {
		return nil
	}
	cells := make([]string, 0, len(parts))
	for _, part := range parts {
		cell := strings.TrimSpace(part)
		if cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}

// scanRowOriented matches a row whose first cell carries a known label
// (substring, case-insensitive) and whose second cell carries the value.
func scanRowOriented(cells []string, line string, res *Result) {
	first := strings.ToLower(cells[0])
	for _, key := range FieldKeys {
		for _, label := range tableHeaders[key] {
			if strings.Contains(first, label) {
				if len(cells) > 1 {
					res.set(key, cells[1], line)
				}
				break
			}
		}
	}
}

// scanHeaderData handles the header-row-plus-data-row shape: the block's
// first line names the columns and the immediately following line carries
// the values at matching positions. Header labels must match whole cells.
func scanHeaderData(headerCells []string, lines []string, res *Result) {
	positions := make(map[string]int, len(headerCells))
	for i, cell := range headerCells {
		positions[strings.ToLower(cell)] = i
	}
	known := false
	for _, labels := range tableHeaders {
		for _, label := range labels {
			if _, ok := positions[label]; ok {
				known = true
			}
		}
	}
	if !known || len(lines) < 2 {
		return
	}
	data := parseTableRow(lines[1])
	if len(data) == 0 {
		return
	}
	for _, key := range FieldKeys {
		for _, label := range tableHeaders[key] {
			if pos, ok := positions[label]; ok && pos < len(data) {
				res.set(key, data[pos], lines[1])
			}
		}
	}
}

// isHeaderRow reports whether cells look like a column-header row: two or
// more cells are exactly known labels. A label/value row carries its label
// in the first cell only.
func isHeaderRow(cells []string) bool {
	n := 0
	for _, cell := range cells {
		lowered := strings.ToLower(cell)
		matched := false
		for _, labels := range tableHeaders {
			for _, label := range labels {
				if lowered == label {
					matched = true
				}
			}
		}
		if matched {
			n++
		}
	}
	return n >= 2
}

// scanTables runs both table strategies over one markdown block, top to
// bottom. Rows that do not qualify are skipped, never an error; values
// already recorded are never replaced. A first line that is itself a
// header row feeds only the header/data pass, so a label in its first
// cell cannot claim a field the data row should fill.
func scanTables(text string, res *Result) {
	lines := strings.Split(text, "\n")
	for idx, line := range lines {
		cells := parseTableRow(line)
		if len(cells) == 0 {
			continue
		}
		// The header/data shape is only recognized on a block's first line.
		if idx == 0 && isHeaderRow(cells) {
			scanHeaderData(cells, lines, res)
			continue
		}
		scanRowOriented(cells, line, res)
		if idx == 0 {
			scanHeaderData(cells, lines, res)
		}
	}
}
