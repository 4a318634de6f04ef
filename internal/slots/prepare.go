package slots

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"teamreel/internal/country"
	"teamreel/internal/diag"
)

// Cell is a planned text write. Row and Column are zero-based.
type Cell struct {
	Row    int
	Column int
	Text   string
}

// MatchCell is a match marker cell, numbered or not.
type MatchCell struct {
	Row      int
	Column   int
	Text     string
	Numbered bool
}

const (
	// codesPerSheet is the number of two-letter suffixes (AA..ZZ).
	codesPerSheet = 26 * 26
	sampleRows    = 5
	previewRunes  = 40
)

var leadingNumber = regexp.MustCompile(`^\d`)

// PlanPlaceholders gives every task-column row that starts with a flag a
// "<placeholder marker> <code>" text. Codes are the sheet letter followed
// by two letters (AAA, AAB, ...) and continue after the highest code of
// that letter already present in the column.
func PlanPlaceholders(sheet string, sheetIndex int, rows [][]string, opts Options) ([]Cell, diag.List) {
	opts = opts.withDefaults()
	var diags diag.List

	if sheetIndex < 0 || sheetIndex > 25 {
		diags.Warnf(diag.KindDegenerateInput, 0, "%s: Sheet position %d has no placeholder letter.", sheet, sheetIndex+1)
		return nil, diags
	}
	prefix := byte('A' + sheetIndex)

	taskColumn := findTaskColumn(rows, opts.TaskHeader)
	if taskColumn < 0 {
		diags.Infof(diag.KindInfo, 0, "%s: No %s column found within the first %d rows.", sheet, opts.TaskHeader, headerScanRows)
		return nil, diags
	}
	letter, _ := excelize.ColumnNumberToName(taskColumn + 1)
	diags.Infof(diag.KindInfo, 0, "%s: %s column located at index %d (column %s).", sheet, opts.TaskHeader, taskColumn, letter)

	existing := existingCodePattern(opts.PlaceholderMarker)
	next := 0
	var flagged []int
	for rowIndex, row := range rows {
		if taskColumn >= len(row) {
			continue
		}
		text := row[taskColumn]
		if strings.TrimSpace(text) == "" {
			continue
		}
		if m := existing.FindStringSubmatch(strings.TrimSpace(text)); m != nil {
			if n, ok := codeIndex(strings.ToUpper(m[1]), prefix); ok && n+1 > next {
				next = n + 1
			}
		}
		if !country.HasFlag(text) {
			continue
		}
		flagged = append(flagged, rowIndex)
		if len(flagged) <= sampleRows {
			diags.Infof(diag.KindInfo, 0, "%s: Row %d flagged for placeholder replacement with value %q.",
				sheet, rowIndex+1, preview(text))
		}
	}
	if len(flagged) == 0 {
		diags.Infof(diag.KindInfo, 0, "%s: No cells beginning with a flag emoji were found in column %s.", sheet, letter)
		return nil, diags
	}

	if free := codesPerSheet - next; len(flagged) > free {
		diags.Warnf(diag.KindDegenerateInput, 0, "%s: Only %d placeholder code(s) remain for prefix %c; %d row(s) were left unchanged.",
			sheet, free, prefix, len(flagged)-free)
		flagged = flagged[:free]
	}

	cells := make([]Cell, 0, len(flagged))
	for i, rowIndex := range flagged {
		cells = append(cells, Cell{
			Row:    rowIndex,
			Column: taskColumn,
			Text:   opts.PlaceholderMarker + " " + placeholderCode(prefix, next+i),
		})
	}
	return cells, diags
}

func existingCodePattern(marker string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(strings.TrimSpace(marker)) + `\s+([a-z]{3})\b`)
}

// codeIndex returns the position of code among the codes of prefix.
func codeIndex(code string, prefix byte) (int, bool) {
	if len(code) != 3 || code[0] != prefix {
		return 0, false
	}
	a, b := code[1], code[2]
	if a < 'A' || a > 'Z' || b < 'A' || b > 'Z' {
		return 0, false
	}
	return int(a-'A')*26 + int(b-'A'), true
}

func placeholderCode(prefix byte, index int) string {
	return string([]byte{prefix, byte('A' + index/26), byte('A' + index%26)})
}

func preview(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	if utf8.RuneCountInString(line) <= previewRunes {
		return line
	}
	return string([]rune(line)[:previewRunes])
}

// FindMatchCells returns, in row-major order, every cell that holds the
// match marker alone or followed by a number ("RANKING MATCH",
// "RANKING MATCH #12", "Ranking Match 14").
func FindMatchCells(rows [][]string, opts Options) []MatchCell {
	opts = opts.withDefaults()
	marker := strings.ToUpper(strings.TrimSpace(opts.MatchMarker))

	var cells []MatchCell
	for rowIndex, row := range rows {
		for column, raw := range row {
			text := strings.TrimSpace(raw)
			rest, ok := strings.CutPrefix(strings.ToUpper(text), marker)
			if !ok {
				continue
			}
			rest = strings.TrimSpace(rest)
			var numbered bool
			switch {
			case rest == "":
			case strings.HasPrefix(rest, "#"), leadingNumber.MatchString(rest):
				numbered = true
			default:
				continue
			}
			cells = append(cells, MatchCell{Row: rowIndex, Column: column, Text: text, Numbered: numbered})
		}
	}
	return cells
}

// MatchText is the canonical numbered marker text.
func MatchText(marker string, number int) string {
	if strings.TrimSpace(marker) == "" {
		marker = DefaultMatchMarker
	}
	return strings.TrimSpace(marker) + " #" + strconv.Itoa(number)
}
