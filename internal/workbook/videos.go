package workbook

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-andiamo/splitter"

	"teamreel/internal/catalog"
	"teamreel/internal/diag"
	"teamreel/internal/logging"
	"teamreel/internal/textutil"
)

type videoColumn string

const (
	columnTeam    videoColumn = "team"
	columnValue   videoColumn = "value"
	columnVideoID videoColumn = "video_id"
	columnTime    videoColumn = "time"
	columnMatch   videoColumn = "match"
)

var videoHeaderAliases = []struct {
	column  videoColumn
	aliases map[string]bool
}{
	{columnTeam, textutil.HeaderSet("team")},
	{columnValue, textutil.HeaderSet("value", "score")},
	{columnVideoID, textutil.HeaderSet("video id", "id", "video")},
	{columnTime, textutil.HeaderSet("time", "start time", "scheduled")},
	{columnMatch, textutil.HeaderSet("match", "match #", "match number", "match no", "match nº", "match n°")},
}

var digitRun = regexp.MustCompile(`\d+`)

var matchListSplitter = mustSplitter(splitter.NewSplitter(',', splitter.DoubleQuotes, splitter.Parenthesis))

func mustSplitter(s splitter.Splitter, err error) splitter.Splitter {
	if err != nil {
		panic(fmt.Sprintf("workbook: build match list splitter: %v", err))
	}
	return s
}

// ReadVideos ingests the catalog sheet. Data problems (missing sheet or
// headers) are reported as diagnostics with an empty dataset; only read
// failures are errors. The dataset is kept for Apply.
func (w *Workbook) ReadVideos(opts Options) (*catalog.Dataset, diag.List, error) {
	var diags diag.List
	empty := catalog.New(catalog.Source{Sheet: opts.videosSheet(), TeamColumn: -1, VideoNumberColumn: -1, DurationColumn: -1, MatchColumn: -1}, nil)

	sheet, err := w.findSheet(opts.videosSheet())
	if errors.Is(err, ErrSheetNotFound) {
		diags.Warnf(diag.KindDegenerateInput, 0, "No sheet named '%s' was found in the spreadsheet.", opts.videosSheet())
		w.videos = empty
		return empty, diags, nil
	}
	if err != nil {
		return nil, nil, err
	}
	rows, err := w.rows(sheet)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		diags.Warnf(diag.KindDegenerateInput, 0, "%s sheet does not contain any data.", sheet)
		w.videos = empty
		return empty, diags, nil
	}

	headerRow, header := detectVideoHeader(rows)
	if headerRow < 0 {
		diags.Warnf(diag.KindDegenerateInput, 0, "%s sheet is missing 'Team' and 'Value' headers.", sheet)
		w.videos = empty
		return empty, diags, nil
	}

	teamColumn := header[columnTeam]
	source := catalog.Source{
		Sheet:             sheet,
		TeamColumn:        teamColumn,
		VideoNumberColumn: teamColumn - 1,
		DurationColumn:    teamColumn + 2,
		MatchColumn:       -1,
	}
	if c, ok := header[columnMatch]; ok {
		source.MatchColumn = c
	}

	var entries []catalog.Entry
	for rowIndex := headerRow + 1; rowIndex < len(rows); rowIndex++ {
		row := rows[rowIndex]
		label := cellText(row, teamColumn)
		if label == "" {
			continue
		}
		entry := catalog.Entry{
			Label: label,
			Value: parseValue(cellText(row, header[columnValue])),
			Row:   rowIndex,
		}
		if c, ok := header[columnVideoID]; ok {
			entry.VideoID = cellText(row, c)
		}
		if c, ok := header[columnTime]; ok {
			entry.Time = cellText(row, c)
		}
		if text := cellText(row, source.VideoNumberColumn); text != "" {
			entry.VideoNumberText = text
			entry.VideoNumber = normalizeVideoNumber(text)
		}
		entry.Duration = cellText(row, source.DurationColumn)
		if source.MatchColumn >= 0 {
			entry.Matches = parseMatchList(cellText(row, source.MatchColumn))
		}
		entries = append(entries, entry)
	}

	dataset := catalog.New(source, entries)
	suffix := "s"
	if len(entries) == 1 {
		suffix = ""
	}
	diags.Infof(diag.KindInfo, 0, "%s sheet: processed %d row%s.", sheet, len(entries), suffix)
	w.logger.Debug("catalog sheet read",
		logging.String(logging.FieldSheet, sheet),
		logging.Int("header_row", headerRow+1),
		logging.Int("entries", dataset.Len()),
	)
	w.videos = dataset
	return dataset, diags, nil
}

// detectVideoHeader returns the first row holding both a team and a value
// header, with the column of every recognised header.
func detectVideoHeader(rows [][]string) (int, map[videoColumn]int) {
	for rowIndex, row := range rows {
		detected := map[videoColumn]int{}
		for column, cell := range row {
			key := textutil.HeaderKey(cell)
			if key == "" {
				continue
			}
			for _, h := range videoHeaderAliases {
				if h.aliases[key] {
					detected[h.column] = column
				}
			}
		}
		_, hasTeam := detected[columnTeam]
		_, hasValue := detected[columnValue]
		if hasTeam && hasValue {
			return rowIndex, detected
		}
	}
	return -1, nil
}

func parseValue(text string) *float64 {
	text = strings.TrimSpace(strings.ReplaceAll(text, ",", ""))
	if text == "" {
		return nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return catalog.Float(v)
}

// normalizeVideoNumber keeps the last digit run without leading zeros, so
// "Video Nº 012" becomes "12". Text without digits is kept as is.
func normalizeVideoNumber(text string) string {
	runs := digitRun.FindAllString(text, -1)
	if len(runs) == 0 {
		return text
	}
	number := strings.TrimLeft(runs[len(runs)-1], "0")
	if number == "" {
		return "0"
	}
	return number
}

// parseMatchList reads a recorded match cell such as "12, 14" or
// "Match 3, 7 (replay)". The first number in each part is kept.
func parseMatchList(text string) []int {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	parts, err := matchListSplitter.Split(text)
	if err != nil {
		parts = digitRun.FindAllString(text, -1)
	}
	var out []int
	seen := map[int]bool{}
	for _, part := range parts {
		digits := digitRun.FindString(part)
		if digits == "" {
			continue
		}
		n, err := strconv.Atoi(digits)
		if err != nil || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func formatMatchList(matches []int) string {
	parts := make([]string, len(matches))
	for i, m := range matches {
		parts[i] = strconv.Itoa(m)
	}
	return strings.Join(parts, ", ")
}
