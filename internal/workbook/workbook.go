package workbook

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"teamreel/internal/catalog"
	"teamreel/internal/config"
	"teamreel/internal/logging"
	"teamreel/internal/slots"
)

var (
	// ErrSheetNotFound is returned when a named sheet does not exist.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrLocked is returned when another process holds the workbook lock.
	ErrLocked = errors.New("workbook is locked by another process")
)

// DefaultVideosSheet is the catalog sheet name.
const DefaultVideosSheet = "Videos"

// Options names the sheets, markers and columns of an event workbook.
type Options struct {
	VideosSheet       string
	TaskHeader        string
	PlaceholderMarker string
	MatchMarker       string
	BoothKeyColumn    string
	BoothScriptColumn string
	FuzzyThreshold    float64
}

// OptionsFromConfig maps the [workbook] and [matching] sections.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return Options{}
	}
	return Options{
		VideosSheet:       cfg.Workbook.VideosSheet,
		TaskHeader:        cfg.Workbook.TaskHeader,
		PlaceholderMarker: cfg.Workbook.PlaceholderMarker,
		MatchMarker:       cfg.Workbook.MatchMarker,
		BoothKeyColumn:    cfg.Workbook.BoothKeyColumn,
		BoothScriptColumn: cfg.Workbook.BoothScriptColumn,
		FuzzyThreshold:    cfg.Matching.FuzzyThreshold,
	}
}

func (o Options) videosSheet() string {
	if name := strings.TrimSpace(o.VideosSheet); name != "" {
		return name
	}
	return DefaultVideosSheet
}

func (o Options) slotOptions() slots.Options {
	return slots.Options{
		TaskHeader:        o.TaskHeader,
		PlaceholderMarker: o.PlaceholderMarker,
		MatchMarker:       o.MatchMarker,
	}
}

// Workbook is an open event workbook. It is not safe for concurrent use.
type Workbook struct {
	file   *excelize.File
	path   string
	logger *slog.Logger

	videos *catalog.Dataset
}

// Open reads the workbook at path.
func Open(path string, logger *slog.Logger) (*Workbook, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{
		file:   file,
		path:   path,
		logger: logging.NewComponentLogger(logger, "workbook").With(logging.String(logging.FieldWorkbook, path)),
	}, nil
}

// Path returns the file the workbook was opened from.
func (w *Workbook) Path() string {
	return w.path
}

// Sheets lists sheet names in workbook order.
func (w *Workbook) Sheets() []string {
	return w.file.GetSheetList()
}

// Close releases the underlying file handles.
func (w *Workbook) Close() error {
	if w == nil || w.file == nil {
		return nil
	}
	return w.file.Close()
}

// findSheet returns the actual name of the sheet matching name,
// ignoring case and surrounding space.
func (w *Workbook) findSheet(name string) (string, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, sheet := range w.file.GetSheetList() {
		if strings.ToLower(strings.TrimSpace(sheet)) == want {
			return sheet, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrSheetNotFound, name)
}

// rows returns the sheet as a text grid. Rows are ragged: trailing empty
// cells are dropped.
func (w *Workbook) rows(sheet string) ([][]string, error) {
	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func cellText(row []string, column int) string {
	if column < 0 || column >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[column])
}

// cellName converts zero-based coordinates into an A1 reference.
func cellName(column, row int) (string, error) {
	return excelize.CoordinatesToCellName(column+1, row+1)
}

// columnIndex converts a column letter such as "Q" into a zero-based index.
func columnIndex(letters string) (int, error) {
	n, err := excelize.ColumnNameToNumber(strings.TrimSpace(letters))
	if err != nil {
		return -1, err
	}
	return n - 1, nil
}
