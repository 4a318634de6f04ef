package workbook

import (
	"strings"

	"teamreel/internal/diag"
	"teamreel/internal/logging"
	"teamreel/internal/slots"
)

// ScanSlots collects placeholder slots from every sheet except the catalog
// sheet, in workbook order.
func (w *Workbook) ScanSlots(opts Options) ([]slots.Slot, diag.List, error) {
	var (
		all   []slots.Slot
		diags diag.List
	)
	videos := strings.ToLower(opts.videosSheet())
	for _, sheet := range w.file.GetSheetList() {
		if strings.ToLower(strings.TrimSpace(sheet)) == videos {
			continue
		}
		rows, err := w.rows(sheet)
		if err != nil {
			return nil, nil, err
		}
		found, sheetDiags := slots.Scan(sheet, rows, opts.slotOptions())
		diags.Extend(sheetDiags)
		if len(found) > 0 {
			w.logger.Debug("placeholders found",
				logging.String(logging.FieldSheet, sheet),
				logging.Int("slots", len(found)),
			)
		}
		all = append(all, found...)
	}
	return all, diags, nil
}
