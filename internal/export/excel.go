// Package export renders a grid for one class as a spreadsheet.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/javiermolinar/luach/internal/grid"
)

// Palette is the fill, font colour and weight used for a cell type.
type Palette struct {
	Background string
	Foreground string
	Bold       bool
}

// Palettes maps each event type to its cell style.
var Palettes = map[grid.EventType]Palette{
	grid.TypeOfficialExam: {Background: "#FFCDD2", Foreground: "#B71C1C", Bold: true},
	grid.TypeMockExam:     {Background: "#FFE0B2", Foreground: "#E65100", Bold: true},
	grid.TypeTrip:         {Background: "#C8E6C9", Foreground: "#1B5E20"},
	grid.TypeVacation:     {Background: "#BBDEFB", Foreground: "#0D47A1"},
	grid.TypeHoliday:      {Background: "#E1BEE7", Foreground: "#4A148C"},
	grid.TypeGeneral:      {Background: "#F5F5F5", Foreground: "#424242"},
}

const (
	headerFill  = "#1A237E"
	borderColor = "#B0BEC5"
	weekHeader  = "שבוע"
	weekWidth   = 14
	dayWidth    = 22
	maxSheetLen = 31
)

// Excel builds a workbook with one row per week showing the events visible
// to class. The weekly reading is appended to the shabbat cell and each cell
// is filled by its highest-priority event type.
func Excel(g *grid.Grid, class string) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := sheetName(class)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	w := &writer{f: f, sheet: sheet, typeStyles: make(map[grid.EventType]int)}
	if err := w.write(g, class); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

type writer struct {
	f          *excelize.File
	sheet      string
	typeStyles map[grid.EventType]int
	plainStyle int
}

func (w *writer) write(g *grid.Grid, class string) error {
	rtl := true
	if err := w.f.SetSheetView(w.sheet, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return fmt.Errorf("setting sheet view: %w", err)
	}
	if err := w.header(); err != nil {
		return err
	}

	weekStyle, err := w.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Border:    border(),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating week style: %w", err)
	}
	w.plainStyle, err = w.f.NewStyle(&excelize.Style{
		Border:    border(),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("creating cell style: %w", err)
	}

	for i, week := range g.Weeks {
		row := i + 2
		weekCell, _ := excelize.CoordinatesToCellName(1, row)
		if err := w.f.SetCellValue(w.sheet, weekCell, week.DateRange); err != nil {
			return fmt.Errorf("writing week %s: %w", week.DateRange, err)
		}
		if err := w.f.SetCellStyle(w.sheet, weekCell, weekCell, weekStyle); err != nil {
			return fmt.Errorf("styling week %s: %w", week.DateRange, err)
		}

		parasha := g.Parasha[week.StartKey()]
		for col, dk := range grid.DayKeys {
			if err := w.day(g, grid.Slot{Week: i, Day: dk}, class, parasha, col+2, row); err != nil {
				return err
			}
		}
	}

	if err := w.f.SetColWidth(w.sheet, "A", "A", weekWidth); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}
	if err := w.f.SetColWidth(w.sheet, "B", "H", dayWidth); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}
	return nil
}

func (w *writer) header() error {
	style, err := w.f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Border:    border(),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	headers := []any{weekHeader}
	for _, dk := range grid.DayKeys {
		headers = append(headers, dk.Name())
	}
	if err := w.f.SetSheetRow(w.sheet, "A1", &headers); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := w.f.SetCellStyle(w.sheet, "A1", "H1", style); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	return nil
}

func (w *writer) day(g *grid.Grid, slot grid.Slot, class, parasha string, col, row int) error {
	cell, _ := excelize.CoordinatesToCellName(col, row)

	events := g.Visible(slot, class)
	texts := make([]string, 0, len(events)+1)
	for _, ev := range events {
		texts = append(texts, ev.Text)
	}
	if slot.Day == grid.Shabbat && parasha != "" {
		texts = append(texts, grid.ParashaLabel(parasha))
	}
	if err := w.f.SetCellValue(w.sheet, cell, strings.Join(texts, "\n")); err != nil {
		return fmt.Errorf("writing %s: %w", cell, err)
	}

	style := w.plainStyle
	if len(events) > 0 {
		var err error
		if style, err = w.typeStyle(grid.Dominant(events)); err != nil {
			return err
		}
	}
	if err := w.f.SetCellStyle(w.sheet, cell, cell, style); err != nil {
		return fmt.Errorf("styling %s: %w", cell, err)
	}
	return nil
}

func (w *writer) typeStyle(t grid.EventType) (int, error) {
	if id, ok := w.typeStyles[t]; ok {
		return id, nil
	}
	p, ok := Palettes[t]
	if !ok {
		p = Palettes[grid.TypeGeneral]
	}
	id, err := w.f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{p.Background}},
		Font:      &excelize.Font{Bold: p.Bold, Size: 10, Color: p.Foreground},
		Border:    border(),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return 0, fmt.Errorf("creating %s style: %w", t, err)
	}
	w.typeStyles[t] = id
	return id, nil
}

func border() []excelize.Border {
	out := make([]excelize.Border, 0, 4)
	for _, side := range []string{"left", "top", "right", "bottom"} {
		out = append(out, excelize.Border{Type: side, Color: borderColor, Style: 1})
	}
	return out
}

// sheetName turns a class name into a valid worksheet name.
func sheetName(class string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(class))
	name = strings.Trim(name, "'")

	if r := []rune(name); len(r) > maxSheetLen {
		name = string(r[:maxSheetLen])
	}
	if name == "" {
		return "Sheet1"
	}
	return name
}
