package excel_parser_service

import (
	"strconv"
	"strings"
	"time"

	"github.com/init-pkg/sheet-loader/internal/record"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type numberFormat uint8

const (
	formatGeneral numberFormat = iota
	formatDate
	formatDecimal
)

// cellReader holds the raw values of one worksheet and turns cells into
// source scalars using the cell type and number format stored in the file.
type cellReader struct {
	f        *excelize.File
	sheet    string
	rows     [][]string
	width    int
	date1904 bool
	formats  map[int]numberFormat
}

func newCellReader(f *excelize.File, sheet string) (*cellReader, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	// trailing empty rows carry no data region
	for len(rows) > 0 && isEmptyRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	props, err := f.GetWorkbookProps()
	if err != nil {
		return nil, err
	}

	return &cellReader{
		f:        f,
		sheet:    sheet,
		rows:     rows,
		width:    width,
		date1904: props.Date1904 != nil && *props.Date1904,
		formats:  make(map[int]numberFormat),
	}, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func (this *cellReader) raw(r, c int) string {
	if c < len(this.rows[r]) {
		return this.rows[r][c]
	}
	return ""
}

// header returns row 1 as displayed, so numeric or date headers keep their
// formatted text.
func (this *cellReader) header() []string {
	header := make([]string, this.width)
	for c := range header {
		name, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			continue
		}
		value, err := this.f.GetCellValue(this.sheet, name)
		if err != nil {
			value = this.raw(0, c)
		}
		header[c] = value
	}
	return header
}

// scalar returns the typed value of the cell at zero-based (r, c): nil,
// string, bool, float64, decimal.Decimal, time.Time or an Int record.Value.
func (this *cellReader) scalar(r, c int) any {
	raw := this.raw(r, c)
	if raw == "" {
		return nil
	}

	name, err := excelize.CoordinatesToCellName(c+1, r+1)
	if err != nil {
		return raw
	}
	cellType, err := this.f.GetCellType(this.sheet, name)
	if err != nil {
		return raw
	}

	switch cellType {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	case excelize.CellTypeDate:
		if t, ok := parseISODate(raw); ok {
			return t
		}
		return raw
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeError:
		return raw
	}

	// untyped or "n" cells hold numbers; anything unparsable stays text
	num, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return raw
	}

	switch this.format(name) {
	case formatDate:
		if t, err := excelize.ExcelDateToTime(num, this.date1904); err == nil {
			return t
		}
	case formatDecimal:
		// whole amounts still narrow to Int
		if v := record.Coerce(num); v.Kind() == record.Int {
			return v
		}
		return decimal.NewFromFloat(num)
	}
	return num
}

func (this *cellReader) format(cell string) numberFormat {
	styleID, err := this.f.GetCellStyle(this.sheet, cell)
	if err != nil || styleID == 0 {
		return formatGeneral
	}
	if nf, ok := this.formats[styleID]; ok {
		return nf
	}

	nf := formatGeneral
	if style, err := this.f.GetStyle(styleID); err == nil && style != nil {
		nf = classifyStyle(style)
	}
	this.formats[styleID] = nf
	return nf
}

func classifyStyle(style *excelize.Style) numberFormat {
	if style.CustomNumFmt != nil && *style.CustomNumFmt != "" {
		return classifyFormatCode(*style.CustomNumFmt)
	}
	return classifyBuiltIn(style.NumFmt)
}

func classifyBuiltIn(id int) numberFormat {
	switch {
	case id >= 14 && id <= 22, id >= 45 && id <= 47, id >= 27 && id <= 36, id >= 50 && id <= 58:
		return formatDate
	case id == 2, id == 4, id >= 5 && id <= 8, id >= 39 && id <= 44:
		return formatDecimal
	}
	return formatGeneral
}

// classifyFormatCode inspects a custom number format code. Quoted literals,
// escaped characters and bracketed sections are ignored, except elapsed-time
// brackets such as [h].
func classifyFormatCode(code string) numberFormat {
	var b strings.Builder
	inQuote, inBracket := false, false
	bracket := strings.Builder{}
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case inQuote:
			if ch == '"' {
				inQuote = false
			}
		case inBracket:
			if ch == ']' {
				inBracket = false
				if s := strings.ToLower(bracket.String()); s == "h" || s == "hh" || s == "m" || s == "mm" || s == "s" || s == "ss" {
					b.WriteString(s)
				}
				bracket.Reset()
			} else {
				bracket.WriteByte(ch)
			}
		case ch == '"':
			inQuote = true
		case ch == '[':
			inBracket = true
		case ch == '\\' || ch == '_' || ch == '*':
			i++
		default:
			b.WriteByte(ch)
		}
	}

	clean := strings.ToLower(b.String())
	if clean == "general" || clean == "@" {
		return formatGeneral
	}
	if strings.ContainsAny(clean, "ydhs") || strings.Contains(clean, "m") {
		return formatDate
	}
	if strings.Contains(clean, ".00") || strings.ContainsAny(code, "$€£¥₽") {
		return formatDecimal
	}
	return formatGeneral
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseISODate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
