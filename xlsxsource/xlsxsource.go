/*
Package xlsxsource reads uniform request workbooks into engine rows.

PURPOSE:
  This is the row-source collaborator sitting in front of the engine:
  it opens a request workbook, pulls each sheet's metadata block and
  employee grid, and emits engine.EmployeeRow values. The engine itself
  never touches a file.

SHEET LAYOUT:
  C3  request date
  C4  store (tienda) - becomes the rows' pricing location
  C5  administrator
  Row 6   location-group banner over the quantity grid
  Row 8   headers: B..I main columns, J.. quantity columns
  Row 9+  one employee per row

  Quantity column headers carry identifiers like
  "LIMA_ICA_SALON_CAMISA". Legacy sheets leave them blank; those fall
  back to the fixed position mapping.

FAILURE SEMANTICS:
  A sheet missing its metadata parses anyway with warnings; rows with
  no employee name are skipped. Only an unreadable workbook errors.
*/
package xlsxsource

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/warp/uniform-engine/engine"
)

// Sheet layout constants, 1-based like spreadsheet coordinates.
const (
	metadataColumn = 3 // column C
	dateRow        = 3
	storeRow       = 4
	adminRow       = 5
	locationRow    = 6
	headerRow      = 8
	dataStartRow   = 9

	mainStartColumn    = 2  // column B
	mainEndColumn      = 9  // column I
	uniformStartColumn = 10 // column J
)

// legacyColumnMapping names the quantity columns of sheets whose header
// row is blank, by absolute column index.
var legacyColumnMapping = map[int]string{
	10: "SALON_CAMISA", 11: "SALON_BLUSA", 12: "SALON_MANDILON", 13: "SALON_ANDARIN",
	14: "DELIVERY_POLO", 15: "DELIVERY_CASACA", 16: "DELIVERY_GORRA",
	17: "PACKER_POLO", 18: "PACKER_GORRA",
	19: "BAR_CAMISA", 20: "BAR_BLUSA", 21: "BAR_POLO", 22: "BAR_PECHERA",
	23: "CAJA_CAMISA", 24: "CAJA_BLUSA",
	25: "SEGURIDAD_CAMISA", 26: "SEGURIDAD_BLUSA", 27: "SEGURIDAD_SACO",
	28: "ANFITRIONAJE_CAMISA", 29: "ANFITRIONAJE_CASACA",
	30: "PRODUCCION_CHAQUETA", 31: "PRODUCCION_POLO", 32: "PRODUCCION_PANTALON",
	33: "PRODUCCION_PECHERA", 34: "PRODUCCION_GARIBALDI",
}

// Sheet is one parsed worksheet: its metadata block plus employee rows.
type Sheet struct {
	Name          string
	RequestDate   string
	Store         string
	Administrator string
	LocationGroup string
	Rows          []engine.EmployeeRow
	Warnings      []string
}

// Source parses request workbooks.
type Source struct {
	log logrus.FieldLogger
}

func New(log logrus.FieldLogger) *Source {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Source{log: log}
}

// LoadFile parses every sheet of the workbook at path.
func (s *Source) LoadFile(path string) ([]Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()
	return s.parse(f)
}

// Load parses every sheet of a workbook read from r.
func (s *Source) Load(r io.Reader) ([]Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return s.parse(f)
}

func (s *Source) parse(f *excelize.File) ([]Sheet, error) {
	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		sheet, err := s.parseSheet(f, name)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

func (s *Source) parseSheet(f *excelize.File, name string) (Sheet, error) {
	grid, err := f.GetRows(name)
	if err != nil {
		return Sheet{}, fmt.Errorf("read sheet %s: %w", name, err)
	}

	sheet := Sheet{
		Name:          name,
		RequestDate:   cell(grid, dateRow, metadataColumn),
		Store:         cell(grid, storeRow, metadataColumn),
		Administrator: cell(grid, adminRow, metadataColumn),
	}
	if sheet.RequestDate == "" {
		sheet.warn(s.log, name, "missing request date (C3)")
	}
	if sheet.Store == "" {
		sheet.warn(s.log, name, "missing store (C4)")
	}
	if sheet.Administrator == "" {
		sheet.warn(s.log, name, "missing administrator (C5)")
	}

	// The location-group banner is the first non-empty cell over the
	// quantity grid.
	for col := uniformStartColumn; col <= uniformStartColumn+len(legacyColumnMapping); col++ {
		if v := cell(grid, locationRow, col); v != "" {
			sheet.LocationGroup = v
			break
		}
	}

	headers := headerIndex(grid)
	quantityColumns := quantityColumns(grid)

	for rowNum := dataStartRow; rowNum <= len(grid); rowNum++ {
		name := cell(grid, rowNum, headers.name)
		if strings.TrimSpace(name) == "" {
			continue
		}
		row := engine.EmployeeRow{
			Name:          strings.TrimSpace(name),
			Document:      cell(grid, rowNum, headers.document),
			RawOccupation: cell(grid, rowNum, headers.occupation),
			SizeUpper:     cell(grid, rowNum, headers.sizeUpper),
			SizeLower:     cell(grid, rowNum, headers.sizeLower),
			Location:      sheet.Store,
			Quantities:    make(map[string]string, len(quantityColumns)),
		}
		for col, id := range quantityColumns {
			if v := cell(grid, rowNum, col); v != "" {
				row.Quantities[id] = v
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	s.log.WithFields(logrus.Fields{"sheet": name, "rows": len(sheet.Rows)}).Info("sheet parsed")
	return sheet, nil
}

func (sh *Sheet) warn(log logrus.FieldLogger, sheet, msg string) {
	log.WithField("sheet", sheet).Warn(msg)
	sh.Warnings = append(sh.Warnings, msg)
}

// mainHeaders locates the main columns by header text.
type mainHeaders struct {
	name, document, occupation, sizeUpper, sizeLower int
}

func headerIndex(grid [][]string) mainHeaders {
	// Positional defaults match the standard template.
	h := mainHeaders{name: 2, document: 3, occupation: 4, sizeUpper: 7, sizeLower: 8}
	for col := mainStartColumn; col <= mainEndColumn; col++ {
		header := strings.ToUpper(cell(grid, headerRow, col))
		switch {
		case strings.Contains(header, "APELLIDOS"), strings.Contains(header, "NOMBRE"):
			h.name = col
		case strings.Contains(header, "DNI"):
			h.document = col
		case strings.Contains(header, "CARGO"):
			h.occupation = col
		case strings.Contains(header, "SUPERIOR"):
			h.sizeUpper = col
		case strings.Contains(header, "INFERIOR"), strings.Contains(header, "PANTALON"):
			h.sizeLower = col
		}
	}
	return h
}

// quantityColumns maps absolute column index -> column identifier for
// every quantity column the sheet carries.
func quantityColumns(grid [][]string) map[int]string {
	cols := make(map[int]string)
	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}
	for col := uniformStartColumn; col <= width; col++ {
		header := strings.TrimSpace(cell(grid, headerRow, col))
		if header != "" {
			id := strings.ToUpper(strings.ReplaceAll(header, " ", "_"))
			if _, ok := engine.ParseColumnID(id); ok {
				cols[col] = id
			}
			continue
		}
		if id, ok := legacyColumnMapping[col]; ok {
			cols[col] = id
		}
	}
	return cols
}

// cell returns a trimmed cell value by 1-based row and column, "" when
// out of range.
func cell(grid [][]string, row, col int) string {
	if row < 1 || row > len(grid) {
		return ""
	}
	r := grid[row-1]
	if col < 1 || col > len(r) {
		return ""
	}
	return strings.TrimSpace(r[col-1])
}
