package import_excel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"production-api/internal/metrics"
	"production-api/internal/storage"
)

type Kind string

const (
	KindMaterialTypes    Kind = "material-types"
	KindProductTypes     Kind = "product-types"
	KindWorkshops        Kind = "workshops"
	KindProducts         Kind = "products"
	KindProductWorkshops Kind = "product-workshops"
)

// Column headers of the reference workbooks. Headers are compared after
// trimming, the staff column ships with a trailing space.
const (
	colMaterialType   = "Тип материала"
	colLossPercentage = "Процент потерь сырья"
	colProductType    = "Тип продукции"
	colCoefficient    = "Коэффициент типа продукции"
	colWorkshopName   = "Название цеха"
	colWorkshopType   = "Тип цеха"
	colStaffCount     = "Количество человек для производства"
	colProductName    = "Наименование продукции"
	colArticle        = "Артикул"
	colMinPrice       = "Минимальная стоимость для партнера"
	colMainMaterial   = "Основной материал"
	colProductionTime = "Время изготовления, ч"
)

var (
	ErrUnknownKind     = errors.New("unknown import kind")
	ErrInvalidWorkbook = errors.New("invalid workbook")
	ErrMissingColumn   = errors.New("missing column")
)

type Storage interface {
	CreateMaterialType(ctx context.Context, m storage.MaterialType) (int64, error)
	CreateProductType(ctx context.Context, pt storage.ProductType) (int64, error)
	CreateWorkshop(ctx context.Context, w storage.Workshop) (int64, error)
	CreateProduct(ctx context.Context, p storage.Product) (int64, error)
	CreateProductWorkshop(ctx context.Context, pw storage.ProductWorkshop) (int64, error)

	GetProductTypeByName(ctx context.Context, name string) (*storage.ProductType, error)
	GetProductByName(ctx context.Context, name string) (*storage.Product, error)
	GetWorkshopByName(ctx context.Context, name string) (*storage.Workshop, error)
}

type Report struct {
	Kind     Kind     `json:"kind"`
	Total    int      `json:"total"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings"`
}

type ImportService struct {
	storage Storage
}

func NewImportService(storage Storage) *ImportService {
	return &ImportService{storage: storage}
}

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindMaterialTypes, KindProductTypes, KindWorkshops, KindProducts, KindProductWorkshops:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// rowResult is the outcome of one data row. A row is either imported or
// skipped; both may carry a warning for the report.
type rowResult struct {
	imported bool
	warning  string
}

type rowFunc func(ctx context.Context, h header, row []string) (rowResult, error)

// Import reads the active sheet of an xlsx workbook and creates one record per
// data row. Rows that duplicate existing records are skipped, as are rows with
// unresolvable names. Store failures abort the import.
func (s *ImportService) Import(ctx context.Context, kind Kind, r io.Reader) (*Report, error) {
	const op = "service.import-excel.Import"

	var (
		fn       rowFunc
		required []string
	)

	switch kind {
	case KindMaterialTypes:
		fn, required = s.materialTypeRow, []string{colMaterialType}
	case KindProductTypes:
		fn, required = s.productTypeRow, []string{colProductType}
	case KindWorkshops:
		fn, required = s.workshopRow, []string{colWorkshopName}
	case KindProducts:
		fn, required = s.productRow, []string{colProductName}
	case KindProductWorkshops:
		fn, required = s.productWorkshopRow, []string{colProductName, colWorkshopName}
	default:
		return nil, fmt.Errorf("%s: %w: %q", op, ErrUnknownKind, kind)
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidWorkbook, err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidWorkbook, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w: лист %q пуст", op, ErrInvalidWorkbook, sheet)
	}

	h := newHeader(rows[0])
	for _, col := range required {
		if _, ok := h[col]; !ok {
			return nil, fmt.Errorf("%s: %w: %q", op, ErrMissingColumn, col)
		}
	}

	report := &Report{Kind: kind, Warnings: []string{}}

	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}

		line := i + 2
		report.Total++

		res, err := fn(ctx, h, row)
		if err != nil {
			return nil, fmt.Errorf("%s: строка %d: %w", op, line, err)
		}

		if res.imported {
			report.Imported++
			metrics.ImportedRows.WithLabelValues(string(kind), "imported").Inc()
		} else {
			report.Skipped++
			metrics.ImportedRows.WithLabelValues(string(kind), "skipped").Inc()
		}

		if res.warning != "" {
			report.Warnings = append(report.Warnings, fmt.Sprintf("строка %d: %s", line, res.warning))
		}
	}

	return report, nil
}

func (s *ImportService) materialTypeRow(ctx context.Context, h header, row []string) (rowResult, error) {
	name := h.value(row, colMaterialType)
	if name == "" {
		return rowResult{warning: "пустой тип материала"}, nil
	}

	loss, err := parseFloat(h.value(row, colLossPercentage))
	if err != nil || (loss != nil && *loss < 0) {
		return rowResult{warning: fmt.Sprintf("некорректный процент потерь %q", h.value(row, colLossPercentage))}, nil
	}

	_, err = s.storage.CreateMaterialType(ctx, storage.MaterialType{Name: name, LossPercentage: loss})
	return created(name, err)
}

func (s *ImportService) productTypeRow(ctx context.Context, h header, row []string) (rowResult, error) {
	name := h.value(row, colProductType)
	if name == "" {
		return rowResult{warning: "пустой тип продукции"}, nil
	}

	coefficient, err := parseFloat(h.value(row, colCoefficient))
	if err != nil {
		return rowResult{warning: fmt.Sprintf("некорректный коэффициент %q", h.value(row, colCoefficient))}, nil
	}

	_, err = s.storage.CreateProductType(ctx, storage.ProductType{Name: name, Coefficient: coefficient})
	return created(name, err)
}

func (s *ImportService) workshopRow(ctx context.Context, h header, row []string) (rowResult, error) {
	name := h.value(row, colWorkshopName)
	if name == "" {
		return rowResult{warning: "пустое название цеха"}, nil
	}

	staff, err := parseInt(h.value(row, colStaffCount))
	if err != nil || (staff != nil && *staff < 0) {
		return rowResult{warning: fmt.Sprintf("некорректное количество человек %q", h.value(row, colStaffCount))}, nil
	}

	_, err = s.storage.CreateWorkshop(ctx, storage.Workshop{
		Name:         name,
		WorkshopType: optional(h.value(row, colWorkshopType)),
		StaffCount:   staff,
	})
	return created(name, err)
}

func (s *ImportService) productRow(ctx context.Context, h header, row []string) (rowResult, error) {
	name := h.value(row, colProductName)
	if name == "" {
		return rowResult{warning: "пустое наименование продукции"}, nil
	}

	// products.name is not unique, so re-imports are deduplicated by lookup
	if _, err := s.storage.GetProductByName(ctx, name); err == nil {
		return rowResult{warning: fmt.Sprintf("продукция %q уже существует", name)}, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return rowResult{}, err
	}

	minPrice, err := parseFloat(h.value(row, colMinPrice))
	if err != nil || (minPrice != nil && *minPrice < 0) {
		return rowResult{warning: fmt.Sprintf("некорректная минимальная стоимость %q", h.value(row, colMinPrice))}, nil
	}

	p := storage.Product{
		Name:         name,
		Article:      optional(h.value(row, colArticle)),
		MinPrice:     minPrice,
		MainMaterial: optional(h.value(row, colMainMaterial)),
	}

	var warning string
	if typeName := h.value(row, colProductType); typeName != "" {
		pt, err := s.storage.GetProductTypeByName(ctx, typeName)
		switch {
		case err == nil:
			p.ProductTypeID = &pt.ID
		case errors.Is(err, storage.ErrNotFound):
			warning = fmt.Sprintf("тип продукции %q не найден", typeName)
		default:
			return rowResult{}, err
		}
	}

	_, err = s.storage.CreateProduct(ctx, p)
	res, err := created(name, err)
	if res.warning == "" {
		res.warning = warning
	}
	return res, err
}

func (s *ImportService) productWorkshopRow(ctx context.Context, h header, row []string) (rowResult, error) {
	productName := h.value(row, colProductName)
	workshopName := h.value(row, colWorkshopName)

	var missing []string

	var productID int64
	if productName != "" {
		p, err := s.storage.GetProductByName(ctx, productName)
		switch {
		case err == nil:
			productID = p.ID
		case !errors.Is(err, storage.ErrNotFound):
			return rowResult{}, err
		}
	}
	if productID == 0 {
		missing = append(missing, fmt.Sprintf("продукт %q не найден", productName))
	}

	var workshopID int64
	if workshopName != "" {
		w, err := s.storage.GetWorkshopByName(ctx, workshopName)
		switch {
		case err == nil:
			workshopID = w.ID
		case !errors.Is(err, storage.ErrNotFound):
			return rowResult{}, err
		}
	}
	if workshopID == 0 {
		missing = append(missing, fmt.Sprintf("цех %q не найден", workshopName))
	}

	if len(missing) > 0 {
		return rowResult{warning: strings.Join(missing, "; ")}, nil
	}

	hours, err := parseFloat(h.value(row, colProductionTime))
	if err != nil || (hours != nil && *hours < 0) {
		return rowResult{warning: fmt.Sprintf("некорректное время изготовления %q", h.value(row, colProductionTime))}, nil
	}

	_, err = s.storage.CreateProductWorkshop(ctx, storage.ProductWorkshop{
		ProductID:           productID,
		WorkshopID:          workshopID,
		ProductionTimeHours: hours,
	})
	return created(productName+" / "+workshopName, err)
}

// created turns a Create error into a row result. Duplicates and dangling
// references skip the row; anything else is a store failure.
func created(name string, err error) (rowResult, error) {
	switch {
	case err == nil:
		return rowResult{imported: true}, nil
	case errors.Is(err, storage.ErrAlreadyExists):
		return rowResult{warning: fmt.Sprintf("%q уже существует", name)}, nil
	case errors.Is(err, storage.ErrReferenceNotFound):
		return rowResult{warning: fmt.Sprintf("%q ссылается на несуществующую запись", name)}, nil
	default:
		return rowResult{}, err
	}
}

type header map[string]int

func newHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		name = strings.TrimSpace(name)
		if _, dup := h[name]; name != "" && !dup {
			h[name] = i
		}
	}
	return h
}

// value returns the trimmed cell under column name, or "" when the column
// is absent or the row is shorter than the header.
func (h header) value(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("non-finite value %q", raw)
	}

	return &v, nil
}

func parseInt(raw string) (*int, error) {
	v, err := parseFloat(raw)
	if err != nil || v == nil {
		return nil, err
	}
	if *v != math.Trunc(*v) || *v > math.MaxInt32 || *v < math.MinInt32 {
		return nil, fmt.Errorf("not an integer %q", raw)
	}

	n := int(*v)
	return &n, nil
}
