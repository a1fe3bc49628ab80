package generate_excel

import (
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
	"production-api/internal/service/calculator"
	"production-api/internal/storage"
)

type GenerateExcelStorage interface {
	ListProducts(ctx context.Context, params storage.ListParams) ([]*storage.Product, error)
	ListProductTypes(ctx context.Context, params storage.ListParams) ([]*storage.ProductType, error)
}

type ProductionTimer interface {
	TotalProductionTime(ctx context.Context, productID int64) (calculator.ProductionTime, error)
}

type GenerateExcelService struct {
	storage GenerateExcelStorage
	timer   ProductionTimer
}

func NewGenerateService(storage GenerateExcelStorage, timer ProductionTimer) *GenerateExcelService {
	return &GenerateExcelService{storage: storage, timer: timer}
}

const (
	sheetName   = "Время производства"
	timeWorkers = 8
)

var headers = []string{
	"ID", "Наименование продукции", "Артикул", "Тип продукции", "Основной материал",
	"Минимальная стоимость для партнера", "Количество цехов", "Время изготовления, ч",
}

// GenerateExcel builds an xlsx workbook with one row per product and its total
// production time across workshops.
func (g *GenerateExcelService) GenerateExcel(ctx context.Context) ([]byte, error) {
	const op = "service.generate-excel.GenerateExcel"

	products, err := listAll(ctx, g.storage.ListProducts)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch products: %w", op, err)
	}

	productTypes, err := listAll(ctx, g.storage.ListProductTypes)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch product types: %w", op, err)
	}

	typeNames := make(map[int64]string, len(productTypes))
	for _, pt := range productTypes {
		typeNames[pt.ID] = pt.Name
	}

	times := make([]*calculator.ProductionTime, len(products))

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(timeWorkers)
	for i, p := range products {
		eg.Go(func() error {
			pt, err := g.timer.TotalProductionTime(gCtx, p.ID)
			if err != nil {
				// deleted after listing
				if errors.Is(err, calculator.ErrProductNotFound) {
					return nil
				}
				return err
			}
			times[i] = &pt
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("%s: production time: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i, name := range headers {
		f.SetCellValue(sheetName, cellName(i+1, 1), name)
	}
	f.SetCellStyle(sheetName, "A1", cellName(len(headers), 1), headerStyle)

	rowNum := 2
	for i, p := range products {
		pt := times[i]
		if pt == nil {
			continue
		}

		f.SetCellValue(sheetName, cellName(1, rowNum), p.ID)
		f.SetCellValue(sheetName, cellName(2, rowNum), p.Name)
		f.SetCellValue(sheetName, cellName(3, rowNum), deref(p.Article))
		if p.ProductTypeID != nil {
			f.SetCellValue(sheetName, cellName(4, rowNum), typeNames[*p.ProductTypeID])
		}
		f.SetCellValue(sheetName, cellName(5, rowNum), deref(p.MainMaterial))
		if p.MinPrice != nil {
			f.SetCellValue(sheetName, cellName(6, rowNum), *p.MinPrice)
		}
		f.SetCellValue(sheetName, cellName(7, rowNum), pt.WorkshopCount)
		f.SetCellValue(sheetName, cellName(8, rowNum), pt.TotalHours)

		rowNum++
	}

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	f.SetColWidth(sheetName, "B", "B", 50)
	f.SetColWidth(sheetName, "C", "H", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

// listAll pages through a List method until a short page comes back.
func listAll[T any](ctx context.Context, list func(context.Context, storage.ListParams) ([]*T, error)) ([]*T, error) {
	var all []*T

	params := storage.ListParams{Limit: storage.MaxListLimit}
	for {
		page, err := list(ctx, params)
		if err != nil {
			return nil, err
		}

		all = append(all, page...)
		if len(page) < params.Limit {
			return all, nil
		}
		params.Skip += len(page)
	}
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
