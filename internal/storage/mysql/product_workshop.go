package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"production-api/internal/storage"
)

const selectProductWorkshop = `SELECT id, product_id, workshop_id, production_time_hours FROM product_workshops`

func scanProductWorkshop(row interface{ Scan(...any) error }) (*storage.ProductWorkshop, error) {
	pw := &storage.ProductWorkshop{}

	if err := row.Scan(&pw.ID, &pw.ProductID, &pw.WorkshopID, &pw.ProductionTimeHours); err != nil {
		return nil, err
	}

	return pw, nil
}

func (s *Storage) CreateProductWorkshop(ctx context.Context, pw storage.ProductWorkshop) (int64, error) {
	const op = "storage.mysql.CreateProductWorkshop"

	stmt := `INSERT INTO product_workshops (product_id, workshop_id, production_time_hours) VALUES (?, ?, ?)`

	res, err := s.db.ExecContext(ctx, stmt, pw.ProductID, pw.WorkshopID, pw.ProductionTimeHours)
	if err != nil {
		return 0, fmt.Errorf("%s: ошибка сохранения связи продукция=%d цех=%d: %w",
			op, pw.ProductID, pw.WorkshopID, mapError(err))
	}

	return res.LastInsertId()
}

func (s *Storage) GetProductWorkshop(ctx context.Context, id int64) (*storage.ProductWorkshop, error) {
	const op = "storage.mysql.GetProductWorkshop"

	pw, err := scanProductWorkshop(s.db.QueryRowContext(ctx, selectProductWorkshop+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: связь id=%d: %w", op, id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: выполнение запроса завершилось ошибкой: %w", op, err)
	}

	return pw, nil
}

func (s *Storage) ListProductWorkshops(ctx context.Context, params storage.ListParams) ([]*storage.ProductWorkshop, error) {
	const op = "storage.mysql.ListProductWorkshops"

	params = normalizeList(params)

	rows, err := s.db.QueryContext(ctx, selectProductWorkshop+` ORDER BY id LIMIT ? OFFSET ?`, params.Limit, params.Skip)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения связей продукции и цехов: %w", op, err)
	}
	defer rows.Close()

	return collectProductWorkshops(op, rows)
}

// ListProductWorkshopsByProduct returns every link of one product in id order.
func (s *Storage) ListProductWorkshopsByProduct(ctx context.Context, productID int64) ([]*storage.ProductWorkshop, error) {
	const op = "storage.mysql.ListProductWorkshopsByProduct"

	rows, err := s.db.QueryContext(ctx, selectProductWorkshop+` WHERE product_id = ? ORDER BY id`, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения цехов для продукции id=%d: %w", op, productID, err)
	}
	defer rows.Close()

	return collectProductWorkshops(op, rows)
}

func collectProductWorkshops(op string, rows *sql.Rows) ([]*storage.ProductWorkshop, error) {
	links := []*storage.ProductWorkshop{}

	for rows.Next() {
		pw, err := scanProductWorkshop(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки: %w", op, err)
		}

		links = append(links, pw)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка при итерации по строкам: %w", op, err)
	}

	return links, nil
}

func (s *Storage) UpdateProductWorkshop(ctx context.Context, pw storage.ProductWorkshop) error {
	const op = "storage.mysql.UpdateProductWorkshop"

	stmt := `UPDATE product_workshops SET product_id = ?, workshop_id = ?, production_time_hours = ? WHERE id = ?`

	res, err := s.db.ExecContext(ctx, stmt, pw.ProductID, pw.WorkshopID, pw.ProductionTimeHours, pw.ID)
	if err != nil {
		return fmt.Errorf("%s: ошибка обновления связи id=%d: %w", op, pw.ID, mapError(err))
	}

	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: связь id=%d: %w", op, pw.ID, err)
	}

	return nil
}

func (s *Storage) DeleteProductWorkshop(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteProductWorkshop"

	res, err := s.db.ExecContext(ctx, `DELETE FROM product_workshops WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: ошибка удаления связи id=%d: %w", op, id, mapError(err))
	}

	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: связь id=%d: %w", op, id, err)
	}

	return nil
}
