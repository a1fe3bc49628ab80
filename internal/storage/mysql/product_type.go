package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"production-api/internal/storage"
)

func (s *Storage) CreateProductType(ctx context.Context, pt storage.ProductType) (int64, error) {
	const op = "storage.mysql.CreateProductType"

	stmt := `INSERT INTO product_type (name, coefficient) VALUES (?, ?)`

	res, err := s.db.ExecContext(ctx, stmt, pt.Name, pt.Coefficient)
	if err != nil {
		return 0, fmt.Errorf("%s: ошибка сохранения типа продукции name='%s': %w", op, pt.Name, mapError(err))
	}

	return res.LastInsertId()
}

func (s *Storage) GetProductType(ctx context.Context, id int64) (*storage.ProductType, error) {
	const op = "storage.mysql.GetProductType"

	pt := &storage.ProductType{}

	err := s.db.QueryRowContext(ctx, `SELECT id, name, coefficient FROM product_type WHERE id = ?`, id).
		Scan(&pt.ID, &pt.Name, &pt.Coefficient)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: тип продукции id=%d: %w", op, id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: выполнение запроса завершилось ошибкой: %w", op, err)
	}

	return pt, nil
}

func (s *Storage) GetProductTypeByName(ctx context.Context, name string) (*storage.ProductType, error) {
	const op = "storage.mysql.GetProductTypeByName"

	pt := &storage.ProductType{}

	err := s.db.QueryRowContext(ctx, `SELECT id, name, coefficient FROM product_type WHERE name = ?`, name).
		Scan(&pt.ID, &pt.Name, &pt.Coefficient)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: тип продукции name='%s': %w", op, name, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: выполнение запроса завершилось ошибкой: %w", op, err)
	}

	return pt, nil
}

func (s *Storage) ListProductTypes(ctx context.Context, params storage.ListParams) ([]*storage.ProductType, error) {
	const op = "storage.mysql.ListProductTypes"

	params = normalizeList(params)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, coefficient FROM product_type ORDER BY id LIMIT ? OFFSET ?`, params.Limit, params.Skip)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения типов продукции: %w", op, err)
	}
	defer rows.Close()

	types := []*storage.ProductType{}

	for rows.Next() {
		pt := &storage.ProductType{}

		if err := rows.Scan(&pt.ID, &pt.Name, &pt.Coefficient); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки: %w", op, err)
		}

		types = append(types, pt)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка при итерации по строкам: %w", op, err)
	}

	return types, nil
}

func (s *Storage) UpdateProductType(ctx context.Context, pt storage.ProductType) error {
	const op = "storage.mysql.UpdateProductType"

	res, err := s.db.ExecContext(ctx,
		`UPDATE product_type SET name = ?, coefficient = ? WHERE id = ?`, pt.Name, pt.Coefficient, pt.ID)
	if err != nil {
		return fmt.Errorf("%s: ошибка обновления типа продукции id=%d: %w", op, pt.ID, mapError(err))
	}

	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: тип продукции id=%d: %w", op, pt.ID, err)
	}

	return nil
}

func (s *Storage) DeleteProductType(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteProductType"

	res, err := s.db.ExecContext(ctx, `DELETE FROM product_type WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: ошибка удаления типа продукции id=%d: %w", op, id, mapError(err))
	}

	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: тип продукции id=%d: %w", op, id, err)
	}

	return nil
}
