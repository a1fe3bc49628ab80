package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"production-api/internal/storage"
)

const selectProduct = `SELECT id, name, product_type_id, article, min_price, main_material FROM products`

func scanProduct(row interface{ Scan(...any) error }) (*storage.Product, error) {
	p := &storage.Product{}

	err := row.Scan(&p.ID, &p.Name, &p.ProductTypeID, &p.Article, &p.MinPrice, &p.MainMaterial)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Storage) CreateProduct(ctx context.Context, p storage.Product) (int64, error) {
	const op = "storage.mysql.CreateProduct"

	stmt := `INSERT INTO products (name, product_type_id, article, min_price, main_material) VALUES (?, ?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, stmt, p.Name, p.ProductTypeID, p.Article, p.MinPrice, p.MainMaterial)
	if err != nil {
		return 0, fmt.Errorf("%s: ошибка сохранения продукции name='%s': %w", op, p.Name, mapError(err))
	}

	return res.LastInsertId()
}

func (s *Storage) GetProduct(ctx context.Context, id int64) (*storage.Product, error) {
	const op = "storage.mysql.GetProduct"

	p, err := scanProduct(s.db.QueryRowContext(ctx, selectProduct+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: продукция id=%d: %w", op, id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: выполнение запроса завершилось ошибкой: %w", op, err)
	}

	return p, nil
}

// GetProductByName returns the first product with the given name. Names are
// not unique, so the lowest id wins.
func (s *Storage) GetProductByName(ctx context.Context, name string) (*storage.Product, error) {
	const op = "storage.mysql.GetProductByName"

	p, err := scanProduct(s.db.QueryRowContext(ctx, selectProduct+` WHERE name = ? ORDER BY id LIMIT 1`, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: продукция name='%s': %w", op, name, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: выполнение запроса завершилось ошибкой: %w", op, err)
	}

	return p, nil
}

func (s *Storage) ListProducts(ctx context.Context, params storage.ListParams) ([]*storage.Product, error) {
	const op = "storage.mysql.ListProducts"

	params = normalizeList(params)

	rows, err := s.db.QueryContext(ctx, selectProduct+` ORDER BY id LIMIT ? OFFSET ?`, params.Limit, params.Skip)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения продукции: %w", op, err)
	}
	defer rows.Close()

	products := []*storage.Product{}

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки: %w", op, err)
		}

		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка при итерации по строкам: %w", op, err)
	}

	return products, nil
}

func (s *Storage) UpdateProduct(ctx context.Context, p storage.Product) error {
	const op = "storage.mysql.UpdateProduct"

	stmt := `UPDATE products SET name = ?, product_type_id = ?, article = ?, min_price = ?, main_material = ? WHERE id = ?`

	res, err := s.db.ExecContext(ctx, stmt, p.Name, p.ProductTypeID, p.Article, p.MinPrice, p.MainMaterial, p.ID)
	if err != nil {
		return fmt.Errorf("%s: ошибка обновления продукции id=%d: %w", op, p.ID, mapError(err))
	}

	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: продукция id=%d: %w", op, p.ID, err)
	}

	return nil
}

// DeleteProduct removes the product; its workshop links go with it through
// ON DELETE CASCADE.
func (s *Storage) DeleteProduct(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteProduct"

	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: ошибка удаления продукции id=%d: %w", op, id, mapError(err))
	}

	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: продукция id=%d: %w", op, id, err)
	}

	return nil
}
