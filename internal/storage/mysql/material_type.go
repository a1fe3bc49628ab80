package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"production-api/internal/storage"
)

func (s *Storage) CreateMaterialType(ctx context.Context, m storage.MaterialType) (int64, error) {
	const op = "storage.mysql.CreateMaterialType"

	stmt := `INSERT INTO material_type (name, loss_percentage) VALUES (?, ?)`

	res, err := s.db.ExecContext(ctx, stmt, m.Name, m.LossPercentage)
	if err != nil {
		return 0, fmt.Errorf("%s: ошибка сохранения типа материала name='%s': %w", op, m.Name, mapError(err))
	}

	return res.LastInsertId()
}

func (s *Storage) GetMaterialType(ctx context.Context, id int64) (*storage.MaterialType, error) {
	const op = "storage.mysql.GetMaterialType"

	query := `SELECT id, name, loss_percentage FROM material_type WHERE id = ?`

	m := &storage.MaterialType{}

	err := s.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.Name, &m.LossPercentage)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: тип материала id=%d: %w", op, id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: выполнение запроса завершилось ошибкой: %w", op, err)
	}

	return m, nil
}

func (s *Storage) ListMaterialTypes(ctx context.Context, params storage.ListParams) ([]*storage.MaterialType, error) {
	const op = "storage.mysql.ListMaterialTypes"

	params = normalizeList(params)

	stmt := `SELECT id, name, loss_percentage FROM material_type ORDER BY id LIMIT ? OFFSET ?`

	rows, err := s.db.QueryContext(ctx, stmt, params.Limit, params.Skip)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения типов материалов: %w", op, err)
	}
	defer rows.Close()

	materials := []*storage.MaterialType{}

	for rows.Next() {
		m := &storage.MaterialType{}

		if err := rows.Scan(&m.ID, &m.Name, &m.LossPercentage); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки: %w", op, err)
		}

		materials = append(materials, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка при итерации по строкам: %w", op, err)
	}

	return materials, nil
}

func (s *Storage) UpdateMaterialType(ctx context.Context, m storage.MaterialType) error {
	const op = "storage.mysql.UpdateMaterialType"

	stmt := `UPDATE material_type SET name = ?, loss_percentage = ? WHERE id = ?`

	res, err := s.db.ExecContext(ctx, stmt, m.Name, m.LossPercentage, m.ID)
	if err != nil {
		return fmt.Errorf("%s: ошибка обновления типа материала id=%d: %w", op, m.ID, mapError(err))
	}

	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: тип материала id=%d: %w", op, m.ID, err)
	}

	return nil
}

func (s *Storage) DeleteMaterialType(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteMaterialType"

	res, err := s.db.ExecContext(ctx, `DELETE FROM material_type WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: ошибка удаления типа материала id=%d: %w", op, id, mapError(err))
	}

	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: тип материала id=%d: %w", op, id, err)
	}

	return nil
}

func (s *Storage) GetMaterialTypeByName(ctx context.Context, name string) (*storage.MaterialType, error) {
	const op = "storage.mysql.GetMaterialTypeByName"

	query := `SELECT id, name, loss_percentage FROM material_type WHERE name = ?`

	m := &storage.MaterialType{}

	err := s.db.QueryRowContext(ctx, query, name).Scan(&m.ID, &m.Name, &m.LossPercentage)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: тип материала name='%s': %w", op, name, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: выполнение запроса завершилось ошибкой: %w", op, err)
	}

	return m, nil
}
