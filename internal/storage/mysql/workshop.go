package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"production-api/internal/storage"
)

const selectWorkshop = `SELECT id, name, workshop_type, staff_count FROM workshops`

func scanWorkshop(row interface{ Scan(...any) error }) (*storage.Workshop, error) {
	w := &storage.Workshop{}

	if err := row.Scan(&w.ID, &w.Name, &w.WorkshopType, &w.StaffCount); err != nil {
		return nil, err
	}

	return w, nil
}

func (s *Storage) CreateWorkshop(ctx context.Context, w storage.Workshop) (int64, error) {
	const op = "storage.mysql.CreateWorkshop"

	stmt := `INSERT INTO workshops (name, workshop_type, staff_count) VALUES (?, ?, ?)`

	res, err := s.db.ExecContext(ctx, stmt, w.Name, w.WorkshopType, w.StaffCount)
	if err != nil {
		return 0, fmt.Errorf("%s: ошибка сохранения цеха name='%s': %w", op, w.Name, mapError(err))
	}

	return res.LastInsertId()
}

func (s *Storage) GetWorkshop(ctx context.Context, id int64) (*storage.Workshop, error) {
	const op = "storage.mysql.GetWorkshop"

	w, err := scanWorkshop(s.db.QueryRowContext(ctx, selectWorkshop+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: цех id=%d: %w", op, id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: выполнение запроса завершилось ошибкой: %w", op, err)
	}

	return w, nil
}

func (s *Storage) GetWorkshopByName(ctx context.Context, name string) (*storage.Workshop, error) {
	const op = "storage.mysql.GetWorkshopByName"

	w, err := scanWorkshop(s.db.QueryRowContext(ctx, selectWorkshop+` WHERE name = ?`, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: цех name='%s': %w", op, name, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: выполнение запроса завершилось ошибкой: %w", op, err)
	}

	return w, nil
}

func (s *Storage) ListWorkshops(ctx context.Context, params storage.ListParams) ([]*storage.Workshop, error) {
	const op = "storage.mysql.ListWorkshops"

	params = normalizeList(params)

	rows, err := s.db.QueryContext(ctx, selectWorkshop+` ORDER BY id LIMIT ? OFFSET ?`, params.Limit, params.Skip)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения цехов: %w", op, err)
	}
	defer rows.Close()

	workshops := []*storage.Workshop{}

	for rows.Next() {
		w, err := scanWorkshop(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки: %w", op, err)
		}

		workshops = append(workshops, w)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка при итерации по строкам: %w", op, err)
	}

	return workshops, nil
}

func (s *Storage) UpdateWorkshop(ctx context.Context, w storage.Workshop) error {
	const op = "storage.mysql.UpdateWorkshop"

	stmt := `UPDATE workshops SET name = ?, workshop_type = ?, staff_count = ? WHERE id = ?`

	res, err := s.db.ExecContext(ctx, stmt, w.Name, w.WorkshopType, w.StaffCount, w.ID)
	if err != nil {
		return fmt.Errorf("%s: ошибка обновления цеха id=%d: %w", op, w.ID, mapError(err))
	}

	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: цех id=%d: %w", op, w.ID, err)
	}

	return nil
}

func (s *Storage) DeleteWorkshop(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteWorkshop"

	res, err := s.db.ExecContext(ctx, `DELETE FROM workshops WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: ошибка удаления цеха id=%d: %w", op, id, mapError(err))
	}

	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: цех id=%d: %w", op, id, err)
	}

	return nil
}
