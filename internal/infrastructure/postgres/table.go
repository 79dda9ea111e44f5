package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/irvanshandika/PUSCOM-sub000/internal/domain"
)

// table describe una colección una sola vez (columnas, escaneo, valores) y resuelve
// get/list/count/insert/delete para todas las entidades. Los repositorios solo añaden sus consultas propias.
type table[T any] struct {
	name    string
	columns []string // la primera columna es la clave primaria
	scan    func(row pgx.Row) (*T, error)
	values  func(v *T) []any // mismo orden que columns
}

func (t table[T]) columnList() string { return strings.Join(t.columns, ", ") }

func (t table[T]) selectFrom() string {
	return fmt.Sprintf("SELECT %s FROM %s", t.columnList(), t.name)
}

// get devuelve (nil, nil) si no hay fila.
func (t table[T]) get(ctx context.Context, q Querier, where string, args ...any) (*T, error) {
	v, err := t.scan(q.QueryRow(ctx, t.selectFrom()+" WHERE "+where, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", t.name, err)
	}
	return v, nil
}

func (t table[T]) getByID(ctx context.Context, q Querier, id string) (*T, error) {
	return t.get(ctx, q, t.columns[0]+" = $1", id)
}

// list ejecuta SELECT con el sufijo dado (WHERE/ORDER BY/LIMIT).
func (t table[T]) list(ctx context.Context, q Querier, tail string, args ...any) ([]*T, error) {
	rows, err := q.Query(ctx, t.selectFrom()+" "+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.name, err)
	}
	defer rows.Close()
	var out []*T
	for rows.Next() {
		v, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.name, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// count where vacío cuenta toda la tabla.
func (t table[T]) count(ctx context.Context, q Querier, where string, args ...any) (int, error) {
	sql := "SELECT COUNT(*) FROM " + t.name
	if where != "" {
		sql += " WHERE " + where
	}
	var n int
	if err := q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", t.name, err)
	}
	return n, nil
}

// insert devuelve domain.ErrDuplicate si viola un índice único.
func (t table[T]) insert(ctx context.Context, q Querier, v *T) error {
	placeholders := make([]string, len(t.columns))
	for i := range t.columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.name, t.columnList(), strings.Join(placeholders, ", "))
	if _, err := q.Exec(ctx, sql, t.values(v)...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", t.name, err)
	}
	return nil
}

// deleteByID devuelve domain.ErrNotFound si no existía.
func (t table[T]) deleteByID(ctx context.Context, q Querier, id string) error {
	cmd, err := q.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = $1", t.name, t.columns[0]), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", t.name, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// where acumula condiciones con placeholders numerados.
type where struct {
	conds []string
	args  []any
}

// add reemplaza cada "?" del fragmento por el siguiente $n.
func (w *where) add(cond string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

func (w *where) sql() string { return strings.Join(w.conds, " AND ") }
