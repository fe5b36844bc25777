// Package tables is the typed access layer over the backend's table
// surface. A Table binds one table name to compile-time-known row, insert,
// and update shapes and exposes uniform fetch/insert/update/remove
// operations.
//
// This layer is the single chokepoint normalizing the backend's result
// shape into the client's error taxonomy: a backend failure surfaces as
// *common.RemoteError, a required single row that is absent surfaces as
// common.ErrNotFound, and a single-row fetch that matches several rows is
// an error rather than a silent pick-first.
package tables

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/skilllink/skilllink/internal/client/backend"
	"github.com/skilllink/skilllink/internal/client/models"
	"github.com/skilllink/skilllink/internal/common"
)

// Table binds a table name to its schemas. ID is the primary-key type, R
// the row shape, I the insert shape, U the partial-update shape.
type Table[ID comparable, R, I, U any] struct {
	name string
	api  backend.TableAPI
}

// New binds the named table to the given schemas.
func New[ID comparable, R, I, U any](api backend.TableAPI, name string) *Table[ID, R, I, U] {
	return &Table[ID, R, I, U]{name: name, api: api}
}

// Name returns the bound table name.
func (t *Table[ID, R, I, U]) Name() string { return t.name }

// Option narrows a FetchAll query.
type Option func(*backend.Query)

// WithEq adds an equality filter on column.
func WithEq(column, value string) Option {
	return func(q *backend.Query) {
		q.Filters = append(q.Filters, backend.Filter{Column: column, Value: value})
	}
}

// WithOrderDesc orders results by column, newest-style descending.
func WithOrderDesc(column string) Option {
	return func(q *backend.Query) {
		q.OrderBy = column
		q.Descending = true
	}
}

// WithColumns projects the listed columns instead of every column.
func WithColumns(columns ...string) Option {
	return func(q *backend.Query) {
		q.Columns = columns
	}
}

func decodeRows[R any](raw []json.RawMessage) ([]R, error) {
	rows := make([]R, 0, len(raw))
	for _, m := range raw {
		var r R
		if err := json.Unmarshal(m, &r); err != nil {
			return nil, &common.RemoteError{
				Message: "malformed row: " + err.Error(),
				Class:   common.ClassOther,
			}
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// FetchAll lists rows, optionally narrowed by filters, ordering, or column
// projection.
func (t *Table[ID, R, I, U]) FetchAll(ctx context.Context, opts ...Option) ([]R, error) {
	var q backend.Query
	for _, o := range opts {
		o(&q)
	}

	raw, err := t.api.Select(ctx, t.name, q)
	if err != nil {
		return nil, err
	}
	return decodeRows[R](raw)
}

// FetchByID returns the row with the given primary key. Zero matching rows
// is common.ErrNotFound; more than one is an error, never a silent first.
func (t *Table[ID, R, I, U]) FetchByID(ctx context.Context, id ID) (R, error) {
	var zero R

	q := backend.Query{Filters: []backend.Filter{{Column: "id", Value: fmt.Sprint(id)}}}
	raw, err := t.api.Select(ctx, t.name, q)
	if err != nil {
		return zero, err
	}

	switch len(raw) {
	case 0:
		return zero, fmt.Errorf("%s id %v: %w", t.name, id, common.ErrNotFound)
	case 1:
		rows, err := decodeRows[R](raw)
		if err != nil {
			return zero, err
		}
		return rows[0], nil
	default:
		return zero, &common.RemoteError{
			Message: fmt.Sprintf("%s id %v matched %d rows", t.name, id, len(raw)),
			Class:   common.ClassOther,
		}
	}
}

// Insert adds a row and returns the stored representation.
func (t *Table[ID, R, I, U]) Insert(ctx context.Context, row I) (R, error) {
	var zero R

	raw, err := t.api.Insert(ctx, t.name, row)
	if err != nil {
		return zero, err
	}
	if len(raw) == 0 {
		return zero, &common.RemoteError{
			Message: t.name + ": no row returned after insert",
			Class:   common.ClassOther,
		}
	}

	rows, err := decodeRows[R](raw[:1])
	if err != nil {
		return zero, err
	}
	return rows[0], nil
}

// Update patches the row with the given primary key and returns the
// updated representation.
func (t *Table[ID, R, I, U]) Update(ctx context.Context, id ID, patch U) (R, error) {
	var zero R

	q := backend.Query{Filters: []backend.Filter{{Column: "id", Value: fmt.Sprint(id)}}}
	raw, err := t.api.Update(ctx, t.name, q, patch)
	if err != nil {
		return zero, err
	}
	if len(raw) == 0 {
		return zero, fmt.Errorf("%s id %v: %w", t.name, id, common.ErrNotFound)
	}

	rows, err := decodeRows[R](raw[:1])
	if err != nil {
		return zero, err
	}
	return rows[0], nil
}

// Remove deletes the row with the given primary key.
func (t *Table[ID, R, I, U]) Remove(ctx context.Context, id ID) error {
	q := backend.Query{Filters: []backend.Filter{{Column: "id", Value: fmt.Sprint(id)}}}
	return t.api.Delete(ctx, t.name, q)
}

// The fixed set of table bindings this client knows about. Anything else
// is a compile error, not a stringly-typed runtime surprise.

// Profiles binds the profiles table.
func Profiles(api backend.TableAPI) *Table[string, models.Profile, models.ProfileInsert, models.ProfileUpdate] {
	return New[string, models.Profile, models.ProfileInsert, models.ProfileUpdate](api, "profiles")
}

// Skills binds the skills table.
func Skills(api backend.TableAPI) *Table[int64, models.Skill, models.SkillInsert, models.SkillUpdate] {
	return New[int64, models.Skill, models.SkillInsert, models.SkillUpdate](api, "skills")
}

// Categories binds the categories table.
func Categories(api backend.TableAPI) *Table[int64, models.Category, models.CategoryInsert, models.CategoryUpdate] {
	return New[int64, models.Category, models.CategoryInsert, models.CategoryUpdate](api, "categories")
}
