package services

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/tidwall/gjson"
)

// Fields is the mutable part of a record. Args must follow the column order
// declared on the Repository.
type Fields interface {
	Args() []interface{}
}

// Predicate is an exact-match filter on a column.
type Predicate struct {
	Column string
	Value  interface{}
}

// Repository is the list/get/create/update/delete contract shared by the flat
// record tables. T is the scanned row, F its mutable fields.
type Repository[T any, F Fields] struct {
	DB      *sqlx.DB
	Table   string
	Columns []string
	// Noun names the record in not-found messages, e.g. "Kitten".
	Noun string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

func (r *Repository[T, F]) selectList() string {
	return "id, " + strings.Join(r.Columns, ", ") + ", created_at"
}

func (r *Repository[T, F]) notFound() error {
	return ErrNotFound(r.Noun + " not found")
}

// List returns every row matching all predicates, oldest first.
func (r *Repository[T, F]) List(ctx context.Context, preds ...Predicate) ([]T, error) {
	query := "SELECT " + r.selectList() + " FROM " + r.Table
	args := make([]interface{}, 0, len(preds))
	if len(preds) > 0 {
		clauses := make([]string, 0, len(preds))
		for _, pred := range preds {
			clauses = append(clauses, pred.Column+" = ?")
			args = append(args, pred.Value)
		}
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id ASC"
	items := []T{}
	if err := r.DB.SelectContext(ctx, &items, r.DB.Rebind(query), args...); err != nil {
		return nil, WrapError(err, "list "+r.Table)
	}
	return items, nil
}

func (r *Repository[T, F]) Get(ctx context.Context, id int64) (T, error) {
	var item T
	err := r.DB.GetContext(ctx, &item, r.DB.Rebind("SELECT "+r.selectList()+" FROM "+r.Table+" WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return item, r.notFound()
	}
	if err != nil {
		return item, WrapError(err, "get "+r.Table)
	}
	return item, nil
}

func (r *Repository[T, F]) Create(ctx context.Context, fields F) (T, error) {
	var item T
	if err := Validate(fields); err != nil {
		return item, err
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(r.Columns)+1), ", ")
	query := "INSERT INTO " + r.Table + " (" + strings.Join(r.Columns, ", ") + ", created_at) VALUES (" +
		placeholders + ") RETURNING id"
	args := append(fields.Args(), time.Now().UTC())
	var id int64
	if err := r.DB.GetContext(ctx, &id, r.DB.Rebind(query), args...); err != nil {
		return item, WrapError(err, "create "+r.Table)
	}
	return r.Get(ctx, id)
}

// Update replaces every mutable column of row id.
func (r *Repository[T, F]) Update(ctx context.Context, id int64, fields F) (T, error) {
	var item T
	if err := Validate(fields); err != nil {
		return item, err
	}
	sets := make([]string, 0, len(r.Columns))
	for _, column := range r.Columns {
		sets = append(sets, column+" = ?")
	}
	query := "UPDATE " + r.Table + " SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(query), append(fields.Args(), id)...)
	if err != nil {
		return item, WrapError(err, "update "+r.Table)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return item, r.notFound()
	}
	return r.Get(ctx, id)
}

func (r *Repository[T, F]) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM "+r.Table+" WHERE id = ?"), id)
	if err != nil {
		return WrapError(err, "delete "+r.Table)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return WrapError(err, "delete "+r.Table)
	}
	if affected == 0 {
		return r.notFound()
	}
	return nil
}

func (r *Repository[T, F]) Count(ctx context.Context) (int, error) {
	var total int
	err := r.DB.GetContext(ctx, &total, "SELECT count(*) FROM "+r.Table)
	return total, err
}

// Validate checks struct tags on a payload and turns the first failure into a
// 422 ServiceError.
func Validate(payload interface{}) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return ErrUnprocessable("Invalid payload")
	}
	return ErrUnprocessable(describeFieldError(verrs[0]))
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "email":
		return field + " must be a valid email address"
	default:
		return field + " is invalid"
	}
}

// RequiredKeys lists the json keys of a payload struct that carry no
// `default` tag.
func RequiredKeys(payload interface{}) []string {
	t := reflect.TypeOf(payload)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		if _, optional := field.Tag.Lookup("default"); optional {
			continue
		}
		keys = append(keys, name)
	}
	return keys
}

// CheckRequired fails with a 422 naming the first required key of payload
// that raw leaves out or sets to null.
func CheckRequired(raw []byte, payload interface{}) error {
	doc := gjson.ParseBytes(raw)
	for _, key := range RequiredKeys(payload) {
		value := doc.Get(key)
		if !value.Exists() || value.Type == gjson.Null {
			return ErrUnprocessable(key + " is required")
		}
	}
	return nil
}
