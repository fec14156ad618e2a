package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// EntityDescriptor declares how a model is stored and which of its columns
// the generic repository may write.
type EntityDescriptor struct {
	// Table must match the model's TableName.
	Table string
	// Fields lists the columns accepted by Update.
	Fields []string
	// Required lists the columns that must be non-zero on Create.
	Required []string
	// Preload names the associations loaded with every read.
	Preload []string
}

// CRUDRepository provides get, list, create, update and remove over one
// entity type. Every call runs in its own session bound to ctx.
type CRUDRepository[T any] struct {
	db       *gorm.DB
	desc     EntityDescriptor
	pk       string
	fields   map[string]struct{}
	required []*schema.Field
}

// NewCRUDRepository checks desc against the model's schema and panics when
// they disagree, so a wrong descriptor fails at startup.
func NewCRUDRepository[T any](db *gorm.DB, desc EntityDescriptor) *CRUDRepository[T] {
	s, err := schema.Parse(new(T), &sync.Map{}, db.NamingStrategy)
	if err != nil {
		panic(fmt.Sprintf("repository: parse %T: %v", *new(T), err))
	}
	if s.Table != desc.Table {
		panic(fmt.Sprintf("repository: %T is stored in %q, descriptor says %q", *new(T), s.Table, desc.Table))
	}
	if s.PrioritizedPrimaryField == nil {
		panic(fmt.Sprintf("repository: %T has no primary key", *new(T)))
	}

	r := &CRUDRepository[T]{
		db:     db,
		desc:   desc,
		pk:     s.PrioritizedPrimaryField.DBName,
		fields: make(map[string]struct{}, len(desc.Fields)),
	}
	for _, name := range desc.Fields {
		f := s.LookUpField(name)
		if f == nil || f.DBName == "" {
			panic(fmt.Sprintf("repository: %s has no column %q", desc.Table, name))
		}
		r.fields[f.DBName] = struct{}{}
	}
	for _, name := range desc.Required {
		f := s.LookUpField(name)
		if f == nil || f.DBName == "" {
			panic(fmt.Sprintf("repository: %s has no column %q", desc.Table, name))
		}
		r.required = append(r.required, f)
	}
	for _, rel := range desc.Preload {
		if _, ok := s.Relationships.Relations[rel]; !ok {
			panic(fmt.Sprintf("repository: %s has no relation %q", desc.Table, rel))
		}
	}
	return r
}

// Descriptor returns the descriptor the repository was built with
func (r *CRUDRepository[T]) Descriptor() EntityDescriptor {
	return r.desc
}

func (r *CRUDRepository[T]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, rel := range r.desc.Preload {
		q = q.Preload(rel)
	}
	return q
}

// Get returns the entity with the given id, or nil, nil when there is none.
func (r *CRUDRepository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var obj T
	if err := r.query(ctx).First(&obj, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s %d: %w", r.desc.Table, id, err)
	}
	return &obj, nil
}

// GetBy returns the first entity matching every column in conds, or nil, nil.
func (r *CRUDRepository[T]) GetBy(ctx context.Context, conds map[string]interface{}) (*T, error) {
	var obj T
	q := r.query(ctx)
	if len(conds) > 0 {
		q = q.Where(conds)
	}
	if err := q.First(&obj).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", r.desc.Table, err)
	}
	return &obj, nil
}

// GetMulti returns up to limit entities ordered by primary key, skipping the
// first skip rows. A skip past the end yields an empty page.
func (r *CRUDRepository[T]) GetMulti(ctx context.Context, skip, limit int) ([]T, error) {
	return r.ListBy(ctx, nil, skip, limit)
}

// ListBy is GetMulti restricted to rows matching every column in conds.
func (r *CRUDRepository[T]) ListBy(ctx context.Context, conds map[string]interface{}, skip, limit int) ([]T, error) {
	if skip < 0 || limit < 0 {
		return nil, fmt.Errorf("list %s: skip and limit must not be negative: %w", r.desc.Table, ErrValidation)
	}
	items := []T{}
	if limit == 0 {
		return items, nil
	}
	q := r.query(ctx)
	if len(conds) > 0 {
		q = q.Where(conds)
	}
	if err := q.Order(r.pk).Offset(skip).Limit(limit).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", r.desc.Table, err)
	}
	return items, nil
}

// All returns every entity ordered by primary key.
func (r *CRUDRepository[T]) All(ctx context.Context) ([]T, error) {
	items := []T{}
	if err := r.query(ctx).Order(r.pk).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", r.desc.Table, err)
	}
	return items, nil
}

// Create inserts obj and reloads it so generated columns are populated.
func (r *CRUDRepository[T]) Create(ctx context.Context, obj *T) (*T, error) {
	rv := reflect.ValueOf(obj)
	for _, f := range r.required {
		if _, zero := f.ValueOf(ctx, rv); zero {
			return nil, fmt.Errorf("create %s: %s is required: %w", r.desc.Table, f.DBName, ErrValidation)
		}
	}
	if err := r.db.WithContext(ctx).Create(obj).Error; err != nil {
		return nil, translate("create "+r.desc.Table, err)
	}
	return r.refresh(ctx, obj)
}

// Update writes only the columns present in changes. An empty map writes
// nothing and returns existing as is.
func (r *CRUDRepository[T]) Update(ctx context.Context, existing *T, changes map[string]interface{}) (*T, error) {
	if len(changes) == 0 {
		return existing, nil
	}
	for col := range changes {
		if _, ok := r.fields[col]; !ok {
			return nil, fmt.Errorf("update %s: column %q is not writable: %w", r.desc.Table, col, ErrValidation)
		}
	}
	if err := r.db.WithContext(ctx).Model(existing).Updates(changes).Error; err != nil {
		return nil, translate("update "+r.desc.Table, err)
	}
	return r.refresh(ctx, existing)
}

// Remove deletes the entity with the given id and reports whether a row was
// deleted. Removing a missing id is not an error.
func (r *CRUDRepository[T]) Remove(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return false, translate(fmt.Sprintf("delete %s %d", r.desc.Table, id), result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *CRUDRepository[T]) refresh(ctx context.Context, obj *T) (*T, error) {
	if err := r.query(ctx).First(obj).Error; err != nil {
		return nil, fmt.Errorf("refresh %s: %w", r.desc.Table, err)
	}
	return obj, nil
}
