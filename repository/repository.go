// Package repository provides the shared data-access layer: a generic
// gorm-backed repository with uniform pagination, dropdown projection and
// aggregation so resource handlers never re-implement query plumbing.
// Soft-deleted rows are excluded from every read by gorm's DeletedAt
// convention.
package repository

import (
	"fmt"
	"strings"

	"github.com/storecart/storecart/utils"
	"gorm.io/gorm"
)

// Filter is a set of equality conditions applied to a query, keyed by
// column name.
type Filter map[string]interface{}

// Stage is one transformation applied to a base query. Stages compose in
// order, so callers opt into exactly the clauses they need.
type Stage func(*gorm.DB) *gorm.DB

// Join adds a JOIN clause stage.
func Join(clause string, args ...interface{}) Stage {
	return func(db *gorm.DB) *gorm.DB { return db.Joins(clause, args...) }
}

// Where adds a conditional stage.
func Where(query interface{}, args ...interface{}) Stage {
	return func(db *gorm.DB) *gorm.DB { return db.Where(query, args...) }
}

// GroupBy adds a grouping stage.
func GroupBy(name string) Stage {
	return func(db *gorm.DB) *gorm.DB { return db.Group(name) }
}

// SelectExpr adds a projection stage.
func SelectExpr(query string, args ...interface{}) Stage {
	return func(db *gorm.DB) *gorm.DB { return db.Select(query, args...) }
}

// OrderBy adds an ordering stage.
func OrderBy(clause string) Stage {
	return func(db *gorm.DB) *gorm.DB { return db.Order(clause) }
}

// PageOptions enumerates the supported list-query clauses.
type PageOptions struct {
	Page         int
	Limit        int
	Sort         string   // ORDER BY fragment, e.g. "created_at desc"
	Select       []string // columns to project; empty selects everything
	Preloads     []string // associations to resolve
	Search       string   // case-insensitive substring, ORed over SearchFields
	SearchFields []string
}

// PageMeta is the pagination block of the response envelope.
type PageMeta struct {
	Page           int   `json:"page"`
	Limit          int   `json:"limit"`
	TotalDocuments int64 `json:"totalDocuments"`
	TotalPages     int   `json:"totalPages"`
	NextPage       *int  `json:"nextPage"`
	PreviousPage   *int  `json:"previousPage"`
}

// Page bundles one page of records with its meta block.
type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

// Option is the dropdown projection of a record.
type Option struct {
	Value uint   `json:"value"`
	Label string `json:"label"`
}

// NewPageMeta computes the meta block for a page. totalPages is
// ceil(total/limit); nextPage exists while the page's end index is below
// the total, previousPage while the start index is above zero.
func NewPageMeta(page, limit int, total int64) PageMeta {
	meta := PageMeta{
		Page:           page,
		Limit:          limit,
		TotalDocuments: total,
		TotalPages:     int((total + int64(limit) - 1) / int64(limit)),
	}
	if int64(page*limit) < total {
		next := page + 1
		meta.NextPage = &next
	}
	if (page-1)*limit > 0 {
		prev := page - 1
		meta.PreviousPage = &prev
	}
	return meta
}

// validatePage rejects out-of-range pagination input before any query runs.
func validatePage(page, limit int) error {
	if page < 1 || limit < 1 {
		return utils.InvalidArgumentError("Page and limit must be greater than 0")
	}
	return nil
}

// Repository is a generic data-access wrapper around one model type.
type Repository[T any] struct {
	db *gorm.DB
}

// New creates a repository bound to db.
func New[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository[T]) WithTx(tx *gorm.DB) *Repository[T] {
	return &Repository[T]{db: tx}
}

// DB exposes the underlying handle for callers composing raw queries.
func (r *Repository[T]) DB() *gorm.DB {
	return r.db
}

func (r *Repository[T]) base(filter Filter) *gorm.DB {
	var model T
	query := r.db.Model(&model)
	if len(filter) > 0 {
		query = query.Where(map[string]interface{}(filter))
	}
	return query
}

func applySearch(query *gorm.DB, search string, fields []string) *gorm.DB {
	if search == "" || len(fields) == 0 {
		return query
	}
	pattern := "%" + search + "%"
	conditions := make([]string, 0, len(fields))
	args := make([]interface{}, 0, len(fields))
	for _, field := range fields {
		conditions = append(conditions, fmt.Sprintf("%s ILIKE ?", field))
		args = append(args, pattern)
	}
	return query.Where(strings.Join(conditions, " OR "), args...)
}

// Paginate lists records matching filter under the given options. The count
// query runs first using the same conditions, then the page is fetched.
func (r *Repository[T]) Paginate(filter Filter, opts PageOptions) (*Page[T], error) {
	if err := validatePage(opts.Page, opts.Limit); err != nil {
		return nil, err
	}

	query := applySearch(r.base(filter), opts.Search, opts.SearchFields)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, utils.StorageError("Failed to count records", err)
	}

	if opts.Sort != "" {
		query = query.Order(opts.Sort)
	}
	if len(opts.Select) > 0 {
		query = query.Select(opts.Select)
	}
	for _, preload := range opts.Preloads {
		query = query.Preload(preload)
	}

	offset := (opts.Page - 1) * opts.Limit
	var data []T
	if err := query.Limit(opts.Limit).Offset(offset).Find(&data).Error; err != nil {
		return nil, utils.StorageError("Failed to fetch records", err)
	}

	return &Page[T]{
		Data: data,
		Meta: NewPageMeta(opts.Page, opts.Limit, total),
	}, nil
}

// Dropdown projects records matching filter into {value, label} pairs for
// selection UIs. labelField defaults to "name".
func (r *Repository[T]) Dropdown(filter Filter, labelField string, opts PageOptions) (*Page[Option], error) {
	if err := validatePage(opts.Page, opts.Limit); err != nil {
		return nil, err
	}
	if labelField == "" {
		labelField = "name"
	}

	query := applySearch(r.base(filter), opts.Search, opts.SearchFields)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, utils.StorageError("Failed to count records", err)
	}

	sort := opts.Sort
	if sort == "" {
		sort = labelField + " asc"
	}

	offset := (opts.Page - 1) * opts.Limit
	var options []Option
	err := query.
		Select(fmt.Sprintf("id as value, %s as label", labelField)).
		Order(sort).
		Limit(opts.Limit).
		Offset(offset).
		Scan(&options).Error
	if err != nil {
		return nil, utils.StorageError("Failed to fetch dropdown records", err)
	}

	return &Page[Option]{
		Data: options,
		Meta: NewPageMeta(opts.Page, opts.Limit, total),
	}, nil
}

// Aggregate runs the staged query and scans the raw result into dest, with
// no pagination applied.
func (r *Repository[T]) Aggregate(dest interface{}, stages ...Stage) error {
	query := r.base(nil)
	for _, stage := range stages {
		query = stage(query)
	}
	if err := query.Scan(dest).Error; err != nil {
		return utils.StorageError("Aggregate query failed", err)
	}
	return nil
}

// PaginatedAggregate appends skip/limit and a count to the staged query and
// returns the same meta envelope as Paginate. dest must be a pointer to a
// slice of the projected row type.
func (r *Repository[T]) PaginatedAggregate(dest interface{}, page, limit int, stages ...Stage) (*PageMeta, error) {
	if err := validatePage(page, limit); err != nil {
		return nil, err
	}

	query := r.base(nil)
	for _, stage := range stages {
		query = stage(query)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, utils.StorageError("Failed to count aggregate rows", err)
	}

	offset := (page - 1) * limit
	if err := query.Limit(limit).Offset(offset).Scan(dest).Error; err != nil {
		return nil, utils.StorageError("Aggregate query failed", err)
	}

	meta := NewPageMeta(page, limit, total)
	return &meta, nil
}

// FindByID loads one record by primary key, resolving the given
// associations. Soft-deleted records are not found.
func (r *Repository[T]) FindByID(id uint, preloads ...string) (*T, error) {
	query := r.db
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	var record T
	if err := query.First(&record, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFoundError("The requested resource could not be located on the server.")
		}
		return nil, utils.StorageError("Failed to fetch record", err)
	}
	return &record, nil
}

// FindOne loads the first record matching filter.
func (r *Repository[T]) FindOne(filter Filter, preloads ...string) (*T, error) {
	query := r.db
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	var record T
	if err := query.Where(map[string]interface{}(filter)).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFoundError("The requested resource could not be located on the server.")
		}
		return nil, utils.StorageError("Failed to fetch record", err)
	}
	return &record, nil
}

// Create persists a new record.
func (r *Repository[T]) Create(record *T) error {
	if err := r.db.Create(record).Error; err != nil {
		return utils.StorageError("Failed to create record", err)
	}
	return nil
}

// Save persists all fields of an existing record.
func (r *Repository[T]) Save(record *T) error {
	if err := r.db.Save(record).Error; err != nil {
		return utils.StorageError("Failed to save record", err)
	}
	return nil
}

// Updates applies a partial update to the record matching id.
func (r *Repository[T]) Updates(id uint, values map[string]interface{}) error {
	var model T
	result := r.db.Model(&model).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return utils.StorageError("Failed to update record", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.NotFoundError("The requested resource could not be located on the server.")
	}
	return nil
}

// Delete soft-deletes the record matching id; it disappears from every
// subsequent read.
func (r *Repository[T]) Delete(id uint) error {
	var model T
	result := r.db.Delete(&model, id)
	if result.Error != nil {
		return utils.StorageError("Failed to delete record", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.NotFoundError("The requested resource could not be located on the server.")
	}
	return nil
}

// Count returns how many records match filter.
func (r *Repository[T]) Count(filter Filter) (int64, error) {
	var total int64
	if err := r.base(filter).Count(&total).Error; err != nil {
		return 0, utils.StorageError("Failed to count records", err)
	}
	return total, nil
}
