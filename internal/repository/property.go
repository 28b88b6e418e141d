package repository

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/query"
	"github.com/jackc/pgx/v5"
)

// PropertyRepository reads and writes the properties table.
type PropertyRepository struct {
	executor
}

// NewPropertyRepository returns a PropertyRepository running on db.
func NewPropertyRepository(db DBTX, opts Options) *PropertyRepository {
	return &PropertyRepository{executor: newExecutor(db, opts)}
}

// GetAllProperties returns properties matching opts, cheapest first, each
// with its average rating. No match yields an empty slice.
//
// Unknown or malformed filters fail with errs.ErrInvalidInput before
// anything is sent to the database.
func (r *PropertyRepository) GetAllProperties(ctx context.Context, opts map[string]string, limit int) ([]model.Property, error) {
	stmt, err := query.BuildPropertySearch(opts, limit)
	if err != nil {
		return nil, err
	}

	var properties []model.Property
	err = r.run(ctx, "GetAllProperties", func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, stmt.SQL, stmt.Args...)
		if err != nil {
			return err
		}
		properties, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Property, error) {
			var p model.Property
			err := row.Scan(append(p.ScanTargets(), &p.AverageRating)...)
			return p, err
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	if properties == nil {
		properties = []model.Property{}
	}
	return properties, nil
}

// AddProperty inserts record and returns the stored row.
//
// Record keys must be property columns other than id.
func (r *PropertyRepository) AddProperty(ctx context.Context, record map[string]any) (*model.Property, error) {
	stmt, err := query.BuildPropertyInsert(record)
	if err != nil {
		return nil, err
	}

	var p model.Property
	err = r.run(ctx, "AddProperty", func(ctx context.Context) error {
		return r.db.QueryRow(ctx, stmt.SQL, stmt.Args...).Scan(p.ScanTargets()...)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}
