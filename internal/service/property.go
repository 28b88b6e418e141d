package service

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/rs/zerolog"
)

// PropertyRepository is the storage the PropertyService needs.
type PropertyRepository interface {
	GetAllProperties(ctx context.Context, opts map[string]string, limit int) ([]model.Property, error)
	AddProperty(ctx context.Context, record map[string]any) (*model.Property, error)
}

// PropertyService searches and creates property listings.
type PropertyService struct {
	base
	repo PropertyRepository
}

// NewPropertyService returns a PropertyService logging to log.
func NewPropertyService(log *zerolog.Logger, repo PropertyRepository) *PropertyService {
	return &PropertyService{base: base{log: log}, repo: repo}
}

// GetAllProperties searches properties. A limit <= 0 uses the default.
func (s *PropertyService) GetAllProperties(ctx context.Context, opts map[string]string, limit int) ([]model.Property, error) {
	properties, err := s.repo.GetAllProperties(ctx, opts, limit)
	if err != nil {
		return nil, s.fail(ctx, "GetAllProperties", err)
	}
	return properties, nil
}

// AddProperty inserts record and returns the stored row.
func (s *PropertyService) AddProperty(ctx context.Context, record map[string]any) (*model.Property, error) {
	property, err := s.repo.AddProperty(ctx, record)
	if err != nil {
		return nil, s.fail(ctx, "AddProperty", err)
	}

	s.logger(ctx).Info().
		Int("property_id", property.ID).
		Int("owner_id", property.OwnerID).
		Msg("property added")
	return property, nil
}
