// Package service contains the business logic.
//
// It sits between the command layer and the repositories: it checks
// arguments the repositories cannot, calls one repository method per
// operation, and logs every failure exactly once with the operation name
// and error kind.
package service

import (
	"context"
	"math"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/rs/zerolog"
)

// base carries the fallback logger shared by every service.
type base struct {
	log *zerolog.Logger
}

// logger prefers the request logger stored in ctx (it carries trace ids).
func (b base) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return b.log
}

// checkID rejects ids that cannot name a row of a serial column.
func checkID(field string, id int) error {
	switch {
	case id <= 0:
		return errs.InvalidField(field, "must be positive")
	case id > math.MaxInt32:
		return errs.InvalidField(field, "is out of range")
	}
	return nil
}

// fail logs err once and returns it unchanged.
func (b base) fail(ctx context.Context, operation string, err error) error {
	kind := errs.KindOf(err)

	var event *zerolog.Event
	switch kind {
	case errs.KindNotFound, errs.KindInvalidInput, errs.KindConstraintViolation:
		event = b.logger(ctx).Warn()
	default:
		event = b.logger(ctx).Error()
	}

	event.Err(err).
		Str("operation", operation).
		Str("kind", string(kind)).
		Msg("operation failed")

	return err
}
