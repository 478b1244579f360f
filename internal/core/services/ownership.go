package services

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// tenantOwned is implemented by every row that belongs to a company.
type tenantOwned interface {
	OwnedBy() uint
}

// getOwned loads a row through the given loader and enforces company
// ownership. Rows of other companies and absent rows both come back as
// the caller's notFound sentinel, so cross-tenant probing cannot tell
// them apart. Every company-scoped lookup in the services goes through
// this decorator.
func getOwned[T tenantOwned](ctx context.Context, companyID, id uint, load func(context.Context, uint) (T, error), notFound error) (T, error) {
	var zero T
	row, err := load(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, notFound
		}
		return zero, err
	}
	if row.OwnedBy() != companyID {
		return zero, notFound
	}
	return row, nil
}
