package service

import (
	"github.com/sangkips/yumzee-api/pkg/apperror"
	"github.com/sangkips/yumzee-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// fieldErrors collects validation failures so a single response can report
// every bad field at once.
type fieldErrors []apperror.FieldError

func (f *fieldErrors) add(field, message string) {
	*f = append(*f, apperror.FieldError{Field: field, Message: message})
}

// err returns nil when nothing was collected
func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperror.NewValidationError(f)
}

// checkMoney validates an amount that will be stored in a decimal(12,2) column
func (f *fieldErrors) checkMoney(field string, d decimal.Decimal) {
	switch {
	case d.IsNegative():
		f.add(field, field+" must not be negative")
	case !utils.HasAtMostTwoDecimals(d):
		f.add(field, field+" must have at most 2 decimal places")
	case d.GreaterThan(utils.MaxMoney):
		f.add(field, field+" is too large")
	}
}

// checkOptionalMoney validates an amount only when it is set
func (f *fieldErrors) checkOptionalMoney(field string, d *decimal.Decimal) {
	if d != nil {
		f.checkMoney(field, *d)
	}
}
