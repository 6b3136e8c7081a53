package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// decimal_gt / decimal_gte let request structs validate shopspring
	// decimals the same way numeric fields use gt / gte.
	v.RegisterValidation("decimal_gt", decimalRule(decimal.Decimal.GreaterThan))
	v.RegisterValidation("decimal_gte", decimalRule(decimal.Decimal.GreaterThanOrEqual))

	return v
}

func decimalRule(cmp func(decimal.Decimal, decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return cmp(d, bound)
	}
}

// Validate checks struct tags and returns a readable error for the first
// failing field.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("field '%s' failed on '%s'", strings.ToLower(fe.Field()), fe.Tag())
	}
	return err
}
