package api

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/fsdevblog/hustlaa/internal/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"

	"github.com/go-playground/validator/v10"
)

// validateMaxBytes в отличии от тэга max который проверяет длину рун, - проверят длину байт в поле.
func validateMaxBytes(fl validator.FieldLevel) bool {
	param := fl.Param() // получаем значение из тега
	maxBytes, err := strconv.Atoi(param)
	if err != nil {
		return false
	}

	// нужно убедится что значение поля - строка.
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return len([]byte(str)) <= maxBytes
}

// validateDecimalGT0 проверяет, что сумма строго больше нуля и не мельче копейки. Значение
// decimal.Decimal приходит строкой через decimalTypeFunc.
func validateDecimalGT0(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	d, err := decimal.NewFromString(str)
	if err != nil {
		return false
	}
	return domain.ValidateAmount(d) == nil
}

func decimalTypeFunc(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("validator registration: unexpected engine %T", binding.Validator.Engine())
	}
	v.RegisterCustomTypeFunc(decimalTypeFunc, decimal.Decimal{})
	if err := v.RegisterValidation("max_bytes", validateMaxBytes); err != nil {
		return fmt.Errorf("validator registration: %s", err.Error())
	}
	if err := v.RegisterValidation("decimal_gt0", validateDecimalGT0); err != nil {
		return fmt.Errorf("validator registration: %s", err.Error())
	}
	return nil
}
