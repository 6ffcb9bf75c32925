package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var travelModes = map[string]bool{
	"walking": true,
	"driving": true,
	"cycling": true,
}

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("travel_mode", func(fl validator.FieldLevel) bool {
		return travelModes[fl.Field().String()]
	})
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// Describe превращает ошибки валидации в карту поле -> правило для деталей ответа
func Describe(err error) map[string]interface{} {
	details := make(map[string]interface{})
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		details["error"] = err.Error()
		return details
	}
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule = fmt.Sprintf("%s=%s", rule, fe.Param())
		}
		details[strings.ToLower(fe.Field())] = rule
	}
	return details
}
