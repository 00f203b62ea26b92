package utils

import (
	"time"

	"medika-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("clock_time", validateClockTime)
	validate.RegisterValidation("calendar_date", validateCalendarDate)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateClockTime(fl validator.FieldLevel) bool {
	_, err := time.Parse(constvars.AppTimeLayout, fl.Field().String())
	return err == nil
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(constvars.AppDateLayout, fl.Field().String())
	return err == nil
}
