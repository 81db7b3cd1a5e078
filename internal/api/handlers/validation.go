package handlers

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/HomeHair-BookingService/internal/domain"
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// Validator проверка HTTP моделей по тегам validate
type Validator struct {
	v *validator.Validate
}

// NewValidator регистрирует теги date, month, clock и phone
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(domain.DateFormat, fl.Field().String())
		return err == nil
	})

	_ = v.RegisterValidation("month", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(domain.MonthFormat, fl.Field().String())
		return err == nil
	})

	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		_, err := time.Parse(domain.TimeFormat, value)
		return err == nil && len(value) == len(domain.TimeFormat)
	})

	// Пробелы, точки и дефисы допускаются: "06 12 34 56 78"
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(NormalizePhone(fl.Field().String()))
	})

	return &Validator{v: v}
}

// Struct проверяет структуру
func (v *Validator) Struct(s interface{}) error {
	return v.v.Struct(s)
}

// FirstInvalidField имя первого поля, не прошедшего проверку
func (v *Validator) FirstInvalidField(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return ve[0].Field()
	}
	return ""
}

// NormalizePhone убирает разделители из номера телефона
func NormalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", ".", "", "-", "").Replace(strings.TrimSpace(phone))
}
