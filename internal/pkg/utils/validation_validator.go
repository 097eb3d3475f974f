package utils

import (
	"healthmate-service/internal/app/models"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	phoneNumberPattern = regexp.MustCompile(`^\+[1-9]\d{9,14}$`)
	timeSlotPattern    = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d-([01]\d|2[0-3]):[0-5]\d$`)
	bloodGroups        = map[string]struct{}{
		"A+": {}, "A-": {}, "B+": {}, "B-": {}, "AB+": {}, "AB-": {}, "O+": {}, "O-": {},
	}
	weekdays = map[string]struct{}{
		"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {}, "friday": {}, "saturday": {}, "sunday": {},
	}
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("phone_number", validatePhoneNumber)
	validate.RegisterValidation("blood_group", validateBloodGroup)
	validate.RegisterValidation("weekday", validateWeekday)
	validate.RegisterValidation("time_slot", validateTimeSlot)
	validate.RegisterValidation("profile_kind", validateProfileKind)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	return phoneNumberPattern.MatchString(fl.Field().String())
}

func validateBloodGroup(fl validator.FieldLevel) bool {
	_, ok := bloodGroups[strings.ToUpper(fl.Field().String())]
	return ok
}

func validateWeekday(fl validator.FieldLevel) bool {
	_, ok := weekdays[strings.ToLower(fl.Field().String())]
	return ok
}

// validateTimeSlot accepts "HH:MM-HH:MM" with the end after the start.
func validateTimeSlot(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !timeSlotPattern.MatchString(value) {
		return false
	}
	return value[:5] < value[6:]
}

func validateProfileKind(fl validator.FieldLevel) bool {
	return models.ProfileKind(fl.Field().String()).IsValid()
}
