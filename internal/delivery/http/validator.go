package http

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/venuedate/venuedate-backend/internal/domain"
)

// registerValidators installs domain-specific binding rules on gin's
// validator engine.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("venuecategory", func(fl validator.FieldLevel) bool {
		return domain.ValidVenueCategory(fl.Field().String())
	})
	_ = v.RegisterValidation("interestedin", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case domain.InterestedInEveryone, domain.InterestedInMale, domain.InterestedInFemale:
			return true
		default:
			return false
		}
	})
}
