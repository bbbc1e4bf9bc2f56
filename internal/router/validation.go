package router

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Room numbers are short alphanumeric labels, optionally hyphenated
// ("101", "12B", "T-204").
var roomNumberRe = regexp.MustCompile(`^[0-9A-Za-z][0-9A-Za-z-]{0,9}$`)

func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("roomnumber", func(fl validator.FieldLevel) bool {
		return roomNumberRe.MatchString(fl.Field().String())
	})
}
