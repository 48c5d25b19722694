package validation

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// seatIDPattern matches row-column seat ids. Rows are letters (A-1, in any case)
// or numbers (12-4), the two row alphabets a theater layout can generate.
var seatIDPattern = regexp.MustCompile(`^\s*([A-Za-z]{1,3}|[0-9]{1,3})-[0-9]{1,4}\s*$`)

var registerOnce sync.Once

// RegisterCustomValidators adds the domain tags to gin's binding validator.
// Safe to call more than once.
func RegisterCustomValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("seatid", ValidSeatID)
		}
	})
}

// ValidSeatID is the validator.Func behind the seatid tag
func ValidSeatID(fl validator.FieldLevel) bool {
	return IsSeatID(fl.Field().String())
}

func IsSeatID(seatID string) bool {
	return seatIDPattern.MatchString(seatID)
}
