package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"resort/pkg/logger"
	"resort/pkg/model"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Stay is the validated, parsed portion of a booking request.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
	Nights   int
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// Validate checks the createBooking contract: well-formed dates with
// check-out strictly after check-in, a positive guest count (direct or
// adults+children), and a guest email. It returns the parsed stay so the
// service never re-parses request strings.
func (v *BookingValidator) Validate(req *model.BookingRequest) (*Stay, error) {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return nil, v.translateValidationErrors(validationErrs)
		}
		return nil, err
	}

	checkIn, err := time.ParseInLocation(dateLayout, req.CheckIn, time.UTC)
	if err != nil {
		return nil, ValidationErrors{{Field: "CheckIn", Message: "check_in must be a YYYY-MM-DD date"}}
	}
	checkOut, err := time.ParseInLocation(dateLayout, req.CheckOut, time.UTC)
	if err != nil {
		return nil, ValidationErrors{{Field: "CheckOut", Message: "check_out must be a YYYY-MM-DD date"}}
	}
	if !checkOut.After(checkIn) {
		return nil, ValidationErrors{{Field: "CheckOut", Message: "check_out must be after check_in"}}
	}

	guests := resolveGuests(req)
	if guests <= 0 {
		return nil, ValidationErrors{{Field: "Guests", Message: "guest count must be positive"}}
	}

	return &Stay{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   guests,
		Nights:   int(checkOut.Sub(checkIn).Hours() / 24),
	}, nil
}

// resolveGuests prefers the direct count; otherwise adults+children.
func resolveGuests(req *model.BookingRequest) int {
	if req.Guests != nil {
		return *req.Guests
	}
	guests := 0
	if req.Adults != nil {
		guests += *req.Adults
	}
	if req.Children != nil {
		guests += *req.Children
	}
	return guests
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "datetime":
			message = fmt.Sprintf("%s must be a YYYY-MM-DD date", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
