package validation

import (
	"net/http"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator plugs go-playground/validator into echo's c.Validate.
type RequestValidator struct {
	validate *validatorv10.Validate
}

func New() *RequestValidator {
	return &RequestValidator{validate: validatorv10.New()}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	if err := rv.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	if ve, ok := err.(validatorv10.ValidationErrors); ok && len(ve) > 0 {
		fe := ve[0]
		return "invalid " + fe.Field()
	}
	return "invalid request"
}
