package domain

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput wraps all input range violations so callers can map them
// to a 400 response without inspecting validator internals.
var ErrInvalidInput = errors.New("invalid prediction input")

// validate is shared and safe for concurrent use per validator docs.
var validate = validator.New(validator.WithRequiredStructEnabled())

// PredictionInput holds the raw user-supplied weather and temporal values for
// a single prediction request. It is constructed fresh per request and has no
// lifecycle beyond one encode→predict→categorize cycle.
type PredictionInput struct {
	Hour        int     `json:"hour" validate:"gte=0,lte=23"`
	Month       int     `json:"month" validate:"gte=1,lte=12"`
	Temperature float64 `json:"temperature" validate:"gte=-20,lte=45"` // °C
	Pressure    float64 `json:"pressure" validate:"gte=980,lte=1040"`  // hPa
	WindSpeed   float64 `json:"wind_speed" validate:"gte=0,lte=100"`   // cumulated
	DewPoint    float64 `json:"dew_point" validate:"gte=-20,lte=30"`   // °C
	IsWeekend   bool    `json:"is_weekend"`
	PM25Lag24h  float64 `json:"pm25_lag_24h" validate:"gte=0,lte=500"`  // µg/m³
	PM25Lag168h float64 `json:"pm25_lag_168h" validate:"gte=0,lte=500"` // µg/m³
}

// Validate checks every field against its documented range. The returned
// error wraps ErrInvalidInput and names the first offending field.
func (in PredictionInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return fmt.Errorf("%w: field %s=%v violates %s=%s", ErrInvalidInput, f.Field(), f.Value(), f.Tag(), f.Param())
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}
