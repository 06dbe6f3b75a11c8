package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictionInput_Validate(t *testing.T) {
	t.Run("reference input passes", func(t *testing.T) {
		require.NoError(t, validInput().Validate())
	})

	t.Run("boundary values pass", func(t *testing.T) {
		low := PredictionInput{Hour: 0, Month: 1, Temperature: -20, Pressure: 980, WindSpeed: 0, DewPoint: -20}
		high := PredictionInput{Hour: 23, Month: 12, Temperature: 45, Pressure: 1040, WindSpeed: 100, DewPoint: 30, IsWeekend: true, PM25Lag24h: 500, PM25Lag168h: 500}

		assert.NoError(t, low.Validate())
		assert.NoError(t, high.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*PredictionInput)
	}{
		{"hour above range", func(in *PredictionInput) { in.Hour = 24 }},
		{"hour negative", func(in *PredictionInput) { in.Hour = -1 }},
		{"month zero", func(in *PredictionInput) { in.Month = 0 }},
		{"month above range", func(in *PredictionInput) { in.Month = 13 }},
		{"temperature too cold", func(in *PredictionInput) { in.Temperature = -20.5 }},
		{"temperature too hot", func(in *PredictionInput) { in.Temperature = 45.5 }},
		{"pressure too low", func(in *PredictionInput) { in.Pressure = 979 }},
		{"pressure too high", func(in *PredictionInput) { in.Pressure = 1041 }},
		{"wind negative", func(in *PredictionInput) { in.WindSpeed = -0.1 }},
		{"wind above range", func(in *PredictionInput) { in.WindSpeed = 100.1 }},
		{"dew point too low", func(in *PredictionInput) { in.DewPoint = -21 }},
		{"dew point too high", func(in *PredictionInput) { in.DewPoint = 31 }},
		{"lag 24h negative", func(in *PredictionInput) { in.PM25Lag24h = -1 }},
		{"lag 24h above range", func(in *PredictionInput) { in.PM25Lag24h = 501 }},
		{"lag 168h above range", func(in *PredictionInput) { in.PM25Lag168h = 500.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := in.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}
