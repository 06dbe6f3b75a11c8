package kafka

import (
	"testing"
	"time"

	"github.com/airsight/pm25-forecast/internal/domain"
	"github.com/airsight/pm25-forecast/internal/predict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2026, 1, 14, 9, 30, 0, 0, time.UTC)
	rec := predict.AuditRecord{
		Input: domain.PredictionInput{
			Hour:        12,
			Month:       6,
			Temperature: 20,
			Pressure:    1013,
			WindSpeed:   5,
			DewPoint:    10,
			PM25Lag24h:  80,
			PM25Lag168h: 75,
		},
		PM25:         42.7,
		Category:     "Unhealthy for Sensitive Groups",
		Severity:     2,
		ModelName:    "best_tuned_model",
		ModelVersion: "v1",
		GeneratedAt:  now,
	}

	msg, err := serializeToMessage(rec)
	require.NoError(t, err)

	assert.Equal(t, []byte(now.Format(time.RFC3339Nano)), msg.Key)
	assert.Contains(t, string(msg.Value), `"pm25":42.7`)
	assert.Contains(t, string(msg.Value), `"model_name":"best_tuned_model"`)
	assert.Contains(t, string(msg.Value), `"hour":12`)

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "category", msg.Headers[0].Key)
	assert.Equal(t, []byte("Unhealthy for Sensitive Groups"), msg.Headers[0].Value)
	assert.Equal(t, "generated_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}
