package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/webpkbmannajah-sudo/e-course-pkbm-annajah/internal/model"
)

func scoresWith(percentages ...float64) []model.Score {
	out := make([]model.Score, len(percentages))
	for i, p := range percentages {
		out[i] = model.Score{Percentage: p}
	}
	return out
}

func TestBandDistribution(t *testing.T) {
	bands := bandDistribution(scoresWith(0, 5, 9.99, 10, 33.33, 89.9, 90, 99.99, 100))

	assert.Len(t, bands, 10)
	assert.Equal(t, "0-9", bands[0].Label)
	assert.Equal(t, "90-100", bands[9].Label)

	assert.Equal(t, 3, bands[0].Count)
	assert.Equal(t, 1, bands[1].Count)
	assert.Equal(t, 1, bands[3].Count)
	assert.Equal(t, 1, bands[8].Count)
	// 100 belongs to the top band, not an eleventh
	assert.Equal(t, 3, bands[9].Count)
}

func TestBandDistribution_Empty(t *testing.T) {
	bands := bandDistribution(nil)

	assert.Len(t, bands, 10)
	for _, b := range bands {
		assert.Zero(t, b.Count)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, round2(100.0/3))
	assert.Equal(t, 66.67, round2(200.0/3))
	assert.Equal(t, 0.0, round2(0))
	assert.Equal(t, 100.0, round2(100))
}
