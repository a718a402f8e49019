package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatingDistribution(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var d RatingDistribution

		assert.Zero(t, d.Total())
		assert.Zero(t, d.Mean())
		assert.Zero(t, d.SatisfactionRate())
	})

	t.Run("single five and four and three", func(t *testing.T) {
		var d RatingDistribution
		d[5] = 1
		d[4] = 1
		d[3] = 1

		assert.Equal(t, int64(3), d.Total())
		assert.InDelta(t, 4.0, d.Mean(), 0.0001)
		assert.InDelta(t, 66.7, d.SatisfactionRate(), 0.0001)
	})

	t.Run("all satisfied", func(t *testing.T) {
		var d RatingDistribution
		d[4] = 2
		d[5] = 3

		assert.Equal(t, int64(5), d.Total())
		assert.InDelta(t, 4.6, d.Mean(), 0.0001)
		assert.InDelta(t, 100.0, d.SatisfactionRate(), 0.0001)
	})

	t.Run("none satisfied", func(t *testing.T) {
		var d RatingDistribution
		d[1] = 2
		d[2] = 1
		d[3] = 1

		assert.Zero(t, d.SatisfactionRate())
		assert.InDelta(t, 1.75, d.Mean(), 0.0001)
	})
}

func TestAttendanceRate(t *testing.T) {
	assert.Zero(t, AttendanceRate(0, 0))
	assert.Zero(t, AttendanceRate(5, 0))
	assert.InDelta(t, 50.0, AttendanceRate(1, 2), 0.0001)
	assert.InDelta(t, 66.7, AttendanceRate(2, 3), 0.0001)
	assert.InDelta(t, 100.0, AttendanceRate(3, 3), 0.0001)
}

func TestAttendanceDuration(t *testing.T) {
	a := Attendance{}
	assert.Zero(t, a.Duration())
}
