package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/K-NANOG/OS/pkg/clock"
)

func TestRealClock(t *testing.T) {
	c := &clock.RealClock{}
	before := time.Now()
	now := c.Now()
	assert.False(t, now.Before(before))
}

func TestFakeClock(t *testing.T) {
	start := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	c := clock.NewFakeClock(start)

	assert.Equal(t, start, c.Now())

	c.Advance(time.Hour)
	assert.Equal(t, start.Add(time.Hour), c.Now())
}
