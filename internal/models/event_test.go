package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewEvent_DerivedFields(t *testing.T) {
	date := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	event := NewEvent("Gala", date, nil)

	assert.Equal(t, "March", event.Month)
	assert.Equal(t, 2024, event.Year)
	assert.False(t, event.ID.IsZero())
	assert.False(t, event.CreatedAt.IsZero())
	assert.NotNil(t, event.Images)
	assert.Empty(t, event.Images)
}

func TestNewEvent_MonthNames(t *testing.T) {
	cases := map[time.Month]string{
		time.January:  "January",
		time.July:     "July",
		time.December: "December",
	}
	for month, want := range cases {
		event := NewEvent("x", time.Date(2023, month, 1, 0, 0, 0, 0, time.UTC), nil)
		assert.Equal(t, want, event.Month)
		assert.Equal(t, 2023, event.Year)
	}
}
