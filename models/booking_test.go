package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeEndTime(t *testing.T) {
	end, err := ComputeEndTime("14:00", 2)
	assert.NoError(t, err)
	assert.Equal(t, "16:00", end)

	end, err = ComputeEndTime("10:30", 1.5)
	assert.NoError(t, err)
	assert.Equal(t, "12:00", end)
}

func TestComputeEndTime_WrapsMidnight(t *testing.T) {
	end, err := ComputeEndTime("23:00", 3)
	assert.NoError(t, err)
	assert.Equal(t, "02:00", end)
}

func TestComputeEndTime_InvalidStart(t *testing.T) {
	_, err := ComputeEndTime("2pm", 1)
	assert.Error(t, err)
}

func TestIsTerminal(t *testing.T) {
	for status, terminal := range map[string]bool{
		BookingStatusPending:    false,
		BookingStatusAccepted:   false,
		BookingStatusInProgress: false,
		BookingStatusCompleted:  true,
		BookingStatusCancelled:  true,
		BookingStatusDeclined:   true,
	} {
		b := &Booking{Status: status}
		assert.Equal(t, terminal, b.IsTerminal(), "status %s", status)
	}
}
