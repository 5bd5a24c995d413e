package services

import (
	"time"

	"helpdesk-app/internal/models"
)

const (
	bookingDateLayout = "2006-01-02"
	bookingTimeLayout = "03:04 PM"
)

// TimeSlots is the fixed half-hour booking grid. Appointment times must be
// one of these labels exactly.
var TimeSlots = []string{
	"09:00 AM",
	"09:30 AM",
	"10:00 AM",
	"10:30 AM",
	"11:00 AM",
	"11:30 AM",
	"12:00 PM",
	"12:30 PM",
	"01:00 PM",
	"01:30 PM",
	"02:00 PM",
	"02:30 PM",
	"03:00 PM",
	"03:30 PM",
	"04:00 PM",
	"04:30 PM",
}

// ValidateSlot runs the booking checks that need no store access, in order:
// date format, time format, past date, past time (same day), slot membership.
// The first failing check wins. Slot occupancy is checked separately by the
// appointment service.
func ValidateSlot(date, slot string, now time.Time) error {
	day, err := time.ParseInLocation(bookingDateLayout, date, now.Location())
	if err != nil {
		return models.ErrInvalidDate
	}

	t, err := time.Parse(bookingTimeLayout, slot)
	if err != nil {
		return models.ErrInvalidTime
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return models.ErrPastDate
	}
	if day.Equal(today) {
		slotMinutes := t.Hour()*60 + t.Minute()
		nowMinutes := now.Hour()*60 + now.Minute()
		if slotMinutes < nowMinutes {
			return models.ErrPastTime
		}
	}

	if !IsTimeSlot(slot) {
		return models.ErrInvalidSlot
	}
	return nil
}

func IsTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}
