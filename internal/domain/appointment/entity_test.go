package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var start = time.Date(2025, 2, 3, 14, 0, 0, 0, time.UTC)

func TestNewAppointmentSchedulesReminder(t *testing.T) {
	a, err := NewAppointment("t", "pet_clinic", "c1", "Ana", "Vacina", start, start.Add(30*time.Minute))
	require.NoError(t, err)
	require.Equal(t, StatusScheduled, a.Status)
	require.True(t, a.ReminderAt.Equal(start.Add(-time.Hour)))
}

func TestNewAppointmentValidation(t *testing.T) {
	tests := []struct {
		name    string
		client  string
		title   string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{"missing title", "Ana", "", start, time.Time{}, ErrEmptyTitle},
		{"missing client", "", "Banho", start, time.Time{}, ErrEmptyClientName},
		{"missing start", "Ana", "Banho", time.Time{}, time.Time{}, ErrEmptyStartTime},
		{"end before start", "Ana", "Banho", start, start.Add(-time.Minute), ErrInvalidEndTime},
		{"open end", "Ana", "Banho", start, time.Time{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAppointment("t", "pet_clinic", "", tt.client, tt.title, tt.start, tt.end)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRescheduleMovesReminder(t *testing.T) {
	a, err := NewAppointment("t", "pet_clinic", "", "Ana", "Banho", start, time.Time{})
	require.NoError(t, err)
	a.MarkReminderSent(start.Add(-time.Hour))

	next := start.AddDate(0, 0, 1)
	require.NoError(t, a.Reschedule("Banho e tosa", "Ana", "", next, next.Add(time.Hour), StatusConfirmed))
	require.True(t, a.ReminderAt.Equal(next.Add(-time.Hour)))
	require.Nil(t, a.ReminderSentAt)
	require.Equal(t, StatusConfirmed, a.Status)

	require.ErrorIs(t, a.Reschedule("X", "Ana", "", next, next, ""), ErrInvalidEndTime)
	require.Equal(t, "Banho e tosa", a.Title)

	require.ErrorIs(t, a.Reschedule("X", "Ana", "", next, time.Time{}, Status("lost")), ErrInvalidStatus)
}

func TestNeedsReminder(t *testing.T) {
	a, err := NewAppointment("t", "pet_clinic", "", "Ana", "Banho", start, time.Time{})
	require.NoError(t, err)

	require.False(t, a.NeedsReminder(start.Add(-2*time.Hour)))
	require.True(t, a.NeedsReminder(start.Add(-time.Hour)))
	require.True(t, a.NeedsReminder(start.Add(-time.Minute)))
	require.False(t, a.NeedsReminder(start))

	a.MarkReminderSent(start.Add(-50 * time.Minute))
	require.False(t, a.NeedsReminder(start.Add(-time.Minute)))
}
