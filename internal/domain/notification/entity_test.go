package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSettingsApply(t *testing.T) {
	s := NewSettings("t")
	require.Equal(t, time.Hour, s.ReminderLead())

	tests := []struct {
		name    string
		emailOn bool
		email   string
		tgOn    bool
		chatID  string
		minutes int
		wantErr error
	}{
		{"all off", false, "", false, "", 30, nil},
		{"email without address", true, "", false, "", 60, ErrMissingEmail},
		{"malformed email", false, "x@", false, "", 60, ErrInvalidEmail},
		{"telegram without chat", false, "", true, " ", 60, ErrMissingChatID},
		{"negative lead", false, "", false, "", -1, ErrInvalidLeadTime},
		{"lead over a week", false, "", false, "", 7*24*60 + 1, ErrInvalidLeadTime},
		{"complete", true, "dono@example.com", true, "123456", 120, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Apply(tt.emailOn, tt.email, tt.tgOn, tt.chatID, false, tt.minutes)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.minutes, s.ReminderMinutesBefore)
		})
	}
}
