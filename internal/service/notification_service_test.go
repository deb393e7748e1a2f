package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/notification"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

func storedSettings(t *testing.T, s storage.Storage, telegram bool) *notification.Settings {
	t.Helper()
	st := notification.NewSettings(tenantID)
	chat := ""
	if telegram {
		chat = "-100200"
	}
	require.NoError(t, st.Apply(false, "", telegram, chat, false, 30))
	require.NoError(t, s.Repositories().NotificationSettings.Create(context.Background(), st))
	return st
}

func TestSendTest(t *testing.T) {
	s := newStore(t)
	notifier := &fakeNotifier{}
	svc := NewNotificationService(s, notifier, logger.Nop())
	st := storedSettings(t, s, true)

	got, err := svc.SendTest(context.Background(), tenantID, st.ID)
	require.NoError(t, err)
	require.Equal(t, st.ID, got.ID)
	require.Equal(t, []string{"-100200"}, notifier.chats)
}

func TestSendTestRefusals(t *testing.T) {
	ctx := context.Background()

	t.Run("telegram disabled", func(t *testing.T) {
		s := newStore(t)
		st := storedSettings(t, s, false)
		_, err := NewNotificationService(s, &fakeNotifier{}, logger.Nop()).SendTest(ctx, tenantID, st.ID)
		require.ErrorIs(t, err, notification.ErrTelegramDisabled)
	})

	t.Run("bot not configured", func(t *testing.T) {
		s := newStore(t)
		st := storedSettings(t, s, true)
		_, err := NewNotificationService(s, nil, logger.Nop()).SendTest(ctx, tenantID, st.ID)
		require.ErrorIs(t, err, ErrTelegramUnavailable)
		require.ErrorIs(t, err, notification.ErrTelegramDisabled)
	})

	t.Run("provider failure", func(t *testing.T) {
		s := newStore(t)
		st := storedSettings(t, s, true)
		_, err := NewNotificationService(s, &fakeNotifier{err: errors.New("Forbidden: bot was kicked")}, logger.Nop()).SendTest(ctx, tenantID, st.ID)
		require.ErrorIs(t, err, ErrNotificationFailed)
		require.ErrorIs(t, err, shared.ErrBusinessRule)
		require.Contains(t, err.Error(), "bot was kicked")
	})

	t.Run("unknown settings", func(t *testing.T) {
		_, err := NewNotificationService(newStore(t), &fakeNotifier{}, logger.Nop()).SendTest(ctx, tenantID, "nope")
		require.ErrorIs(t, err, notification.ErrSettingsNotFound)
	})
}
