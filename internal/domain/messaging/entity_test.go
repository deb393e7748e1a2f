package messaging

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewOutbound(t *testing.T) {
	m, err := NewOutbound("t", "c1", "u1", ChannelWhatsApp, " Olá! Seu pet está pronto. ")
	require.NoError(t, err)
	require.Equal(t, "Olá! Seu pet está pronto.", m.Body)
	require.Equal(t, StatusQueued, m.Status)
	require.True(t, m.NeedsDelivery())

	m.MarkSent("SM123")
	require.Equal(t, StatusSent, m.Status)
	require.False(t, m.NeedsDelivery())

	note, err := NewOutbound("t", "c1", "u1", ChannelInternal, "cliente prefere ligação")
	require.NoError(t, err)
	require.False(t, note.NeedsDelivery())

	_, err = NewOutbound("t", "c1", "u1", Channel("email"), "oi")
	require.ErrorIs(t, err, ErrInvalidChannel)

	_, err = NewOutbound("t", "", "u1", ChannelSMS, "oi")
	require.ErrorIs(t, err, ErrEmptyClient)

	_, err = NewOutbound("t", "c1", "u1", ChannelSMS, "  ")
	require.ErrorIs(t, err, ErrEmptyBody)
}

func TestNewInbound(t *testing.T) {
	m, err := NewInbound("t", "c1", ChannelWhatsApp, "Qual o horário?", "SM9")
	require.NoError(t, err)
	require.Equal(t, DirectionInbound, m.Direction)
	require.Equal(t, StatusReceived, m.Status)
	require.False(t, m.NeedsDelivery())

	m.MarkFailed("x")
	require.Equal(t, StatusFailed, m.Status)
}
