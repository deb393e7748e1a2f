package finance

import (
	"errors"
	"testing"
	"time"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var today = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

func newExpense(t *testing.T, due time.Time) *Entry {
	t.Helper()
	e, err := NewEntry("tenant-1", "restaurant", KindExpense, decimal.NewFromInt(100), "Aluguel", due, today)
	require.NoError(t, err)
	return e
}

func TestNewEntry(t *testing.T) {
	tests := []struct {
		name        string
		kind        Kind
		amount      decimal.Decimal
		description string
		due         time.Time
		wantErr     error
	}{
		{"valid", KindIncome, decimal.NewFromInt(10), "Venda", today, nil},
		{"invalid kind", Kind("transfer"), decimal.NewFromInt(10), "Venda", today, ErrInvalidKind},
		{"zero amount", KindIncome, decimal.Zero, "Venda", today, ErrInvalidAmount},
		{"negative amount", KindExpense, decimal.NewFromInt(-1), "Venda", today, ErrInvalidAmount},
		{"blank description", KindExpense, decimal.NewFromInt(1), "   ", today, ErrEmptyDescription},
		{"missing due date", KindExpense, decimal.NewFromInt(1), "Luz", time.Time{}, ErrEmptyDueDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEntry("tenant-1", "retail", tt.kind, tt.amount, tt.description, tt.due, today)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.ErrorIs(t, err, shared.ErrValidation)
				require.Nil(t, e)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, e.ID)
			require.Equal(t, StatusOverdue, e.Status)
		})
	}
}

func TestResolveStatus(t *testing.T) {
	tests := []struct {
		name string
		due  time.Time
		now  time.Time
		want Status
	}{
		{"far in the future", today.AddDate(0, 0, 30), today, StatusPending},
		{"just outside the window", today.Add(NearDueWindow + time.Second), today, StatusPending},
		{"exactly seven days out", today.Add(NearDueWindow), today, StatusNearDue},
		{"three days out", today.AddDate(0, 0, 3), today, StatusNearDue},
		{"due exactly now", today, today, StatusOverdue},
		{"due yesterday", today.AddDate(0, 0, -1), today, StatusOverdue},
		{"due today, later in the day", today, today.Add(10 * time.Hour), StatusOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Entry{DueDate: tt.due, Status: StatusPending}
			require.Equal(t, tt.want, ResolveStatus(e, tt.now))
		})
	}
}

func TestEntryLifecycleScenario(t *testing.T) {
	e := newExpense(t, today.AddDate(0, 0, 3))
	require.Equal(t, StatusNearDue, e.Status)

	e.Refresh(e.DueDate.AddDate(0, 0, 1))
	require.Equal(t, StatusOverdue, e.Status)

	require.NoError(t, e.MarkPaid(today, "pix", "", today))
	require.Equal(t, StatusPaid, e.Status)
	require.Equal(t, "pix", e.PaymentMethod)

	e.Refresh(today.AddDate(1, 0, 0))
	require.Equal(t, StatusPaid, e.Status)
}

func TestMarkPaid(t *testing.T) {
	t.Run("requires payment date", func(t *testing.T) {
		e := newExpense(t, today)
		require.ErrorIs(t, e.MarkPaid(time.Time{}, "pix", "", today), ErrEmptyPaymentDate)
		require.Equal(t, StatusOverdue, e.Status)
	})

	t.Run("requires payment method", func(t *testing.T) {
		e := newExpense(t, today)
		require.ErrorIs(t, e.MarkPaid(today, " ", "", today), ErrEmptyPaymentMethod)
		require.Nil(t, e.PaymentDate)
	})

	t.Run("paying twice replaces payment data", func(t *testing.T) {
		e := newExpense(t, today)
		require.NoError(t, e.MarkPaid(today, "pix", "comprovante-1", today))
		require.NoError(t, e.MarkPaid(today.AddDate(0, 0, 1), "boleto", "", today))
		require.Equal(t, StatusPaid, e.Status)
		require.Equal(t, "boleto", e.PaymentMethod)
		require.Empty(t, e.PaymentProof)
		require.True(t, e.PaymentDate.Equal(today.AddDate(0, 0, 1)))
	})

	t.Run("stamps the given instant", func(t *testing.T) {
		e := newExpense(t, today)
		at := today.Add(15 * time.Hour)
		require.NoError(t, e.MarkPaid(today, "pix", "", at))
		require.Equal(t, at, e.UpdatedAt)
	})
}

func TestRevertPayment(t *testing.T) {
	t.Run("expense returns to date derived status", func(t *testing.T) {
		e := newExpense(t, today.AddDate(0, 0, 20))
		require.NoError(t, e.MarkPaid(today, "dinheiro", "", today))
		require.NoError(t, e.RevertPayment(today))
		require.Equal(t, StatusPending, e.Status)
		require.Nil(t, e.PaymentDate)
		require.Empty(t, e.PaymentMethod)
	})

	t.Run("income cannot be reverted", func(t *testing.T) {
		e, err := NewEntry("tenant-1", "retail", KindIncome, decimal.NewFromInt(50), "Serviço", today, today)
		require.NoError(t, err)
		require.NoError(t, e.MarkPaid(today, "pix", "", today))
		err = e.RevertPayment(today)
		require.ErrorIs(t, err, ErrRevertIncome)
		require.ErrorIs(t, err, shared.ErrBusinessRule)
		require.Equal(t, StatusPaid, e.Status)
	})

	t.Run("unpaid entry", func(t *testing.T) {
		e := newExpense(t, today)
		require.ErrorIs(t, e.RevertPayment(today), ErrNotPaid)
	})
}

func TestUpdateKeepsPaidStatus(t *testing.T) {
	e := newExpense(t, today.AddDate(0, 0, 1))
	require.NoError(t, e.MarkPaid(today, "pix", "", today))
	require.NoError(t, e.Update(KindExpense, decimal.NewFromInt(120), "Aluguel reajustado", "", today.AddDate(0, 0, -5), today))
	require.Equal(t, StatusPaid, e.Status)
	require.True(t, e.Amount.Equal(decimal.NewFromInt(120)))

	err := e.Update(KindExpense, decimal.Zero, "Aluguel", "", today, today)
	require.True(t, errors.Is(err, ErrInvalidAmount))
	require.Equal(t, "Aluguel reajustado", e.Description)
}

func statusRank(s Status) int {
	switch s {
	case StatusPending:
		return 0
	case StatusNearDue:
		return 1
	case StatusOverdue:
		return 2
	}
	return -1
}

func TestResolveStatusIsMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		dueOffset := rapid.IntRange(-2000, 2000).Draw(t, "due_offset_hours")
		first := rapid.IntRange(-2000, 2000).Draw(t, "first_hours")
		step := rapid.IntRange(0, 2000).Draw(t, "step_hours")

		e := &Entry{DueDate: today.Add(time.Duration(dueOffset) * time.Hour), Status: StatusPending}
		t1 := today.Add(time.Duration(first) * time.Hour)
		t2 := t1.Add(time.Duration(step) * time.Hour)

		if statusRank(ResolveStatus(e, t1)) > statusRank(ResolveStatus(e, t2)) {
			t.Fatalf("status went backwards: %s at %s, %s at %s", ResolveStatus(e, t1), t1, ResolveStatus(e, t2), t2)
		}
	})
}

func TestPaidStatusIsSticky(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		dueOffset := rapid.IntRange(-500, 500).Draw(t, "due_offset_days")
		later := rapid.IntRange(-1000, 1000).Draw(t, "now_offset_days")

		e := &Entry{Kind: KindExpense, DueDate: today.AddDate(0, 0, dueOffset), Status: StatusPending}
		if err := e.MarkPaid(today, "pix", "", today); err != nil {
			t.Fatal(err)
		}
		if got := ResolveStatus(e, today.AddDate(0, 0, later)); got != StatusPaid {
			t.Fatalf("expected paid, got %s", got)
		}
	})
}

func TestPayThenRevertRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		dueOffset := rapid.IntRange(-720, 720).Draw(t, "due_offset_hours")
		nowOffset := rapid.IntRange(-720, 720).Draw(t, "now_offset_hours")
		now := today.Add(time.Duration(nowOffset) * time.Hour)

		e := &Entry{Kind: KindExpense, DueDate: today.Add(time.Duration(dueOffset) * time.Hour), Status: StatusPending}
		want := ResolveStatus(e, now)

		if err := e.MarkPaid(today, "pix", "", today); err != nil {
			t.Fatal(err)
		}
		if err := e.RevertPayment(now); err != nil {
			t.Fatal(err)
		}
		if e.Status != want {
			t.Fatalf("expected %s after revert, got %s", want, e.Status)
		}
	})
}
