package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewInstallmentPlan(t *testing.T) {
	t.Run("splits amount and keeps remainder on first", func(t *testing.T) {
		entries, err := NewInstallmentPlan("tenant-1", "retail", KindExpense, decimal.NewFromInt(100), "Notebook", today, 3, today)
		require.NoError(t, err)
		require.Len(t, entries, 3)

		require.Equal(t, "33.34", entries[0].Amount.StringFixed(2))
		require.Equal(t, "33.33", entries[1].Amount.StringFixed(2))
		require.Equal(t, "33.33", entries[2].Amount.StringFixed(2))

		total := decimal.Zero
		for i, e := range entries {
			total = total.Add(e.Amount)
			require.True(t, e.IsInstallment)
			require.Equal(t, i+1, e.CurrentInstallment)
			require.Equal(t, 3, e.TotalInstallments)
			require.True(t, e.DueDate.Equal(today.AddDate(0, i, 0)))
		}
		require.True(t, total.Equal(decimal.NewFromInt(100)))
		require.Equal(t, "Notebook (2/3)", entries[1].Description)
	})

	t.Run("rejects zero installments", func(t *testing.T) {
		_, err := NewInstallmentPlan("tenant-1", "retail", KindExpense, decimal.NewFromInt(100), "Notebook", today, 0, today)
		require.ErrorIs(t, err, ErrInvalidInstallment)
	})

	t.Run("caps the number of installments", func(t *testing.T) {
		entries, err := NewInstallmentPlan("tenant-1", "retail", KindExpense, decimal.NewFromInt(36000), "Financiamento", today, MaxInstallments, today)
		require.NoError(t, err)
		require.Len(t, entries, MaxInstallments)
		require.Equal(t, MaxInstallments, entries[MaxInstallments-1].CurrentInstallment)

		_, err = NewInstallmentPlan("tenant-1", "retail", KindExpense, decimal.NewFromInt(10_000_000), "Financiamento", today, MaxInstallments+1, today)
		require.ErrorIs(t, err, ErrInvalidInstallment)

		var e Entry
		require.ErrorIs(t, e.SetInstallment(1, MaxInstallments+1), ErrInvalidInstallment)
	})

	t.Run("rejects parts smaller than a cent", func(t *testing.T) {
		_, err := NewInstallmentPlan("tenant-1", "retail", KindExpense, decimal.RequireFromString("0.02"), "Taxa", today, 5, today)
		require.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestSummarize(t *testing.T) {
	income, err := NewEntry("t", "retail", KindIncome, decimal.NewFromInt(300), "Venda", today.AddDate(0, 0, 30), today)
	require.NoError(t, err)
	require.NoError(t, income.MarkPaid(today, "pix", "", today))

	rent, err := NewEntry("t", "retail", KindExpense, decimal.NewFromInt(100), "Aluguel", today.AddDate(0, 0, -2), today)
	require.NoError(t, err)

	power, err := NewEntry("t", "retail", KindExpense, decimal.NewFromInt(50), "Luz", today.AddDate(0, 0, 2), today)
	require.NoError(t, err)
	require.NoError(t, power.MarkPaid(today, "boleto", "", today))

	s := Summarize([]*Entry{income, rent, power})
	require.True(t, s.IncomeTotal.Equal(decimal.NewFromInt(300)))
	require.True(t, s.ExpenseTotal.Equal(decimal.NewFromInt(150)))
	require.True(t, s.Balance.Equal(decimal.NewFromInt(250)))
	require.True(t, s.OverdueAmount.Equal(decimal.NewFromInt(100)))
	require.Equal(t, 2, s.CountByStatus[StatusPaid])
	require.Equal(t, 1, s.CountByStatus[StatusOverdue])
}
