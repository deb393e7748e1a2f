package finance

import (
	"github.com/shopspring/decimal"
)

// Summary consolida os lançamentos de um período
type Summary struct {
	IncomeTotal   decimal.Decimal `json:"income_total"`
	ExpenseTotal  decimal.Decimal `json:"expense_total"`
	IncomePaid    decimal.Decimal `json:"income_paid"`
	ExpensePaid   decimal.Decimal `json:"expense_paid"`
	Balance       decimal.Decimal `json:"balance"`
	OverdueAmount decimal.Decimal `json:"overdue_amount"`
	CountByStatus map[Status]int  `json:"count_by_status"`
}

// Summarize soma os lançamentos, que já devem estar com o status resolvido
func Summarize(entries []*Entry) Summary {
	s := Summary{
		IncomeTotal:   decimal.Zero,
		ExpenseTotal:  decimal.Zero,
		IncomePaid:    decimal.Zero,
		ExpensePaid:   decimal.Zero,
		OverdueAmount: decimal.Zero,
		CountByStatus: map[Status]int{
			StatusPending: 0,
			StatusNearDue: 0,
			StatusOverdue: 0,
			StatusPaid:    0,
		},
	}

	for _, e := range entries {
		s.CountByStatus[e.Status]++
		switch e.Kind {
		case KindIncome:
			s.IncomeTotal = s.IncomeTotal.Add(e.Amount)
			if e.IsPaid() {
				s.IncomePaid = s.IncomePaid.Add(e.Amount)
			}
		case KindExpense:
			s.ExpenseTotal = s.ExpenseTotal.Add(e.Amount)
			if e.IsPaid() {
				s.ExpensePaid = s.ExpensePaid.Add(e.Amount)
			}
		}
		if e.Status == StatusOverdue {
			s.OverdueAmount = s.OverdueAmount.Add(e.Amount)
		}
	}

	s.Balance = s.IncomePaid.Sub(s.ExpensePaid)
	return s
}
