package finance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// NewInstallmentPlan divide total em count parcelas mensais a partir de firstDue.
// Os centavos que sobram da divisão ficam na primeira parcela.
func NewInstallmentPlan(
	tenantID, businessCategory string,
	kind Kind,
	total decimal.Decimal,
	description string,
	firstDue time.Time,
	count int,
	now time.Time,
) ([]*Entry, error) {
	if count < 1 || count > MaxInstallments {
		return nil, ErrInvalidInstallment
	}
	if !total.IsPositive() {
		return nil, ErrInvalidAmount
	}

	n := decimal.NewFromInt(int64(count))
	part := total.Div(n).Truncate(2)
	if !part.IsPositive() {
		return nil, ErrInvalidAmount
	}
	remainder := total.Sub(part.Mul(n))

	entries := make([]*Entry, 0, count)
	for i := 0; i < count; i++ {
		amount := part
		if i == 0 {
			amount = amount.Add(remainder)
		}
		e, err := NewEntry(
			tenantID,
			businessCategory,
			kind,
			amount,
			fmt.Sprintf("%s (%d/%d)", description, i+1, count),
			firstDue.AddDate(0, i, 0),
			now,
		)
		if err != nil {
			return nil, err
		}
		if err := e.SetInstallment(i+1, count); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
