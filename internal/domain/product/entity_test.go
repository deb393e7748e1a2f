package product

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	p, err := NewProduct("t", "restaurant", " Lasanha ", "pratos", dec("39.90"), decimal.Zero, decimal.Zero, "un")
	require.NoError(t, err)
	require.Equal(t, "Lasanha", p.Name)
	require.True(t, p.Available)
	require.False(t, p.IsComposite())

	_, err = NewProduct("t", "restaurant", "", "pratos", dec("1"), decimal.Zero, decimal.Zero, "un")
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewProduct("t", "restaurant", "X", "pratos", dec("-1"), decimal.Zero, decimal.Zero, "un")
	require.ErrorIs(t, err, ErrInvalidPrice)

	_, err = NewProduct("t", "restaurant", "X", "pratos", dec("1"), dec("-1"), decimal.Zero, "un")
	require.ErrorIs(t, err, ErrInvalidStock)
}

func TestProductFlags(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	made := now.AddDate(0, -1, 0)
	expiry := now.AddDate(0, 0, -1)

	p, err := NewProduct("t", "pharmacy", "Dipirona", "medicamentos", dec("9"), dec("2"), dec("5"), "cx")
	require.NoError(t, err)
	require.True(t, p.IsLowStock())

	require.NoError(t, p.SetPerishable(&made, &expiry))
	require.True(t, p.IsExpired(now))
	require.ErrorIs(t, p.CanBeSold(now), ErrProductUnavailable)

	require.ErrorIs(t, p.SetPerishable(&expiry, &made), ErrInvalidExpiry)

	fresh, err := NewProduct("t", "pharmacy", "Soro", "medicamentos", dec("9"), dec("20"), dec("5"), "un")
	require.NoError(t, err)
	require.False(t, fresh.IsLowStock())
	require.NoError(t, fresh.CanBeSold(now))

	fresh.Available = false
	require.ErrorIs(t, fresh.CanBeSold(now), ErrProductUnavailable)
}

func TestSetIngredients(t *testing.T) {
	p, err := NewProduct("t", "restaurant", "Bolo", "sobremesas", dec("20"), decimal.Zero, decimal.Zero, "un")
	require.NoError(t, err)

	require.ErrorIs(t, p.SetIngredients([]Ingredient{{ProductID: "x", UsedQuantity: decimal.Zero}}), ErrInvalidIngredient)
	require.ErrorIs(t, p.SetIngredients([]Ingredient{{ProductID: p.ID, UsedQuantity: dec("1")}}), ErrSelfIngredient)

	require.NoError(t, p.SetIngredients([]Ingredient{{ProductID: "farinha", Name: "Farinha", UsedQuantity: dec("0.2"), Unit: "kg"}}))
	require.True(t, p.IsComposite())
}
