package product

import (
	"errors"
	"testing"
	"time"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func stockItem(id, name, stock string) *Product {
	return &Product{ID: id, Name: name, Stock: dec(stock), Available: true}
}

func dish(ingredients ...Ingredient) *Product {
	return &Product{ID: "dish", Name: "Prato", Available: true, Ingredients: ingredients}
}

func TestSellCompositeShortIngredient(t *testing.T) {
	stock := map[string]*Product{"a": stockItem("a", "Farinha", "150")}
	d := dish(Ingredient{ProductID: "a", Name: "Farinha", UsedQuantity: dec("200"), Unit: "g"})

	_, err := SellComposite(d, 1, stock)
	require.ErrorIs(t, err, ErrInsufficientStock)
	require.ErrorIs(t, err, shared.ErrBusinessRule)

	var insufficient *InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	require.Len(t, insufficient.Shortages, 1)
	require.Equal(t, "a", insufficient.Shortages[0].ProductID)
	require.True(t, insufficient.Shortages[0].Required.Equal(dec("200")))
	require.True(t, insufficient.Shortages[0].Available.Equal(dec("150")))

	require.True(t, stock["a"].Stock.Equal(dec("150")))
}

func TestSellCompositeDeductsEveryIngredient(t *testing.T) {
	stock := map[string]*Product{
		"a": stockItem("a", "Farinha", "1000"),
		"b": stockItem("b", "Ovo", "12"),
	}
	d := dish(
		Ingredient{ProductID: "a", Name: "Farinha", UsedQuantity: dec("200")},
		Ingredient{ProductID: "b", Name: "Ovo", UsedQuantity: dec("2")},
	)

	deductions, err := SellComposite(d, 3, stock)
	require.NoError(t, err)
	require.Len(t, deductions, 2)
	require.True(t, stock["a"].Stock.Equal(dec("400")))
	require.True(t, stock["b"].Stock.Equal(dec("6")))
	require.True(t, deductions[1].Before.Equal(dec("12")))
	require.True(t, deductions[1].After.Equal(dec("6")))
}

func TestStockPlanReportsAllShortages(t *testing.T) {
	stock := map[string]*Product{
		"a": stockItem("a", "Farinha", "100"),
		"b": stockItem("b", "Ovo", "1"),
		"c": stockItem("c", "Sal", "50"),
	}
	d := dish(
		Ingredient{ProductID: "a", Name: "Farinha", UsedQuantity: dec("200")},
		Ingredient{ProductID: "b", Name: "Ovo", UsedQuantity: dec("2")},
		Ingredient{ProductID: "c", Name: "Sal", UsedQuantity: dec("1")},
		Ingredient{ProductID: "z", Name: "Fermento", UsedQuantity: dec("1")},
	)

	_, err := SellComposite(d, 1, stock)
	var insufficient *InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	require.Len(t, insufficient.Shortages, 3)
	require.Equal(t, []string{"Farinha", "Fermento", "Ovo"}, []string{
		insufficient.Shortages[0].Name, insufficient.Shortages[1].Name, insufficient.Shortages[2].Name,
	})
	require.True(t, stock["c"].Stock.Equal(dec("50")))
}

func TestStockPlanAggregatesLines(t *testing.T) {
	flour := stockItem("a", "Farinha", "400")
	cake := dish(Ingredient{ProductID: "a", Name: "Farinha", UsedQuantity: dec("200")})

	plan := NewStockPlan()
	require.NoError(t, plan.AddSale(cake, 1))
	require.NoError(t, plan.AddSale(flour, 1))
	require.NoError(t, plan.AddSale(cake, 1))

	err := plan.Check(map[string]*Product{"a": flour})
	var insufficient *InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	require.True(t, insufficient.Shortages[0].Required.Equal(dec("401")))
	require.Equal(t, []string{"a"}, plan.ProductIDs())
}

func TestSimpleProductConsumesOwnStock(t *testing.T) {
	p := stockItem("p", "Ração", "3")
	plan := NewStockPlan()
	require.NoError(t, plan.AddSale(p, 2))
	_, err := plan.Apply(map[string]*Product{"p": p})
	require.NoError(t, err)
	require.True(t, p.Stock.Equal(dec("1")))
}

func TestFailedCompositeSaleLeavesStockUntouched(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(t, "ingredients")
		qty := rapid.IntRange(1, 5).Draw(t, "quantity")

		stock := make(map[string]*Product, n)
		before := make(map[string]decimal.Decimal, n)
		ingredients := make([]Ingredient, 0, n)
		short := false
		for i := 0; i < n; i++ {
			id := string(rune('a' + i))
			have := rapid.IntRange(0, 1000).Draw(t, "stock_"+id)
			use := rapid.IntRange(1, 300).Draw(t, "use_"+id)
			if use*qty > have {
				short = true
			}
			stock[id] = &Product{ID: id, Name: id, Stock: decimal.NewFromInt(int64(have))}
			before[id] = stock[id].Stock
			ingredients = append(ingredients, Ingredient{ProductID: id, Name: id, UsedQuantity: decimal.NewFromInt(int64(use))})
		}

		_, err := SellComposite(dish(ingredients...), qty, stock)
		if short != (err != nil) {
			t.Fatalf("short=%v but err=%v", short, err)
		}
		for id, p := range stock {
			if err != nil && !p.Stock.Equal(before[id]) {
				t.Fatalf("stock of %s changed from %s to %s after failed sale", id, before[id], p.Stock)
			}
			if p.Stock.IsNegative() {
				t.Fatalf("negative stock for %s", id)
			}
		}
	})
}

func TestSellCompositeRejectsInvalidQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		stock    map[string]*Product
	}{
		{"negative with ingredient in stock", -3, map[string]*Product{"a": stockItem("a", "Farinha", "150")}},
		{"zero with ingredient missing", 0, map[string]*Product{}},
		{"zero with ingredient in stock", 0, map[string]*Product{"a": stockItem("a", "Farinha", "150")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := dish(Ingredient{ProductID: "a", Name: "Farinha", UsedQuantity: dec("200"), Unit: "g"})

			deductions, err := SellComposite(d, tt.quantity, tt.stock)
			require.ErrorIs(t, err, ErrInvalidQuantity)
			require.ErrorIs(t, err, shared.ErrValidation)
			require.Nil(t, deductions)
			if flour, ok := tt.stock["a"]; ok {
				require.True(t, flour.Stock.Equal(dec("150")))
			}
		})
	}
}

func TestStockPlanRejectsInvalidLines(t *testing.T) {
	plan := NewStockPlan()
	require.ErrorIs(t, plan.AddSale(stockItem("p", "Ração", "3"), -1), ErrInvalidQuantity)
	require.ErrorIs(t, plan.Require("p", "Ração", decimal.Zero), ErrInvalidQuantity)

	broken := dish(
		Ingredient{ProductID: "a", Name: "Farinha", UsedQuantity: dec("100")},
		Ingredient{ProductID: "b", Name: "Ovo", UsedQuantity: dec("-1")},
	)
	require.ErrorIs(t, plan.AddSale(broken, 1), ErrInvalidIngredient)
	require.Empty(t, plan.ProductIDs())
}

func TestApplyCountsMissingProductAsShortage(t *testing.T) {
	plan := NewStockPlan()
	require.NoError(t, plan.Require("ghost", "Fantasma", dec("1")))

	_, err := plan.Apply(map[string]*Product{"ghost": nil})
	var insufficient *InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	require.True(t, insufficient.Shortages[0].Available.IsZero())
}

func TestAdjustStock(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	p := stockItem("p", "Ração", "5")
	require.NoError(t, p.AdjustStock(dec("3"), now))
	require.True(t, p.Stock.Equal(dec("8")))
	require.Equal(t, now, p.UpdatedAt)

	err := p.AdjustStock(dec("-9"), now.Add(time.Hour))
	require.ErrorIs(t, err, ErrInsufficientStock)
	require.True(t, p.Stock.Equal(dec("8")))
	require.Equal(t, now, p.UpdatedAt)

	require.ErrorIs(t, p.AdjustStock(decimal.Zero, now), ErrInvalidAdjustment)
}
