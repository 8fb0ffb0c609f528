package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
)

func TestAdd_AccumulatesQuantity(t *testing.T) {
	var cart Cart
	require.NoError(t, cart.Add(7, 2))
	require.NoError(t, cart.Add(7, 3))
	require.Equal(t, 5, cart.Quantity(7))
	require.Len(t, cart.Lines, 1)
}

func TestAdd_RejectsNonPositive(t *testing.T) {
	var cart Cart
	require.ErrorIs(t, cart.Add(7, 0), ErrInvalidQuantity)
	require.ErrorIs(t, cart.Add(7, -1), ErrInvalidQuantity)
	require.True(t, cart.IsEmpty())
}

func TestSetQuantity_ZeroRemoves(t *testing.T) {
	var cart Cart
	require.NoError(t, cart.Add(1, 1))
	require.NoError(t, cart.Add(2, 1))

	cart.SetQuantity(1, 0)
	require.Equal(t, 0, cart.Quantity(1))
	require.Equal(t, []Line{{ProductID: 2, Quantity: 1}}, cart.Lines)

	cart.SetQuantity(2, 4)
	require.Equal(t, 4, cart.Count())
}

func TestSetQuantity_AbsentIsNoop(t *testing.T) {
	var cart Cart
	require.NoError(t, cart.Add(1, 2))

	cart.SetQuantity(9, 3)
	require.Equal(t, []Line{{ProductID: 1, Quantity: 2}}, cart.Lines)
}

func TestRemove_AbsentIsNoop(t *testing.T) {
	var cart Cart
	require.NoError(t, cart.Add(1, 1))
	cart.Remove(99)
	require.Equal(t, 1, cart.Count())
}

func TestClone_IsIndependent(t *testing.T) {
	var cart Cart
	require.NoError(t, cart.Add(1, 1))
	clone := cart.Clone()
	clone.SetQuantity(1, 9)
	require.Equal(t, 1, cart.Quantity(1))
}

func TestNewSummary_TotalsLines(t *testing.T) {
	a := &catalogdomain.Product{ID: 1, SalePrice: decimal.NewFromInt(100)}
	b := &catalogdomain.Product{ID: 2, SalePrice: decimal.NewFromInt(50)}
	summary := NewSummary([]SummaryLine{{Product: a, Quantity: 2}, {Product: b, Quantity: 1}})

	require.True(t, decimal.NewFromInt(200).Equal(summary.Lines[0].Total))
	require.True(t, decimal.NewFromInt(50).Equal(summary.Lines[1].Total))
	require.True(t, decimal.NewFromInt(250).Equal(summary.Subtotal))
	require.True(t, summary.Subtotal.Equal(summary.Total))
}
