package cart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, price int64) Item {
	return Item{ID: id, Kind: KindCurso, Title: "Curso " + id, PriceCents: price}
}

func TestCart_AddIncrementsInsteadOfDuplicating(t *testing.T) {
	var c Cart
	_, err := c.AddItem(item("x", 500), 1)
	require.NoError(t, err)
	_, err = c.AddItem(item("x", 500), 1)
	require.NoError(t, err)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCart_AddFloorsQuantityAtOne(t *testing.T) {
	var c Cart
	got, err := c.AddItem(item("x", 500), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity)

	got, err = c.AddItem(item("x", 500), -3)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
}

func TestCart_AddRejectsInvalidItems(t *testing.T) {
	var c Cart
	_, err := c.AddItem(Item{Kind: KindCurso}, 1)
	assert.ErrorIs(t, err, ErrInvalidItem)
	_, err = c.AddItem(Item{ID: "a", Kind: "libro"}, 1)
	assert.ErrorIs(t, err, ErrInvalidItem)
	_, err = c.AddItem(Item{ID: "a", Kind: KindCurso, PriceCents: -1}, 1)
	assert.ErrorIs(t, err, ErrInvalidItem)
	assert.Equal(t, StateEmpty, c.State())
}

func TestCart_UpdateQuantityZeroRemoves(t *testing.T) {
	var c Cart
	_, _ = c.AddItem(item("x", 500), 3)

	ok, err := c.UpdateQuantity("x", 5)
	require.NoError(t, err)
	assert.True(t, ok)
	it, ok := c.Item("x")
	require.True(t, ok)
	assert.Equal(t, 5, it.Quantity)

	ok, err = c.UpdateQuantity("x", 0)
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok = c.Item("x")
	assert.False(t, ok)
	assert.Equal(t, StateEmpty, c.State())

	ok, err = c.UpdateQuantity("missing", 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCart_QuantityIsCapped(t *testing.T) {
	var c Cart
	_, err := c.AddItem(item("x", 2000), 1)
	require.NoError(t, err)

	_, err = c.AddItem(item("x", 2000), math.MaxInt)
	assert.ErrorIs(t, err, ErrQuantityLimit)
	_, err = c.AddItem(item("x", 2000), MaxQuantity)
	assert.ErrorIs(t, err, ErrQuantityLimit)
	_, err = c.AddItem(item("y", 2000), MaxQuantity+1)
	assert.ErrorIs(t, err, ErrQuantityLimit)

	got, err := c.AddItem(item("x", 2000), MaxQuantity-1)
	require.NoError(t, err)
	assert.Equal(t, MaxQuantity, got.Quantity)

	_, err = c.UpdateQuantity("x", math.MaxInt64/1000)
	assert.ErrorIs(t, err, ErrQuantityLimit)
	it, _ := c.Item("x")
	assert.Equal(t, MaxQuantity, it.Quantity)

	totals := c.Totals("")
	assert.Equal(t, int64(MaxQuantity*2000), totals.Subtotal)
	assert.Positive(t, totals.Total)
}

func TestCart_RejectsOversizedPrice(t *testing.T) {
	var c Cart
	_, err := c.AddItem(item("x", MaxPriceCents+1), 1)
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestCart_StateTransitions(t *testing.T) {
	var c Cart
	assert.Equal(t, StateEmpty, c.State())

	_, _ = c.AddItem(item("a", 100), 1)
	_, _ = c.AddItem(item("b", 100), 1)
	assert.Equal(t, StatePopulated, c.State())

	assert.True(t, c.RemoveItem("a"))
	assert.False(t, c.RemoveItem("a"))
	assert.Equal(t, StatePopulated, c.State())

	c.RemoveItem("b")
	assert.Equal(t, StateEmpty, c.State())

	_, _ = c.AddItem(item("a", 100), 1)
	c.Clear()
	assert.Equal(t, StateEmpty, c.State())
}

func TestCart_ItemsAreCopies(t *testing.T) {
	var c Cart
	in := item("a", 100)
	in.Meta = map[string]string{"k": "v"}
	_, _ = c.AddItem(in, 1)

	in.Meta["k"] = "changed"
	out := c.Items()
	out[0].Meta["k"] = "changed too"

	got, _ := c.Item("a")
	assert.Equal(t, "v", got.Meta["k"])
}

func TestTotals_Example(t *testing.T) {
	var c Cart
	_, _ = c.AddItem(item("a", 1000), 1)

	assert.Equal(t, Totals{Subtotal: 1000, Discount: 0, Tax: 120, Shipping: 0, Total: 1120}, c.Totals("MENTOR8"))

	c.SetDiscountCode("  mentor8 ")
	assert.Equal(t, Totals{Subtotal: 1000, Discount: 80, Tax: 110, Shipping: 0, Total: 1030}, c.Totals("MENTOR8"))

	c.SetDiscountCode("OTRO")
	assert.Equal(t, int64(0), c.Totals("MENTOR8").Discount)
}

func TestTotals_RoundsHalfUp(t *testing.T) {
	// 8% of 1250 = 100; 12% of 1150 = 138
	got := ComputeTotals([]Item{{ID: "a", Kind: KindCurso, PriceCents: 1250, Quantity: 1}}, "MENTOR8", "MENTOR8")
	assert.Equal(t, int64(100), got.Discount)
	assert.Equal(t, int64(138), got.Tax)

	// 12% of 125 = 15
	got = ComputeTotals([]Item{{ID: "a", Kind: KindCurso, PriceCents: 125, Quantity: 1}}, "", "MENTOR8")
	assert.Equal(t, int64(15), got.Tax)
	assert.Equal(t, int64(140), got.Total)
}

func TestTotals_EmptyAndEmptyLiteral(t *testing.T) {
	assert.Equal(t, Totals{}, ComputeTotals(nil, "MENTOR8", "MENTOR8"))
	assert.False(t, DiscountApplies("", ""))
	assert.False(t, DiscountApplies("   ", "  "))
}
