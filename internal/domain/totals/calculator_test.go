package totals

import (
	"math/rand"
	"testing"

	"findoc_service/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func qty(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func TestCalculate_ReferenceScenario(t *testing.T) {
	res, err := Calculate(Input{
		Items: []entities.LineItemInput{
			{Name: "Design", Quantity: qty("2"), Rate: d("100")},
			{Name: "Hosting", Quantity: qty("1"), Rate: d("50")},
		},
		TaxPercentage:  d("18"),
		DiscountAmount: d("10"),
	})
	require.NoError(t, err)

	assert.True(t, res.Subtotal.Equal(d("250")), "subtotal %s", res.Subtotal)
	assert.Equal(t, "45.00", res.TaxAmount.StringFixed(2))
	assert.Equal(t, "285.00", res.TotalAmount.StringFixed(2))
	require.Len(t, res.Items, 2)
	assert.True(t, res.Items[0].Amount.Equal(d("200")))
	assert.True(t, res.Items[1].Amount.Equal(d("50")))
}

func TestCalculate_QuantityDefaultsToOne(t *testing.T) {
	res, err := Calculate(Input{
		Items: []entities.LineItemInput{{Name: "Setup", Rate: d("19.99")}},
	})
	require.NoError(t, err)
	assert.True(t, res.Items[0].Quantity.Equal(d("1")))
	assert.True(t, res.TotalAmount.Equal(d("19.99")))
}

func TestCalculate_RoundsHalfUpAtEveryStep(t *testing.T) {
	res, err := Calculate(Input{
		Items: []entities.LineItemInput{
			{Name: "a", Quantity: qty("3"), Rate: d("0.335")},  // 1.005 -> 1.01
			{Name: "b", Quantity: qty("0.5"), Rate: d("0.01")}, // 0.005 -> 0.01
		},
		TaxPercentage: d("12.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "1.01", res.Items[0].Amount.StringFixed(2))
	assert.Equal(t, "0.01", res.Items[1].Amount.StringFixed(2))
	assert.Equal(t, "1.02", res.Subtotal.StringFixed(2))
	// 1.02 * 12.5% = 0.1275 -> 0.13
	assert.Equal(t, "0.13", res.TaxAmount.StringFixed(2))
	assert.Equal(t, "1.15", res.TotalAmount.StringFixed(2))
}

func TestCalculate_DiscountIsClamped(t *testing.T) {
	res, err := Calculate(Input{
		Items:          []entities.LineItemInput{{Name: "x", Rate: d("10")}},
		TaxPercentage:  d("10"),
		DiscountAmount: d("500"),
	})
	require.NoError(t, err)
	assert.True(t, res.TotalAmount.IsZero())
	assert.True(t, res.DiscountAmount.Equal(d("11")), "effective discount %s", res.DiscountAmount)
}

func TestCalculate_SubCentDiscountRoundsOnlyTheTotal(t *testing.T) {
	res, err := Calculate(Input{
		Items:          []entities.LineItemInput{{Name: "x", Rate: d("100")}},
		DiscountAmount: d("0.005"),
	})
	require.NoError(t, err)
	// round2(100 - 0.005) = round2(99.995) = 100.00
	assert.Equal(t, "100.00", res.TotalAmount.StringFixed(2))
	assert.True(t, res.DiscountAmount.Equal(d("0.005")), "effective discount %s", res.DiscountAmount)
}

func TestCalculate_ReportsEveryFailingField(t *testing.T) {
	_, err := Calculate(Input{
		Items: []entities.LineItemInput{
			{Name: "", Quantity: qty("0"), Rate: d("-1")},
			{Name: "ok", Rate: d("1")},
			{Name: "neg", Quantity: qty("-2"), Rate: d("1")},
		},
		TaxPercentage:  d("101"),
		DiscountAmount: d("-5"),
		ItemsField:     "line_items",
	})
	require.Error(t, err)

	var v *entities.ValidationError
	require.ErrorAs(t, err, &v)
	for _, f := range []string{
		"tax_percentage",
		"discount_amount",
		"line_items[0].name",
		"line_items[0].quantity",
		"line_items[0].rate",
		"line_items[2].quantity",
	} {
		assert.True(t, v.HasField(f), "missing field %s in %v", f, v.Fields)
	}
	assert.False(t, v.HasField("line_items[1].name"))
}

func TestCalculate_EmptyItems(t *testing.T) {
	_, err := Calculate(Input{ItemsField: "cost_breakdown"})
	var v *entities.ValidationError
	require.ErrorAs(t, err, &v)
	assert.True(t, v.HasField("cost_breakdown"))
}

func TestCalculate_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for n := 0; n < 500; n++ {
		count := 1 + r.Intn(6)
		items := make([]entities.LineItemInput, 0, count)
		expectedSubtotal := decimal.Zero
		for i := 0; i < count; i++ {
			q := decimal.New(int64(1+r.Intn(1000)), -int32(r.Intn(3)))
			rate := decimal.New(int64(r.Intn(100000)), -int32(r.Intn(4)))
			items = append(items, entities.LineItemInput{Name: "item", Quantity: &q, Rate: rate})
			expectedSubtotal = expectedSubtotal.Add(q.Mul(rate).Round(2))
		}
		tax := decimal.New(int64(r.Intn(10001)), -2) // 0.00 .. 100.00
		discount := decimal.New(int64(r.Intn(2000000)), -2)

		in := Input{Items: items, TaxPercentage: tax, DiscountAmount: discount}
		res, err := Calculate(in)
		require.NoError(t, err)

		assert.True(t, res.Subtotal.Equal(expectedSubtotal))
		assert.True(t, res.TaxAmount.Equal(res.Subtotal.Mul(tax).Div(hundred).Round(2)))
		assert.False(t, res.TotalAmount.IsNegative())
		assert.True(t, res.TotalAmount.Equal(res.Subtotal.Add(res.TaxAmount).Sub(res.DiscountAmount).Round(2)))

		again, err := Calculate(in)
		require.NoError(t, err)
		assert.Equal(t, res, again)
	}
}

func TestBalanceDue(t *testing.T) {
	assert.Equal(t, "0.00", BalanceDue(d("285"), d("285")).StringFixed(2))
	assert.Equal(t, "185.00", BalanceDue(d("285"), d("100")).StringFixed(2))
	assert.True(t, BalanceDue(d("10"), d("20")).IsZero())
}
