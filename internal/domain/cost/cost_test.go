package cost

import (
	"math/rand"
	"testing"

	"github.com/sangkips/aluworks-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(category enum.ItemCategory, qty, price string) LineItem {
	return LineItem{Category: category, Quantity: d(qty), UnitPrice: d(price)}
}

func TestAggregateMaterialAndLaborWithMarkup(t *testing.T) {
	items := []LineItem{
		item(enum.ItemCategoryMaterial, "2", "50"),
		item(enum.ItemCategoryLabor, "1", "100"),
	}
	markup := Markup{
		WorkmanshipFee:         decimal.Zero,
		OverheadPercentage:     d("10"),
		ProfitMarginPercentage: d("15"),
	}

	b, err := Aggregate(items, markup)
	require.NoError(t, err)

	assert.Equal(t, "100.00", b.Materials.StringFixed(2))
	assert.Equal(t, "100.00", b.Labor.StringFixed(2))
	assert.Equal(t, "0.00", b.Equipment.StringFixed(2))
	assert.Equal(t, "0.00", b.Other.StringFixed(2))
	assert.Equal(t, "200.00", b.Subtotal.StringFixed(2))
	assert.Equal(t, "20.00", b.Overhead.StringFixed(2))
	assert.Equal(t, "33.00", b.Profit.StringFixed(2))
	assert.Equal(t, "253.00", b.Total.StringFixed(2))
}

func TestProjectTotalsLaborOnly(t *testing.T) {
	pc, err := ProjectTotals(nil, d("500"), decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "0.00", pc.ItemsTotal.StringFixed(2))
	assert.Equal(t, "500.00", pc.Total.StringFixed(2))
}

func TestProjectTotalsAddsItems(t *testing.T) {
	items := []LineItem{
		item(enum.ItemCategoryMaterial, "3", "12.5"),
		item(enum.ItemCategoryPermit, "1", "40"),
	}
	pc, err := ProjectTotals(items, d("100"), d("25.25"))
	require.NoError(t, err)
	assert.Equal(t, "77.50", pc.ItemsTotal.StringFixed(2))
	assert.Equal(t, "202.75", pc.Total.StringFixed(2))
}

func TestBucketOf(t *testing.T) {
	tests := []struct {
		category enum.ItemCategory
		want     Bucket
	}{
		{enum.ItemCategoryMaterial, BucketMaterials},
		{enum.ItemCategoryLabor, BucketLabor},
		{enum.ItemCategoryEquipment, BucketEquipment},
		{enum.ItemCategoryTool, BucketEquipment},
		{enum.ItemCategorySubcontractor, BucketOther},
		{enum.ItemCategoryPermit, BucketOther},
		{enum.ItemCategoryOther, BucketOther},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.want, BucketOf(tt.category))
		})
	}
}

func TestLineTotalExactToMinorUnit(t *testing.T) {
	tests := []struct {
		qty, price, want string
	}{
		{"2", "50", "100.00"},
		{"0", "99.99", "0.00"},
		{"1.5", "3.33", "5.00"},
		{"3", "0.333", "1.00"},
		{"0.125", "10", "1.25"},
		{"2.005", "1", "2.01"},
	}
	for _, tt := range tests {
		t.Run(tt.qty+"x"+tt.price, func(t *testing.T) {
			li := item(enum.ItemCategoryMaterial, tt.qty, tt.price)
			assert.Equal(t, tt.want, li.LineTotal().StringFixed(2))
		})
	}
}

func randomItems(r *rand.Rand, n int) []LineItem {
	categories := enum.ItemCategories()
	items := make([]LineItem, n)
	for i := range items {
		items[i] = LineItem{
			Category:  categories[r.Intn(len(categories))],
			Quantity:  decimal.New(int64(r.Intn(10000)), -2),
			UnitPrice: decimal.New(int64(r.Intn(1000000)), -2),
		}
	}
	return items
}

func TestAggregateProperties(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	hundred := decimal.NewFromInt(100)

	for run := 0; run < 200; run++ {
		items := randomItems(r, r.Intn(12))
		markup := Markup{
			WorkmanshipFee:         decimal.New(int64(r.Intn(100000)), -2),
			OverheadPercentage:     decimal.New(int64(r.Intn(5000)), -2),
			ProfitMarginPercentage: decimal.New(int64(r.Intn(5000)), -2),
		}

		b, err := Aggregate(items, markup)
		require.NoError(t, err)

		sum := decimal.Zero
		for _, li := range items {
			sum = sum.Add(li.LineTotal())
		}
		partition := b.Materials.Add(b.Labor).Add(b.Equipment).Add(b.Other)
		assert.True(t, partition.Equal(sum), "partition %s != sum %s", partition, sum)
		assert.True(t, b.ItemsTotal.Equal(sum))

		assert.True(t, b.Subtotal.Equal(sum.Add(b.WorkmanshipFee)))
		assert.True(t, b.Total.Equal(b.Subtotal.Add(b.Overhead).Add(b.Profit)))

		wantOverhead := b.Subtotal.Mul(markup.OverheadPercentage).Div(hundred).Round(2)
		assert.True(t, b.Overhead.Equal(wantOverhead), "overhead %s want %s", b.Overhead, wantOverhead)
		wantProfit := b.Subtotal.Add(b.Overhead).Mul(markup.ProfitMarginPercentage).Div(hundred).Round(2)
		assert.True(t, b.Profit.Equal(wantProfit), "profit %s want %s", b.Profit, wantProfit)

		again, err := Aggregate(items, markup)
		require.NoError(t, err)
		assertSameBreakdown(t, b, again)
	}
}

func assertSameBreakdown(t *testing.T, want, got Breakdown) {
	t.Helper()
	pairs := [][2]decimal.Decimal{
		{want.Materials, got.Materials},
		{want.Labor, got.Labor},
		{want.Equipment, got.Equipment},
		{want.Other, got.Other},
		{want.Subtotal, got.Subtotal},
		{want.Overhead, got.Overhead},
		{want.Profit, got.Profit},
		{want.Total, got.Total},
	}
	for _, p := range pairs {
		assert.True(t, p[0].Equal(p[1]), "%s != %s", p[0], p[1])
	}
}

func TestAggregateRejectsNegativeInputs(t *testing.T) {
	_, err := Aggregate([]LineItem{item(enum.ItemCategoryMaterial, "-1", "5")}, Markup{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "items[0].quantity", ve.Field)

	_, err = Aggregate(nil, Markup{OverheadPercentage: d("-5")})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "overhead_percentage", ve.Field)

	_, err = Aggregate([]LineItem{{Category: "Concrete", Quantity: d("1"), UnitPrice: d("1")}}, Markup{})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "items[0].category", ve.Field)
}

func TestNewLineItem(t *testing.T) {
	li, err := NewLineItem("material", "Aluminum profile 6m", "4", "85.50")
	require.NoError(t, err)
	assert.Equal(t, enum.ItemCategoryMaterial, li.Category)
	assert.Equal(t, "342.00", li.LineTotal().StringFixed(2))

	tests := []struct {
		name, category, qty, price, field string
	}{
		{"non numeric quantity", "Material", "two", "5", "quantity"},
		{"empty price", "Material", "2", "", "unit_price"},
		{"negative price", "Labor", "1", "-10", "unit_price"},
		{"unknown category", "Glass", "1", "1", "category"},
		{"huge exponent quantity", "Material", "1e200000000", "1", "quantity"},
		{"price beyond column", "Material", "1", "1000000000000", "unit_price"},
		{"tiny exponent price", "Material", "1", "1e-200000000", "unit_price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLineItem(tt.category, "x", tt.qty, tt.price)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestProjectTotalsRejectsNegativeCosts(t *testing.T) {
	_, err := ProjectTotals(nil, d("-1"), decimal.Zero)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "labor_cost", ve.Field)
}

func TestTotalsBeyondColumnAreRejected(t *testing.T) {
	big := item(enum.ItemCategoryMaterial, "999999999999", "999999999999")

	_, err := Aggregate([]LineItem{big}, Markup{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "total", ve.Field)

	_, err = ProjectTotals([]LineItem{big}, decimal.Zero, decimal.Zero)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "total", ve.Field)

	_, err = ProjectTotals(nil, d("1e20"), decimal.Zero)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "labor_cost", ve.Field)
}
