package model

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotals(t *testing.T) {
	testCases := []struct {
		name             string
		unitPrice        string
		quantity         int
		taxRate          string
		expectedSubtotal string
		expectedTotal    string
	}{
		{
			name:             "Default values",
			unitPrice:        "10.0",
			quantity:         1,
			taxRate:          "21",
			expectedSubtotal: "10",
			expectedTotal:    "12.1",
		},
		{
			name:             "Multiple units",
			unitPrice:        "4.75",
			quantity:         12,
			taxRate:          "21",
			expectedSubtotal: "57",
			expectedTotal:    "68.97",
		},
		{
			name:             "Zero quantity",
			unitPrice:        "99.99",
			quantity:         0,
			taxRate:          "21",
			expectedSubtotal: "0",
			expectedTotal:    "0",
		},
		{
			name:             "Zero tax",
			unitPrice:        "2.50",
			quantity:         4,
			taxRate:          "0",
			expectedSubtotal: "10",
			expectedTotal:    "10",
		},
		{
			name:             "Fractional tax rate",
			unitPrice:        "100",
			quantity:         1,
			taxRate:          "10.5",
			expectedSubtotal: "100",
			expectedTotal:    "110.5",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			subtotal, total := ComputeTotals(
				decimal.RequireFromString(tc.unitPrice),
				tc.quantity,
				decimal.RequireFromString(tc.taxRate),
			)

			assert.True(t, subtotal.Equal(decimal.RequireFromString(tc.expectedSubtotal)),
				"subtotal = %s, want %s", subtotal, tc.expectedSubtotal)
			assert.True(t, total.Equal(decimal.RequireFromString(tc.expectedTotal)),
				"total = %s, want %s", total, tc.expectedTotal)
		})
	}
}

func TestRecomputeTotalsIsIdempotent(t *testing.T) {
	p := &Product{
		Name:      "Widget",
		UnitPrice: decimal.NewFromFloat(10.0),
		Quantity:  3,
		TaxRate:   decimal.NewFromInt(21),
	}

	p.RecomputeTotals()
	firstSubtotal, firstTotal := p.Subtotal, p.Total

	p.RecomputeTotals()
	assert.True(t, p.Subtotal.Equal(firstSubtotal))
	assert.True(t, p.Total.Equal(firstTotal))

	assert.True(t, p.Subtotal.Equal(decimal.NewFromInt(30)))
	assert.True(t, p.Total.Equal(decimal.NewFromFloat(36.3)))
}

func TestRecomputeTotalsFollowsDependencyChange(t *testing.T) {
	p := &Product{
		UnitPrice: decimal.NewFromFloat(10.0),
		Quantity:  1,
		TaxRate:   decimal.NewFromInt(21),
	}
	p.RecomputeTotals()
	require.True(t, p.Total.Equal(decimal.NewFromFloat(12.1)))

	// A price change must flow through subtotal into total in one pass.
	p.UnitPrice = decimal.NewFromFloat(20.0)
	p.RecomputeTotals()
	assert.True(t, p.Subtotal.Equal(decimal.NewFromInt(20)))
	assert.True(t, p.Total.Equal(decimal.NewFromFloat(24.2)))
}

func TestCheckValues(t *testing.T) {
	id := uuid.New()

	testCases := []struct {
		name          string
		unitPrice     decimal.Decimal
		quantity      int
		expectedField string
	}{
		{"Valid values", decimal.NewFromFloat(10.0), 1, ""},
		{"Zero values are allowed", decimal.Zero, 0, ""},
		{"Negative price", decimal.NewFromFloat(-0.01), 1, "unit_price"},
		{"Negative quantity", decimal.NewFromFloat(10.0), -1, "quantity"},
		{"Both negative reports price first", decimal.NewFromInt(-5), -5, "unit_price"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := &Product{
				BaseModel: BaseModel{ID: id},
				Name:      "Widget",
				UnitPrice: tc.unitPrice,
				Quantity:  tc.quantity,
			}

			err := p.CheckValues()
			if tc.expectedField == "" {
				assert.NoError(t, err)
				return
			}

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tc.expectedField, vErr.Field)
			assert.Equal(t, id, vErr.RecordID)
			assert.Contains(t, vErr.Error(), id.String())
		})
	}
}

func TestProductCopy(t *testing.T) {
	categoryID := uuid.New()
	original := &Product{
		BaseModel:   BaseModel{ID: uuid.New()},
		Name:        "Widget",
		Description: "A widget",
		UnitPrice:   decimal.NewFromFloat(10.0),
		Quantity:    2,
		TaxRate:     decimal.NewFromInt(21),
		Subtotal:    decimal.NewFromInt(20),
		Total:       decimal.NewFromFloat(24.2),
		IsActive:    false,
		CategoryID:  &categoryID,
		Kind:        KindDigital,
	}

	copied := original.Copy()

	assert.Equal(t, "Widget (Copy)", copied.Name)
	assert.Equal(t, original.Description, copied.Description)
	assert.True(t, copied.UnitPrice.Equal(original.UnitPrice))
	assert.Equal(t, original.Quantity, copied.Quantity)
	assert.True(t, copied.TaxRate.Equal(original.TaxRate))
	assert.Equal(t, original.IsActive, copied.IsActive)
	assert.Equal(t, original.CategoryID, copied.CategoryID)
	assert.Equal(t, original.Kind, copied.Kind)

	// Identity and derived fields are not carried over.
	assert.Equal(t, uuid.Nil, copied.ID)
	assert.True(t, copied.Subtotal.IsZero())
	assert.True(t, copied.Total.IsZero())

	copied.RecomputeTotals()
	assert.True(t, copied.Subtotal.Equal(original.Subtotal))
	assert.True(t, copied.Total.Equal(original.Total))
}

func TestProductKind(t *testing.T) {
	assert.Equal(t, []ProductKind{KindPhysical, KindDigital}, Kinds())

	assert.True(t, KindPhysical.Valid())
	assert.True(t, KindDigital.Valid())
	assert.False(t, ProductKind("virtual").Valid())
	assert.False(t, ProductKind("").Valid())

	assert.Equal(t, "Physical", KindPhysical.Label())
	assert.Equal(t, "Digital", KindDigital.Label())
}

func TestOpenWizardAction(t *testing.T) {
	action := OpenWizardAction()

	assert.Equal(t, "wizard", action.TargetType)
	assert.Equal(t, "mi.modulo.wizard", action.TargetModel)
	assert.Equal(t, "form", action.Mode)
	assert.Equal(t, "modal", action.Display)
}
