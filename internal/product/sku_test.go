// AngelaMos | 2026
// sku_test.go

package product

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var skuPattern = regexp.MustCompile(`^[A-Z0-9]{1,3}-[A-Z0-9 ]{1,3}-[a-z0-9]{1,4}-\d{4}$`)

func neverTaken(context.Context, string) (bool, error) {
	return false, nil
}

func TestGenerateSKU_Format(t *testing.T) {
	t.Parallel()

	sku, err := GenerateSKU(
		context.Background(),
		"65f1c0ffee00112233445566",
		"Running Shoes",
		neverTaken,
	)
	require.NoError(t, err)

	assert.Regexp(t, skuPattern, sku)
	assert.True(t, strings.HasPrefix(sku, "65F-RUN-"))
}

func TestGenerateSKU_ShortName(t *testing.T) {
	t.Parallel()

	sku, err := GenerateSKU(
		context.Background(),
		"65f1c0ffee00112233445566",
		"TV",
		neverTaken,
	)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sku, "65F-TV-"))
}

func TestGenerateSKU_MultibyteName(t *testing.T) {
	t.Parallel()

	sku, err := GenerateSKU(
		context.Background(),
		"65f1c0ffee00112233445566",
		"Ödül",
		neverTaken,
	)
	require.NoError(t, err)

	// The product code must be the first three characters, never a
	// byte slice that cuts a rune in half.
	assert.True(t, utf8.ValidString(sku))
	assert.True(t, strings.HasPrefix(sku, "65F-ÖDÜ-"))
}

func TestGenerateSKU_AdvancesPastCollisions(t *testing.T) {
	t.Parallel()

	collisions := 0

	// First three candidates are reported taken; the loop must re-roll
	// the suffix and return the fourth.
	taken := func(_ context.Context, sku string) (bool, error) {
		if collisions < 3 {
			collisions++
			return true, nil
		}
		return false, nil
	}

	sku, err := GenerateSKU(
		context.Background(),
		"65f1c0ffee00112233445566",
		"Lamp",
		taken,
	)
	require.NoError(t, err)
	assert.Equal(t, 3, collisions)
	assert.Regexp(t, skuPattern, sku)
}

func TestGenerateSKU_GivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	alwaysTaken := func(context.Context, string) (bool, error) {
		return true, nil
	}

	_, err := GenerateSKU(
		context.Background(),
		"65f1c0ffee00112233445566",
		"Lamp",
		alwaysTaken,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no free value")
}

func TestFinalPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{name: "no discount", price: 100, discount: 0, want: 100},
		{name: "ten percent", price: 100, discount: 10, want: 90},
		{name: "full discount", price: 100, discount: 100, want: 0},
		{name: "fractional", price: 59.99, discount: 50, want: 29.995},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, FinalPrice(tt.price, tt.discount), 1e-9)
		})
	}
}
