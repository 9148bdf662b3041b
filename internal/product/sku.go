// AngelaMos | 2026
// sku.go

package product

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// maxSKUAttempts bounds the collision retry loop; with a 9000-value
// random suffix per timestamp, hitting it means something is wrong.
const maxSKUAttempts = 50

// GenerateSKU builds "CAT-PRO-<ts>-<rand>": three-letter codes from the
// category id and product name, the creation timestamp in base36 (last
// four chars), and a four-digit random suffix re-rolled until the SKU
// is unused.
func GenerateSKU(
	ctx context.Context,
	categoryID, name string,
	taken func(context.Context, string) (bool, error),
) (string, error) {
	categoryCode := strings.ToUpper(prefix(categoryID, 3))
	productCode := strings.ToUpper(prefix(name, 3))

	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 36)
	if len(timestamp) > 4 {
		timestamp = timestamp[len(timestamp)-4:]
	}

	for range maxSKUAttempts {
		suffix := 1000 + rand.IntN(9000)
		sku := fmt.Sprintf(
			"%s-%s-%s-%d",
			categoryCode,
			productCode,
			timestamp,
			suffix,
		)

		exists, err := taken(ctx, sku)
		if err != nil {
			return "", fmt.Errorf("check sku: %w", err)
		}
		if !exists {
			return sku, nil
		}
	}

	return "", fmt.Errorf(
		"generate sku: no free value after %d attempts",
		maxSKUAttempts,
	)
}

// prefix takes the first n characters, not bytes; product names are
// not guaranteed to be ASCII.
func prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) < n {
		return s
	}
	return string(runes[:n])
}
