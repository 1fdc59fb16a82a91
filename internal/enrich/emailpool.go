package enrich

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// BuildEmailPool generates size base handles (root000, root001, …) plus
// three evasion-style variants per handle, deduplicates them and returns
// the pool in lexicographic order so downstream sampling is reproducible.
func BuildEmailPool(rng *rand.Rand, root string, size int) []string {
	seen := make(map[string]struct{}, size*4)
	add := func(h string) {
		seen[h] = struct{}{}
	}

	for i := 0; i < size; i++ {
		h := fmt.Sprintf("%s%03d", root, i)
		add(h)
		add(tagVariant(rng, h))
		add(dotVariant(rng, h))
		add(underscoreVariant(rng, h))
	}

	pool := make([]string, 0, len(seen))
	for h := range seen {
		pool = append(pool, h)
	}
	sort.Strings(pool)
	return pool
}

// tagVariant simulates plus-addressing evasion: "frauder001+promo3".
func tagVariant(rng *rand.Rand, handle string) string {
	return fmt.Sprintf("%s+promo%d", handle, 1+rng.Intn(8))
}

// dotVariant inserts a single dot at a random interior position.
// Handles that already contain a dot or are shorter than 3 runes pass
// through unchanged.
func dotVariant(rng *rand.Rand, handle string) string {
	return insertVariant(rng, handle, ".")
}

// underscoreVariant inserts a single underscore at a random interior
// position under the same guard as dotVariant.
func underscoreVariant(rng *rand.Rand, handle string) string {
	return insertVariant(rng, handle, "_")
}

func insertVariant(rng *rand.Rand, handle, sep string) string {
	if strings.Contains(handle, sep) || len(handle) < 3 {
		return handle
	}
	pos := 1 + rng.Intn(len(handle)-2)
	return handle[:pos] + sep + handle[pos:]
}
