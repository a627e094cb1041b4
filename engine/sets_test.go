package engine

import (
	"testing"

	"github.com/warp/uniform-engine/catalog"
)

func TestSets_PrimaryWins(t *testing.T) {
	// GIVEN: MOZO with CAMISA (primary) qty 3 and MANDILON qty 1
	// WHEN: Counting sets
	// THEN: The primary quantity wins outright

	cat := catalog.DefaultCatalog()
	garments := []ResolvedGarment{
		{Type: "CAMISA", Quantity: 3},
		{Type: "MANDILON", Quantity: 1},
	}

	if got := Sets(cat, "MOZO", garments, quietLogger()); got != 3 {
		t.Errorf("expected 3 sets, got %d", got)
	}
}

func TestSets_ModeFallback(t *testing.T) {
	// GIVEN: No primary quantity; others are 2, 2, 1
	// WHEN: Counting sets
	// THEN: The mode 2 wins

	cat := catalog.DefaultCatalog()
	garments := []ResolvedGarment{
		{Type: "MANDILON", Quantity: 2},
		{Type: "ANDARIN", Quantity: 2},
		{Type: "POLO", Quantity: 1},
	}

	if got := Sets(cat, "MOZO", garments, quietLogger()); got != 2 {
		t.Errorf("expected mode 2, got %d", got)
	}
}

func TestSets_TieBreaksHigh(t *testing.T) {
	// GIVEN: Quantities 3 and 2, each appearing once
	// WHEN: Counting sets
	// THEN: The higher tied value wins

	cat := catalog.DefaultCatalog()
	garments := []ResolvedGarment{
		{Type: "MANDILON", Quantity: 2},
		{Type: "ANDARIN", Quantity: 3},
	}

	if got := Sets(cat, "MOZO", garments, quietLogger()); got != 3 {
		t.Errorf("expected tie to break high at 3, got %d", got)
	}
}

func TestSets_ZeroPrimaryFallsBack(t *testing.T) {
	cat := catalog.DefaultCatalog()
	garments := []ResolvedGarment{
		{Type: "CAMISA", Quantity: 0},
		{Type: "MANDILON", Quantity: 2},
	}

	if got := Sets(cat, "MOZO", garments, quietLogger()); got != 2 {
		t.Errorf("expected fallback to 2, got %d", got)
	}
}

func TestSets_NothingRequested(t *testing.T) {
	cat := catalog.DefaultCatalog()

	if got := Sets(cat, "MOZO", nil, quietLogger()); got != 0 {
		t.Errorf("expected 0 sets for empty list, got %d", got)
	}
}

func TestSets_NoPrimaryConfigured(t *testing.T) {
	// An occupation outside the catalog has no primary garment; the
	// count degrades to zero instead of failing.
	cat := catalog.DefaultCatalog()
	garments := []ResolvedGarment{{Type: "CAMISA", Quantity: 2}}

	if got := Sets(cat, "GERENTE GENERAL", garments, quietLogger()); got != 0 {
		t.Errorf("expected 0 sets without a primary garment, got %d", got)
	}
}
