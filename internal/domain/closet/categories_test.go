package closet

import "testing"

func TestVerifyPartition(t *testing.T) {
	if err := VerifyPartition(); err != nil {
		t.Fatalf("partition check failed: %v", err)
	}

	seen := map[Category]bool{}
	for _, c := range CoreCategories() {
		seen[c] = true
	}
	for _, c := range OptionalCategories() {
		if seen[c] {
			t.Fatalf("category %s is in both sets", c)
		}
		seen[c] = true
	}
	if len(seen) != len(AllCategories()) {
		t.Fatalf("expected %d categories across both sets, got %d", len(AllCategories()), len(seen))
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range AllCategories() {
		got, ok := ParseCategory(string(c))
		if !ok || got != c {
			t.Fatalf("expected %s to parse", c)
		}
	}

	for _, raw := range []string{"", "hats", "Tops", "tops "} {
		if _, ok := ParseCategory(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestCategoryNoun(t *testing.T) {
	for _, c := range AllCategories() {
		if c.Noun() == "" {
			t.Fatalf("category %s has no display noun", c)
		}
	}
}
