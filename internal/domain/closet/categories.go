package closet

import "fmt"

// Category identifies the closed set of clothing categories the scanner
// understands. Anything outside this set is rejected at the boundary.
type Category string

const (
	CategoryTops        Category = "tops"
	CategoryBottoms     Category = "bottoms"
	CategoryDresses     Category = "dresses"
	CategorySkirts      Category = "skirts"
	CategoryOuterwear   Category = "outerwear"
	CategoryShoes       Category = "shoes"
	CategoryBags        Category = "bags"
	CategoryAccessories Category = "accessories"
)

// AllCategories returns the full closed set in a stable order.
func AllCategories() []Category {
	return []Category{
		CategoryTops,
		CategoryBottoms,
		CategoryDresses,
		CategorySkirts,
		CategoryOuterwear,
		CategoryShoes,
		CategoryBags,
		CategoryAccessories,
	}
}

// CoreCategories participate in outfit formulas; a combo is only complete
// when every required core slot is filled.
func CoreCategories() []Category {
	return []Category{
		CategoryTops,
		CategoryBottoms,
		CategoryShoes,
		CategoryDresses,
		CategorySkirts,
	}
}

// OptionalCategories are finishing touches and never block completeness.
func OptionalCategories() []Category {
	return []Category{
		CategoryOuterwear,
		CategoryBags,
		CategoryAccessories,
	}
}

// ParseCategory validates an incoming category string.
func ParseCategory(raw string) (Category, bool) {
	c := Category(raw)
	for _, known := range AllCategories() {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// IsCore reports whether the category counts toward outfit completeness.
func (c Category) IsCore() bool {
	switch c {
	case CategoryTops, CategoryBottoms, CategoryShoes, CategoryDresses, CategorySkirts:
		return true
	}
	return false
}

// IsOptional reports whether the category is a finishing touch.
func (c Category) IsOptional() bool {
	switch c {
	case CategoryOuterwear, CategoryBags, CategoryAccessories:
		return true
	}
	return false
}

// Noun returns the singular display noun used in generated explanations.
func (c Category) Noun() string {
	switch c {
	case CategoryTops:
		return "top"
	case CategoryBottoms:
		return "bottom"
	case CategoryDresses:
		return "dress"
	case CategorySkirts:
		return "skirt"
	case CategoryOuterwear:
		return "layer"
	case CategoryShoes:
		return "shoes"
	case CategoryBags:
		return "bag"
	case CategoryAccessories:
		return "accessory"
	}
	return "piece"
}

// VerifyPartition checks that every category belongs to exactly one of the
// core and optional sets. Called once at startup so a new category added to
// the enum without a partition assignment fails loudly, not silently.
func VerifyPartition() error {
	for _, c := range AllCategories() {
		core := c.IsCore()
		optional := c.IsOptional()
		if core && optional {
			return fmt.Errorf("category %q is both core and optional", c)
		}
		if !core && !optional {
			return fmt.Errorf("category %q belongs to neither core nor optional", c)
		}
	}
	return nil
}
