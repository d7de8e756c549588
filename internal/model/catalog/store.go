package catalog

import "sort"

// Store exposes read-only catalog retrieval to the dispatcher and HTTP handlers.
type Store interface {
	Tier(name TierName) (PricingTier, bool)
	Pricing() []PricingTier
	Vendors() []Vendor
	Categories() []string
	BrandPolicy() string
}

// MemoryStore implements Store over data loaded once at startup.
// It is never mutated after construction and may be shared across sessions.
type MemoryStore struct {
	tiers       map[TierName]PricingTier
	vendors     []Vendor
	brandPolicy string
}

// NewMemoryStore returns a MemoryStore holding copies of the supplied data.
func NewMemoryStore(pricing []PricingTier, vendors []Vendor, brandPolicy string) *MemoryStore {
	tiers := make(map[TierName]PricingTier, len(pricing))
	for _, tier := range pricing {
		tiers[tier.Name] = tier
	}
	return &MemoryStore{
		tiers:       tiers,
		vendors:     append([]Vendor(nil), vendors...),
		brandPolicy: brandPolicy,
	}
}

// Tier looks up a pricing tier by name.
func (s *MemoryStore) Tier(name TierName) (PricingTier, bool) {
	tier, ok := s.tiers[name]
	return tier, ok
}

// Pricing returns every tier in reverse name order, which puts Standard first.
func (s *MemoryStore) Pricing() []PricingTier {
	out := make([]PricingTier, 0, len(s.tiers))
	for _, tier := range s.tiers {
		out = append(out, tier)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out
}

// Vendors returns the inventory in source order.
func (s *MemoryStore) Vendors() []Vendor {
	return append([]Vendor(nil), s.vendors...)
}

// Categories returns the sorted, de-duplicated category names.
func (s *MemoryStore) Categories() []string {
	seen := make(map[string]struct{}, len(s.vendors))
	out := make([]string, 0, len(s.vendors))
	for _, v := range s.vendors {
		if _, ok := seen[v.Category]; ok {
			continue
		}
		seen[v.Category] = struct{}{}
		out = append(out, v.Category)
	}
	sort.Strings(out)
	return out
}

// BrandPolicy returns the brand policy prose.
func (s *MemoryStore) BrandPolicy() string {
	return s.brandPolicy
}
