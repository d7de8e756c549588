package catalog

import "github.com/shopspring/decimal"

// TierName keys the pricing model.
type TierName string

const (
	Standard TierName = "standard"
	Premium  TierName = "premium"
)

// Title returns the display form used in replies ("Standard", "Premium").
func (n TierName) Title() string {
	switch n {
	case Standard:
		return "Standard"
	case Premium:
		return "Premium"
	default:
		return string(n)
	}
}

// PricingTier is the advertising cost model for one plan.
type PricingTier struct {
	Name    TierName        `json:"name"`
	CPMCost decimal.Decimal `json:"cpm_cost"`
}

// Vendor is a single listing in the simulated marketplace inventory.
type Vendor struct {
	Name     string          `json:"name" validate:"required"`
	Category string          `json:"category" validate:"required"`
	Location string          `json:"location" validate:"required"`
	Verified bool            `json:"verified"`
	Rating   decimal.Decimal `json:"rating"`
}

// Seed provides the demo marketplace bundled with the prototype.
func Seed() *MemoryStore {
	return NewMemoryStore(
		[]PricingTier{
			{Name: Standard, CPMCost: decimal.RequireFromString("5.00")},
			{Name: Premium, CPMCost: decimal.RequireFromString("12.50")},
		},
		[]Vendor{
			{Name: "Maple Leaf Plumbing", Category: "Home Services", Location: "Moncton, NB", Verified: true, Rating: decimal.RequireFromString("4.8")},
			{Name: "Riverview Auto Care", Category: "Automotive", Location: "Riverview, NB", Verified: true, Rating: decimal.RequireFromString("4.5")},
			{Name: "Golden Crust Bakery", Category: "Food", Location: "Dieppe, NB", Verified: true, Rating: decimal.RequireFromString("4.9")},
			{Name: "Bright Minds Tutoring", Category: "Education", Location: "Moncton, NB", Verified: false, Rating: decimal.RequireFromString("4.2")},
			{Name: "Happy Tails Dog Walking", Category: "Pets", Location: "Shediac, NB", Verified: false, Rating: decimal.RequireFromString("3.7")},
			{Name: "Northern Lens Photography", Category: "Creative", Location: "Moncton, NB", Verified: true, Rating: decimal.RequireFromString("4.6")},
			{Name: "Iron Moose Fitness", Category: "Health", Location: "Dieppe, NB", Verified: false, Rating: decimal.RequireFromString("4")},
			{Name: "Tidewater Home Cleaning", Category: "Home Services", Location: "Sackville, NB", Verified: true, Rating: decimal.RequireFromString("4.3")},
		},
		seedBrandPolicy,
	)
}

const seedBrandPolicy = "Moosemarche exists to connect neighbours with the local businesses that keep " +
	"our communities running. We never sell personal data, we only share contact details with a " +
	"vendor after you explicitly ask to be connected, and every verified badge is earned through a " +
	"manual review of licences, insurance and customer references. Trust is the product: if a listing " +
	"falls short of our standards we remove it, and we publish how we rank vendors so nothing is hidden."
