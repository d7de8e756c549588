package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var (
	ErrCatalogMissing = errors.New("catalog data files not found")
	ErrInvalidCatalog = errors.New("invalid catalog data")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var maxRating = decimal.NewFromInt(5)

// document mirrors simulation_config.json.
type document struct {
	PricingModel    map[TierName]PricingTier `json:"pricing_model"`
	VendorInventory []Vendor                 `json:"vendor_inventory" validate:"dive"`
}

// Load reads the simulation config and the brand policy text. Both files are
// required; any failure here is meant to abort startup.
func Load(configPath, brandPath string) (*MemoryStore, error) {
	raw, err := readRequired(configPath)
	if err != nil {
		return nil, err
	}
	brand, err := readRequired(brandPath)
	if err != nil {
		return nil, err
	}
	return Parse(raw, string(brand))
}

// Parse decodes and validates an in-memory simulation config.
func Parse(raw []byte, brandPolicy string) (*MemoryStore, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode simulation config: %v", ErrInvalidCatalog, err)
	}

	if err := validator.New().Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	for i, v := range doc.VendorInventory {
		if v.Rating.IsNegative() || v.Rating.GreaterThan(maxRating) {
			return nil, fmt.Errorf("%w: vendor_inventory[%d].rating must be between 0 and 5", ErrInvalidCatalog, i)
		}
	}

	pricing := make([]PricingTier, 0, len(doc.PricingModel))
	for _, name := range []TierName{Standard, Premium} {
		tier, ok := doc.PricingModel[name]
		if !ok {
			return nil, fmt.Errorf("%w: pricing_model.%s is missing", ErrInvalidCatalog, name)
		}
		if tier.CPMCost.IsNegative() {
			return nil, fmt.Errorf("%w: pricing_model.%s.cpm_cost must not be negative", ErrInvalidCatalog, name)
		}
		tier.Name = name
		pricing = append(pricing, tier)
	}

	if strings.TrimSpace(brandPolicy) == "" {
		return nil, fmt.Errorf("%w: brand policy is empty", ErrInvalidCatalog)
	}

	return NewMemoryStore(pricing, doc.VendorInventory, brandPolicy), nil
}

func readRequired(path string) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty path", ErrCatalogMissing)
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrCatalogMissing, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, nil
}
