package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const validConfig = `{
  "pricing_model": {
    "standard": { "cpm_cost": 4.5 },
    "premium": { "cpm_cost": 11 }
  },
  "vendor_inventory": [
    { "name": "B Bakery", "category": "Food", "location": "Dieppe", "verified": true, "rating": 4.1 },
    { "name": "A Auto", "category": "Automotive", "location": "Moncton", "verified": false, "rating": 3 },
    { "name": "C Cafe", "category": "Food", "location": "Moncton", "verified": true, "rating": 5 }
  ]
}`

func writeFiles(t *testing.T, config, brand string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	configPath := filepath.Join(dir, "simulation_config.json")
	brandPath := filepath.Join(dir, "brand_data.txt")
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o600))
	require.NoError(t, os.WriteFile(brandPath, []byte(brand), 0o600))
	return configPath, brandPath
}

func TestLoad_HappyPath(t *testing.T) {
	configPath, brandPath := writeFiles(t, validConfig, "We value trust.")

	store, err := Load(configPath, brandPath)
	require.NoError(t, err)

	std, ok := store.Tier(Standard)
	require.True(t, ok)
	require.True(t, std.CPMCost.Equal(decimal.RequireFromString("4.5")))
	require.Equal(t, Standard, std.Name)

	prem, ok := store.Tier(Premium)
	require.True(t, ok)
	require.True(t, prem.CPMCost.Equal(decimal.NewFromInt(11)))

	require.Len(t, store.Vendors(), 3)
	require.Equal(t, "B Bakery", store.Vendors()[0].Name)
	require.Equal(t, "We value trust.", store.BrandPolicy())
}

func TestLoad_MissingFiles(t *testing.T) {
	configPath, brandPath := writeFiles(t, validConfig, "policy")

	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), brandPath)
	require.ErrorIs(t, err, ErrCatalogMissing)

	_, err = Load(configPath, filepath.Join(t.TempDir(), "nope.txt"))
	require.ErrorIs(t, err, ErrCatalogMissing)

	_, err = Load("", brandPath)
	require.ErrorIs(t, err, ErrCatalogMissing)
}

func TestParse_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		config string
		brand  string
		want   string
	}{
		{name: "malformed json", config: `{`, brand: "p", want: "decode"},
		{name: "missing premium", config: `{"pricing_model":{"standard":{"cpm_cost":1}},"vendor_inventory":[]}`, brand: "p", want: "premium"},
		{name: "negative cpm", config: `{"pricing_model":{"standard":{"cpm_cost":-1},"premium":{"cpm_cost":2}},"vendor_inventory":[]}`, brand: "p", want: "negative"},
		{name: "rating out of range", config: `{"pricing_model":{"standard":{"cpm_cost":1},"premium":{"cpm_cost":2}},"vendor_inventory":[{"name":"x","category":"y","location":"z","rating":7}]}`, brand: "p", want: "rating must be between"},
		{name: "vendor without name", config: `{"pricing_model":{"standard":{"cpm_cost":1},"premium":{"cpm_cost":2}},"vendor_inventory":[{"category":"y","location":"z","rating":2}]}`, brand: "p", want: "Name"},
		{name: "empty brand", config: validConfig, brand: "  \n", want: "brand policy"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.config), tc.brand)
			require.ErrorIs(t, err, ErrInvalidCatalog)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestMemoryStore_CategoriesSortedAndDistinct(t *testing.T) {
	store, err := Parse([]byte(validConfig), "policy")
	require.NoError(t, err)
	require.Equal(t, []string{"Automotive", "Food"}, store.Categories())
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := Seed()
	vendors := store.Vendors()
	vendors[0].Name = "mutated"
	require.NotEqual(t, "mutated", store.Vendors()[0].Name)
}

func TestMemoryStore_PricingStandardFirst(t *testing.T) {
	pricing := Seed().Pricing()
	require.Len(t, pricing, 2)
	require.Equal(t, Standard, pricing[0].Name)
	require.Equal(t, Premium, pricing[1].Name)
}

func TestSeedMatchesBundledData(t *testing.T) {
	store, err := Load(filepath.Join("..", "..", "..", "data", "simulation_config.json"), filepath.Join("..", "..", "..", "data", "brand_data.txt"))
	require.NoError(t, err)

	seed := Seed()
	require.Equal(t, seed.Vendors(), store.Vendors())
	require.Equal(t, seed.Categories(), store.Categories())
	for _, name := range []TierName{Standard, Premium} {
		want, _ := seed.Tier(name)
		got, _ := store.Tier(name)
		require.True(t, want.CPMCost.Equal(got.CPMCost), "tier %s", name)
	}
}

func TestTierNameTitle(t *testing.T) {
	require.Equal(t, "Standard", Standard.Title())
	require.Equal(t, "Premium", Premium.Title())
	require.Equal(t, "custom", TierName("custom").Title())
}
