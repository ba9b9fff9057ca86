package shipping

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	c, err := NewCalculator(DefaultTable())
	require.NoError(t, err)
	return c
}

func floatPtr(v float64) *float64 { return &v }

func TestClassifyZone(t *testing.T) {
	c := newTestCalculator(t)

	cases := []struct {
		dest, origin string
		want         Zone
	}{
		{"US", "US", ZoneDomestic},
		{"CA", "US", ZoneInternational1},
		{"MX", "US", ZoneInternational1},
		{"FR", "US", ZoneInternational2},
		{"AU", "US", ZoneInternational2},
		{"JP", "US", ZoneInternational3},
		{"ZZ", "US", ZoneInternational3},
		{"US", "CA", ZoneInternational3},
		{"usa", "US", ZoneDomestic},
		{"United Kingdom", "US", ZoneInternational2},
		{" canada ", "US", ZoneInternational1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, c.ClassifyZone(tc.dest, tc.origin), "%s from %s", tc.dest, tc.origin)
	}
}

func TestClassifyZone_SameCountryIsAlwaysDomestic(t *testing.T) {
	c := newTestCalculator(t)
	for _, country := range []string{"US", "CA", "FR", "JP", "ZZ", "", "Germany"} {
		assert.Equal(t, ZoneDomestic, c.ClassifyZone(country, country), country)
	}
}

func TestLookupRate_UnknownMethodFallsBackToStandard(t *testing.T) {
	c := newTestCalculator(t)
	for _, zone := range Zones {
		standard := c.LookupRate(zone, MethodStandard)
		for _, m := range []string{"", "overnight", "freight", "STANDARD "} {
			assert.Equal(t, standard, c.LookupRate(zone, m), "%s/%q", zone, m)
			assert.Equal(t, c.LookupDeliveryTiming(zone, MethodStandard), c.LookupDeliveryTiming(zone, m))
		}
	}
}

func TestLookupRate_CaseInsensitive(t *testing.T) {
	c := newTestCalculator(t)
	assert.Equal(t, Rate{BaseRate: 25, PerKgRate: 4}, c.LookupRate(ZoneDomestic, "EXPRESS"))
	assert.Equal(t, Rate{BaseRate: 25, PerKgRate: 4}, c.LookupRate(ZoneDomestic, "Express"))
}

func TestLookupRate_UnknownZoneUsesCatchAll(t *testing.T) {
	c := newTestCalculator(t)
	assert.Equal(t, c.LookupRate(ZoneInternational3, MethodExpress), c.LookupRate(Zone("moon"), MethodExpress))
}

func TestCalculateShippingCost_International2Standard(t *testing.T) {
	c := newTestCalculator(t)
	cost, err := c.CalculateShippingCost(CostParams{
		Product:        ProductShippingDetails{Weight: 2},
		Country:        "FR",
		SellerCountry:  "US",
		ShippingMethod: "standard",
	})
	require.NoError(t, err)
	assert.Equal(t, 44.00, cost)
}

func TestCalculateShippingCost_VolumetricWeightWins(t *testing.T) {
	c := newTestCalculator(t)
	cost, err := c.CalculateShippingCost(CostParams{
		Product: ProductShippingDetails{
			Weight:     1,
			Dimensions: &PackageDimensions{Length: 50, Width: 40, Height: 30},
		},
		Country:        "US",
		SellerCountry:  "US",
		ShippingMethod: "express",
	})
	require.NoError(t, err)
	assert.Equal(t, 73.00, cost)
}

func TestCalculateShippingCost_QuantityScalesWeight(t *testing.T) {
	c := newTestCalculator(t)
	cost, err := c.CalculateShippingCost(CostParams{
		Product:        ProductShippingDetails{Weight: 1.5},
		Country:        "CA",
		SellerCountry:  "US",
		ShippingMethod: "standard",
		Quantity:       3,
	})
	require.NoError(t, err)
	// 20 + 5 * 4.5
	assert.Equal(t, 42.50, cost)
}

func TestCalculateShippingCost_ZeroQuantityDefaultsToOne(t *testing.T) {
	c := newTestCalculator(t)
	p := CostParams{Product: ProductShippingDetails{Weight: 2}, Country: "FR", SellerCountry: "US"}
	zero, err := c.CalculateShippingCost(p)
	require.NoError(t, err)
	p.Quantity = 1
	one, err := c.CalculateShippingCost(p)
	require.NoError(t, err)
	assert.Equal(t, one, zero)
}

func TestCalculateShippingCost_Restricted(t *testing.T) {
	c := newTestCalculator(t)
	_, err := c.CalculateShippingCost(CostParams{
		Product: ProductShippingDetails{
			Weight:                2,
			RestrictedCountries:   []string{"AU", "nzl"},
			CustomShippingRates:   map[string]float64{"AU": 5},
			FreeShippingThreshold: floatPtr(0),
		},
		Country:       "NZ",
		SellerCountry: "US",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShippingUnavailable))

	var rde *RestrictedDestinationError
	require.True(t, errors.As(err, &rde))
	assert.Equal(t, "NZ", rde.Country)
	assert.Contains(t, err.Error(), "NZ")
}

func TestCalculateShippingCost_CustomRateOverride(t *testing.T) {
	c := newTestCalculator(t)
	for _, weight := range []float64{0.1, 5, 80} {
		cost, err := c.CalculateShippingCost(CostParams{
			Product: ProductShippingDetails{
				Weight:                weight,
				Dimensions:            &PackageDimensions{Length: 100, Width: 100, Height: 100},
				CustomShippingRates:   map[string]float64{"de": 12.5},
				FreeShippingThreshold: floatPtr(10),
			},
			Country:       "Germany",
			SellerCountry: "US",
			OrderValue:    500,
			Quantity:      2,
		})
		require.NoError(t, err)
		assert.Equal(t, 25.0, cost)
	}
}

func TestCalculateShippingCost_FreeShippingThreshold(t *testing.T) {
	c := newTestCalculator(t)
	p := CostParams{
		Product: ProductShippingDetails{
			Weight:                30,
			Dimensions:            &PackageDimensions{Length: 120, Width: 80, Height: 60},
			FreeShippingThreshold: floatPtr(150),
		},
		Country:        "JP",
		SellerCountry:  "US",
		ShippingMethod: "express",
		OrderValue:     150,
		Quantity:       4,
	}
	cost, err := c.CalculateShippingCost(p)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cost)

	p.OrderValue = 149.99
	cost, err = c.CalculateShippingCost(p)
	require.NoError(t, err)
	assert.Greater(t, cost, 0.0)
}

func TestCalculateShippingCost_NoThresholdMeansNoFreeShipping(t *testing.T) {
	c := newTestCalculator(t)
	cost, err := c.CalculateShippingCost(CostParams{
		Product:       ProductShippingDetails{Weight: 1},
		Country:       "US",
		SellerCountry: "US",
		OrderValue:    1e6,
	})
	require.NoError(t, err)
	assert.Equal(t, 12.0, cost)
}

func TestCalculateShippingCost_RoundsToCents(t *testing.T) {
	c := newTestCalculator(t)
	cost, err := c.CalculateShippingCost(CostParams{
		Product:       ProductShippingDetails{Weight: 0.333},
		Country:       "FR",
		SellerCountry: "US",
	})
	require.NoError(t, err)
	// 30 + 7 * 0.333 = 32.331
	assert.Equal(t, 32.33, cost)
	assert.Equal(t, cost, math.Round(cost*100)/100)
}

func TestCalculateShippingCost_Idempotent(t *testing.T) {
	c := newTestCalculator(t)
	p := CostParams{
		Product:        ProductShippingDetails{Weight: 3.7, Dimensions: &PackageDimensions{Length: 33, Width: 21, Height: 17}},
		Country:        "BR",
		SellerCountry:  "GB",
		ShippingMethod: "express",
		Quantity:       2,
	}
	first, err := c.CalculateShippingCost(p)
	require.NoError(t, err)
	second, err := c.CalculateShippingCost(p)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalculateShippingCost_MonotonicInWeight(t *testing.T) {
	c := newTestCalculator(t)
	dims := &PackageDimensions{Length: 10, Width: 10, Height: 10} // 0.2 kg volumetric
	prev := -1.0
	for w := 0.5; w <= 20; w += 0.5 {
		cost, err := c.CalculateShippingCost(CostParams{
			Product:       ProductShippingDetails{Weight: w, Dimensions: dims},
			Country:       "CA",
			SellerCountry: "US",
		})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, cost, prev, "weight %v", w)
		prev = cost
	}
}

func TestCalculateVolumetricWeight(t *testing.T) {
	cases := [][3]float64{{50, 40, 30}, {0, 10, 10}, {1, 1, 1}, {12.5, 7.25, 3}}
	for _, tc := range cases {
		assert.InDelta(t, tc[0]*tc[1]*tc[2]/5000, CalculateVolumetricWeight(tc[0], tc[1], tc[2]), 1e-12)
	}
	assert.Equal(t, 12.0, CalculateVolumetricWeight(50, 40, 30))
}

func TestEstimateDeliveryTime(t *testing.T) {
	c := newTestCalculator(t)
	assert.Equal(t, DeliveryTiming{MinDays: 3, MaxDays: 5}, c.EstimateDeliveryTime("CA", "US", "express"))
	assert.Equal(t, DeliveryTiming{MinDays: 3, MaxDays: 7}, c.EstimateDeliveryTime("US", "US", "carrier-pigeon"))
	assert.Equal(t, DeliveryTiming{MinDays: 14, MaxDays: 30}, c.EstimateDeliveryTime("XX", "US", "standard"))
}

func TestAvailableMethods(t *testing.T) {
	c := newTestCalculator(t)
	product := ProductShippingDetails{Weight: 1, RestrictedCountries: []string{"CN"}}

	assert.Equal(t, []string{"standard", "express"}, c.AvailableMethods("FR", "US", product))
	assert.Empty(t, c.AvailableMethods("China", "US", product))
	assert.NotNil(t, c.AvailableMethods("CN", "US", product))
}

func TestQuote(t *testing.T) {
	c := newTestCalculator(t)
	q, err := c.Quote(CostParams{
		Product:        ProductShippingDetails{Weight: 2},
		Country:        "FR",
		SellerCountry:  "US",
		ShippingMethod: "teleport",
	})
	require.NoError(t, err)
	assert.Equal(t, ZoneInternational2, q.Zone)
	assert.Equal(t, MethodStandard, q.Method)
	assert.Equal(t, 44.0, q.Cost)
	assert.Equal(t, DeliveryTiming{MinDays: 10, MaxDays: 21}, q.Delivery)

	_, err = c.Quote(CostParams{
		Product:       ProductShippingDetails{Weight: 2, RestrictedCountries: []string{"FR"}},
		Country:       "FR",
		SellerCountry: "US",
	})
	assert.ErrorIs(t, err, ErrShippingUnavailable)
}

func TestCostParams_Validate(t *testing.T) {
	ok := CostParams{Product: ProductShippingDetails{Weight: 1}, Country: "FR", SellerCountry: "US"}
	require.NoError(t, ok.Validate())

	bad := []CostParams{
		{Product: ProductShippingDetails{Weight: -1}, Country: "FR", SellerCountry: "US"},
		{Product: ProductShippingDetails{Weight: math.NaN()}, Country: "FR", SellerCountry: "US"},
		{Product: ProductShippingDetails{Weight: 1, Dimensions: &PackageDimensions{Length: -2}}, Country: "FR", SellerCountry: "US"},
		{Product: ProductShippingDetails{Weight: 1}, Country: "", SellerCountry: "US"},
		{Product: ProductShippingDetails{Weight: 1}, Country: "FR", SellerCountry: ""},
		{Product: ProductShippingDetails{Weight: 1}, Country: "FR", SellerCountry: "US", Quantity: -1},
		{Product: ProductShippingDetails{Weight: 1}, Country: "FR", SellerCountry: "US", OrderValue: -5},
		{Product: ProductShippingDetails{Weight: 1, CustomShippingRates: map[string]float64{"FR": -1}}, Country: "FR", SellerCountry: "US"},
		{Product: ProductShippingDetails{Weight: 1, FreeShippingThreshold: floatPtr(math.Inf(1))}, Country: "FR", SellerCountry: "US"},
	}
	for i, p := range bad {
		assert.Error(t, p.Validate(), "case %d", i)
	}
}

func TestProductShippingDetails_Normalized(t *testing.T) {
	d := ProductShippingDetails{
		Weight:              1,
		RestrictedCountries: []string{"usa", "US", "Canada"},
		CustomShippingRates: map[string]float64{"gbr": 9},
	}.Normalized()

	assert.Equal(t, []string{"CA", "US"}, d.RestrictedCountries)
	assert.Equal(t, map[string]float64{"GB": 9}, d.CustomShippingRates)
}

func TestProductShippingDetails_AliasCollision(t *testing.T) {
	d := ProductShippingDetails{Weight: 1, CustomShippingRates: map[string]float64{"US": 5, "USA": 7}}
	assert.Error(t, d.Validate())
	assert.Error(t, CostParams{Product: d, Country: "US", SellerCountry: "CA"}.Validate())

	// unvalidated input still prices deterministically, exact code first
	c := newTestCalculator(t)
	for i := 0; i < 50; i++ {
		cost, err := c.CalculateShippingCost(CostParams{Product: d, Country: "usa", SellerCountry: "CA"})
		require.NoError(t, err)
		assert.Equal(t, 5.0, cost)
	}
}

func TestCalculator_ConcurrentUse(t *testing.T) {
	c := newTestCalculator(t)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cost, err := c.CalculateShippingCost(CostParams{
				Product:       ProductShippingDetails{Weight: 2},
				Country:       "FR",
				SellerCountry: "US",
			})
			assert.NoError(t, err)
			assert.Equal(t, 44.0, cost)
		}()
	}
	wg.Wait()
}

func TestCalculator_InjectedTable(t *testing.T) {
	table := DefaultTable()
	table.Methods[ZoneInternational2][MethodStandard] = MethodConfig{Rate{1, 1}, DeliveryTiming{1, 2}}
	c, err := NewCalculator(table)
	require.NoError(t, err)

	cost, err := c.CalculateShippingCost(CostParams{Product: ProductShippingDetails{Weight: 2}, Country: "FR", SellerCountry: "US"})
	require.NoError(t, err)
	assert.Equal(t, 3.0, cost)
}

func TestNewCalculator_NormalizesInjectedTable(t *testing.T) {
	split := DefaultTable()
	split.Zones[ZoneInternational1] = append(split.Zones[ZoneInternational1], "USA")
	split.Zones[ZoneInternational2] = append(split.Zones[ZoneInternational2], "US")
	_, err := NewCalculator(split)
	assert.Error(t, err)

	mixed := DefaultTable()
	delete(mixed.Methods[ZoneDomestic], MethodExpress)
	mixed.Methods[ZoneDomestic]["Express"] = MethodConfig{Rate{25, 4}, DeliveryTiming{1, 3}}
	c, err := NewCalculator(mixed)
	require.NoError(t, err)
	assert.Equal(t, Rate{BaseRate: 25, PerKgRate: 4}, c.LookupRate(ZoneDomestic, "express"))
	assert.Equal(t, []string{"standard", "express"}, c.AvailableMethods("US", "US", ProductShippingDetails{}))
	assert.Contains(t, mixed.Methods[ZoneDomestic], "Express", "caller's table is left untouched")

	dup := DefaultTable()
	dup.Methods[ZoneDomestic]["EXPRESS"] = MethodConfig{Rate{99, 9}, DeliveryTiming{1, 2}}
	_, err = NewCalculator(dup)
	assert.Error(t, err)
}

func TestZones(t *testing.T) {
	c := newTestCalculator(t)
	zones := c.Zones()
	require.Len(t, zones, 4)
	assert.Equal(t, ZoneDomestic, zones[0].Zone)
	assert.Empty(t, zones[0].Countries)
	assert.Contains(t, zones[2].Countries, "FR")
	assert.Equal(t, 30.0, zones[2].Methods[MethodStandard].BaseRate)
}
