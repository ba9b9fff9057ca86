// Package shipping estimates shipping cost and delivery time for marketplace
// listings from a static zone/rate table. It performs no I/O; a Calculator is
// immutable and safe for concurrent use.
package shipping

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// VolumetricDivisor converts cubic centimeters to volumetric kilograms.
const VolumetricDivisor = 5000.0

// ErrShippingUnavailable is returned when a product cannot ship to the destination.
var ErrShippingUnavailable = errors.New("shipping not available")

// RestrictedDestinationError names the destination a product is restricted from.
type RestrictedDestinationError struct {
	Country string
}

func (e *RestrictedDestinationError) Error() string {
	return fmt.Sprintf("shipping not available to %s", e.Country)
}

func (e *RestrictedDestinationError) Unwrap() error { return ErrShippingUnavailable }

// PackageDimensions are in centimeters.
type PackageDimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ProductShippingDetails describes how a single unit of a product ships.
// Weight is required and in kilograms; everything else is optional.
type ProductShippingDetails struct {
	Weight                float64            `json:"weight"`
	Dimensions            *PackageDimensions `json:"dimensions,omitempty"`
	RestrictedCountries   []string           `json:"restrictedCountries,omitempty"`
	FreeShippingThreshold *float64           `json:"freeShippingThreshold,omitempty"`
	CustomShippingRates   map[string]float64 `json:"customShippingRates,omitempty"`
}

// Validate rejects negative or non-finite measurements and rates.
func (d ProductShippingDetails) Validate() error {
	if invalidAmount(d.Weight) {
		return fmt.Errorf("weight must be a non-negative number")
	}
	if d.Dimensions != nil {
		if invalidAmount(d.Dimensions.Length) || invalidAmount(d.Dimensions.Width) || invalidAmount(d.Dimensions.Height) {
			return fmt.Errorf("dimensions must be non-negative numbers")
		}
	}
	if d.FreeShippingThreshold != nil && invalidAmount(*d.FreeShippingThreshold) {
		return fmt.Errorf("free shipping threshold must be a non-negative number")
	}
	seen := make(map[string]string, len(d.CustomShippingRates))
	for country, rate := range d.CustomShippingRates {
		if strings.TrimSpace(country) == "" {
			return fmt.Errorf("custom shipping rate has an empty country code")
		}
		if invalidAmount(rate) {
			return fmt.Errorf("custom shipping rate for %s must be a non-negative number", country)
		}
		code := NormalizeCountry(country)
		if prev, dup := seen[code]; dup {
			return fmt.Errorf("custom shipping rates %q and %q both name %s", prev, country, code)
		}
		seen[code] = country
	}
	return nil
}

// Normalized returns a copy with every country code in alpha-2 form.
func (d ProductShippingDetails) Normalized() ProductShippingDetails {
	out := d
	if len(d.RestrictedCountries) > 0 {
		out.RestrictedCountries = make([]string, 0, len(d.RestrictedCountries))
		for c := range normalizeSet(d.RestrictedCountries) {
			out.RestrictedCountries = append(out.RestrictedCountries, c)
		}
		sort.Strings(out.RestrictedCountries)
	}
	if len(d.CustomShippingRates) > 0 {
		out.CustomShippingRates = make(map[string]float64, len(d.CustomShippingRates))
		for c, rate := range d.CustomShippingRates {
			out.CustomShippingRates[NormalizeCountry(c)] = rate
		}
	}
	return out
}

func (d ProductShippingDetails) restricted(country string) bool {
	for _, c := range d.RestrictedCountries {
		if NormalizeCountry(c) == country {
			return true
		}
	}
	return false
}

// customRate prefers an exact alpha-2 key, then the first alias in key order.
func (d ProductShippingDetails) customRate(country string) (float64, bool) {
	if rate, ok := d.CustomShippingRates[country]; ok {
		return rate, true
	}
	keys := make([]string, 0, len(d.CustomShippingRates))
	for c := range d.CustomShippingRates {
		keys = append(keys, c)
	}
	sort.Strings(keys)
	for _, c := range keys {
		if NormalizeCountry(c) == country {
			return d.CustomShippingRates[c], true
		}
	}
	return 0, false
}

// CostParams are the inputs of a single cost calculation.
// Quantity <= 0 is treated as 1.
type CostParams struct {
	Product        ProductShippingDetails `json:"product"`
	Country        string                 `json:"country"`
	SellerCountry  string                 `json:"sellerCountry"`
	ShippingMethod string                 `json:"shippingMethod"`
	OrderValue     float64                `json:"orderValue"`
	Quantity       int                    `json:"quantity"`
}

func (p CostParams) Validate() error {
	if strings.TrimSpace(p.Country) == "" {
		return fmt.Errorf("destination country is required")
	}
	if strings.TrimSpace(p.SellerCountry) == "" {
		return fmt.Errorf("seller country is required")
	}
	if invalidAmount(p.OrderValue) {
		return fmt.Errorf("order value must be a non-negative number")
	}
	if p.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	return p.Product.Validate()
}

func (p CostParams) quantity() int {
	if p.Quantity <= 0 {
		return 1
	}
	return p.Quantity
}

// Quote bundles the cost and delivery estimate of one calculation.
type Quote struct {
	Zone     Zone           `json:"zone"`
	Method   string         `json:"method"`
	Cost     float64        `json:"cost"`
	Delivery DeliveryTiming `json:"delivery"`
}

type Calculator struct {
	table *Table
	zones map[string]Zone
}

// NewCalculator normalizes a copy of t, validates it and indexes its country
// lists. A nil table selects DefaultTable.
func NewCalculator(t *Table) (*Calculator, error) {
	if t == nil {
		t = DefaultTable()
	}
	t, err := t.normalized()
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	index := make(map[string]Zone)
	for _, zone := range []Zone{ZoneInternational1, ZoneInternational2} {
		for _, c := range t.Zones[zone] {
			c = NormalizeCountry(c)
			if _, ok := index[c]; !ok {
				index[c] = zone
			}
		}
	}
	return &Calculator{table: t, zones: index}, nil
}

// MustNewCalculator is NewCalculator for tables known to be valid.
func MustNewCalculator(t *Table) *Calculator {
	c, err := NewCalculator(t)
	if err != nil {
		panic(err)
	}
	return c
}

// ClassifyZone maps a destination to a zone relative to the origin country.
// Unknown destinations fall into international_3.
func (c *Calculator) ClassifyZone(destination, origin string) Zone {
	dest := NormalizeCountry(destination)
	if dest == NormalizeCountry(origin) {
		return ZoneDomestic
	}
	if zone, ok := c.zones[dest]; ok {
		return zone
	}
	return ZoneInternational3
}

// resolve finds the method config, falling back to standard for unknown
// methods and to international_3 for zones absent from the table.
func (c *Calculator) resolve(zone Zone, method string) (string, MethodConfig) {
	methods, ok := c.table.Methods[zone]
	if !ok {
		methods = c.table.Methods[ZoneInternational3]
	}
	name := strings.ToLower(strings.TrimSpace(method))
	if cfg, ok := methods[name]; ok {
		return name, cfg
	}
	return MethodStandard, methods[MethodStandard]
}

func (c *Calculator) LookupRate(zone Zone, method string) Rate {
	_, cfg := c.resolve(zone, method)
	return cfg.Rate
}

func (c *Calculator) LookupDeliveryTiming(zone Zone, method string) DeliveryTiming {
	_, cfg := c.resolve(zone, method)
	return cfg.DeliveryTiming
}

// CalculateShippingCost returns the shipping charge for p, or a
// *RestrictedDestinationError when the product cannot ship there.
func (c *Calculator) CalculateShippingCost(p CostParams) (float64, error) {
	dest := NormalizeCountry(p.Country)
	qty := float64(p.quantity())

	// 1. Restricted destinations never get a price
	if p.Product.restricted(dest) {
		return 0, &RestrictedDestinationError{Country: dest}
	}

	// 2. Per-destination flat rate overrides everything else
	if rate, ok := p.Product.customRate(dest); ok {
		return rate * qty, nil
	}

	// 3. Free shipping threshold
	if t := p.Product.FreeShippingThreshold; t != nil && p.OrderValue >= *t {
		return 0, nil
	}

	// 4. Zone rate
	rate := c.LookupRate(c.ClassifyZone(dest, p.SellerCountry), p.ShippingMethod)

	// 5-7. Chargeable weight
	totalWeight := p.Product.Weight * qty
	volumetricWeight := 0.0
	if d := p.Product.Dimensions; d != nil {
		volumetricWeight = CalculateVolumetricWeight(d.Length, d.Width, d.Height) * qty
	}
	chargeable := math.Max(totalWeight, volumetricWeight)

	// 8. Round to cents
	return round2(rate.BaseRate + rate.PerKgRate*chargeable), nil
}

// Quote runs CalculateShippingCost and attaches the zone, the method that was
// actually priced and the delivery estimate.
func (c *Calculator) Quote(p CostParams) (*Quote, error) {
	cost, err := c.CalculateShippingCost(p)
	if err != nil {
		return nil, err
	}
	zone := c.ClassifyZone(p.Country, p.SellerCountry)
	method, cfg := c.resolve(zone, p.ShippingMethod)
	return &Quote{
		Zone:     zone,
		Method:   method,
		Cost:     cost,
		Delivery: cfg.DeliveryTiming,
	}, nil
}

func (c *Calculator) EstimateDeliveryTime(destination, origin, method string) DeliveryTiming {
	return c.LookupDeliveryTiming(c.ClassifyZone(destination, origin), method)
}

// AvailableMethods lists the methods that can ship product to destination.
// The list is empty when the destination is restricted.
func (c *Calculator) AvailableMethods(destination, origin string, product ProductShippingDetails) []string {
	if product.restricted(NormalizeCountry(destination)) {
		return []string{}
	}
	zone := c.ClassifyZone(destination, origin)
	if _, ok := c.table.Methods[zone]; !ok {
		zone = ZoneInternational3
	}
	return c.table.methodNames(zone)
}

// ZoneSummary describes one zone for clients that render rate cards.
type ZoneSummary struct {
	Zone      Zone                    `json:"zone"`
	Countries []string                `json:"countries"`
	Methods   map[string]MethodConfig `json:"methods"`
}

func (c *Calculator) Zones() []ZoneSummary {
	out := make([]ZoneSummary, 0, len(Zones))
	for _, zone := range Zones {
		countries := append([]string(nil), c.table.Zones[zone]...)
		if countries == nil {
			countries = []string{}
		}
		methods := make(map[string]MethodConfig, len(c.table.Methods[zone]))
		for name, cfg := range c.table.Methods[zone] {
			methods[name] = cfg
		}
		out = append(out, ZoneSummary{Zone: zone, Countries: countries, Methods: methods})
	}
	return out
}

// CalculateVolumetricWeight returns the volumetric weight in kilograms of a
// package measured in centimeters.
func CalculateVolumetricWeight(length, width, height float64) float64 {
	return (length * width * height) / VolumetricDivisor
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
