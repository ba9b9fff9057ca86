package shipping

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	MethodStandard = "standard"
	MethodExpress  = "express"
)

// Rate is the flat base charge plus the per-kilogram charge for one zone and method.
type Rate struct {
	BaseRate  float64 `json:"baseRate" yaml:"baseRate"`
	PerKgRate float64 `json:"perKgRate" yaml:"perKgRate"`
}

// DeliveryTiming is an inclusive range of business days.
type DeliveryTiming struct {
	MinDays int `json:"minDays" yaml:"minDays"`
	MaxDays int `json:"maxDays" yaml:"maxDays"`
}

type MethodConfig struct {
	Rate           `yaml:",inline"`
	DeliveryTiming `yaml:",inline"`
}

// Table holds the zone membership lists and the per zone/method pricing.
// It is read-only once handed to NewCalculator.
type Table struct {
	Zones   map[Zone][]string                `json:"zones" yaml:"zones"`
	Methods map[Zone]map[string]MethodConfig `json:"methods" yaml:"methods"`
}

// DefaultTable returns the built-in rate table.
func DefaultTable() *Table {
	return &Table{
		Zones: map[Zone][]string{
			ZoneInternational1: {"CA", "MX"},
			ZoneInternational2: {
				"GB", "IE", "FR", "DE", "ES", "IT", "NL", "BE", "LU", "PT", "AT",
				"CH", "DK", "SE", "NO", "FI", "PL", "CZ", "GR", "AU", "NZ",
			},
		},
		Methods: map[Zone]map[string]MethodConfig{
			ZoneDomestic: {
				MethodStandard: {Rate{10, 2}, DeliveryTiming{3, 7}},
				MethodExpress:  {Rate{25, 4}, DeliveryTiming{1, 3}},
			},
			ZoneInternational1: {
				MethodStandard: {Rate{20, 5}, DeliveryTiming{7, 14}},
				MethodExpress:  {Rate{40, 8}, DeliveryTiming{3, 5}},
			},
			ZoneInternational2: {
				MethodStandard: {Rate{30, 7}, DeliveryTiming{10, 21}},
				MethodExpress:  {Rate{55, 12}, DeliveryTiming{5, 8}},
			},
			ZoneInternational3: {
				MethodStandard: {Rate{45, 10}, DeliveryTiming{14, 30}},
				MethodExpress:  {Rate{80, 15}, DeliveryTiming{7, 12}},
			},
		},
	}
}

// LoadTable reads a YAML rate table from path and validates it.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rate table: %w", err)
	}
	return ParseTable(data)
}

func ParseTable(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("unmarshal rate table: %w", err)
	}
	n, err := t.normalized()
	if err != nil {
		return nil, err
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

// normalized returns a deep copy with country lists in alpha-2 form and
// method keys lower-cased. Method keys that collide after lower-casing are an error.
func (t *Table) normalized() (*Table, error) {
	out := &Table{
		Zones:   make(map[Zone][]string, len(t.Zones)),
		Methods: make(map[Zone]map[string]MethodConfig, len(t.Methods)),
	}
	for zone, countries := range t.Zones {
		list := make([]string, 0, len(countries))
		for _, c := range countries {
			list = append(list, NormalizeCountry(c))
		}
		out.Zones[zone] = list
	}
	for zone, methods := range t.Methods {
		lowered := make(map[string]MethodConfig, len(methods))
		for name, cfg := range methods {
			key := strings.ToLower(strings.TrimSpace(name))
			if _, dup := lowered[key]; dup {
				return nil, fmt.Errorf("rate table: method %q listed twice in %s", key, zone)
			}
			lowered[key] = cfg
		}
		out.Methods[zone] = lowered
	}
	return out, nil
}

func (t *Table) Validate() error {
	seen := make(map[string]Zone)
	for zone, countries := range t.Zones {
		if !zone.Valid() {
			return fmt.Errorf("rate table: unknown zone %q", zone)
		}
		if zone == ZoneDomestic || zone == ZoneInternational3 {
			if len(countries) > 0 {
				return fmt.Errorf("rate table: zone %s cannot list countries", zone)
			}
			continue
		}
		for _, c := range countries {
			if c == "" {
				return fmt.Errorf("rate table: empty country code in %s", zone)
			}
			if prev, dup := seen[c]; dup && prev != zone {
				return fmt.Errorf("rate table: country %s listed in both %s and %s", c, prev, zone)
			}
			seen[c] = zone
		}
	}

	for _, zone := range Zones {
		methods, ok := t.Methods[zone]
		if !ok {
			return fmt.Errorf("rate table: zone %s has no methods", zone)
		}
		if _, ok := methods[MethodStandard]; !ok {
			return fmt.Errorf("rate table: zone %s is missing the %s method", zone, MethodStandard)
		}
		for name, cfg := range methods {
			if name == "" {
				return fmt.Errorf("rate table: empty method name in %s", zone)
			}
			if invalidAmount(cfg.BaseRate) || invalidAmount(cfg.PerKgRate) {
				return fmt.Errorf("rate table: %s/%s has a negative or non-finite rate", zone, name)
			}
			if cfg.MinDays < 0 || cfg.MaxDays < cfg.MinDays {
				return fmt.Errorf("rate table: %s/%s has invalid delivery days %d-%d", zone, name, cfg.MinDays, cfg.MaxDays)
			}
		}
	}
	for zone := range t.Methods {
		if !zone.Valid() {
			return fmt.Errorf("rate table: unknown zone %q", zone)
		}
	}
	return nil
}

// methodNames returns the zone's methods with standard and express first.
func (t *Table) methodNames(zone Zone) []string {
	methods := t.Methods[zone]
	names := make([]string, 0, len(methods))
	for _, known := range []string{MethodStandard, MethodExpress} {
		if _, ok := methods[known]; ok {
			names = append(names, known)
		}
	}
	var extra []string
	for name := range methods {
		if name != MethodStandard && name != MethodExpress {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

func invalidAmount(v float64) bool {
	return v < 0 || math.IsNaN(v) || math.IsInf(v, 0)
}
