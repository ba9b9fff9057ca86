package shipping

import "strings"

// Zone is the shipping zone a destination falls into relative to the seller.
type Zone string

const (
	ZoneDomestic       Zone = "domestic"
	ZoneInternational1 Zone = "international_1"
	ZoneInternational2 Zone = "international_2"
	ZoneInternational3 Zone = "international_3"
)

// Zones lists every zone in classification order.
var Zones = []Zone{
	ZoneDomestic,
	ZoneInternational1,
	ZoneInternational2,
	ZoneInternational3,
}

func (z Zone) Valid() bool {
	switch z {
	case ZoneDomestic, ZoneInternational1, ZoneInternational2, ZoneInternational3:
		return true
	}
	return false
}

// countryAliases maps the 3-letter codes and English names found in legacy
// listing data onto ISO-3166 alpha-2. Keys are upper-case.
var countryAliases = map[string]string{
	"USA":                      "US",
	"UNITED STATES":            "US",
	"UNITED STATES OF AMERICA": "US",
	"CAN":                      "CA",
	"CANADA":                   "CA",
	"MEX":                      "MX",
	"MEXICO":                   "MX",
	"GBR":                      "GB",
	"UK":                       "GB",
	"UNITED KINGDOM":           "GB",
	"GREAT BRITAIN":            "GB",
	"IRL":                      "IE",
	"IRELAND":                  "IE",
	"FRA":                      "FR",
	"FRANCE":                   "FR",
	"DEU":                      "DE",
	"GERMANY":                  "DE",
	"ESP":                      "ES",
	"SPAIN":                    "ES",
	"ITA":                      "IT",
	"ITALY":                    "IT",
	"NLD":                      "NL",
	"NETHERLANDS":              "NL",
	"BEL":                      "BE",
	"BELGIUM":                  "BE",
	"LUX":                      "LU",
	"LUXEMBOURG":               "LU",
	"PRT":                      "PT",
	"PORTUGAL":                 "PT",
	"AUT":                      "AT",
	"AUSTRIA":                  "AT",
	"CHE":                      "CH",
	"SWITZERLAND":              "CH",
	"DNK":                      "DK",
	"DENMARK":                  "DK",
	"SWE":                      "SE",
	"SWEDEN":                   "SE",
	"NOR":                      "NO",
	"NORWAY":                   "NO",
	"FIN":                      "FI",
	"FINLAND":                  "FI",
	"POL":                      "PL",
	"POLAND":                   "PL",
	"CZE":                      "CZ",
	"CZECHIA":                  "CZ",
	"CZECH REPUBLIC":           "CZ",
	"GRC":                      "GR",
	"GREECE":                   "GR",
	"AUS":                      "AU",
	"AUSTRALIA":                "AU",
	"NZL":                      "NZ",
	"NEW ZEALAND":              "NZ",
	"JPN":                      "JP",
	"JAPAN":                    "JP",
	"CHN":                      "CN",
	"CHINA":                    "CN",
	"IND":                      "IN",
	"INDIA":                    "IN",
	"BRA":                      "BR",
	"BRAZIL":                   "BR",
}

// NormalizeCountry returns the alpha-2 form of a country code or name.
// Unknown values are returned trimmed and upper-cased.
func NormalizeCountry(code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	if alpha2, ok := countryAliases[c]; ok {
		return alpha2
	}
	return c
}

func normalizeSet(codes []string) map[string]struct{} {
	if len(codes) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[NormalizeCountry(c)] = struct{}{}
	}
	return set
}
