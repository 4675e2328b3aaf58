package compliance

import "strings"

// countryCodes maps full country names (as stored on startup profiles) to
// ISO 3166-1 alpha-2 codes. The rule table is keyed by code.
var countryCodes = map[string]string{
	"india":                "IN",
	"united states":        "US",
	"united kingdom":       "GB",
	"singapore":            "SG",
	"australia":            "AU",
	"canada":               "CA",
	"germany":              "DE",
	"france":               "FR",
	"netherlands":          "NL",
	"ireland":              "IE",
	"switzerland":          "CH",
	"sweden":               "SE",
	"norway":               "NO",
	"denmark":              "DK",
	"finland":              "FI",
	"spain":                "ES",
	"italy":                "IT",
	"portugal":             "PT",
	"belgium":              "BE",
	"austria":              "AT",
	"poland":               "PL",
	"estonia":              "EE",
	"united arab emirates": "AE",
	"saudi arabia":         "SA",
	"israel":               "IL",
	"japan":                "JP",
	"south korea":          "KR",
	"china":                "CN",
	"hong kong":            "HK",
	"taiwan":               "TW",
	"indonesia":            "ID",
	"malaysia":             "MY",
	"thailand":             "TH",
	"vietnam":              "VN",
	"philippines":          "PH",
	"new zealand":          "NZ",
	"brazil":               "BR",
	"mexico":               "MX",
	"argentina":            "AR",
	"chile":                "CL",
	"south africa":         "ZA",
	"nigeria":              "NG",
	"kenya":                "KE",
	"egypt":                "EG",
	"bangladesh":           "BD",
	"sri lanka":            "LK",
	"nepal":                "NP",
	"pakistan":             "PK",
}

// codeNames is the reverse lookup, built once at init.
var codeNames = func() map[string]string {
	m := make(map[string]string, len(countryCodes))
	for name, code := range countryCodes {
		m[code] = name
	}
	return m
}()

// CountryCode resolves a full country name to its ISO alpha-2 code. The second
// return value is false when the name has no mapping; callers must surface
// that case rather than silently passing the name through.
func CountryCode(name string) (string, bool) {
	code, ok := countryCodes[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// IsCountryCode reports whether s already is a known alpha-2 code.
func IsCountryCode(s string) bool {
	_, ok := codeNames[strings.ToUpper(strings.TrimSpace(s))]
	return ok
}

// CanonicalizeEntityName normalizes an entity display name such as
// "Parent Company (India)" or "Parent Company (IN)" to a single canonical
// form, so names produced from country names and from codes compare equal.
func CanonicalizeEntityName(name string) string {
	name = strings.TrimSpace(name)
	open := strings.LastIndex(name, "(")
	close := strings.LastIndex(name, ")")
	if open == -1 || close == -1 || close < open {
		return strings.ToLower(name)
	}

	prefix := strings.TrimSpace(name[:open])
	country := strings.TrimSpace(name[open+1 : close])
	if code, ok := CountryCode(country); ok {
		country = code
	}
	return strings.ToLower(prefix) + " (" + strings.ToUpper(country) + ")"
}

// EntityDisplayName builds the display name for an entity type and country,
// preferring the alpha-2 code when the country is mappable.
func EntityDisplayName(entityType, country string) string {
	if code, ok := CountryCode(country); ok {
		return entityType + " (" + code + ")"
	}
	if IsCountryCode(country) {
		return entityType + " (" + strings.ToUpper(strings.TrimSpace(country)) + ")"
	}
	return entityType + " (" + strings.TrimSpace(country) + ")"
}
