package pipeline

import (
	"fmt"
	"strings"

	"github.com/plantparty/outreach/internal/model"
)

// countryAliases maps common spellings to the provider's canonical country name.
var countryAliases = map[string]string{
	"us":                       "united states",
	"u.s.":                     "united states",
	"usa":                      "united states",
	"u.s.a.":                   "united states",
	"united states of america": "united states",
	"uk":                       "united kingdom",
	"u.k.":                     "united kingdom",
}

// BuildFilter turns roles and a location into a People Data Labs SQL filter.
// Every literal is single-quote escaped.
func BuildFilter(roles []string, loc model.Location) (string, error) {
	quoted := make([]string, 0, len(roles))
	for _, role := range roles {
		role = strings.TrimSpace(role)
		if role == "" {
			continue
		}
		quoted = append(quoted, "'"+escapeSQL(role)+"'")
	}
	if len(quoted) == 0 {
		return "", fmt.Errorf("%w: role list cannot be empty", ErrInvalidInput)
	}

	country := canonicalCountry(loc.Country)
	if country == "" {
		return "", fmt.Errorf("%w: location country is required", ErrInvalidInput)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT * FROM person WHERE location_country='%s' AND job_title IN (%s)",
		escapeSQL(country), strings.Join(quoted, ", "))

	// The provider stores location_name in its own long form, so the request's
	// spelling is only one alternative next to the locality and postal code.
	alts := make([]string, 0, 3)
	if city := strings.ToLower(strings.TrimSpace(loc.City)); city != "" {
		alts = append(alts,
			fmt.Sprintf("location_locality='%s'", escapeSQL(city)),
			fmt.Sprintf("location_name='%s'", escapeSQL(LocationName(loc))))
	}
	if postal := strings.TrimSpace(loc.PostalCode); postal != "" {
		alts = append(alts, fmt.Sprintf("location_postal_code='%s'", escapeSQL(postal)))
	}
	if len(alts) > 0 {
		fmt.Fprintf(&b, " AND (%s)", strings.Join(alts, " OR "))
	}

	return b.String(), nil
}

// LocationName renders "city, state, country" in lower case, skipping blank parts.
// It returns "" when the city is unknown, since a bare region is not a useful match.
func LocationName(loc model.Location) string {
	city := strings.TrimSpace(loc.City)
	if city == "" {
		return ""
	}
	parts := []string{city}
	for _, p := range []string{loc.State, loc.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.ToLower(strings.Join(parts, ", "))
}

func canonicalCountry(country string) string {
	c := strings.ToLower(strings.TrimSpace(country))
	if alias, ok := countryAliases[c]; ok {
		return alias
	}
	return c
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
