package pipeline

import (
	"testing"

	"github.com/plantparty/outreach/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFilter(t *testing.T) {
	loc := model.Location{City: "Pembrook", State: "NC", Country: "USA", PostalCode: "28202"}

	filter, err := BuildFilter([]string{"City Planner", "Parks Director"}, loc)
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT * FROM person WHERE location_country='united states' AND job_title IN ('City Planner', 'Parks Director')"+
			" AND (location_locality='pembrook' OR location_name='pembrook, nc, usa' OR location_postal_code='28202')",
		filter)
}

func TestBuildFilter_EscapesQuotes(t *testing.T) {
	loc := model.Location{City: "O'Fallon", State: "MO", Country: "United States", PostalCode: "63366'--"}
	roles := []string{"Director of People's Programs", "Planner"}

	filter, err := BuildFilter(roles, loc)
	require.NoError(t, err)

	assert.Contains(t, filter, "'Director of People''s Programs'")
	assert.Contains(t, filter, "'Planner'")
	assert.Contains(t, filter, "o''fallon, mo, united states")
	assert.Contains(t, filter, "location_postal_code='63366''--'")
	assert.NotContains(t, filter, "People's")
}

func TestBuildFilter_LocalityVariants(t *testing.T) {
	tests := []struct {
		name string
		loc  model.Location
		want string
	}{
		{
			name: "no postal code",
			loc:  model.Location{City: "Austin", State: "TX", Country: "US"},
			want: " AND (location_locality='austin' OR location_name='austin, tx, us')",
		},
		{
			name: "postal code only",
			loc:  model.Location{Country: "Canada", PostalCode: "M5V"},
			want: " AND (location_postal_code='M5V')",
		},
		{
			name: "country only",
			loc:  model.Location{Country: "Germany"},
			want: "location_country='germany' AND job_title IN ('Planner')",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := BuildFilter([]string{"Planner"}, tt.loc)
			require.NoError(t, err)
			assert.Contains(t, filter, tt.want)
		})
	}
}

func TestBuildFilter_AbbreviatedLocationIsNotRequired(t *testing.T) {
	loc := model.Location{City: "Austin", State: "TX", Country: "USA"}

	filter, err := BuildFilter([]string{"City Planner"}, loc)
	require.NoError(t, err)

	// A record stored as "austin, texas, united states" must still match on locality.
	assert.Contains(t, filter, "location_locality='austin' OR ")
	assert.NotContains(t, filter, "AND location_name=")
	assert.Contains(t, filter, "location_name='austin, tx, usa'")
}

func TestBuildFilter_InvalidInput(t *testing.T) {
	loc := model.Location{City: "Pembrook", State: "NC", Country: "USA"}

	_, err := BuildFilter(nil, loc)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = BuildFilter([]string{"  ", ""}, loc)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = BuildFilter([]string{"Planner"}, model.Location{City: "Pembrook"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
