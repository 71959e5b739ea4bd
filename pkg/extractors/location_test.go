package extractors

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igposts/pkg/models"
)

func TestExtractLocationExplicitNullWins(t *testing.T) {
	raw := models.RawPost{
		"location":              map[string]interface{}{"id": "loc1", "has_public_page": nil},
		"locationHasPublicPage": true,
	}

	info, ok := ExtractLocation(raw)
	require.True(t, ok)
	assert.Equal(t, "loc1", *info.LocationID)
	assert.Nil(t, info.LocationHasPublicPage)
}

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		name   string
		raw    models.RawPost
		want   models.LocationInfo
		wantOK bool
	}{
		{
			name: "full location",
			raw: models.RawPost{"location": map[string]interface{}{
				"id": "1", "name": "Menlo Park", "slug": "menlo-park", "has_public_page": true,
			}},
			want: models.LocationInfo{
				LocationID:            models.StringPtr("1"),
				LocationName:          models.StringPtr("Menlo Park"),
				LocationSlug:          models.StringPtr("menlo-park"),
				LocationHasPublicPage: models.BoolPtr(true),
			},
			wantOK: true,
		},
		{
			name:   "pk and location_info",
			raw:    models.RawPost{"location_info": map[string]interface{}{"pk": float64(215)}},
			want:   models.LocationInfo{LocationID: models.StringPtr("215")},
			wantOK: true,
		},
		{
			name: "fallback to flattened fields",
			raw: models.RawPost{
				"location":              map[string]interface{}{"lat": 1.5},
				"locationId":            "old",
				"locationName":          "Old Name",
				"locationSlug":          "old-name",
				"locationHasPublicPage": false,
			},
			want: models.LocationInfo{
				LocationID:            models.StringPtr("old"),
				LocationName:          models.StringPtr("Old Name"),
				LocationSlug:          models.StringPtr("old-name"),
				LocationHasPublicPage: models.BoolPtr(false),
			},
			wantOK: true,
		},
		{
			name: "under node",
			raw: models.RawPost{"node": map[string]interface{}{
				"location": map[string]interface{}{"id": "n1", "has_public_page": 1},
			}},
			want:   models.LocationInfo{LocationID: models.StringPtr("n1"), LocationHasPublicPage: models.BoolPtr(true)},
			wantOK: true,
		},
		{
			name: "all null mapping",
			raw: models.RawPost{"location": map[string]interface{}{
				"id": nil, "name": nil, "slug": nil, "has_public_page": nil,
			}},
			want:   models.LocationInfo{},
			wantOK: true,
		},
		{
			name: "empty location falls back to location_info",
			raw: models.RawPost{
				"location":      map[string]interface{}{},
				"location_info": map[string]interface{}{"name": "Info"},
			},
			want:   models.LocationInfo{LocationName: models.StringPtr("Info")},
			wantOK: true,
		},
		{
			name:   "empty location resolves flattened fields",
			raw:    models.RawPost{"location": map[string]interface{}{}, "locationId": "x"},
			want:   models.LocationInfo{LocationID: models.StringPtr("x")},
			wantOK: true,
		},
		{
			name: "no location mapping resolves flattened fields",
			raw: models.RawPost{
				"locationName":          "Old Name",
				"locationHasPublicPage": true,
			},
			want: models.LocationInfo{
				LocationName:          models.StringPtr("Old Name"),
				LocationHasPublicPage: models.BoolPtr(true),
			},
			wantOK: true,
		},
		{
			name:   "empty location without fallbacks",
			raw:    models.RawPost{"location": map[string]interface{}{}},
			wantOK: false,
		},
		{
			name:   "not a mapping",
			raw:    models.RawPost{"location": "Menlo Park"},
			wantOK: false,
		},
		{
			name:   "missing",
			raw:    models.RawPost{"id": "1"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractLocation(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractLocation() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEnrichSetsTaggedAndLocation(t *testing.T) {
	raw := models.RawPost{
		"tags": []interface{}{map[string]interface{}{"username": "johndoe", "fullName": "John Doe"}},
		"location": map[string]interface{}{
			"id": "loc_1_0", "name": "Menlo Park", "slug": "menlo-park", "has_public_page": true,
		},
	}

	Enrich(raw)

	assert.Equal(t, []models.TaggedUser{{Username: "johndoe", FullName: "John Doe"}}, raw["taggedUsers"])
	assert.Equal(t, "loc_1_0", raw["locationId"])
	assert.Equal(t, "Menlo Park", raw["locationName"])
	assert.Equal(t, "menlo-park", raw["locationSlug"])
	assert.Equal(t, true, raw["locationHasPublicPage"])
}

func TestEnrichWithoutLocationLeavesFieldsAlone(t *testing.T) {
	raw := models.RawPost{"id": "1"}
	Enrich(raw)

	assert.Equal(t, []models.TaggedUser{}, raw["taggedUsers"])
	_, has := raw["locationId"]
	assert.False(t, has)
}
