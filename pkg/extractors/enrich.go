package extractors

import "igposts/pkg/models"

// Enrich stores the tagged users and, when a location mapping exists, the
// flattened location fields on raw in place.
func Enrich(raw models.RawPost) {
	raw["taggedUsers"] = ExtractTagged(raw)

	info, ok := ExtractLocation(raw)
	if !ok {
		return
	}
	raw["locationId"] = derefString(info.LocationID)
	raw["locationName"] = derefString(info.LocationName)
	raw["locationSlug"] = derefString(info.LocationSlug)
	if info.LocationHasPublicPage != nil {
		raw["locationHasPublicPage"] = *info.LocationHasPublicPage
	} else {
		raw["locationHasPublicPage"] = nil
	}
}

// EnrichAll enriches every post of raws
func EnrichAll(raws []models.RawPost) {
	for _, raw := range raws {
		Enrich(raw)
	}
}

func derefString(p *string) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
