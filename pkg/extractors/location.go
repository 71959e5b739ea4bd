package extractors

import "igposts/pkg/models"

// ExtractLocation reads location fields from the location or location_info
// mapping of raw, looking inside node when present. When both are empty the
// already flattened locationId, locationName, locationSlug and
// locationHasPublicPage fields still resolve. ok is false when the location
// is not a mapping or nothing at all was found.
//
// A has_public_page key that is present wins even when its value is null.
func ExtractLocation(raw models.RawPost) (info models.LocationInfo, ok bool) {
	node := unwrapNode(raw)

	found := first(node, "location", "location_info")
	if found == nil {
		found = map[string]interface{}{}
	}
	loc, isMap := asMap(found)
	if !isMap {
		return models.LocationInfo{}, false
	}

	info.LocationID = optionalString(firstOf(loc["id"], loc["pk"], node["locationId"]))
	info.LocationName = optionalString(firstOf(loc["name"], node["locationName"]))
	info.LocationSlug = optionalString(firstOf(loc["slug"], node["locationSlug"]))

	if v, present := loc["has_public_page"]; present {
		info.LocationHasPublicPage = optionalBool(v)
	} else {
		info.LocationHasPublicPage = optionalBool(node["locationHasPublicPage"])
	}

	if len(loc) == 0 && info == (models.LocationInfo{}) {
		return models.LocationInfo{}, false
	}
	return info, true
}

// firstOf returns the first truthy value, or nil
func firstOf(values ...interface{}) interface{} {
	for _, v := range values {
		if truthy(v) {
			return v
		}
	}
	return nil
}
