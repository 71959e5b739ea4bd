package extractors

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"reflect"
	"strings"

	"igposts/pkg/models"
)

// DeterministicID is the hex SHA-1 of "username:index". Mock posts, live
// posts and normalized posts without an id all derive ids this way.
func DeterministicID(username string, index int) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s:%d", username, index)))
	return hex.EncodeToString(sum[:])
}

// NormalizePosts converts raw posts of any supported shape into canonical
// posts. Output order matches input order.
func NormalizePosts(username string, raws []models.RawPost) []models.CanonicalPost {
	posts := make([]models.CanonicalPost, 0, len(raws))
	for i, raw := range raws {
		posts = append(posts, NormalizePost(username, i, raw))
	}
	return posts
}

// NormalizePost converts a single raw post; index only matters when the
// record carries no id of its own.
func NormalizePost(username string, index int, raw models.RawPost) models.CanonicalPost {
	outer := map[string]interface{}(raw)
	node := unwrapNode(outer)

	// ids are looked up by presence so a numeric 0 is kept
	id := stringify(present(node, "id", "pk", "post_id"))
	if id == "" {
		id = DeterministicID(username, index)
	}

	shortcode := str(node, "shortcode", "code")
	if shortcode == "" {
		shortcode = prefix(id, 5) + "-" + username
	}

	displayURL := str(node, "display_url", "displayUrl")
	if displayURL == "" {
		displayURL = stringify(path(node, "image_versions2", "candidates", "0", "url"))
	}

	thumbnailURL := str(node, "thumbnail_src", "thumbnailUrl")
	if thumbnailURL == "" {
		if srcset := str(node, "thumbnail_srcset"); srcset != "" {
			thumbnailURL = strings.SplitN(srcset, " ", 2)[0]
		}
	}
	if thumbnailURL == "" {
		thumbnailURL = displayURL
	}

	post := models.CanonicalPost{
		ID:           id,
		Username:     username,
		Shortcode:    shortcode,
		Caption:      caption(node),
		Timestamp:    CoerceInt(first(node, "taken_at_timestamp", "timestamp", "taken_at"), 0),
		Likes:        CoerceInt(firstPath(node, []string{"edge_liked_by", "count"}, []string{"edge_media_preview_like", "count"}, []string{"like_count"}, []string{"likes"}), 0),
		Comments:     CoerceInt(firstPath(node, []string{"edge_media_to_comment", "count"}, []string{"comment_count"}, []string{"comments"}), 0),
		MediaType:    mediaType(node),
		DisplayURL:   displayURL,
		ThumbnailURL: thumbnailURL,

		DimensionsWidth:  CoerceInt(firstPath(node, []string{"dimensions", "width"}, []string{"dimensions_width"}), 0),
		DimensionsHeight: CoerceInt(firstPath(node, []string{"dimensions", "height"}, []string{"dimensions_height"}), 0),

		TaggedUsers: taggedUsers(node, outer),

		CommentsDisabled:  CoerceBool(first(node, "comments_disabled", "commentsDisabled"), false),
		Pinned:            CoerceBool(first(node, "pinned", "is_pinned"), false),
		IsAffiliate:       CoerceBool(first(node, "isAffiliate", "is_affiliate"), false),
		IsPaidPartnership: CoerceBool(first(node, "isPaidPartnership", "is_paid_partnership"), false),
	}

	post.LocationInfo = normalizedLocation(node, outer)
	return post
}

func caption(node map[string]interface{}) string {
	switch c := first(node, "caption").(type) {
	case string:
		return c
	case map[string]interface{}:
		if text := str(c, "text"); text != "" {
			return text
		}
	}

	v := firstPath(node,
		[]string{"edge_media_to_caption", "text"},
		[]string{"edge_media_to_caption", "edges", "0", "node", "text"},
		[]string{"text"},
	)
	return stringify(v)
}

// mediaType reduces every media type spelling to image or video
func mediaType(node map[string]interface{}) string {
	if v := node["media_type"]; truthy(v) {
		if n, ok := asNumber(v); ok {
			if n == 2 {
				return models.MediaTypeVideo
			}
			return models.MediaTypeImage
		}
		return classify(stringify(v))
	}

	if typename := strings.ReplaceAll(strings.ToLower(stringOr(node["__typename"])), "graph", ""); typename != "" {
		return classify(typename)
	}

	if v := node["mediaType"]; truthy(v) {
		return classify(stringify(v))
	}

	if CoerceBool(node["is_video"], false) {
		return models.MediaTypeVideo
	}
	return models.MediaTypeImage
}

func classify(s string) string {
	if strings.Contains(strings.ToLower(s), "video") {
		return models.MediaTypeVideo
	}
	return models.MediaTypeImage
}

func taggedUsers(node, outer map[string]interface{}) []models.TaggedUser {
	for _, m := range []map[string]interface{}{node, outer} {
		if v := m["taggedUsers"]; truthy(v) {
			if users, ok := taggedSequence(v); ok {
				return users
			}
		}
	}
	return []models.TaggedUser{}
}

// normalizedLocation reads enriched or snake_case location fields from the
// node first and the outer record second.
func normalizedLocation(node, outer map[string]interface{}) models.LocationInfo {
	scopes := []map[string]interface{}{node}
	if len(outer) > 0 && !sameMap(node, outer) {
		scopes = append(scopes, outer)
	}

	lookup := func(keys ...string) interface{} {
		for _, m := range scopes {
			if v := first(m, keys...); v != nil {
				return v
			}
		}
		return nil
	}

	info := models.LocationInfo{
		LocationID:   optionalString(lookup("locationId", "location_id")),
		LocationName: optionalString(lookup("locationName", "location_name")),
		LocationSlug: optionalString(lookup("locationSlug", "location_slug")),
	}

	for _, key := range []string{"locationHasPublicPage", "location_has_public_page"} {
		for _, m := range scopes {
			if v, ok := m[key]; ok {
				info.LocationHasPublicPage = optionalBool(v)
				return info
			}
		}
	}
	return info
}

// sameMap reports whether a and b are the same map value
func sameMap(a, b map[string]interface{}) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
