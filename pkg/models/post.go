package models

// RawPost is a loosely shaped post record as produced by a fetch source.
// Values look like decoded JSON: maps, slices, strings, numbers, bools and nil.
type RawPost map[string]interface{}

// TaggedUser is a user tagged in a post
type TaggedUser struct {
	FullName      string `json:"fullName"`
	ProfilePicURL string `json:"profilePicUrl"`
	Username      string `json:"username"`
}

// LocationInfo holds the location fields of a post; nil means absent
type LocationInfo struct {
	LocationID            *string `json:"locationId"`
	LocationName          *string `json:"locationName"`
	LocationSlug          *string `json:"locationSlug"`
	LocationHasPublicPage *bool   `json:"locationHasPublicPage"`
}

// Media types of a CanonicalPost
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// CanonicalPost is the normalized output record
type CanonicalPost struct {
	ID                string       `json:"id"`
	Username          string       `json:"username"`
	Shortcode         string       `json:"shortcode"`
	Caption           string       `json:"caption"`
	Timestamp         int64        `json:"timestamp"`
	Likes             int64        `json:"likes"`
	Comments          int64        `json:"comments"`
	MediaType         string       `json:"mediaType"`
	DisplayURL        string       `json:"displayUrl"`
	ThumbnailURL      string       `json:"thumbnailUrl"`
	DimensionsWidth   int64        `json:"dimensions_width"`
	DimensionsHeight  int64        `json:"dimensions_height"`
	TaggedUsers       []TaggedUser `json:"taggedUsers"`
	IsAffiliate       bool         `json:"isAffiliate"`
	IsPaidPartnership bool         `json:"isPaidPartnership"`
	CommentsDisabled  bool         `json:"commentsDisabled"`
	Pinned            bool         `json:"pinned"`

	LocationInfo
}

// CSVColumns is the fixed column order of CSV exports
var CSVColumns = []string{
	"id", "username", "shortcode", "caption", "timestamp",
	"likes", "comments", "mediaType", "displayUrl", "thumbnailUrl",
	"dimensions_width", "dimensions_height", "isAffiliate", "isPaidPartnership",
	"commentsDisabled", "pinned", "locationId", "locationName",
	"locationSlug", "locationHasPublicPage", "taggedUsers",
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string { return &s }

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool { return &b }
