package fetcher

import (
	"crypto/md5"
	"fmt"
	"math/big"

	"igposts/pkg/extractors"
	"igposts/pkg/instagram"
	"igposts/pkg/models"
)

// DefaultMockCount is the number of mock posts generated without a limit
const DefaultMockCount = 12

const mockPicURL = "https://example.com/u.jpg"

// MockEpoch is the timestamp of the newest mock post (2024-01-01T00:00:00Z).
// Mock posts never read the clock, so repeated runs match byte for byte.
const MockEpoch int64 = 1704067200

// DeterministicID is the hex SHA-1 of "username:index"
func DeterministicID(username string, index int) string {
	return extractors.DeterministicID(username, index)
}

// MockBase is the per-username shortcode base: the MD5 digest of the
// username read as a big-endian integer, modulo 10000.
func MockBase(username string) int {
	sum := md5.Sum([]byte(username))
	n := new(big.Int).SetBytes(sum[:])
	return int(n.Mod(n, big.NewInt(10000)).Int64())
}

// MockPosts generates limit deterministic posts, or DefaultMockCount when
// limit is zero or less. The output depends only on username and count.
func (f *Fetcher) MockPosts(username string, limit int) []models.RawPost {
	count := limit
	if count <= 0 {
		count = DefaultMockCount
	}

	base := MockBase(username)
	posts := make([]models.RawPost, 0, count)

	for i := 0; i < count; i++ {
		short := fmt.Sprintf("MOCK%06d", base+i)

		mediaType, height := models.MediaTypeImage, 1350
		if i%5 == 0 {
			mediaType, height = models.MediaTypeVideo, 1080
		}

		fullName, tagged := "John Doe", "johndoe"
		if i%7 == 0 {
			fullName, tagged = "Kris Jenner", "krisjenner"
		}

		location := map[string]interface{}{
			"id":              nil,
			"name":            nil,
			"slug":            nil,
			"has_public_page": nil,
		}
		if i%3 == 0 {
			location = map[string]interface{}{
				"id":              fmt.Sprintf("loc_%d_%d", base, i),
				"name":            "Menlo Park",
				"slug":            "menlo-park",
				"has_public_page": true,
			}
		}

		posts = append(posts, models.RawPost{
			"id":                DeterministicID(username, i),
			"shortcode":         short,
			"caption":           fmt.Sprintf("Mock post %d by @%s", i+1, username),
			"timestamp":         MockEpoch - int64(i)*3600,
			"likes":             1000 + 13*i,
			"comments":          50 + 3*i,
			"mediaType":         mediaType,
			"displayUrl":        instagram.PostURL(instagram.MockBaseURL, short),
			"thumbnailUrl":      instagram.MediaURL(instagram.MockBaseURL, short),
			"dimensions_width":  1080,
			"dimensions_height": height,
			"tags": []interface{}{
				map[string]interface{}{
					"fullName":      fullName,
					"profilePicUrl": mockPicURL,
					"username":      tagged,
				},
			},
			"commentsDisabled":  false,
			"pinned":            i == 0,
			"location":          location,
			"isAffiliate":       i%9 == 0,
			"isPaidPartnership": i%11 == 0,
		})
	}

	return posts
}
