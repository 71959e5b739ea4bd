package instagram

import (
	"fmt"
	"strings"
)

const (
	// BaseURL is the base URL for Instagram
	BaseURL = "https://www.instagram.com"

	// MockBaseURL prefixes URLs of generated posts
	MockBaseURL = "https://instagram.com"

	// PostMarker precedes a shortcode in profile page markup
	PostMarker = "/p/"
)

// PostURL constructs the URL for a specific post
func PostURL(base, shortcode string) string {
	if shortcode == "" {
		return ""
	}
	return fmt.Sprintf("%s/p/%s", base, shortcode)
}

// MediaURL returns the media URL for a post
func MediaURL(base, shortcode string) string {
	if shortcode == "" {
		return ""
	}
	return PostURL(base, shortcode) + "/media"
}

// ProfilePageURL constructs the public profile URL for a user under base;
// an empty base means BaseURL
func ProfilePageURL(base, username string) string {
	if username == "" {
		return ""
	}
	if base == "" {
		base = BaseURL
	}
	return fmt.Sprintf("%s/%s/", strings.TrimRight(base, "/"), username)
}

// IsValidUsername checks if a username is valid according to Instagram rules
func IsValidUsername(username string) bool {
	if username == "" || len(username) > 30 {
		return false
	}

	// letters, numbers, periods and underscores
	for _, char := range username {
		if !((char >= 'a' && char <= 'z') ||
			(char >= 'A' && char <= 'Z') ||
			(char >= '0' && char <= '9') ||
			char == '.' || char == '_') {
			return false
		}
	}

	return true
}

// SanitizeUsername strips a leading @ and surrounding slashes or spaces
func SanitizeUsername(username string) string {
	username = strings.TrimSpace(username)
	username = strings.TrimPrefix(username, "@")
	return strings.TrimRight(username, "/ ")
}
