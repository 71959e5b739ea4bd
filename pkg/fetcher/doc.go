// Package fetcher produces raw posts for a profile.
//
// In mock mode posts are generated from the username alone, so repeated runs
// yield the same records apart from timestamps, which follow the clock. In
// live mode the public profile page is requested with retries and scanned
// for post shortcodes; any failure along the way, or a page without
// shortcodes, falls back to mock posts. FetchUserPosts never fails.
package fetcher
