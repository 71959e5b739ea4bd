// Package instagram talks to the public profile page.
//
// It includes:
//   - A resty-backed Client that performs one GET per call and maps failures
//     onto typed errors
//   - URL helpers for profile and post pages
//   - Username sanitizing and validation
//   - ExtractShortcodes, a plain substring scan for post links in page markup
//
// Example usage:
//
//	client := instagram.NewClient("", userAgent, 15*time.Second, log)
//	html, err := client.FetchProfileHTML(ctx, "zuck")
//	if err != nil {
//		if errors.IsType(err, errors.ErrorTypeHTTPStatus) {
//			// non-200 answer, worth retrying
//		}
//	}
//	codes := instagram.ExtractShortcodes(html, 12)
//
// The client does not retry; callers wrap it with package retry.
package instagram
