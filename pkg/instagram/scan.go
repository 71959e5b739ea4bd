package instagram

import "strings"

// shortcodeDelimiters end a shortcode run
const shortcodeDelimiters = "/\"'\\?& "

// ExtractShortcodes scans html for every literal "/p/" and returns the
// distinct shortcodes that follow it, in encounter order. A limit above zero
// stops the scan once that many distinct shortcodes are collected.
func ExtractShortcodes(html string, limit int) []string {
	var shortcodes []string
	seen := make(map[string]struct{})

	idx := 0
	for {
		i := strings.Index(html[idx:], PostMarker)
		if i < 0 {
			break
		}
		start := idx + i + len(PostMarker)
		end := start
		if k := strings.IndexAny(html[start:], shortcodeDelimiters); k >= 0 {
			end = start + k
		} else {
			end = len(html)
		}

		if sc := html[start:end]; sc != "" {
			if _, dup := seen[sc]; !dup {
				seen[sc] = struct{}{}
				shortcodes = append(shortcodes, sc)
			}
		}
		idx = end

		if limit > 0 && len(shortcodes) >= limit {
			break
		}
	}

	return shortcodes
}
