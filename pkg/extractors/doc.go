// Package extractors reconciles the raw post dialects into one record.
//
// Three shapes are understood: the generated mock shape, the nested "node"
// shape, and the edge connection shape. Every field is resolved from a
// prioritized list of candidate keys where the first truthy value wins, then
// coerced with CoerceInt or CoerceBool so missing or odd values fall back to
// defaults instead of failing.
//
//	extractors.EnrichAll(raws)
//	posts := extractors.NormalizePosts("zuck", raws)
package extractors
