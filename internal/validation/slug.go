package validation

// reservedSlugs collide with fixed route segments under the content prefixes.
var reservedSlugs = map[string]struct{}{
	"me":         {},
	"tags":       {},
	"featured":   {},
	"categories": {},
	"trending":   {},
	"plans":      {},
	"ads":        {},
	"stories":    {},
	"videos":     {},
	"admin":      {},
}

// IsReservedSlug reports whether slug would shadow a fixed route.
func IsReservedSlug(slug string) bool {
	_, reserved := reservedSlugs[slug]
	return reserved
}
