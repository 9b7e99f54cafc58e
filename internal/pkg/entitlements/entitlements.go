package entitlements

// MaxListings returns how many active equipment listings a plan allows.
// Zero means unlimited.
func MaxListings(plan string) int {
	switch plan {
	case "enterprise":
		return 0
	case "pro":
		return 50
	default:
		return 5
	}
}

// CanCreateListing reports whether a vendor on the given plan may add another
// listing on top of current active ones.
func CanCreateListing(plan string, current int) bool {
	max := MaxListings(plan)
	return max == 0 || current < max
}
