package booking

// coversRestrictions decides whether a restaurant's endorsements
// satisfy a party's dietary restrictions.
//
// The rule is aggregate-count matching: collect every endorsement
// mapped to any requested restriction (requiredEndorsements), then
// require the restaurant to hold at least that many of them. With
// distinct endorsement IDs this means the restaurant must hold all of
// them, which is stricter than a per-restriction cover whenever two
// restrictions map to overlapping endorsement sets. Callers rely on
// this exact behavior; do not replace it with true set cover.
func coversRestrictions(restaurantEndorsements, requiredEndorsements []uint64) bool {
	if len(requiredEndorsements) == 0 {
		return true
	}
	held := make(map[uint64]struct{}, len(restaurantEndorsements))
	for _, id := range restaurantEndorsements {
		held[id] = struct{}{}
	}
	matched := 0
	for _, id := range requiredEndorsements {
		if _, ok := held[id]; ok {
			matched++
		}
	}
	return matched >= len(requiredEndorsements)
}
