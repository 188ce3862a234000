package model

// DietaryRestriction names a dietary need an eater can carry
// (e.g. "Vegan"). Restrictions are linked to the endorsements that
// satisfy them through the restriction_endorsement_mappings table.
type DietaryRestriction struct {
	ID   uint64 // dietary_restrictions.id
	Name string // dietary_restrictions.restriction_name
}

// Endorsement is a restaurant-level tag asserting suitability for a
// dietary need (e.g. "Vegan-Friendly"). Restaurants advertise
// endorsements through the restaurant_endorsements table.
type Endorsement struct {
	ID   uint64 // endorsements.id
	Name string // endorsements.endorsement_name
}
