package models

// Athlete is a registered player of a championship.
type Athlete struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsSeeded   bool   `json:"is_seeded"`
	SeedNumber *int   `json:"seed_number,omitempty"` // 1-based, unique among seeded athletes
	IsVirtual  bool   `json:"is_virtual"`            // placeholder, never qualifies
}

// Seed returns the seed number or 0 for unseeded athletes.
func (a *Athlete) Seed() int {
	if a == nil || !a.IsSeeded || a.SeedNumber == nil {
		return 0
	}
	return *a.SeedNumber
}
