package domain

// DishScore is a derived per-dish aggregate produced by the offline NLP
// pipeline. At most one row exists per (venue, dish name) pair; an absent
// row means "not yet scored", not "scored zero".
type DishScore struct {
	VenueID     int64
	DishName    string
	Score       float64 // 1-10 scale
	ReviewCount int
	Confidence  float64
}
