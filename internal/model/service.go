package model

// Service is a bookable offering from the studio catalog. Rows are seeded
// once and never mutated at runtime.
type Service struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	// Price in whole pesos. Zero for contact-only entries.
	Price    int64 `db:"price" json:"price"`
	IsCustom bool  `db:"is_custom" json:"is_custom"`
}

// Bookable reports whether the service can be selected in the intake form.
// Custom entries are quoted over the contact page instead.
func (s *Service) Bookable() bool {
	return !s.IsCustom
}
