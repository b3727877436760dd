package model

// Program is a bookable add-on (wellness programs, activities). Read-only
// here; only title and price matter for the booking price breakdown. Price
// is untyped because legacy documents store it as int, double or string.
type Program struct {
	ID    string `json:"id,omitempty" bson:"_id,omitempty"`
	Title string `json:"title,omitempty" bson:"title,omitempty"`
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Price any    `json:"price,omitempty" bson:"price,omitempty"`
	Cost  any    `json:"cost,omitempty" bson:"cost,omitempty"`
}

// DisplayTitle prefers title over name, matching the legacy documents.
func (p *Program) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Name
}
