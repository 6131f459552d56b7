package models

// Hotel availability states as they appear in the catalog source.
const (
	AvailabilityAvailable   = "Available"
	AvailabilityUnavailable = "Unavailable"
)

// Hotel is one catalog record. Identity is the name, case-insensitively
// unique within the catalog. Records are immutable for the life of a session.
type Hotel struct {
	Name         string   `json:"name" bson:"name"`
	Location     string   `json:"location" bson:"location"`
	Price        float64  `json:"price" bson:"price"`
	Description  string   `json:"description" bson:"description"`
	Image        string   `json:"image" bson:"image"`
	Amenities    []string `json:"amenities" bson:"amenities"`
	Rating       float64  `json:"rating" bson:"rating"`
	Reviews      int      `json:"reviews" bson:"reviews"`
	Availability string   `json:"availability" bson:"availability"`
	Booked       bool     `json:"booked" bson:"booked"`
	Website      string   `json:"website,omitempty" bson:"website,omitempty"`
	Phone        string   `json:"phone,omitempty" bson:"phone,omitempty"`
}

// Catalog is the shape of the catalog source document.
type Catalog struct {
	AllHotels []Hotel `json:"allHotels"`
}

// SearchResult is the payload of a findHotel tool result. Hotels keep catalog
// order; Summary is the generated Markdown rundown of the matches.
type SearchResult struct {
	Hotels      []Hotel `json:"hotels"`
	SearchQuery string  `json:"searchQuery"`
	Summary     string  `json:"summary"`
}
