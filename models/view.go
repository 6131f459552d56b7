package models

// ViewState is the UI-facing state derived from the transcript plus the last
// local selection. It is recomputed after every transcript change and never
// stored independently.
type ViewState struct {
	DisplayedHotels   []Hotel   `json:"displayedHotels"`
	ActiveQuery       string    `json:"activeQuery,omitempty"`
	SelectedHotelName string    `json:"selectedHotelName,omitempty"`
	DetailPanelOpen   bool      `json:"detailPanelOpen"`
	Hub               *HubState `json:"hub,omitempty"`
}

// SegmentKind discriminates rendered text segments.
type SegmentKind string

const (
	SegmentText  SegmentKind = "text"
	SegmentHotel SegmentKind = "hotel"
)

// Segment is one piece of linked assistant text: either plain text or a
// clickable reference to a known hotel.
type Segment struct {
	Kind      SegmentKind `json:"kind"`
	Text      string      `json:"text"`
	HotelName string      `json:"hotelName,omitempty"`
}
