package assistant

import (
	"strings"

	"inhotel/models"
)

// Recompute derives the view state from a transcript snapshot. It is a pure
// function of its inputs and is re-run after every transcript change.
//
// The most recent findHotel result wins: it supplies the displayed hotels and
// the active query, superseding earlier searches. With no search on record
// the full catalog is shown. The previous selection survives only while the
// selected hotel is still displayed; otherwise selection and detail panel are
// cleared together.
func Recompute(turns []models.Turn, allHotels []models.Hotel, prev models.ViewState) models.ViewState {
	view := models.ViewState{DisplayedHotels: allHotels}

	for i := len(turns) - 1; i >= 0; i-- {
		t := turns[i]
		if t.Kind != models.TurnToolResult || t.ToolName != ToolNameFindHotel {
			continue
		}
		if t.Result == nil || t.Result.Search == nil {
			continue
		}
		view.DisplayedHotels = t.Result.Search.Hotels
		view.ActiveQuery = t.Result.Search.SearchQuery
		break
	}

	for i := len(turns) - 1; i >= 0; i-- {
		t := turns[i]
		if t.Kind == models.TurnToolResult && t.Result != nil && t.Result.Hub != nil {
			view.Hub = t.Result.Hub
			break
		}
	}

	if prev.SelectedHotelName != "" && containsHotel(view.DisplayedHotels, prev.SelectedHotelName) {
		view.SelectedHotelName = prev.SelectedHotelName
		view.DetailPanelOpen = prev.DetailPanelOpen
	}

	return view
}

func containsHotel(hotels []models.Hotel, name string) bool {
	for _, h := range hotels {
		if strings.EqualFold(h.Name, name) {
			return true
		}
	}
	return false
}
