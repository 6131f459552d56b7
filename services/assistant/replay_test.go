package assistant

import (
	"testing"

	"inhotel/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchResultTurn(callID, query string, hotels []models.Hotel) []models.Turn {
	result := &models.ToolResult{Search: &models.SearchResult{
		Hotels:      hotels,
		SearchQuery: query,
	}}
	return []models.Turn{
		models.ToolCallTurn(callID, ToolNameFindHotel, map[string]any{"query": query}),
		models.ToolResultTurn(callID, ToolNameFindHotel, result),
	}
}

func TestRecomputeDefaultsToFullCatalog(t *testing.T) {
	catalog := hotelsNamed("Paris Grand", "Shinjuku Sky Tower")
	turns := []models.Turn{
		models.UserTurn("hello"),
		models.AssistantTextTurn("hi there"),
	}

	view := Recompute(turns, catalog, models.ViewState{})
	assert.Equal(t, catalog, view.DisplayedHotels)
	assert.Empty(t, view.ActiveQuery)
}

func TestRecomputeLatestSearchWins(t *testing.T) {
	catalog := hotelsNamed("Paris Grand", "Shinjuku Sky Tower")

	turns := []models.Turn{models.UserTurn("find paris")}
	turns = append(turns, searchResultTurn("call-1", "Paris", hotelsNamed("Paris Grand"))...)
	turns = append(turns, models.UserTurn("now tokyo"))
	turns = append(turns, searchResultTurn("call-2", "Tokyo", hotelsNamed("Shinjuku Sky Tower"))...)

	view := Recompute(turns, catalog, models.ViewState{})
	require.Len(t, view.DisplayedHotels, 1)
	assert.Equal(t, "Shinjuku Sky Tower", view.DisplayedHotels[0].Name)
	assert.Equal(t, "Tokyo", view.ActiveQuery)
}

func TestRecomputeEmptySearchResultIsNotTheDefault(t *testing.T) {
	catalog := hotelsNamed("Paris Grand")

	turns := []models.Turn{models.UserTurn("find nowhere")}
	turns = append(turns, searchResultTurn("call-1", "Nowhereland", nil)...)

	view := Recompute(turns, catalog, models.ViewState{})
	assert.Empty(t, view.DisplayedHotels)
	assert.Equal(t, "Nowhereland", view.ActiveQuery)
}

func TestRecomputeIsDeterministic(t *testing.T) {
	catalog := hotelsNamed("Paris Grand", "Casa del Sol")
	turns := []models.Turn{models.UserTurn("find paris")}
	turns = append(turns, searchResultTurn("call-1", "Paris", hotelsNamed("Paris Grand"))...)

	first := Recompute(turns, catalog, models.ViewState{})
	second := Recompute(turns, catalog, models.ViewState{})
	assert.Equal(t, first, second)
}

func TestRecomputeRetainsSelectionWhileDisplayed(t *testing.T) {
	catalog := hotelsNamed("Paris Grand", "Casa del Sol")
	turns := []models.Turn{models.UserTurn("find paris")}
	turns = append(turns, searchResultTurn("call-1", "Paris", hotelsNamed("Paris Grand"))...)

	prev := models.ViewState{SelectedHotelName: "Paris Grand", DetailPanelOpen: true}
	view := Recompute(turns, catalog, prev)
	assert.Equal(t, "Paris Grand", view.SelectedHotelName)
	assert.True(t, view.DetailPanelOpen)
}

func TestRecomputeClearsSelectionWhenNoLongerDisplayed(t *testing.T) {
	catalog := hotelsNamed("Paris Grand", "Casa del Sol")
	turns := []models.Turn{models.UserTurn("find barcelona")}
	turns = append(turns, searchResultTurn("call-1", "Barcelona", hotelsNamed("Casa del Sol"))...)

	prev := models.ViewState{SelectedHotelName: "Paris Grand", DetailPanelOpen: true}
	view := Recompute(turns, catalog, prev)
	assert.Empty(t, view.SelectedHotelName)
	assert.False(t, view.DetailPanelOpen)
}

func TestRecomputeProjectsLatestHubResult(t *testing.T) {
	state := models.HubState{Climate: models.HubClimate{Low: 18, High: 22}}
	turns := []models.Turn{
		models.UserTurn("show hub"),
		models.ToolCallTurn("call-1", ToolNameViewHub, nil),
		models.ToolResultTurn("call-1", ToolNameViewHub, &models.ToolResult{Hub: &state}),
	}

	view := Recompute(turns, nil, models.ViewState{})
	require.NotNil(t, view.Hub)
	assert.Equal(t, 18.0, view.Hub.Climate.Low)
}
