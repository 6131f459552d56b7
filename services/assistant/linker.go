package assistant

import (
	"regexp"
	"sort"
	"strings"

	"inhotel/models"
)

var (
	boldMarkers   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicMarkers = regexp.MustCompile(`\*(.*?)\*`)
)

// Link splits assistant text into segments, turning occurrences of known
// hotel names into hotel references. Markdown emphasis markers are stripped
// first so "**Hotel X**" still matches "Hotel X".
//
// The scan is greedy leftmost: among all names, the earliest occurrence wins;
// on an index tie the longer name wins so a short name never pre-empts a
// longer one containing it; equal-length names at the same index resolve by
// catalog order. Deterministic, not optimal for pathological overlaps.
func Link(text string, hotels []models.Hotel) []models.Segment {
	remaining := boldMarkers.ReplaceAllString(text, "$1")
	remaining = italicMarkers.ReplaceAllString(remaining, "$1")

	// An empty name would match at every position and never advance the scan.
	sorted := make([]models.Hotel, 0, len(hotels))
	for _, h := range hotels {
		if h.Name != "" {
			sorted = append(sorted, h)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Name) > len(sorted[j].Name)
	})

	var segments []models.Segment
	for len(remaining) > 0 {
		lower := strings.ToLower(remaining)
		matchHotel := -1
		matchIdx := -1
		for i, h := range sorted {
			idx := strings.Index(lower, strings.ToLower(h.Name))
			if idx != -1 && (matchIdx == -1 || idx < matchIdx) {
				matchHotel = i
				matchIdx = idx
			}
		}

		if matchIdx == -1 {
			segments = append(segments, models.Segment{Kind: models.SegmentText, Text: remaining})
			break
		}

		if matchIdx > 0 {
			segments = append(segments, models.Segment{Kind: models.SegmentText, Text: remaining[:matchIdx]})
		}
		name := sorted[matchHotel].Name
		segments = append(segments, models.Segment{
			Kind:      models.SegmentHotel,
			Text:      remaining[matchIdx : matchIdx+len(name)],
			HotelName: name,
		})
		remaining = remaining[matchIdx+len(name):]
	}

	return segments
}
