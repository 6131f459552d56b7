package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"inhotel/models"
)

// Repository provides read-only access to the hotel catalog.
//
// Search matches records whose name or location contains the query
// case-insensitively, preserving catalog order. Empty queries are not
// special-cased here; callers decide what empty means.
type Repository interface {
	All(ctx context.Context) ([]models.Hotel, error)
	Search(ctx context.Context, query string) ([]models.Hotel, error)
}

// matches reports whether the query is a case-insensitive substring of the
// record's name or location.
func matches(h models.Hotel, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(h.Name), q) ||
		strings.Contains(strings.ToLower(h.Location), q)
}

// FileCatalogRepo serves the catalog from a JSON document of the shape
// {"allHotels": [...]} loaded once at startup.
type FileCatalogRepo struct {
	hotels []models.Hotel
}

// NewFileCatalogRepo loads the catalog file. A missing or corrupt file is a
// startup error; callers treat it as fatal.
func NewFileCatalogRepo(path string) (*FileCatalogRepo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog unavailable: %w", err)
	}
	var cat models.Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("catalog unavailable: %w", err)
	}
	return &FileCatalogRepo{hotels: cat.AllHotels}, nil
}

func (r *FileCatalogRepo) All(ctx context.Context) ([]models.Hotel, error) {
	out := make([]models.Hotel, len(r.hotels))
	copy(out, r.hotels)
	return out, nil
}

func (r *FileCatalogRepo) Search(ctx context.Context, query string) ([]models.Hotel, error) {
	var out []models.Hotel
	for _, h := range r.hotels {
		if matches(h, query) {
			out = append(out, h)
		}
	}
	return out, nil
}
