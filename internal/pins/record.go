package pins

import (
	"encoding/json"
	"fmt"

	"github.com/starford/pinmap/internal/models"
)

// URL returns the public path of the pin page for slug.
func URL(slug string) string {
	return "/pins/" + slug + "/"
}

// Record projects p into the record embedded in the index page.
func Record(p models.Pin) models.PinRecord {
	return models.PinRecord{
		Slug:        p.Slug,
		Title:       p.Title,
		Description: p.Description,
		Lat:         p.Lat,
		Lon:         p.Lon,
		URL:         URL(p.Slug),
		PopupImage:  p.PopupImage,
	}
}

// Records projects every pin, preserving order. The result is never nil.
func Records(pins []models.Pin) []models.PinRecord {
	out := make([]models.PinRecord, 0, len(pins))
	for _, p := range pins {
		out = append(out, Record(p))
	}
	return out
}

// MarshalRecords encodes pins as a JSON array. HTML-significant characters
// are escaped so the payload can be inlined in a script element.
func MarshalRecords(pins []models.Pin) ([]byte, error) {
	data, err := json.Marshal(Records(pins))
	if err != nil {
		return nil, fmt.Errorf("pins: marshal records: %w", err)
	}
	return data, nil
}
