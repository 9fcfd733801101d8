// Package models defines the domain types for pinmap.
package models

import "html/template"

// Pin represents one parsed pin source file.
type Pin struct {
	Slug        string
	Title       string
	Description string
	Lat         float64
	Lon         float64
	BodyHTML    template.HTML
	PopupImage  *string
	SourcePath  string
}

// HasPopupImage reports whether the pin references a popup image.
func (p Pin) HasPopupImage() bool {
	return p.PopupImage != nil
}

// PinRecord is the JSON shape embedded in the index page for client-side code.
// Every key is always present; popup_image is null when the pin has none.
type PinRecord struct {
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	URL         string  `json:"url"`
	PopupImage  *string `json:"popup_image"`
}
