// Filter menu: closed set of filter kinds with display metadata
package algorithms

import (
	"fmt"
	"strings"

	"band-visualizer/internal/raster"
)

// FilterKind is one entry of the fixed filter menu.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterVegetationHighlight
	FilterNaturalColor
	FilterUrbanSoil
	FilterWaterBodies
	FilterHealthyVegetationContrast
	FilterNDVIEnhanced
	FilterSAVI
	FilterEVI
)

// FilterInfo describes a filter for UI generation.
type FilterInfo struct {
	Kind        FilterKind `json:"kind"`
	Name        string     `json:"name"`
	Aliases     []string   `json:"aliases,omitempty"`
	Description string     `json:"description"`
	NeedsNIR    bool       `json:"needs_nir"`
	Output      string     `json:"output"` // "rgb" or "grayscale"
}

var filters = []FilterInfo{
	{
		Kind:        FilterNone,
		Name:        "None",
		Description: "Keep the current image",
	},
	{
		Kind:        FilterVegetationHighlight,
		Name:        "Vegetation Highlight",
		Description: "False color (NIR, red, green); vegetation shows red",
		NeedsNIR:    true,
		Output:      "rgb",
	},
	{
		Kind:        FilterNaturalColor,
		Name:        "Natural Color",
		Description: "True color (red, green, blue)",
		Output:      "rgb",
	},
	{
		Kind:        FilterUrbanSoil,
		Name:        "Urban/Soil",
		Description: "False color (SWIR, red, green); red stands in for a missing SWIR band",
		Output:      "rgb",
	},
	{
		Kind:        FilterWaterBodies,
		Name:        "Water Bodies",
		Description: "Blue minus NIR; open water shows bright",
		NeedsNIR:    true,
		Output:      "grayscale",
	},
	{
		Kind:        FilterHealthyVegetationContrast,
		Name:        "Healthy Vegetation Contrast",
		Description: "NIR minus red",
		NeedsNIR:    true,
		Output:      "grayscale",
	},
	{
		Kind:        FilterNDVIEnhanced,
		Name:        "NDVI Enhanced",
		Description: "NDVI with its square and cube as color channels",
		NeedsNIR:    true,
		Output:      "rgb",
	},
	{
		Kind:        FilterSAVI,
		Name:        "SAVI (Soil-Adjusted Vegetation Index)",
		Aliases:     []string{"SAVI"},
		Description: "Soil-adjusted vegetation index with L=0.5",
		NeedsNIR:    true,
		Output:      "grayscale",
	},
	{
		Kind:        FilterEVI,
		Name:        "EVI (Enhanced Vegetation Index)",
		Aliases:     []string{"EVI"},
		Description: "Enhanced vegetation index",
		NeedsNIR:    true,
		Output:      "grayscale",
	},
}

// Filters returns the filter menu in display order.
func Filters() []FilterInfo {
	result := make([]FilterInfo, len(filters))
	copy(result, filters)
	return result
}

// FilterNames returns the display names in menu order.
func FilterNames() []string {
	names := make([]string, len(filters))
	for i, f := range filters {
		names[i] = f.Name
	}
	return names
}

// ParseFilterKind maps a display name or alias, case-insensitively, to its kind.
func ParseFilterKind(name string) (FilterKind, error) {
	name = strings.TrimSpace(name)
	for _, f := range filters {
		if strings.EqualFold(f.Name, name) {
			return f.Kind, nil
		}
		for _, alias := range f.Aliases {
			if strings.EqualFold(alias, name) {
				return f.Kind, nil
			}
		}
	}
	return FilterNone, fmt.Errorf("%w: %q", raster.ErrUnknownFilter, name)
}

// Info returns the menu entry for k.
func (k FilterKind) Info() (FilterInfo, bool) {
	if k < FilterNone || k > FilterEVI {
		return FilterInfo{}, false
	}
	return filters[k], true
}

func (k FilterKind) String() string {
	if info, ok := k.Info(); ok {
		return info.Name
	}
	return fmt.Sprintf("FilterKind(%d)", int(k))
}
