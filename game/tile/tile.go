// Package tile contains the colored tiles players draft and the bag they are drawn from.
package tile

import (
	"errors"
	"fmt"
)

// Color is the color of a tile.
// The first-player Marker shares the type because it occupies a floor slot like a tile does.
type Color int

const (
	_ Color = iota
	// Blue is the dark blue tile.
	Blue
	// Yellow is the yellow tile.
	Yellow
	// Red is the red tile.
	Red
	// Black is the black tile.
	Black
	// Teal is the light blue tile.
	Teal
	// Marker is the first-player marker.  It is never drawn from the bag.
	Marker
)

const (
	// NumColors is the number of tile colors.
	NumColors = 5
	// PerColor is the number of tiles of each color in a game.
	PerColor = 20
	// Total is the number of tiles in a game.
	Total = NumColors * PerColor
)

// Colors is every tile color, in wall-pattern order.
var Colors = [NumColors]Color{Blue, Yellow, Red, Black, Teal}

var colorNames = map[Color]string{
	Blue:   "blue",
	Yellow: "yellow",
	Red:    "red",
	Black:  "black",
	Teal:   "teal",
	Marker: "marker",
}

// ErrUnknownColor is returned when a name does not match any color.
var ErrUnknownColor = errors.New("unknown tile color")

// Valid reports whether the color is one of the five tile colors.
func (c Color) Valid() bool {
	return Blue <= c && c <= Teal
}

// String returns the lowercase name of the color.
func (c Color) String() string {
	if n, ok := colorNames[c]; ok {
		return n
	}
	return "?"
}

// ParseColor returns the color with the lowercase name.
func ParseColor(name string) (Color, error) {
	for c, n := range colorNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColor, name)
}

// Count returns the number of tiles of the color.
func Count(tiles []Color, c Color) int {
	n := 0
	for _, t := range tiles {
		if t == c {
			n++
		}
	}
	return n
}

// Split partitions the tiles into those matching the color and the rest, preserving order.
func Split(tiles []Color, c Color) (matching, rest []Color) {
	for _, t := range tiles {
		if t == c {
			matching = append(matching, t)
		} else {
			rest = append(rest, t)
		}
	}
	return matching, rest
}
