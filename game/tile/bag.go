package tile

import "math/rand"

// Bag holds the tiles waiting to be drawn and the discard pile that refills it.
// The shuffle source is derived from the Seed and the number of shuffles so far, so a copied bag draws the same tiles as the original.
type Bag struct {
	Tiles    []Color `json:"tiles"`
	Discard  []Color `json:"discard"`
	Seed     int64   `json:"seed"`
	Shuffles int64   `json:"shuffles"`
}

// NewBag creates a shuffled bag holding every tile.
func NewBag(seed int64) Bag {
	tiles := make([]Color, 0, Total)
	for _, c := range Colors {
		for i := 0; i < PerColor; i++ {
			tiles = append(tiles, c)
		}
	}
	b := Bag{
		Tiles: tiles,
		Seed:  seed,
	}
	b.shuffle()
	return b
}

// Draw removes up to n tiles from the bag.
// When the bag runs out, the discard pile is shuffled into it before drawing continues.
// Fewer than n tiles are returned only if the bag and discard pile are both empty.
func (b *Bag) Draw(n int) []Color {
	drawn := make([]Color, 0, n)
	for len(drawn) < n {
		if len(b.Tiles) == 0 {
			if len(b.Discard) == 0 {
				break
			}
			b.Tiles = b.Discard
			b.Discard = nil
			b.shuffle()
		}
		k := min(n-len(drawn), len(b.Tiles))
		drawn = append(drawn, b.Tiles[:k]...)
		b.Tiles = b.Tiles[k:]
	}
	return drawn
}

// Return adds tiles to the discard pile.  Markers are never discarded.
func (b *Bag) Return(tiles ...Color) {
	for _, t := range tiles {
		if t.Valid() {
			b.Discard = append(b.Discard, t)
		}
	}
}

// Len is the number of tiles in the bag and discard pile.
func (b Bag) Len() int {
	return len(b.Tiles) + len(b.Discard)
}

// Clone creates a copy of the bag that shares no memory with it.
func (b Bag) Clone() Bag {
	b2 := b
	b2.Tiles = Clone(b.Tiles)
	b2.Discard = Clone(b.Discard)
	return b2
}

// Clone copies the tiles into a new slice.  A nil slice stays nil.
func Clone(tiles []Color) []Color {
	if tiles == nil {
		return nil
	}
	tiles2 := make([]Color, len(tiles))
	copy(tiles2, tiles)
	return tiles2
}

func (b *Bag) shuffle() {
	r := rand.New(rand.NewSource(b.Seed + b.Shuffles))
	r.Shuffle(len(b.Tiles), func(i, j int) {
		b.Tiles[i], b.Tiles[j] = b.Tiles[j], b.Tiles[i]
	})
	b.Shuffles++
}
