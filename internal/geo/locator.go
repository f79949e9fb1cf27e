package geo

import "context"

// Locator yields the shopper's current position. Implementations wrap
// whatever the deployment has: client-reported coordinates, a fixed test
// position, or nothing at all.
type Locator interface {
	Current(ctx context.Context) (Coord, error)
}

type fixedLocator struct {
	pos Coord
}

func NewFixedLocator(pos Coord) Locator {
	return fixedLocator{pos: pos}
}

func (l fixedLocator) Current(ctx context.Context) (Coord, error) {
	return l.pos, nil
}

type deniedLocator struct{}

// NewDeniedLocator stands in when no location source exists; every request
// degrades the same way a browser permission denial does.
func NewDeniedLocator() Locator {
	return deniedLocator{}
}

func (deniedLocator) Current(ctx context.Context) (Coord, error) {
	return Coord{}, ErrLocationUnavailable
}
