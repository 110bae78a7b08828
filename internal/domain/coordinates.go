package domain

import "fmt"

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Key renders the "lon,lat" form used by routing-table services and as a
// stable cache key for travel legs.
func (c Coordinates) Key() string { return fmt.Sprintf("%.6f,%.6f", c.Lon, c.Lat) }
