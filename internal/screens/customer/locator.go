package customer

import "context"

// Locator abstracts device geolocation. Implementations may fail (no
// permission, no fix); callers fall back to DefaultLocation.
type Locator interface {
	Locate(ctx context.Context) (lat, lng float64, err error)
}

// DefaultLocation is used when geolocation is unavailable and the user
// has not typed coordinates.
var DefaultLocation = struct {
	Lat float64
	Lng float64
}{Lat: 28.6139, Lng: 77.2090}

// FixedLocator always reports the same point. The terminal front end uses
// it with configured coordinates; tests use it directly.
type FixedLocator struct {
	Lat float64
	Lng float64
	Err error
}

func (f FixedLocator) Locate(ctx context.Context) (float64, float64, error) {
	if f.Err != nil {
		return 0, 0, f.Err
	}
	return f.Lat, f.Lng, nil
}
