package geo

import "math"

const earthRadiusKm = 6371.0

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Region is a user's home point plus service radius, used for proximity
// search and distance personalization.
type Region struct {
	Center   Point   `json:"center"`
	RadiusKm float64 `json:"radius_km"`
}

// DistanceMeters returns the great-circle distance between two points
// computed with the haversine formula.
func DistanceMeters(a, b Point) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	latARad := a.Lat * math.Pi / 180
	latBRad := b.Lat * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(latARad)*math.Cos(latBRad)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c * 1000
}

// Annotate computes the distance in meters from origin to a listing's stored
// point. It returns nil when either side is unknown: distance is absent,
// never zero.
func Annotate(origin *Point, lat, lng *float64) *float64 {
	if origin == nil || lat == nil || lng == nil {
		return nil
	}

	d := DistanceMeters(*origin, Point{Lat: *lat, Lng: *lng})
	return &d
}

// WithinRadius reports whether a listing point lies within radiusKm of
// origin. The boundary is inclusive; a listing without a stored point never
// matches a radius-bounded search.
func WithinRadius(origin Point, lat, lng *float64, radiusKm float64) bool {
	if lat == nil || lng == nil {
		return false
	}

	return DistanceMeters(origin, Point{Lat: *lat, Lng: *lng}) <= radiusKm*1000
}
