package influence

import "math"

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometers between
// two coordinates given in degrees.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180.0
	rlon1 := lon1 * math.Pi / 180.0
	rlat2 := lat2 * math.Pi / 180.0
	rlon2 := lon2 * math.Pi / 180.0

	dLat := rlat2 - rlat1
	dLon := rlon2 - rlon1

	hSin := math.Sin(dLat / 2)
	hSin *= hSin
	vSin := math.Sin(dLon / 2)
	vSin *= vSin

	h := hSin + math.Cos(rlat1)*math.Cos(rlat2)*vSin
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
