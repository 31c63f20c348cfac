// Package geo resolves coordinates to the nearest covered county.
package geo

import (
	"math"

	"github.com/msituguard/msituguard/internal/models"
)

const earthRadiusKM = 6371.0

// HaversineKM returns the great-circle distance between two points.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

// NearestCounty picks the county whose centroid is closest to the point.
// Returns nil when no counties are provided.
func NearestCounty(lat, lon float64, counties []models.County) (*models.County, float64) {
	var nearest *models.County
	best := math.MaxFloat64
	for i := range counties {
		d := HaversineKM(lat, lon, counties[i].Latitude, counties[i].Longitude)
		if d < best {
			best = d
			nearest = &counties[i]
		}
	}
	if nearest == nil {
		return nil, 0
	}
	return nearest, best
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
