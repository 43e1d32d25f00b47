package geo

import (
	"math"

	"github.com/shenikar/incident_dispatch/internal/models"
)

// EarthRadiusKM - средний радиус Земли для формулы гаверсинуса
const EarthRadiusKM = 6371.0

// Distance возвращает расстояние по большому кругу в километрах, округленное до 2 знаков.
// Если у любой из точек нет координат, ok == false: расстояние неизвестно, а не равно нулю.
func Distance(a, b *models.Coordinates) (km float64, ok bool) {
	if a == nil || b == nil {
		return 0, false
	}

	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := lat2 - lat1
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return Round(EarthRadiusKM*c, 2), true
}

// Round округляет значение до заданного числа знаков после запятой
func Round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
