// Package location describes where the shop is and how to get there.
package location

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

const earthRadiusKM = 6371

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat" query:"lat"`
	Lng float64 `json:"lng" query:"lng"`
}

// Settings is the shop location, stored as the brocante_location setting.
type Settings struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// Default is the shop location used when nothing is configured.
func Default() Settings {
	return Settings{Lat: 3.8480, Lng: 11.5021, Address: "Tropicana, Yaoundé, Cameroun"} //nolint:mnd
}

// FromSetting merges the brocante_location value over Default. The value is
// either the decoded JSON object or a JSON string, anything else is ignored.
func FromSetting(v any) Settings {
	s := Default()

	var raw []byte

	switch t := v.(type) {
	case nil:
		return s
	case string:
		raw = []byte(t)
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return s
		}

		raw = b
	default:
		return s
	}

	if err := json.Unmarshal(raw, &s); err != nil {
		log.Warn().Err(err).Msg("invalid brocante_location setting, using default")

		return Default()
	}

	return s
}

// Point returns the shop coordinate.
func (s Settings) Point() Point {
	return Point{Lat: s.Lat, Lng: s.Lng}
}

// AddressLines splits the address on commas.
func (s Settings) AddressLines() []string {
	parts := strings.Split(s.Address, ",")
	lines := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}

	return lines
}

// MapsURL searches the address on Google Maps.
func (s Settings) MapsURL() string {
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(s.Address)
}

// DirectionsURL returns the Google Maps route from from to the shop, or
// MapsURL without starting point.
func (s Settings) DirectionsURL(from *Point) string {
	if from == nil {
		return s.MapsURL()
	}

	return fmt.Sprintf("https://www.google.com/maps/dir/%s/%s", coord(*from), coord(s.Point()))
}

func coord(p Point) string {
	return fmt.Sprintf("%g,%g", p.Lat, p.Lng)
}

// Distance returns the great circle distance in km.
func Distance(a, b Point) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKM * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180 //nolint:mnd
}

// Route is the way from a visitor to the shop.
type Route struct {
	From Point
	// DistanceKM is rounded to 0.1 km.
	DistanceKM    float64
	Duration      string
	Directions    string
	DirectionsURL string
}

// Route computes distance, travel time and advice from from.
func (s Settings) Route(from Point) Route {
	d := math.Round(Distance(from, s.Point())*10) / 10 //nolint:mnd

	return Route{
		From:          from,
		DistanceKM:    d,
		Duration:      TravelTime(d),
		Directions:    Directions(d),
		DirectionsURL: s.DirectionsURL(&from),
	}
}

// TravelTime estimates the time needed to cover km in town.
func TravelTime(km float64) string {
	switch {
	case km < 1:
		return "5-10 min"
	case km < 3: //nolint:mnd
		return "10-20 min"
	case km < 5: //nolint:mnd
		return "20-30 min"
	case km < 10: //nolint:mnd
		return "30-45 min"
	default:
		return "45+ min"
	}
}

// Directions recommends a way of transport for km.
func Directions(km float64) string {
	switch {
	case km < 0.5: //nolint:mnd
		return "À quelques minutes à pied. Profitez de la balade !"
	case km < 2: //nolint:mnd
		return "Idéal en taxi ou moto-taxi. Plusieurs lignes de transport disponibles."
	case km < 5: //nolint:mnd
		return "Recommandé en taxi ou bus. Notre quartier est bien desservi."
	default:
		return "Accessible en taxi ou voiture personnelle. Stationnement disponible."
	}
}
