package location_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/labrocante/brocante/internal/location"
)

func TestFromSetting(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  location.Settings
	}{
		{name: "missing", want: location.Default()},
		{
			name:  "decoded object",
			value: map[string]any{"lat": 4.05, "lng": 9.7, "address": "Akwa, Douala"},
			want:  location.Settings{Lat: 4.05, Lng: 9.7, Address: "Akwa, Douala"},
		},
		{
			name:  "partial object keeps defaults",
			value: map[string]any{"address": "Bastos, Yaoundé"},
			want:  location.Settings{Lat: 3.8480, Lng: 11.5021, Address: "Bastos, Yaoundé"},
		},
		{
			name:  "json string",
			value: `{"lat":3.87,"lng":11.52}`,
			want:  location.Settings{Lat: 3.87, Lng: 11.52, Address: "Tropicana, Yaoundé, Cameroun"},
		},
		{name: "broken json string", value: `{"lat":`, want: location.Default()},
		{name: "other type", value: 42.0, want: location.Default()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, location.FromSetting(tt.value))
		})
	}
}

func TestDistance(t *testing.T) {
	yaounde := location.Point{Lat: 3.8480, Lng: 11.5021}
	douala := location.Point{Lat: 4.0511, Lng: 9.7679}

	assert.InDelta(t, 0, location.Distance(yaounde, yaounde), 1e-9)
	assert.InDelta(t, 194, location.Distance(yaounde, douala), 2)
	assert.InDelta(t, location.Distance(yaounde, douala), location.Distance(douala, yaounde), 1e-9)
}

func TestRoute(t *testing.T) {
	shop := location.Default()

	tests := []struct {
		name       string
		from       location.Point
		duration   string
		directions string
	}{
		{name: "at the shop", from: shop.Point(), duration: "5-10 min", directions: "À quelques minutes à pied. Profitez de la balade !"},
		{name: "about 1.1 km", from: location.Point{Lat: 3.8580, Lng: 11.5021}, duration: "10-20 min", directions: "Idéal en taxi ou moto-taxi. Plusieurs lignes de transport disponibles."},
		{name: "about 3.3 km", from: location.Point{Lat: 3.8780, Lng: 11.5021}, duration: "20-30 min", directions: "Recommandé en taxi ou bus. Notre quartier est bien desservi."},
		{name: "about 7.8 km", from: location.Point{Lat: 3.9180, Lng: 11.5021}, duration: "30-45 min", directions: "Accessible en taxi ou voiture personnelle. Stationnement disponible."},
		{name: "douala", from: location.Point{Lat: 4.0511, Lng: 9.7679}, duration: "45+ min", directions: "Accessible en taxi ou voiture personnelle. Stationnement disponible."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := shop.Route(tt.from)
			assert.Equal(t, tt.duration, r.Duration)
			assert.Equal(t, tt.directions, r.Directions)
			assert.InDelta(t, r.DistanceKM*10, float64(int(r.DistanceKM*10+0.5)), 1e-6, "rounded to 0.1 km")
		})
	}
}

func TestBands(t *testing.T) {
	assert.Equal(t, "5-10 min", location.TravelTime(0.99))
	assert.Equal(t, "10-20 min", location.TravelTime(1))
	assert.Equal(t, "45+ min", location.TravelTime(10))
	assert.Equal(t, "Idéal en taxi ou moto-taxi. Plusieurs lignes de transport disponibles.", location.Directions(0.5))
}

func TestURLs(t *testing.T) {
	shop := location.Default()

	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=Tropicana%2C+Yaound%C3%A9%2C+Cameroun", shop.MapsURL())
	assert.Equal(t, shop.MapsURL(), shop.DirectionsURL(nil))
	assert.Equal(t, "https://www.google.com/maps/dir/3.9,11.5/3.848,11.5021",
		shop.DirectionsURL(&location.Point{Lat: 3.9, Lng: 11.5}))
	assert.Equal(t, []string{"Tropicana", "Yaoundé", "Cameroun"}, shop.AddressLines())
}
