package geo

import "github.com/codezero-health/er-intake/internal/domain/entities"

// StaticHospitals is the seeded reference pool used when no hospital
// directory is configured. Countries match the rough GPS detection in
// DetectCountry.
var StaticHospitals = []entities.Hospital{
	{Name: "Klinikum Stuttgart Katharinenhospital", Lat: 48.7823, Lon: 9.1695, Address: "Kriegsbergstraße 60, 70174 Stuttgart", Country: "DE"},
	{Name: "Robert-Bosch-Krankenhaus Stuttgart", Lat: 48.8044, Lon: 9.2046, Address: "Auerbachstraße 110, 70376 Stuttgart", Country: "DE"},
	{Name: "Marienhospital Stuttgart", Lat: 48.7639, Lon: 9.1686, Address: "Böheimstraße 37, 70199 Stuttgart", Country: "DE"},
	{Name: "Diakonie-Klinikum Stuttgart", Lat: 48.7744, Lon: 9.1671, Address: "Rosenbergstraße 38, 70176 Stuttgart", Country: "DE"},
	{Name: "Klinikum Ludwigsburg", Lat: 48.8976, Lon: 9.1873, Address: "Posilipostraße 4, 71640 Ludwigsburg", Country: "DE"},
	{Name: "LMU Klinikum München Großhadern", Lat: 48.1106, Lon: 11.4706, Address: "Marchioninistraße 15, 81377 München", Country: "DE"},
	{Name: "Charité Campus Mitte Berlin", Lat: 52.5263, Lon: 13.3777, Address: "Charitéplatz 1, 10117 Berlin", Country: "DE"},
	{Name: "St Thomas' Hospital London", Lat: 51.4989, Lon: -0.1181, Address: "Westminster Bridge Rd, London SE1 7EH", Country: "UK"},
	{Name: "Royal London Hospital", Lat: 51.5191, Lon: -0.0602, Address: "Whitechapel Rd, London E1 1FR", Country: "UK"},
	{Name: "Manchester Royal Infirmary", Lat: 53.4622, Lon: -2.2257, Address: "Oxford Rd, Manchester M13 9WL", Country: "UK"},
	{Name: "Ankara Şehir Hastanesi", Lat: 39.8872, Lon: 32.7434, Address: "Üniversiteler Mah., 06800 Çankaya/Ankara", Country: "TR"},
	{Name: "İstanbul Şişli Hamidiye Etfal Hastanesi", Lat: 41.0605, Lon: 28.9877, Address: "Halaskargazi Cad., 34371 Şişli/İstanbul", Country: "TR"},
	{Name: "Acıbadem Maslak Hastanesi", Lat: 41.1086, Lon: 29.0244, Address: "Büyükdere Cad. 40, 34457 Sarıyer/İstanbul", Country: "TR"},
}

// EmergencyNumber is the national emergency call number for a country
type EmergencyNumber struct {
	Number string `json:"number"`
	Label  string `json:"label"`
}

var emergencyNumbers = map[string]EmergencyNumber{
	"DE": {Number: "112", Label: "Notruf"},
	"UK": {Number: "999", Label: "Emergency"},
	"GB": {Number: "999", Label: "Emergency"},
	"TR": {Number: "112", Label: "Acil"},
	"FR": {Number: "15", Label: "SAMU"},
	"NL": {Number: "112", Label: "Spoed"},
}

var defaultEmergencyNumber = EmergencyNumber{Number: "112", Label: "Emergency"}

// EmergencyNumberFor returns the emergency number for a country,
// defaulting to the EU-wide 112.
func EmergencyNumberFor(country string) EmergencyNumber {
	if num, ok := emergencyNumbers[country]; ok {
		return num
	}
	return defaultEmergencyNumber
}

// DetectCountry guesses the country from rough lat/lon bounding boxes.
// Defaults to DE, matching the static pool's densest coverage.
func DetectCountry(lat, lon float64) string {
	switch {
	case lat >= 47.2 && lat <= 55.1 && lon >= 5.9 && lon <= 15.1:
		return "DE"
	case lat >= 49.9 && lat <= 60.9 && lon >= -8.6 && lon <= 1.8:
		return "UK"
	case lat >= 35.8 && lat <= 42.1 && lon >= 26.0 && lon <= 44.8:
		return "TR"
	default:
		return "DE"
	}
}
