package geocode

// Point is a latitude/longitude pair. The zero value doubles as the
// "not yet geocoded" sentinel used throughout the dataset.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Config carries the static country tables. They are passed in rather
// than read from package state so tests and alternative datasets can
// substitute their own.
type Config struct {
	// Centers maps ISO 3166-1 alpha-2 codes to country centroids, the
	// fallback when a city cannot be resolved.
	Centers map[string]Point
	// Names maps country codes to the English country names used in
	// lookup queries and cache keys.
	Names map[string]string
}

// DefaultConfig returns the tables for the European coverage area.
func DefaultConfig() Config {
	return Config{
		Centers: map[string]Point{
			"AT": {47.5162, 14.5501},
			"BE": {50.8503, 4.3517},
			"DK": {56.2639, 9.5018},
			"FI": {61.9241, 25.7482},
			"FR": {46.2276, 2.2137},
			"DE": {51.1657, 10.4515},
			"IT": {41.8719, 12.5674},
			"NO": {60.4720, 8.4689},
			"PL": {51.9194, 19.1451},
			"PT": {39.3999, -8.2245},
			"ES": {40.4637, -3.7492},
			"SE": {60.1282, 18.6435},
			"CH": {46.8182, 8.2275},
			"GB": {55.3781, -3.4360},
			"CZ": {49.8175, 15.4730},
			"HU": {47.1625, 19.5033},
			"LU": {49.8153, 6.1296},
			"MT": {35.9375, 14.3754},
			"NL": {52.1326, 5.2913},
			"RO": {45.9432, 24.9668},
			"SK": {48.6690, 19.6990},
			"SI": {46.1512, 14.9955},
			"AL": {41.1533, 20.1683},
			"IS": {64.9631, -19.0208},
			"HR": {45.1000, 15.2000},
			"BG": {42.7339, 25.4858},
			"RS": {44.0165, 21.0059},
			"GR": {39.0742, 21.8243},
		},
		Names: map[string]string{
			"AT": "Austria", "BE": "Belgium", "DK": "Denmark", "FI": "Finland",
			"FR": "France", "DE": "Germany", "IT": "Italy", "NO": "Norway",
			"PL": "Poland", "PT": "Portugal", "ES": "Spain", "SE": "Sweden",
			"CH": "Switzerland", "GB": "United Kingdom", "CZ": "Czech Republic",
			"HU": "Hungary", "LU": "Luxembourg", "MT": "Malta",
			"NL": "Netherlands", "RO": "Romania", "SK": "Slovakia",
			"SI": "Slovenia", "AL": "Albania", "IS": "Iceland", "HR": "Croatia",
			"BG": "Bulgaria", "RS": "Serbia", "GR": "Greece",
		},
	}
}

// Fallback returns the country centroid for a code, or the (0,0)
// sentinel when the code is unknown.
func (c Config) Fallback(countryCode string) Point {
	if p, ok := c.Centers[countryCode]; ok {
		return p
	}
	return Point{}
}
