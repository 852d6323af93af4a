package courier

import "strings"

// FallbackCity is a bundled city used when the upstream is unavailable and for seeding.
type FallbackCity struct {
	Slug     string
	Name     string
	Province string
}

var fallbackCities = []FallbackCity{
	{"karachi", "Karachi", "Sindh"},
	{"lahore", "Lahore", "Punjab"},
	{"islamabad", "Islamabad", "Islamabad Capital Territory"},
	{"rawalpindi", "Rawalpindi", "Punjab"},
	{"faisalabad", "Faisalabad", "Punjab"},
	{"multan", "Multan", "Punjab"},
	{"gujranwala", "Gujranwala", "Punjab"},
	{"sialkot", "Sialkot", "Punjab"},
	{"bahawalpur", "Bahawalpur", "Punjab"},
	{"sargodha", "Sargodha", "Punjab"},
	{"hyderabad", "Hyderabad", "Sindh"},
	{"sukkur", "Sukkur", "Sindh"},
	{"larkana", "Larkana", "Sindh"},
	{"peshawar", "Peshawar", "Khyber Pakhtunkhwa"},
	{"abbottabad", "Abbottabad", "Khyber Pakhtunkhwa"},
	{"mardan", "Mardan", "Khyber Pakhtunkhwa"},
	{"quetta", "Quetta", "Balochistan"},
	{"gwadar", "Gwadar", "Balochistan"},
	{"gilgit", "Gilgit", "Gilgit-Baltistan"},
	{"muzaffarabad", "Muzaffarabad", "Azad Jammu and Kashmir"},
}

var fallbackProvinces = []string{
	"Punjab",
	"Sindh",
	"Khyber Pakhtunkhwa",
	"Balochistan",
	"Islamabad Capital Territory",
	"Gilgit-Baltistan",
	"Azad Jammu and Kashmir",
}

var fallbackAreas = map[string][]string{
	"karachi":    {"Clifton", "DHA", "Gulshan-e-Iqbal", "North Nazimabad", "Saddar", "PECHS", "Korangi"},
	"lahore":     {"Gulberg", "DHA", "Johar Town", "Model Town", "Bahria Town", "Iqbal Town", "Anarkali"},
	"islamabad":  {"F-6", "F-7", "F-10", "G-9", "G-11", "I-8", "Blue Area", "Bahria Town"},
	"rawalpindi": {"Saddar", "Satellite Town", "Bahria Town", "Chaklala", "Westridge"},
	"faisalabad": {"D Ground", "Madina Town", "Peoples Colony", "Susan Road"},
	"peshawar":   {"Hayatabad", "University Town", "Saddar", "Gulbahar"},
	"multan":     {"Cantt", "Gulgasht Colony", "Shah Rukn-e-Alam", "Bosan Road"},
	"quetta":     {"Jinnah Town", "Satellite Town", "Samungli Road"},
}

// FallbackCities returns a copy of the bundled city list.
func FallbackCities() []FallbackCity {
	out := make([]FallbackCity, len(fallbackCities))
	copy(out, fallbackCities)
	return out
}

// FallbackCityPlaces returns the bundled cities in {id, name} form; ids are slugs.
func FallbackCityPlaces() []Place {
	places := make([]Place, 0, len(fallbackCities))
	for _, c := range fallbackCities {
		places = append(places, Place{ID: c.Slug, Name: c.Name})
	}
	return places
}

func FallbackProvinces() []string {
	out := make([]string, len(fallbackProvinces))
	copy(out, fallbackProvinces)
	return out
}

// FallbackAreaPlaces returns bundled areas for a city given by slug, name or
// any id the client got from FallbackCityPlaces. Unknown cities yield an empty list.
func FallbackAreaPlaces(cityID string) []Place {
	key := strings.ToLower(strings.TrimSpace(cityID))
	for _, c := range fallbackCities {
		if strings.ToLower(c.Name) == key {
			key = c.Slug
			break
		}
	}

	areas := fallbackAreas[key]
	places := make([]Place, 0, len(areas))
	for _, name := range areas {
		id := key + "-" + strings.ToLower(strings.NewReplacer(" ", "-", "/", "-").Replace(name))
		places = append(places, Place{ID: id, Name: name})
	}
	return places
}
