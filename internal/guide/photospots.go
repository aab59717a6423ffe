package guide

import (
	"fmt"
	"net/url"
	"strings"

	"tripboard/internal/model"
)

// Difficulty says how much effort or kit a shot needs.
type Difficulty string

const (
	Easy     Difficulty = "easy"
	Moderate Difficulty = "moderate"
	Advanced Difficulty = "advanced"
)

// PhotoSpot is a curated place to take pictures.
type PhotoSpot struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Lat         float64    `json:"lat"`
	Lng         float64    `json:"lng"`
	City        string     `json:"city"`
	BestTime    string     `json:"best_time"`
	Tips        string     `json:"tips"`
	Category    string     `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
	MapsURL     string     `json:"maps_url"`
}

// PhotoSpotGroup is the spots of one city.
type PhotoSpotGroup struct {
	City  string      `json:"city"`
	Spots []PhotoSpot `json:"spots"`
}

// PhotoCategory labels a spot category with its icon.
type PhotoCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

var PhotoCategories = []PhotoCategory{
	{"architecture", "Architecture", "🏛️"},
	{"landscape", "Landscape", "🌄"},
	{"street", "Street", "🎨"},
	{"night", "Night", "🌙"},
	{"nature", "Nature", "🌳"},
	{"fun", "Fun", "😄"},
}

// PhotoTip is shown under the spot list.
const PhotoTip = "Always respect local customs and ask permission when photographing people. " +
	"Some locations may require entry fees or have restricted hours."

var photoSpots = []PhotoSpot{
	{
		Name: "Main Market Square at Dawn", City: "Kraków", Lat: 50.0616, Lng: 19.9373,
		Description: "Capture the historic square without crowds and with golden light",
		BestTime:    "6:00-7:30 AM",
		Tips:        "Stand near the Cloth Hall for symmetrical composition. Use wide angle lens.",
		Category:    "architecture", Difficulty: Easy,
	},
	{
		Name: "Wawel Castle from Vistula Bridge", City: "Kraków", Lat: 50.0531, Lng: 19.9356,
		Description: "Classic postcard view of the castle reflecting in the river",
		BestTime:    "Golden hour (1 hour before sunset)",
		Tips:        "Bring tripod for long exposure. Best from the pedestrian walkway.",
		Category:    "landscape", Difficulty: Moderate,
	},
	{
		Name: "St. Mary's Basilica Tower Detail", City: "Kraków", Lat: 50.0619, Lng: 19.9394,
		Description: "Gothic architecture details and the famous trumpet window",
		BestTime:    "10:00 AM (trumpet call)",
		Tips:        "Use telephoto lens. Wait for the hourly trumpet call for action shot.",
		Category:    "architecture", Difficulty: Moderate,
	},
	{
		Name: "Kazimierz Street Art & Synagogues", City: "Kraków", Lat: 50.0513, Lng: 19.9457,
		Description: "Colorful murals contrasting with historic Jewish quarter",
		BestTime:    "Mid-morning to afternoon",
		Tips:        "Explore side streets. Respect religious sites - ask before photographing.",
		Category:    "street", Difficulty: Easy,
	},
	{
		Name: "Planty Park Autumn Colors", City: "Kraków", Lat: 50.0647, Lng: 19.9450,
		Description: "Tree-lined walkway circling the Old Town",
		BestTime:    "Early morning or late afternoon",
		Tips:        "September colors are subtle but beautiful. Focus on leading lines.",
		Category:    "nature", Difficulty: Easy,
	},
	{
		Name: "Market Square from Town Hall Tower", City: "Wrocław", Lat: 51.1095, Lng: 17.0317,
		Description: "Aerial view of colorful baroque buildings",
		BestTime:    "Mid-afternoon",
		Tips:        "Buy tower access ticket. Use wide angle for full square coverage.",
		Category:    "architecture", Difficulty: Advanced,
	},
	{
		Name: "Ostrów Tumski at Blue Hour", City: "Wrocław", Lat: 51.1145, Lng: 17.0467,
		Description: "Cathedral Island with gas lamps being lit manually",
		BestTime:    "30 minutes after sunset",
		Tips:        "Arrive early to watch lamplighter. Bring tripod for night shots.",
		Category:    "night", Difficulty: Advanced,
	},
	{
		Name: "Gnome Hunt Collection", City: "Wrocław", Lat: 51.1079, Lng: 17.0385,
		Description: "Create a series of the famous bronze dwarfs",
		BestTime:    "Any time",
		Tips:        "Get down to gnome eye level. Each has unique character and story.",
		Category:    "fun", Difficulty: Easy,
	},
	{
		Name: "Centennial Hall Architecture", City: "Wrocław", Lat: 51.1067, Lng: 17.0774,
		Description: "UNESCO concrete masterpiece with geometric patterns",
		BestTime:    "Morning for best light",
		Tips:        "Focus on the innovative concrete work. Capture both exterior and interior.",
		Category:    "architecture", Difficulty: Moderate,
	},
	{
		Name: "Nadodrze Street Art Tour", City: "Wrocław", Lat: 51.1067, Lng: 17.0154,
		Description: "Large-scale murals in former industrial district",
		BestTime:    "Anytime (good lighting all day)",
		Tips:        "Allow 2-3 hours to explore. Respect private property boundaries.",
		Category:    "street", Difficulty: Easy,
	},
}

// MapsLink opens a map search at the given point.
func MapsLink(lat, lng float64) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("query", fmt.Sprintf("%g,%g", lat, lng))
	return "https://www.google.com/maps/search/?" + q.Encode()
}

// Icon returns the category icon, or a camera for unknown categories.
func (p PhotoSpot) Icon() string {
	for _, c := range PhotoCategories {
		if c.ID == p.Category {
			return c.Icon
		}
	}
	return "📷"
}

// PhotoSpots groups the spots by city, optionally restricted to one city
// ("" or "all" keeps every city; the name match ignores case). Groups appear in order of their first
// spot and keep their spots' order.
func PhotoSpots(city string) []PhotoSpotGroup {
	var groups []PhotoSpotGroup
	index := make(map[string]int)
	for _, s := range photoSpots {
		if city != "" && city != "all" && !strings.EqualFold(s.City, city) {
			continue
		}
		s.MapsURL = MapsLink(s.Lat, s.Lng)
		i, ok := index[s.City]
		if !ok {
			i = len(groups)
			index[s.City] = i
			groups = append(groups, PhotoSpotGroup{City: s.City})
		}
		groups[i].Spots = append(groups[i].Spots, s)
	}
	return groups
}

// PhotoLocations is the spots as map points, in catalogue order.
func PhotoLocations(city string) []model.Location {
	var out []model.Location
	for _, g := range PhotoSpots(city) {
		for _, s := range g.Spots {
			out = append(out, model.Location{Lat: s.Lat, Lng: s.Lng, Name: s.Name})
		}
	}
	return out
}
