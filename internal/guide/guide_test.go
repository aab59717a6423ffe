package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhrases(t *testing.T) {
	assert.Len(t, Phrases(""), 23)

	greetings := Phrases(Greetings)
	require.Len(t, greetings, 6)
	assert.Equal(t, "Cześć", greetings[0].Polish)

	for _, c := range PhraseCategories {
		for _, p := range Phrases(c) {
			assert.Equal(t, c, p.Category)
		}
	}
	assert.Empty(t, Phrases("shopping"))
}

func TestContactsGroupedInOrder(t *testing.T) {
	groups := Contacts()
	require.Len(t, groups, 3)
	assert.Equal(t, "Poland", groups[0].City)
	assert.Equal(t, "Kraków", groups[1].City)
	assert.Equal(t, "Wrocław", groups[2].City)

	require.Len(t, groups[0].Contacts, 3)
	assert.Equal(t, "112", groups[0].Contacts[0].Phone)
	assert.Equal(t, "Embassy Emergency", groups[0].Contacts[2].Name)
	assert.Len(t, groups[1].Contacts, 3)
}

func TestPhotoSpotsGroupedByCity(t *testing.T) {
	groups := PhotoSpots("")
	require.Len(t, groups, 2)
	assert.Equal(t, "Kraków", groups[0].City)
	assert.Equal(t, "Wrocław", groups[1].City)
	require.Len(t, groups[0].Spots, 5)
	require.Len(t, groups[1].Spots, 5)

	first := groups[0].Spots[0]
	assert.Equal(t, "Main Market Square at Dawn", first.Name)
	assert.Equal(t, Easy, first.Difficulty)
	assert.Equal(t, "🏛️", first.Icon())
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=50.0616%2C19.9373", first.MapsURL)

	assert.Equal(t, Advanced, groups[1].Spots[1].Difficulty)
	assert.Equal(t, "night", groups[1].Spots[1].Category)

	wroclaw := PhotoSpots("Wrocław")
	require.Len(t, wroclaw, 1)
	assert.Equal(t, "Wrocław", wroclaw[0].City)
	assert.Len(t, PhotoSpots("all"), 2)
	assert.Len(t, PhotoSpots("wrocław"), 1)
	assert.Empty(t, PhotoSpots("Gdańsk"))

	assert.Equal(t, "📷", PhotoSpot{Category: "food"}.Icon())
}

func TestPhotoLocations(t *testing.T) {
	locs := PhotoLocations("Kraków")
	require.Len(t, locs, 5)
	assert.Equal(t, "Wawel Castle from Vistula Bridge", locs[1].Name)
	assert.InDelta(t, 50.0531, locs[1].Lat, 1e-9)
	assert.Len(t, PhotoLocations(""), 10)
}

func TestEventFilter(t *testing.T) {
	all := Events()
	require.Len(t, all, 8)

	assert.Len(t, EventFilter{}.Filter(all), 8)
	assert.Len(t, EventFilter{Category: "all", City: "all"}.Filter(all), 8)

	music := EventFilter{Category: "music"}.Filter(all)
	require.Len(t, music, 2)
	assert.Equal(t, "Jazz Autumn Festival", music[0].Name)

	wroclawTours := EventFilter{Category: "tour", City: "Wrocław"}.Filter(all)
	require.Len(t, wroclawTours, 1)
	assert.Equal(t, "Nadodrze Street Art Tour", wroclawTours[0].Name)

	assert.Empty(t, EventFilter{City: "Gdańsk"}.Filter(all))
}

func TestMerge(t *testing.T) {
	builtin := Events()[:2]
	feed := []Event{
		{Name: "Late gig", Date: "2025-09-13", Time: "22:00", Feed: "city"},
		{Name: "jazz autumn festival", Date: "2025-09-12", Time: "20:30", Feed: "city"},
		{Name: "Morning run", Date: "2025-09-10", Time: "07:00", Feed: "city"},
		{Name: "Late gig", Date: "2025-09-13", Time: "22:00", Feed: "other"},
	}

	got := Merge(builtin, feed)
	names := make([]string, 0, len(got))
	for _, e := range got {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Kraków Film Festival", "Jazz Autumn Festival", "Morning run", "Late gig"}, names)
}
