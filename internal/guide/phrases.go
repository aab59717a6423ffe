// Package guide is the static reference content shown next to the
// itinerary: a phrasebook, emergency contacts and local events.
package guide

// PhraseCategory groups phrases.
type PhraseCategory string

const (
	Greetings  PhraseCategory = "greetings"
	Restaurant PhraseCategory = "restaurant"
	Directions PhraseCategory = "directions"
	Emergency  PhraseCategory = "emergency"
)

// PhraseCategories lists the categories in display order.
var PhraseCategories = []PhraseCategory{Greetings, Restaurant, Directions, Emergency}

// Phrase is one phrasebook entry.
type Phrase struct {
	English       string         `json:"english"`
	Polish        string         `json:"polish"`
	Pronunciation string         `json:"pronunciation"`
	Category      PhraseCategory `json:"category"`
}

var phrases = []Phrase{
	{"Hello", "Cześć", "chesh-ch", Greetings},
	{"Good morning", "Dzień dobry", "jen DOH-bry", Greetings},
	{"Good evening", "Dobry wieczór", "DOH-bry VYE-choor", Greetings},
	{"Thank you", "Dziękuję", "jen-KOO-yeh", Greetings},
	{"Please", "Proszę", "PROH-sheh", Greetings},
	{"Excuse me", "Przepraszam", "psheh-PRAH-sham", Greetings},

	{"Table for one, please", "Stolik dla jednej osoby, proszę", "STOH-leek dla YED-ney oh-SOH-by PROH-sheh", Restaurant},
	{"Menu, please", "Menu, proszę", "MEH-noo PROH-sheh", Restaurant},
	{"I would like...", "Chciałbym...", "h-CHAH-wbym", Restaurant},
	{"The bill, please", "Rachunek, proszę", "rah-KHOO-nek PROH-sheh", Restaurant},
	{"Is this vegetarian?", "Czy to jest wegetariańskie?", "chi toh yest veh-geh-tah-RYAN-skyeh", Restaurant},
	{"Water, please", "Wodę, proszę", "VOH-deh PROH-sheh", Restaurant},

	{"Where is...?", "Gdzie jest...?", "g-jeh yest", Directions},
	{"How do I get to...?", "Jak dostać się do...?", "yahk DOH-stach sheh doh", Directions},
	{"Train station", "Dworzec kolejowy", "DVOH-zhets koh-LEH-yoh-vy", Directions},
	{"Airport", "Lotnisko", "lot-NEES-koh", Directions},
	{"Left", "Lewo", "LEH-voh", Directions},
	{"Right", "Prawo", "PRAH-voh", Directions},

	{"Help!", "Pomoc!", "POH-mohts", Emergency},
	{"Call the police", "Zadzwoń na policję", "zah-DZVOHN nah poh-LEET-syeh", Emergency},
	{"I need a doctor", "Potrzebuję lekarza", "poh-TSHEH-boo-yeh leh-KAH-zhah", Emergency},
	{"I don't speak Polish", "Nie mówię po polsku", "nyeh MOO-vyeh poh POHL-skoo", Emergency},
	{"Do you speak English?", "Czy mówi pan/pani po angielsku?", "chi MOO-vee pahn/PAH-nee poh ahn-GYEL-skoo", Emergency},
}

// Phrases returns the phrases of one category, or all of them when
// category is empty.
func Phrases(category PhraseCategory) []Phrase {
	out := make([]Phrase, 0, len(phrases))
	for _, p := range phrases {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
