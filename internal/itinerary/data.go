package itinerary

import "tripboard/internal/model"

func search(q, label string) string {
	return `<a href="https://www.google.com/search?q=` + q + `">` + label + `</a>`
}

// schedule is the week in Kraków and Wrocław, in calendar order.
var schedule = []model.Day{
	{
		ID:       "day1",
		Title:    "Day 1",
		Subtitle: "Arrival in Kraków & Speakeasy Charm",
		Date:     "Tuesday, September 9th",
		Blocks: []model.Block{
			model.TextBlock{HTML: "<strong>~20:00:</strong> Arrive at Kraków Główny via SKA1 train, then walk to your apartment on Stefana Batorego. This area is residential yet close to the Old Town."},
			model.SuggestionBlock{
				Emoji:           "🍽️",
				Title:           "Dinner at Filipa 18 Food Wine Art",
				Time:            "21:15",
				Location:        "ul. św. Filipa 18",
				WhyItFits:       "This restaurant is highly praised for its modern Polish cuisine, elegant presentation, and focus on high-quality, seasonal ingredients.",
				Ambiance:        "Sophisticated, contemporary, often with an art-gallery feel. Good for a discerning solo diner.",
				RecommendedDish: "Seasonal à la carte options featuring local produce and meats (70-110 PLN / £14-£22)",
				Details:         "<strong>Rating:</strong> 4.7-4.8 on Google • <strong>Hours:</strong> Open until 22:00-23:00 • " + search("Filipa+18+Food+Wine+Art+Kraków", "Search on Google"),
			},
			model.SuggestionBlock{
				Emoji:           "🍸",
				Title:           "Cocktails at Mercy Brown",
				Time:            "23:00",
				Location:        "Straszewskiego 28",
				WhyItFits:       `Classic speakeasy with a discreet entrance, offering an intimate and exclusive vibe with "class but also an edge."`,
				Ambiance:        "Dimly lit, plush seating, sophisticated yet unpretentious. Live jazz or swing on some nights.",
				RecommendedDish: "Creative seasonal concoctions (40-55 PLN / £8-£11)",
				Details:         "<strong>Rating:</strong> 4.6-4.8 on Google • <strong>Hours:</strong> Opens at 19:00 • " + search("Mercy+Brown+Kraków", "Search on Google"),
			},
			model.ImageBlock{Src: "https://primetourskrakow.com/wp-content/uploads/2020/07/DOMINIK-NIGHT.jpg", Alt: "Kraków street at night"},
		},
		Locations: []model.Location{
			{Lat: 50.0647, Lng: 19.9450, Name: "Filipa 18 Food Wine Art"},
			{Lat: 50.0614, Lng: 19.9365, Name: "Mercy Brown"},
		},
	},
	{
		ID:       "day2",
		Title:    "Day 2",
		Subtitle: "Royal History & Kazimierz Nights",
		Date:     "Wednesday, September 10th",
		Blocks: []model.Block{
			model.TextBlock{HTML: "<strong>11:00:</strong> Royal Route walk - Start from St. Florian's Gate, walk down Floriańska Street through Main Market Square to Wawel Castle."},
			model.SuggestionBlock{
				Emoji:           "🍽️",
				Title:           "Lunch at Baqaro",
				Time:            "14:15",
				Location:        "Ślusarska 9",
				WhyItFits:       `Praised for "elevated pierogi" and modern take on Polish food in stylish settings.`,
				Ambiance:        "Modern, clean design, comfortable for a sit-down meal.",
				RecommendedDish: "Varied pierogi with duck, lamb, or vegetarian fillings (35-55 PLN / £7-£11)",
				Details:         "<strong>Rating:</strong> 4.5-4.7 on Google • " + search("Baqaro+Kraków", "Search on Google"),
			},
			model.TextBlock{HTML: "<strong>16:00:</strong> " + search("Schindler's+Factory+Kraków", "Schindler's Factory tour") + " - Must-visit exhibition on Kraków under Nazi Occupation. Allow 2-3 hours. Book online in advance (32 PLN / £6.40)."},
			model.ImageBlock{Src: "https://s.inyourpocket.com/gallery/299657.jpg", Alt: "Wawel Castle Courtyard"},
			model.SuggestionBlock{
				Emoji:           "🍽️",
				Title:           "Dinner at Starka Restaurant & Vodkas",
				Time:            "20:00",
				Location:        "Józefa 14, Kazimierz",
				WhyItFits:       "Well-regarded for traditional Polish cuisine, particularly flavoured vodkas and hearty meat dishes.",
				Ambiance:        "Rustic charm, often with live folk music, candlelit tables. Can be lively.",
				RecommendedDish: "Duck with cherry sauce, Pork tenderloin in boletus mushroom sauce (60-90 PLN / £12-£18)",
				Details:         "<strong>Rating:</strong> 4.5-4.7 on Google • <strong>Booking:</strong> Advisable • " + search("Starka+Restaurant+Kraków", "Search on Google"),
			},
		},
		Locations: []model.Location{
			{Lat: 50.0647, Lng: 19.9450, Name: "Baqaro"},
			{Lat: 50.0544, Lng: 19.9345, Name: "Schindler's Factory"},
			{Lat: 50.0513, Lng: 19.9457, Name: "Starka Restaurant"},
		},
	},
	{
		ID:       "day3",
		Title:    "Day 3",
		Subtitle: "Subterranean Wonders & Jazzy Nights",
		Date:     "Thursday, September 11th",
		Blocks: []model.Block{
			model.TextBlock{HTML: "<strong>10:15:</strong> " + search("Wieliczka+Salt+Mine+tour", "Wieliczka Salt Mine tour") + " - UNESCO World Heritage site. Tourist Route ~2-3 hours. Book online (126 PLN / £25.20)."},
			model.ImageBlock{Src: "https://i.redd.it/qnlga60nz3o41.jpg", Alt: "Wieliczka Salt Mine Chapel"},
			model.SuggestionBlock{
				Emoji:           "🍽️",
				Title:           "Lunch at Mleczarnia",
				Time:            "13:15",
				Location:        "Beera Meiselsa 20, Kazimierz",
				WhyItFits:       "Known for its bohemian, vintage atmosphere and lovely courtyard garden.",
				Ambiance:        "Eclectic, antique furniture, dimly lit interiors, beautiful leafy courtyard.",
				RecommendedDish: "Simple Polish dishes, sandwiches, salads, cakes (25-45 PLN / £5-£9)",
				Details:         "<strong>Rating:</strong> 4.4-4.6 on Google • " + search("Mleczarnia+Kraków", "Search on Google"),
			},
			model.SuggestionBlock{
				Emoji:           "🍽️",
				Title:           "Dinner at Miodova Restaurant",
				Time:            "20:30",
				Location:        "Szeroka 3, Kazimierz",
				WhyItFits:       "Modern interpretation of Galician and Jewish cuisine. Michelin Bib Gourmand.",
				Ambiance:        "Elegant, sophisticated, but welcoming. Beautiful interior design.",
				RecommendedDish: "Modern gefilte fish, duck breast, or lamb (70-120 PLN / £14-£24)",
				Details:         "<strong>Rating:</strong> Michelin Bib Gourmand, 4.6-4.8 on Google • <strong>Reservations:</strong> Essential • " + search("Miodova+Restaurant+Kraków", "Search on Google"),
			},
		},
		Locations: []model.Location{
			{Lat: 49.9917, Lng: 20.0517, Name: "Wieliczka Salt Mine"},
			{Lat: 50.0513, Lng: 19.9457, Name: "Mleczarnia"},
			{Lat: 50.0515, Lng: 19.9456, Name: "Miodova Restaurant"},
		},
	},
	{
		ID:       "day4",
		Title:    "Day 4",
		Subtitle: "Reflection or Socialist Realism & Riverside Evening",
		Date:     "Friday, September 12th",
		Blocks: []model.Block{
			model.OptionsBlock{Options: []model.Option{
				{
					Title:       "Option A: Nowa Huta tram + burgers",
					Description: "Fascinating socialist-planned district. Take tram 4, 10, or 22 for 25-30 minutes. Walk around Plac Centralny and Aleja Róż.",
					Details:     "<strong>Lunch:</strong> Browar Górniczo‑Hutniczy - Microbrewery with craft beer and hearty burgers (40-55 PLN / £8-£11) • " + search("Nowa+Huta+Kraków", "Search Nowa Huta") + " | " + search("Browar+Górniczo-Hutniczy+Nowa+Huta", "Search Restaurant"),
				},
				{
					Title:       "Option B: Auschwitz-Birkenau Memorial",
					Description: "Deeply moving and important historical site. Pre-booking a tour with transport is essential.",
					Details:     "<strong>Time:</strong> 08:10–15:30 • <strong>Price:</strong> 200-250 PLN (£40-£50) including transport • " + search("Auschwitz-Birkenau+Memorial", "Search on Google"),
				},
			}},
			model.ImageBlock{Src: "https://cdn.britannica.com/35/147835-050-F63661FC/entrance-gates-concentration-camp-Auschwitz-Krakow-Poland.jpg", Alt: "Auschwitz memorial entrance gates - historical remembrance site"},
			model.SuggestionBlock{
				Emoji:           "🍽️",
				Title:           "Dinner at Karakter",
				Time:            "20:00",
				Location:        "Bracka 3-5",
				WhyItFits:       "Known for high-quality meat dishes prepared in a modern and refined way. MICHELIN Bib Gourmand.",
				Ambiance:        "Modern, slightly edgy, with an open kitchen. Can be buzzy.",
				RecommendedDish: "Steak tartare, various cuts of meat (70-150 PLN / £14-£30)",
				Details:         "<strong>Rating:</strong> Michelin Bib Gourmand, 4.6-4.7 on Google • <strong>Reservations:</strong> Highly recommended • " + search("Karakter+Kraków", "Search on Google"),
			},
		},
		Locations: []model.Location{
			{Lat: 50.0775, Lng: 20.0317, Name: "Nowa Huta"},
			{Lat: 50.0647, Lng: 19.9381, Name: "Karakter"},
		},
	},
	{
		ID:       "day5",
		Title:    "Day 5",
		Subtitle: "Transfer to Wrocław & Cathedral Island",
		Date:     "Saturday, September 13th",
		Blocks: []model.Block{
			model.TextBlock{HTML: "<strong>10:00:</strong> Check out from Kraków apartment.<br><strong>10:25–13:13:</strong> Train to Wrocław. Arrive at Wrocław Główny, then walk to your apartment on Rynek."},
			model.SuggestionBlock{
				Emoji:           "🍽️",
				Title:           "Lunch at Central Café",
				Time:            "14:00",
				Location:        "Świętego Antoniego 10",
				WhyItFits:       "Very popular café in Wrocław, known for great coffee and modern-meets-vintage décor.",
				Ambiance:        "Lively, popular with locals and tourists, comfortable seating.",
				RecommendedDish: "Bagels, smoothie bowls, or specialty coffees (30-50 PLN / £6-£10)",
				Details:         "<strong>Rating:</strong> 4.5-4.7 on Google • " + search("Central+Café+Wrocław", "Search on Google"),
			},
			model.TextBlock{HTML: "<strong>17:30:</strong> " + search("Ostrów+Tumski+Wrocław", "Ostrów Tumski (Cathedral Island)") + " at dusk - Oldest part of Wrocław, incredibly atmospheric with cobblestone streets and gas lamps lit by hand each evening."},
			model.ImageBlock{Src: "https://thumbs.dreamstime.com/b/cathedral-island-ostrow-tumski-wroclaw-poland-view-odra-river-beautiful-sunset-190137790.jpg", Alt: "Ostrów Tumski at dusk"},
			model.SuggestionBlock{
				Emoji:           "🍽️",
				Title:           "Dinner at Bernard Pub & Restaurant",
				Time:            "20:00",
				Location:        "Rynek 35",
				WhyItFits:       "Located right on Main Market Square, Czech-style pub with hearty food and Bernard beers.",
				Ambiance:        "Traditional pub/restaurant feel, can be busy and atmospheric.",
				RecommendedDish: "Goulash, schnitzel, and Bernard beers (50-80 PLN / £10-£16)",
				Details:         "<strong>Rating:</strong> 4.3-4.5 on Google • " + search("Bernard+Pub+Restaurant+Wrocław", "Search on Google"),
			},
		},
		Locations: []model.Location{
			{Lat: 51.1079, Lng: 17.0385, Name: "Central Café"},
			{Lat: 51.1145, Lng: 17.0467, Name: "Ostrów Tumski"},
			{Lat: 51.1095, Lng: 17.0317, Name: "Bernard Pub"},
		},
	},
	{
		ID:       "day6",
		Title:    "Day 6",
		Subtitle: "Street Art & Modern Architecture",
		Date:     "Sunday, September 14th",
		Blocks: []model.Block{
			model.TextBlock{HTML: "<strong>Morning:</strong> Street art tour in " + search("Nadodrze+street+art+Wrocław", "Nadodrze") + " - Former working-class district now filled with colorful murals and creative spaces."},
			model.ImageBlock{Src: "https://isba.me/wp-content/uploads/2023/04/Murale-Nadodrze-18.jpg", Alt: "Nadodrze street art"},
			model.TextBlock{HTML: "<strong>Afternoon:</strong> " + search("Centennial+Hall+Wrocław", "Centennial Hall") + " - UNESCO World Heritage early reinforced concrete building with beautiful gardens."},
			model.SuggestionBlock{
				Emoji:     "🍽️",
				Title:     "Modern Polish Dinner",
				WhyItFits: "Explore contemporary Polish cuisine at one of Wrocław's innovative restaurants in the evening.",
				Details:   "Recommendation: Research current top-rated modern Polish restaurants for this evening",
			},
		},
		Locations: []model.Location{
			{Lat: 51.1067, Lng: 17.0154, Name: "Nadodrze"},
			{Lat: 51.1067, Lng: 17.0774, Name: "Centennial Hall"},
		},
	},
	{
		ID:       "day7",
		Title:    "Day 7",
		Subtitle: "Gnome Hunt & Departure",
		Date:     "Monday, September 15th",
		Blocks: []model.Block{
			model.TextBlock{HTML: "<strong>Morning:</strong> " + search("Wrocław+gnomes+trail", "Gnome photo trail") + " - Hunt for the famous bronze dwarf statues scattered throughout the city center."},
			model.ImageBlock{Src: "https://api.culture.pl/sites/default/files/styles/1920_auto/public/2019-05/krasnale_wroclaw_fot_mieczyslaw_michalak_ag_img_9183.jpg", Alt: "Wrocław Gnome"},
			model.SuggestionBlock{
				Emoji:     "🍽️",
				Title:     "Farewell Lunch",
				WhyItFits: "Final meal in Poland at a traditional or modern restaurant before departure.",
				Details:   "Choose based on preference for traditional Polish farewell or contemporary cuisine",
			},
			model.TextBlock{HTML: "<strong>Departure:</strong> Ryanair FR3318, 19:10–20:30 (Arrive WRO by 17:15)"},
		},
		Locations: []model.Location{
			{Lat: 51.1095, Lng: 17.0317, Name: "Market Square"},
			{Lat: 51.1024, Lng: 16.8857, Name: "Wrocław Airport"},
		},
	},
}
