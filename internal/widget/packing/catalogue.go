package packing

import "tripboard/internal/model"

type catalogueItem struct {
	name      string
	category  model.PackingCategory
	essential bool
}

// catalogue is the default checklist, in display order.
var catalogue = []catalogueItem{
	{"Passport", model.PackingDocuments, true},
	{"Travel insurance", model.PackingDocuments, true},
	{"Flight tickets", model.PackingDocuments, true},
	{"Hotel confirmations", model.PackingDocuments, true},
	{"Driver's license", model.PackingDocuments, false},
	{"European Health Insurance Card", model.PackingDocuments, true},

	{"Light jacket/sweater", model.PackingClothing, true},
	{"Comfortable walking shoes", model.PackingClothing, true},
	{"Rain jacket/umbrella", model.PackingClothing, true},
	{"Casual shirts/tops", model.PackingClothing, true},
	{"Jeans/trousers", model.PackingClothing, true},
	{"Underwear (7 days)", model.PackingClothing, true},
	{"Socks (7+ pairs)", model.PackingClothing, true},
	{"Smart outfit for nice restaurants", model.PackingClothing, false},
	{"Sleepwear", model.PackingClothing, true},

	{"Phone charger", model.PackingElectronics, true},
	{"Portable battery pack", model.PackingElectronics, true},
	{"Camera", model.PackingElectronics, false},
	{"Universal adapter (Type C/E)", model.PackingElectronics, true},
	{"Headphones", model.PackingElectronics, false},

	{"Prescription medications", model.PackingHealth, true},
	{"First aid kit", model.PackingHealth, false},
	{"Toothbrush & toothpaste", model.PackingHealth, true},
	{"Shampoo/body wash", model.PackingHealth, true},
	{"Deodorant", model.PackingHealth, true},
	{"Sunscreen", model.PackingHealth, false},

	{"Credit/debit cards", model.PackingMoney, true},
	{"Some cash (GBP)", model.PackingMoney, true},
	{"Some Polish zloty", model.PackingMoney, false},

	{"Small backpack for day trips", model.PackingMisc, false},
	{"Reusable water bottle", model.PackingMisc, false},
	{"Travel pillow", model.PackingMisc, false},
	{"Book/entertainment", model.PackingMisc, false},
}

// CategoryLabels are the display names of the packing categories.
var CategoryLabels = map[model.PackingCategory]string{
	model.PackingDocuments:   "Documents",
	model.PackingClothing:    "Clothing",
	model.PackingElectronics: "Electronics",
	model.PackingHealth:      "Health & Toiletries",
	model.PackingMoney:       "Money & Cards",
	model.PackingMisc:        "Miscellaneous",
}
