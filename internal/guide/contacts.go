package guide

// Contact is an emergency phone number.
type Contact struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
	City        string `json:"city"`
}

// ContactGroup is the contacts of one city.
type ContactGroup struct {
	City     string    `json:"city"`
	Contacts []Contact `json:"contacts"`
}

var contacts = []Contact{
	{"Emergency Services", "112", "Police, Fire, Ambulance", "Poland"},
	{"Kraków Police", "997", "Local police emergency", "Kraków"},
	{"University Hospital", "+48 12 400 12 99", "Szpital Uniwersytecki", "Kraków"},
	{"Tourist Police", "+48 12 615 73 77", "For tourist assistance", "Kraków"},
	{"Wrocław Police", "+48 71 344 70 00", "Provincial police headquarters", "Wrocław"},
	{"Regional Hospital", "+48 71 736 40 00", "4th Military Hospital", "Wrocław"},
	{"British Embassy Warsaw", "+48 22 311 00 00", "UK diplomatic assistance", "Poland"},
	{"Embassy Emergency", "+48 22 311 00 00", "24/7 consular emergency line", "Poland"},
}

// Contacts groups the emergency contacts by city. Groups appear in order of
// their first contact and keep their contacts' order.
func Contacts() []ContactGroup {
	var groups []ContactGroup
	index := make(map[string]int)
	for _, c := range contacts {
		i, ok := index[c.City]
		if !ok {
			i = len(groups)
			index[c.City] = i
			groups = append(groups, ContactGroup{City: c.City})
		}
		groups[i].Contacts = append(groups[i].Contacts, c)
	}
	return groups
}
