package intent

// Example is one labeled catalog phrase.
type Example struct {
	Label string
	Text  string
}

// DefaultCatalog is the built-in training catalog. Order matters: ties
// on similarity resolve to the first-encountered maximum, so the
// catalog must enumerate deterministically.
func DefaultCatalog() []Example {
	return []Example{
		{"greet", "hi"},
		{"greet", "hello"},
		{"greet", "hey there"},
		{"greet", "good morning"},
		{"greet", "bonjour"},

		{"business_hours", "what are your opening hours"},
		{"business_hours", "when are you open"},
		{"business_hours", "are you open on weekends"},
		{"business_hours", "what time do you close"},

		{"pricing", "how much does it cost"},
		{"pricing", "what are your prices"},
		{"pricing", "do you have any promotions"},
		{"pricing", "is it expensive"},

		{"price_range", "what's the price range"},
		{"price_range", "how much do meals usually cost"},
		{"price_range", "what's the typical spend per person"},

		{"seating_capacity", "how many people can you seat"},
		{"seating_capacity", "do you have space for a large group"},
		{"seating_capacity", "what's your seating capacity"},

		{"menu", "what's on the menu"},
		{"menu", "what food do you serve"},
		{"menu", "do you have vegetarian options"},

		{"booking", "i'd like to make a reservation"},
		{"booking", "can i book a table"},
		{"booking", "book an appointment"},

		{"location", "where are you located"},
		{"location", "what's your address"},
		{"location", "how do i get there"},

		{"website", "do you have a website"},
		{"website", "where can i find you online"},

		{"contact_support", "i need to speak to someone"},
		{"contact_support", "how can i contact you"},
		{"contact_support", "can i talk to a human"},

		{"courses", "what courses do you offer"},
		{"courses", "what programs are available"},

		{"apply", "how do i apply"},
		{"apply", "how can i enroll"},

		{"products", "what products do you sell"},
		{"products", "do you carry electronics"},

		{"returns", "what is your return policy"},
		{"returns", "can i return an item"},

		{"delivery", "do you deliver"},
		{"delivery", "how long does shipping take"},

		{"goodbye", "bye"},
		{"goodbye", "thanks, that's all"},
		{"goodbye", "see you later"},
	}
}
