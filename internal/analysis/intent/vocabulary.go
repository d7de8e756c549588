package intent

// Synonym widens a narrow keyword into a category label for search.
type Synonym struct {
	Keyword  string
	Category string
}

// Hint pairs a set of trigger substrings with the text emitted when any of them matches.
type Hint struct {
	Keywords []string
	Text     string
}

// Vocabulary holds every keyword table the dispatcher consults.
// Ordered slices are significant: earlier entries win.
type Vocabulary struct {
	ClosingKeywords  []string
	VendorIdentity   []string
	IndustryHints    []Hint
	PricingQuestions []string
	RateCards        []Hint
	DefaultRateCard  string
	SmallTalk        []string
	VendorTriggers   []string
	ConsumerTriggers []string
	StopWords        []string
	BrandKeywords    []string
	Greetings        []string
	Synonyms         []Synonym
}

// DefaultVocabulary returns a fresh copy of the stock keyword tables.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		ClosingKeywords: []string{
			"yes", "please", "sure", "ok", "yep", "do it", "good", "deal", "go ahead",
			"interested", "join", "add me", "waitlist", "sign me up", "standard", "premium",
		},
		VendorIdentity: []string{
			"vendor", "seller", "business", "i run a", "i own a", "i have a", "my company", "my shop",
			"i am a mechanic", "i am a plumber", "i am a tutor", "i am a baker", "i am a photographer",
			"freelancer", "contractor",
		},
		// Automotive outranks food, which outranks plumbing.
		IndustryHints: []Hint{
			{Keywords: []string{"mechanic", "auto"}, Text: "Automotive services are in high demand locally."},
			{Keywords: []string{"food", "bakery"}, Text: "Local food businesses are our top category."},
			{Keywords: []string{"plumb"}, Text: "Plumbing companies perform excellently on our platform."},
		},
		PricingQuestions: []string{"price", "cost", "how much", "rate", "expensive"},
		RateCards: []Hint{
			{Keywords: []string{"tutor", "education"}, Text: "**Tutors:** Typically $30 - $60 / hr."},
			{Keywords: []string{"plumb", "home services"}, Text: "**Plumbers:** Typically $100+ / visit."},
			{Keywords: []string{"bakery", "food"}, Text: "**Bakeries:** Varies by item."},
			{Keywords: []string{"mechanic", "automotive"}, Text: "**Mechanics:** Typically $90 - $120 / hr."},
		},
		DefaultRateCard: "**Service Rates:** Vendors set their own rates (e.g. Tutors ~$40/hr, Plumbers ~$100/visit).",
		SmallTalk:       []string{"thanks", "thank you", "cool", "great", "awesome", "nice"},
		VendorTriggers: []string{
			"cost", "price", "ads", "advertise", "cpm", "budget", "rates", "how much", "views",
			"spend", "pay", "quote", "estimate", "reach",
		},
		ConsumerTriggers: []string{
			"find", "search", "looking", "plumber", "bakery", "tutor", "where", "need", "hire", "show",
			"list", "yoga", "gym", "food", "tech", "auto", "want", "have", "available", "everything",
			"options", "categories", "car", "dog", "fix", "repair", "mechanic", "baker",
		},
		StopWords: []string{
			"find", "search", "looking", "for", "a", "an", "need", "me", "show", "where", "is", "the",
			"hire", "list", "verified", "local", "i", "want", "like", "do", "you", "have", "what", "all",
			"to", "in", "at", "place", "services",
		},
		BrandKeywords: []string{"privacy", "data", "safe", "values", "mission", "trust"},
		Greetings:     []string{"hi", "hello", "hey", "start"},
		Synonyms:      defaultSynonyms(),
	}
}

func defaultSynonyms() []Synonym {
	return []Synonym{
		{"car", "automotive"}, {"auto", "automotive"}, {"vehicle", "automotive"}, {"mechanic", "automotive"},
		{"fix", "home services"}, {"repair", "home services"}, {"clean", "home services"}, {"plumb", "home services"},
		{"bread", "food"}, {"eat", "food"}, {"restaurant", "food"}, {"snack", "food"}, {"baker", "food"}, {"dining", "food"},
		{"class", "education"}, {"teach", "education"}, {"school", "education"}, {"learn", "education"}, {"tutor", "education"},
		{"pic", "creative"}, {"photo", "creative"}, {"video", "creative"}, {"design", "creative"},
		{"gym", "health"}, {"workout", "health"}, {"fitness", "health"},
		{"cat", "pets"}, {"dog", "pets"}, {"animal", "pets"},
	}
}
