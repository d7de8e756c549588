package intent

import (
	"math/rand/v2"
	"strings"

	"github.com/moosemarche/moosebot/backend/internal/model/catalog"
	"github.com/moosemarche/moosebot/backend/internal/model/chat"
)

// TicketSource yields the numeric part of a vendor lead ticket.
type TicketSource func() int

// RandomTicket draws a five digit ticket number.
func RandomTicket() int {
	return rand.IntN(90000) + 10000
}

// Reply is the outcome of one dispatched turn.
type Reply struct {
	Text    string
	Outcome chat.Outcome
	Flow    FlowState
}

// Dispatcher maps a prompt plus transcript to a canned reply.
// It holds no per-session state and is safe for concurrent use.
type Dispatcher struct {
	store   catalog.Store
	vocab   Vocabulary
	tickets TicketSource
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithVocabulary replaces the stock keyword tables.
func WithVocabulary(v Vocabulary) Option {
	return func(d *Dispatcher) { d.vocab = v }
}

// WithTicketSource replaces the random ticket generator.
func WithTicketSource(src TicketSource) Option {
	return func(d *Dispatcher) {
		if src != nil {
			d.tickets = src
		}
	}
}

// NewDispatcher builds a Dispatcher over store.
func NewDispatcher(store catalog.Store, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:   store,
		vocab:   DefaultVocabulary(),
		tickets: RandomTicket,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Respond picks the first matching rule for prompt given the prior transcript.
func (d *Dispatcher) Respond(prompt string, history []chat.Message) Reply {
	clean := normalize(prompt)
	flow, lastBot := DetectFlow(history)
	reply := func(text string, outcome chat.Outcome) Reply {
		return Reply{Text: text, Outcome: outcome, Flow: flow}
	}

	if containsAny(clean, d.vocab.ClosingKeywords) {
		switch {
		case flow.Vendor:
			return reply(renderVendorLead(d.tickets(), planPreference(clean)), chat.OutcomeVendorLead)
		case flow.Consumer || strings.Contains(lastBot, "waitlist"):
			return reply(WaitlistConfirmation, chat.OutcomeConsumerLead)
		}
	}

	if containsAny(clean, d.vocab.VendorIdentity) {
		return reply(renderVendorWelcome(firstHint(clean, d.vocab.IndustryHints, "")), chat.OutcomeNone)
	}

	if flow.Consumer && containsAny(clean, d.vocab.PricingQuestions) {
		card := firstHint(lastBot, d.vocab.RateCards, d.vocab.DefaultRateCard)
		return reply(renderConsumerPricing(card), chat.OutcomeConsumer)
	}

	for _, phrase := range d.vocab.SmallTalk {
		if clean == phrase {
			return reply(SmallTalkReply, chat.OutcomeNone)
		}
	}

	if !flow.Consumer && containsAny(clean, d.vocab.VendorTriggers) {
		return reply(d.quote(prompt), chat.OutcomeVendor)
	}

	if containsAny(clean, d.vocab.ConsumerTriggers) {
		matches := d.search(clean)
		if len(matches) == 0 {
			return reply(renderNoMatch(prompt, d.store.Categories()), chat.OutcomeNone)
		}
		return reply(renderVendorCards(matches), chat.OutcomeConsumer)
	}

	if containsAny(clean, d.vocab.BrandKeywords) {
		return reply(renderBrand(d.store.BrandPolicy()), chat.OutcomeBrand)
	}

	if containsAny(clean, d.vocab.Greetings) {
		return reply(RoleQuestion, chat.OutcomeNone)
	}

	return reply(FallbackReply, chat.OutcomeNone)
}

func (d *Dispatcher) quote(prompt string) string {
	standard, _ := d.store.Tier(catalog.Standard)
	premium, _ := d.store.Tier(catalog.Premium)
	return renderCampaign(SimulateCampaign(ExtractViews(prompt), standard, premium))
}

// search returns vendors whose "name category location" contains any query
// token longer than one character.
func (d *Dispatcher) search(clean string) []catalog.Vendor {
	stop := make(map[string]struct{}, len(d.vocab.StopWords))
	for _, w := range d.vocab.StopWords {
		stop[w] = struct{}{}
	}
	var tokens []string
	for _, w := range strings.Fields(expandWith(d.vocab.Synonyms, clean)) {
		if _, skip := stop[w]; skip || len(w) <= 1 {
			continue
		}
		tokens = append(tokens, w)
	}
	wantsPlumbing := strings.Contains(clean, "plumb")

	var out []catalog.Vendor
	for _, v := range d.store.Vendors() {
		haystack := strings.ToLower(v.Name + " " + v.Category + " " + v.Location)
		if containsAny(haystack, tokens) || (wantsPlumbing && strings.Contains(haystack, "home services")) {
			out = append(out, v)
		}
	}
	return out
}

func planPreference(clean string) string {
	switch {
	case strings.Contains(clean, string(catalog.Premium)):
		return catalog.Premium.Title()
	case strings.Contains(clean, string(catalog.Standard)):
		return catalog.Standard.Title()
	default:
		return "Custom"
	}
}

func firstHint(text string, hints []Hint, fallback string) string {
	for _, h := range hints {
		if containsAny(text, h.Keywords) {
			return h.Text
		}
	}
	return fallback
}
