package intent

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/moosemarche/moosebot/backend/internal/model/catalog"
)

const (
	// WaitlistConfirmation is the fixed reply for a consumer joining the waitlist.
	WaitlistConfirmation = "Done! ✅ You are confirmed. You are #4,201 on the Waitlist. We will notify you in Jan 2026."
	// SmallTalkReply acknowledges thanks and similar pleasantries.
	SmallTalkReply = "You're welcome! Is there anything else I can help you find or calculate?"
	// RoleQuestion asks an unidentified user which side of the marketplace they are on.
	RoleQuestion = "Hello! I am Moosebot. Are you a **Vendor** looking to advertise, or a **Consumer** looking for local services?"
	// FallbackReply is returned when nothing else matches.
	FallbackReply = "I am a Prototype in Simulation Mode.\n\n**Try asking:**\n* 'Quote for 30k views'\n* 'Find a plumber'"
	// OpeningGreeting seeds every new transcript.
	OpeningGreeting = "Hello! I am MooseBot. Are you a **Vendor** or a **Consumer**?"

	brandExcerptRunes = 300
	clickThroughRate  = 0.012
	reachRate         = 0.85
)

// Campaign is the projected performance of an impression buy.
type Campaign struct {
	Views    int
	Reach    int
	Clicks   int
	Standard catalog.PricingTier
	Premium  catalog.PricingTier
}

// Cost returns views/1000 × CPM for the given tier.
func (c Campaign) Cost(tier catalog.PricingTier) decimal.Decimal {
	return decimal.NewFromInt(int64(c.Views)).Div(decimal.NewFromInt(1000)).Mul(tier.CPMCost)
}

// SimulateCampaign projects reach and clicks for views impressions.
func SimulateCampaign(views int, standard, premium catalog.PricingTier) Campaign {
	return Campaign{
		Views:    views,
		Reach:    int(math.Floor(float64(views) * reachRate)),
		Clicks:   int(math.Floor(float64(views) * clickThroughRate)),
		Standard: standard,
		Premium:  premium,
	}
}

func renderCampaign(c Campaign) string {
	views := humanize.Comma(int64(c.Views))
	var b strings.Builder
	fmt.Fprintf(&b, "### 📊 Campaign Simulation: %s Impressions\n\n", views)
	b.WriteString("**Projected Performance:**\n")
	fmt.Fprintf(&b, "* **Est. Unique Reach:** ~%s locals\n", humanize.Comma(int64(c.Reach)))
	fmt.Fprintf(&b, "* **Est. Clicks (1.2%% CTR):** ~%s visits\n\n", humanize.Comma(int64(c.Clicks)))
	b.WriteString("| Tier | Budget | ROI Focus |\n")
	b.WriteString("| :--- | :--- | :--- |\n")
	fmt.Fprintf(&b, "| **Standard** | **$%s** | Awareness (CPM $%s) |\n", formatMoney(c.Cost(c.Standard)), c.Standard.CPMCost.StringFixed(2))
	fmt.Fprintf(&b, "| **Premium** | **$%s** | Conversion (CPM $%s) |\n\n", formatMoney(c.Cost(c.Premium)), c.Premium.CPMCost.StringFixed(2))
	fmt.Fprintf(&b, "💡 **Strategist Recommendation:** For **%s views**, I recommend **Premium** for the 'Verified Badge'.\n\n", views)
	b.WriteString("**Action:** Shall I lock in this quote for the **Premium** tier?")
	return b.String()
}

func renderVendorLead(ticket int, plan string) string {
	return fmt.Sprintf("✅ **Campaign Request Logged**\n"+
		"> **Ticket ID:** `#MB-%d`\n"+
		"> **Plan Preference:** %s Tier\n"+
		"> **Status:** Pushed to Sales CRM\n\n"+
		"I have alerted the team. They will audit your creative assets and contact you within 24 hours.", ticket, plan)
}

func renderVendorWelcome(industryHint string) string {
	return fmt.Sprintf("Welcome, Vendor! 👋\n\n%s\n\nI can simulate an ad campaign for you.\n\n"+
		"**Try asking:**\n* 'Quote for 30k views'\n* 'Budget for 1 million impressions'", industryHint)
}

func renderConsumerPricing(rateCard string) string {
	return fmt.Sprintf("**Estimated Pricing:**\n%s\n\n*Note: Exact menus available upon launch.*\n\n**Shall I add you to the waitlist?**", rateCard)
}

func renderVendorCards(vendors []catalog.Vendor) string {
	cards := make([]string, 0, len(vendors))
	for _, v := range vendors {
		badge := "⚠️ Unverified"
		if v.Verified {
			badge = "✅ **VERIFIED**"
		}
		cards = append(cards, fmt.Sprintf("**%s** `%s`\n* 📍 %s\n* %s | %s (%s)",
			v.Name, v.Category, v.Location, badge, stars(v.Rating), formatRating(v.Rating)))
	}
	return "I found these local vendors in our database:\n\n" + strings.Join(cards, "\n\n") +
		"\n\n---\n*Note: Booking active Jan 2026. Join waitlist?*"
}

func renderNoMatch(rawPrompt string, categories []string) string {
	return fmt.Sprintf("I couldn't find a specific match for '%s'.\n\n**Here are the active categories in our simulation:**\n\n📂 %s\n\n*Try searching for one of these!*",
		rawPrompt, strings.Join(categories, ", "))
}

func renderBrand(policy string) string {
	return fmt.Sprintf("**From our Official Policy:**\n\n> *%s...*\n\n(Source: brand_data.txt)", truncateRunes(policy, brandExcerptRunes))
}

func stars(rating decimal.Decimal) string {
	n := rating.Floor().IntPart()
	if n < 0 {
		n = 0
	}
	return strings.Repeat("⭐", int(n))
}

// formatRating prints rating as written in the catalog: integers stay bare,
// fractional values keep at least one decimal.
func formatRating(rating decimal.Decimal) string {
	s := rating.String()
	if rating.Exponent() < 0 && !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// formatMoney renders a non-negative amount with two decimals and thousands separators.
func formatMoney(d decimal.Decimal) string {
	rounded := d.Round(2)
	_, frac, _ := strings.Cut(rounded.StringFixed(2), ".")
	return humanize.BigComma(rounded.Truncate(0).BigInt()) + "." + frac
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
