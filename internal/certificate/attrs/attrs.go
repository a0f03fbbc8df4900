// Package attrs derives presentation attributes (color, icon) from a
// certificate's free-text title and category.
//
// Classification is an ordered rule table evaluated top to bottom: the title is
// tested against every rule first, then the category, and the first match wins.
// Keeping the table as data rather than nested conditionals makes the ordering
// testable and extension a one-line change.
package attrs

import "strings"

// Attributes are the derived presentation tokens. They are recomputed on every
// render and never persisted, so repeated derivation must be deterministic or
// the UI flickers between colors on re-render.
type Attributes struct {
	Color string
	Icon  string
}

// Color palette. Hex values match the certificate card styling shipped in the
// mobile client, so documents rendered here and cards rendered there agree.
const (
	ColorBlackBelt   = "#000000"
	ColorRedBelt     = "#DC143C"
	ColorBrownBelt   = "#8B4513"
	ColorBlueBelt    = "#1E90FF"
	ColorGreenBelt   = "#32CD32"
	ColorOrangeBelt  = "#FFA500"
	ColorYellowBelt  = "#FFD700"
	ColorWhiteBelt   = "#FFFFFF"
	ColorGoldMedal   = "#FFB800"
	ColorSilverMedal = "#C0C0C0"
	ColorBronzeMedal = "#CD7F32"
	ColorPromotion   = "#8B0000"
	ColorCompletion  = "#007AFF"
	ColorParticipant = "#34C759"
	ColorAchievement = "#FF9800"
	ColorDefault     = "#007AFF"
)

// Icon tokens. Symbolic names resolved to glyphs by the presentation layer.
const (
	IconBelt        = "belt"
	IconTrophy      = "trophy"
	IconEducation   = "school"
	IconParticipant = "camera"
	IconDefault     = "card-membership"
)

type rule struct {
	keywords []string
	value    string
}

// colorRules is ordered: belt colors first so "Black Belt Promotion" classifies
// as a black belt rather than a generic promotion.
var colorRules = []rule{
	{keywords: []string{"black"}, value: ColorBlackBelt},
	{keywords: []string{"red"}, value: ColorRedBelt},
	{keywords: []string{"brown"}, value: ColorBrownBelt},
	{keywords: []string{"blue"}, value: ColorBlueBelt},
	{keywords: []string{"green"}, value: ColorGreenBelt},
	{keywords: []string{"orange"}, value: ColorOrangeBelt},
	{keywords: []string{"yellow"}, value: ColorYellowBelt},
	{keywords: []string{"white belt"}, value: ColorWhiteBelt},
	{keywords: []string{"gold", "medal"}, value: ColorGoldMedal},
	{keywords: []string{"silver"}, value: ColorSilverMedal},
	{keywords: []string{"bronze"}, value: ColorBronzeMedal},
	{keywords: []string{"promotion"}, value: ColorPromotion},
	{keywords: []string{"completion", "course"}, value: ColorCompletion},
	{keywords: []string{"participation", "workshop", "attendance"}, value: ColorParticipant},
	{keywords: []string{"achievement", "award"}, value: ColorAchievement},
}

// iconRules is keyed on coarser categories than colors.
var iconRules = []rule{
	{keywords: []string{"belt"}, value: IconBelt},
	{keywords: []string{"medal", "award", "trophy"}, value: IconTrophy},
	{keywords: []string{"course", "completion"}, value: IconEducation},
	{keywords: []string{"participation", "workshop"}, value: IconParticipant},
}

// Derive maps a certificate's title and category to presentation attributes.
// Total and deterministic: same input always yields the same output, and no
// input can make it fail.
func Derive(title, category string) Attributes {
	return Attributes{
		Color: match(colorRules, title, category, ColorDefault),
		Icon:  match(iconRules, title, category, IconDefault),
	}
}

// match tests title against every rule in order, then category, then defaults.
func match(rules []rule, title, category, fallback string) string {
	title = strings.ToLower(title)
	category = strings.ToLower(category)

	for _, input := range []string{title, category} {
		if input == "" {
			continue
		}
		for _, r := range rules {
			for _, kw := range r.keywords {
				if strings.Contains(input, kw) {
					return r.value
				}
			}
		}
	}
	return fallback
}
