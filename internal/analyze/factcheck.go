package analyze

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/ppiankov/ledgerpen/internal/model"
)

const (
	// minMatchLen rejects raw matches too short to be meaningful
	minMatchLen = 3

	// maxSentenceLen rejects expanded sentences too long to be a single claim
	maxSentenceLen = 500

	// claimBaseConfidence is the starting confidence for every category
	claimBaseConfidence = 70

	// Category adjustments
	quotedSpeechBonus = 15 // quote and attribution categories
	scientificPenalty = 5

	// Specificity bonuses, computed on the raw match text
	yearBonus      = 10
	percentBonus   = 10
	currencyBonus  = 5
	magnitudeBonus = 10
)

// claimPattern pairs a category with one of its detection regexes.
// The flat table order below is the tie-break for span-overlap precedence:
// earlier entries claim a span first.
type claimPattern struct {
	category model.ClaimCategory
	re       *regexp.Regexp
}

var claimPatterns = []claimPattern{
	// Statistics: percentages, growth figures, ratios
	{model.ClaimStatistic, regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:percent|%)`)},
	{model.ClaimStatistic, regexp.MustCompile(`(?i)\b(?:grew|rose|fell|increased|decreased|dropped|declined|jumped)\s+(?:by\s+)?\d+(?:\.\d+)?`)},
	{model.ClaimStatistic, regexp.MustCompile(`(?i)\b\d+\s+(?:out\s+of|in)\s+(?:every\s+)?\d+\b`)},

	// Attributions: named sources, studies, reports
	{model.ClaimAttribution, regexp.MustCompile(`(?i)\baccording\s+to\s+\w+(?:\s+\w+)?`)},
	{model.ClaimAttribution, regexp.MustCompile(`(?i)\b(?:researchers|scientists|experts|economists|analysts|officials)\s+(?:say|said|claim|found|reported|estimate|believe)\b`)},
	{model.ClaimAttribution, regexp.MustCompile(`(?i)\b(?:a\s+|the\s+)?(?:study|report|survey|analysis)\s+(?:by|from|published|conducted|found|shows)\b`)},

	// Dates: anchored years, calendar dates, centuries
	{model.ClaimDate, regexp.MustCompile(`(?i)\b(?:in|since|by|from|until|between)\s+(?:1[5-9]\d{2}|20\d{2})\b`)},
	{model.ClaimDate, regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}(?:,\s*\d{4})?\b`)},
	{model.ClaimDate, regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)\s+century\b`)},

	// Quantities: money, magnitudes, physical measures
	{model.ClaimQuantity, regexp.MustCompile(`(?i)[$€£¥]\s?\d[\d,]*(?:\.\d+)?(?:\s*(?:million|billion|trillion))?`)},
	{model.ClaimQuantity, regexp.MustCompile(`(?i)\b\d[\d,]*(?:\.\d+)?\s*(?:million|billion|trillion|thousand)\b`)},
	{model.ClaimQuantity, regexp.MustCompile(`(?i)\b\d[\d,]*(?:\.\d+)?\s*(?:kilometers|km|miles|meters|feet|tons|tonnes|kilograms|kg|pounds|acres|hectares)\b`)},

	// Scientific: research/evidence language
	{model.ClaimScientific, regexp.MustCompile(`(?i)\b(?:studies|research|evidence|data)\s+(?:show|shows|suggest|suggests|indicate|indicates|prove|proves|demonstrate|demonstrates)\b`)},
	{model.ClaimScientific, regexp.MustCompile(`(?i)\bscientifically\s+(?:proven|shown|established)\b`)},
	{model.ClaimScientific, regexp.MustCompile(`(?i)\b(?:clinical\s+trials?|peer[- ]reviewed)\b`)},

	// Historical: founding, invention, firsts
	{model.ClaimHistorical, regexp.MustCompile(`(?i)\b(?:founded|established|invented|discovered|built|created|signed|abolished)\s+(?:in|by|on)\b`)},
	{model.ClaimHistorical, regexp.MustCompile(`(?i)\bthe\s+first\s+\w+(?:\s+\w+)?\s+(?:to|in|was)\b`)},
	{model.ClaimHistorical, regexp.MustCompile(`(?i)\bfor\s+the\s+first\s+time\b`)},

	// Quotes: direct quotations and speech verbs introducing them
	{model.ClaimQuote, regexp.MustCompile(`"[^"\n]{10,280}"`)},
	{model.ClaimQuote, regexp.MustCompile(`(?i)\b(?:said|stated|declared|announced|wrote)\s*[:,]?\s*"`)},
}

// Specificity markers checked against the raw match text
var (
	yearMarker      = regexp.MustCompile(`\b(?:1[5-9]\d{2}|20\d{2})\b`)
	percentMarker   = regexp.MustCompile(`(?i)%|percent`)
	currencyMarker  = regexp.MustCompile(`[$€£¥]`)
	magnitudeMarker = regexp.MustCompile(`(?i)\b(?:million|billion|trillion)\b`)
)

var claimExplanations = map[model.ClaimCategory]string{
	model.ClaimStatistic:   "Contains a specific statistic that should be traceable to a source",
	model.ClaimAttribution: "Attributes a claim to a named source; verify the source actually says this",
	model.ClaimDate:        "References a specific date; dates are frequently misremembered or transposed",
	model.ClaimQuantity:    "States a specific quantity; magnitudes are easy to overstate",
	model.ClaimScientific:  "Invokes research or evidence; check the underlying study exists and supports it",
	model.ClaimHistorical:  "Makes a historical assertion; origin and invention claims are often contested",
	model.ClaimQuote:       "Contains a direct quotation; verify the wording and the speaker",
}

var claimSources = map[model.ClaimCategory][]string{
	model.ClaimStatistic:   {"Official statistics portals", "Original survey or dataset"},
	model.ClaimAttribution: {"The cited publication", "The named organization's website"},
	model.ClaimDate:        {"Encyclopedic references", "Primary records or archives"},
	model.ClaimQuantity:    {"Financial filings", "Government or industry reports"},
	model.ClaimScientific:  {"The peer-reviewed paper itself", "Systematic reviews"},
	model.ClaimHistorical:  {"Historical archives", "Academic histories"},
	model.ClaimQuote:       {"Interview transcripts", "The original speech or text"},
}

// StatusForConfidence derives a claim status from its confidence using
// fixed thresholds. These constants are policy, not incidental.
func StatusForConfidence(confidence int) model.ClaimStatus {
	switch {
	case confidence >= 85:
		return model.StatusLikelyAccurate
	case confidence >= 60:
		return model.StatusNeedsVerification
	case confidence >= 40:
		return model.StatusUnverified
	default:
		return model.StatusQuestionable
	}
}

// ClaimID derives a stable identity from a claim's category and span, so
// dismissals keyed by id survive re-analysis of unchanged text.
func ClaimID(category model.ClaimCategory, start, end int) string {
	return fmt.Sprintf("%s-%d-%d", category, start, end)
}

// AnalyzeFactualClaims scans text for spans matching known factual-claim
// shapes and produces non-overlapping, scored, explained findings sorted by
// start offset. Absence of matches yields an empty result, never an error.
func AnalyzeFactualClaims(text string) model.Analysis {
	var claims []model.Claim
	var accepted [][2]int

	for _, pattern := range claimPatterns {
		for _, m := range pattern.re.FindAllStringIndex(text, -1) {
			raw := text[m[0]:m[1]]
			if len(raw) < minMatchLen {
				continue
			}

			start, end := expandToSentence(text, m[0], m[1])
			if end-start > maxSentenceLen {
				continue
			}
			if overlapsAny(accepted, start, end) {
				continue
			}

			confidence := scoreClaim(pattern.category, raw)
			accepted = append(accepted, [2]int{start, end})
			claims = append(claims, model.Claim{
				ID:          ClaimID(pattern.category, start, end),
				Text:        text[start:end],
				StartIndex:  start,
				EndIndex:    end,
				Category:    pattern.category,
				Confidence:  confidence,
				Status:      StatusForConfidence(confidence),
				Explanation: claimExplanations[pattern.category],
				Sources:     claimSources[pattern.category],
			})
		}
	}

	sort.Slice(claims, func(i, j int) bool {
		return claims[i].StartIndex < claims[j].StartIndex
	})

	return model.Analysis{
		Claims:            claims,
		OverallConfidence: overallConfidence(claims),
	}
}

// scoreClaim computes confidence from the category base plus additive
// bonuses for specificity markers found in the raw match, clamped to [0,100].
func scoreClaim(category model.ClaimCategory, raw string) int {
	confidence := claimBaseConfidence

	switch category {
	case model.ClaimQuote, model.ClaimAttribution:
		confidence += quotedSpeechBonus
	case model.ClaimScientific:
		confidence -= scientificPenalty
	}

	if yearMarker.MatchString(raw) {
		confidence += yearBonus
	}
	if percentMarker.MatchString(raw) {
		confidence += percentBonus
	}
	if currencyMarker.MatchString(raw) {
		confidence += currencyBonus
	}
	if magnitudeMarker.MatchString(raw) {
		confidence += magnitudeBonus
	}

	if confidence > 100 {
		confidence = 100
	}
	if confidence < 0 {
		confidence = 0
	}

	return confidence
}

// overallConfidence is the mean of all claim confidences. A document with
// no detectable claims is treated as maximally reliable by convention.
func overallConfidence(claims []model.Claim) int {
	if len(claims) == 0 {
		return 100
	}

	total := 0
	for _, c := range claims {
		total += c.Confidence
	}

	return total / len(claims)
}

// overlapsAny reports whether [start, end) intersects any accepted span
func overlapsAny(spans [][2]int, start, end int) bool {
	for _, s := range spans {
		if start < s[1] && end > s[0] {
			return true
		}
	}
	return false
}
