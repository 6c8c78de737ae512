package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/regtech-labs/finregx/internal/domain"
)

// capitalFloor is the plausibility floor for capital figures in QAR.
// Numbers below it (phone numbers, dates, percentages) are treated as noise.
const capitalFloor = 100_000

var (
	paidUpPattern     = regexp.MustCompile(`(?i)paid[\s-]?up\s+capital[:\s]+(?:was\s+)?(?:qar)?\s*([\d,]+(?:\.\d+)?)`)
	authorizedPattern = regexp.MustCompile(`(?i)authorized\s+(?:share\s+)?capital[:\s]+(?:is\s+)?(?:qar)?\s*([\d,]+(?:\.\d+)?)`)
)

// Capital extracts paid-up and authorized capital figures. Two independent
// pattern families run in sequence: the paid-up family takes the first
// qualifying match in document order; the authorized family then inspects
// each matched span to decide which field the figure belongs to, because a
// single pattern cannot reliably disambiguate label placement in free prose.
// Returns nil when neither figure was found.
func Capital(text string) *domain.CapitalFacts {
	facts := domain.CapitalFacts{}

	for _, m := range paidUpPattern.FindAllStringSubmatch(text, -1) {
		amount, ok := parseAmount(m[1])
		if !ok {
			continue
		}
		facts.PaidUp = &amount
		break // first qualifying match wins
	}

	for _, m := range authorizedPattern.FindAllStringSubmatch(text, -1) {
		amount, ok := parseAmount(m[1])
		if !ok {
			continue
		}
		span := strings.ToLower(m[0])
		switch {
		case strings.Contains(span, "paid"):
			facts.PaidUp = &amount
		case strings.Contains(span, "authorized"):
			facts.Authorized = &amount
		default:
			if facts.PaidUp == nil {
				facts.PaidUp = &amount
			}
		}
	}

	if facts.PaidUp == nil && facts.Authorized == nil {
		return nil
	}
	return &facts
}

// parseAmount normalizes a captured numeric literal. Figures that fail
// parsing or fall below the plausibility floor are discarded silently.
func parseAmount(raw string) (float64, bool) {
	amount, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil || amount < capitalFloor {
		return 0, false
	}
	return amount, true
}
