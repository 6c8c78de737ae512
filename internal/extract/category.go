package extract

import (
	"strings"

	"github.com/regtech-labs/finregx/internal/domain"
)

// categoryBuckets are evaluated in order; the first bucket with any keyword
// hit wins. Documents describing multiple business lines therefore resolve
// to the first matching category in this fixed precedence, not the most
// frequent one.
var categoryBuckets = []struct {
	category string
	keywords []string
}{
	{domain.CategoryLending, []string{"p2p", "peer-to-peer", "lending", "crowdfunding", "marketplace lending"}},
	{domain.CategoryPSP, []string{"payment", "psp", "electronic money", "payment service"}},
	{domain.CategoryWealth, []string{"wealth management", "robo-advisor", "investment advice", "portfolio management"}},
}

// BusinessCategory derives the regulatory business category from keyword
// presence. Returns "" when no keyword from any bucket is present.
func BusinessCategory(text string) string {
	lower := strings.ToLower(text)

	for _, bucket := range categoryBuckets {
		for _, keyword := range bucket.keywords {
			if strings.Contains(lower, keyword) {
				return bucket.category
			}
		}
	}

	return ""
}
