package kb

import "github.com/regtech-labs/finregx/internal/domain"

var categoryOrder = []string{
	domain.CategoryPSP,
	domain.CategoryLending,
	domain.CategoryWealth,
}

var capitalRequirements = map[string]CapitalRequirement{
	domain.CategoryPSP: {
		Category:       domain.CategoryPSP,
		Name:           "Payment Service Provider (PSP)",
		MinimumCapital: 5_000_000,
		Description:    "Entities providing domestic or cross-border payment processing or electronic money issuance",
	},
	domain.CategoryLending: {
		Category:       domain.CategoryLending,
		Name:           "Marketplace Lending (P2P/Crowdfunding)",
		MinimumCapital: 7_500_000,
		Description:    "Platforms facilitating direct lending or capital raising between investors and businesses/consumers",
	},
	domain.CategoryWealth: {
		Category:       domain.CategoryWealth,
		Name:           "Digital Wealth Management",
		MinimumCapital: 4_000_000,
		Description:    "Entities offering automated investment advice (Robo-advisory) or portfolio management",
	},
}
