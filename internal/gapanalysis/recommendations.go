package gapanalysis

import (
	"strings"

	"aerogap-backend/internal/assessment"
	"aerogap-backend/internal/normalize"
)

// RecommendationRule emits a fixed recommendation when its predicate holds.
type RecommendationRule struct {
	Recommendation assessment.Recommendation
	When           func(assessment.Data) bool
}

var recommendationRules = []RecommendationRule{
	{
		Recommendation: assessment.Recommendation{
			ID:                     "rec-1",
			Priority:               assessment.PriorityHigh,
			Area:                   "Workforce Retention",
			Recommendation:         "Implement employee retention program with competitive compensation, career development, and improved work environment.",
			ExpectedImpact:         "Reduce training costs, improve quality consistency, and enhance institutional knowledge.",
			ImplementationTimeline: "3-6 months",
			EstimatedCost:          "$50,000 - $100,000 annually",
		},
		When: func(d assessment.Data) bool {
			turnover, ok := normalize.ParsePercent(d.TurnoverRate)
			return ok && turnover > 15
		},
	},
	{
		Recommendation: assessment.Recommendation{
			ID:                     "rec-2",
			Priority:               assessment.PriorityMedium,
			Area:                   "Technology Upgrade",
			Recommendation:         "Invest in modern maintenance tracking software (CAMP, Traxxall, or Corridor) to improve efficiency and compliance.",
			ExpectedImpact:         "Better compliance tracking, reduced administrative burden, improved metrics visibility.",
			ImplementationTimeline: "6-12 months",
			EstimatedCost:          "$20,000 - $75,000 implementation + $10,000-$30,000 annually",
		},
		When: func(d assessment.Data) bool {
			if !hasTrackingSoftware(d.MaintenanceTrackingSoftware) {
				return true
			}
			return strings.EqualFold(d.SoftwareSatisfaction, assessment.SatisfactionVeryDissatisfied) ||
				strings.EqualFold(d.SoftwareSatisfaction, assessment.SatisfactionDissatisfied)
		},
	},
	{
		Recommendation: assessment.Recommendation{
			ID:                     "rec-3",
			Priority:               assessment.PriorityMedium,
			Area:                   "Inventory Management",
			Recommendation:         "Implement barcode/RFID inventory tracking system with cycle counting program.",
			ExpectedImpact:         "Reduce parts delays, minimize excess inventory, improve invoice accuracy, and reduce write-offs.",
			ImplementationTimeline: "3-6 months",
			EstimatedCost:          "$15,000 - $50,000",
		},
		When: func(d assessment.Data) bool {
			switch d.PartsInventoryMethod {
			case assessment.InventorySpreadsheet, assessment.InventoryManualPaper:
				return true
			}
			return d.InventoryAccuracy != assessment.Accuracy95To100
		},
	},
	{
		Recommendation: assessment.Recommendation{
			ID:                     "rec-4",
			Priority:               assessment.PriorityHigh,
			Area:                   "Quality Management System",
			Recommendation:         "Conduct comprehensive QMS gap analysis against Part 145 and AS9100 standards.",
			ExpectedImpact:         "Identify all compliance gaps, prioritize improvements, and create roadmap for certification readiness.",
			ImplementationTimeline: "1-3 months",
			EstimatedCost:          "$10,000 - $25,000 for consultant-led gap analysis",
		},
		When: func(assessment.Data) bool { return true },
	},
}

// RecommendationRules returns the recommendation catalogue in evaluation order.
func RecommendationRules() []RecommendationRule {
	out := make([]RecommendationRule, len(recommendationRules))
	copy(out, recommendationRules)
	return out
}

// hasTrackingSoftware treats an empty selection and a lone "None" alike.
func hasTrackingSoftware(selected []string) bool {
	for _, s := range selected {
		s = strings.TrimSpace(s)
		if s != "" && s != assessment.CertNone {
			return true
		}
	}
	return false
}
