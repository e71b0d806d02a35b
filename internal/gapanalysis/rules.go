package gapanalysis

import (
	"fmt"

	"aerogap-backend/internal/assessment"
	"aerogap-backend/internal/normalize"
)

// Outcome is the severity and score deduction of a fired rule.
type Outcome struct {
	Severity  assessment.Severity
	Deduction int
}

// Rule is one entry of the gap catalogue. Rules only read the assessment, so
// their order affects the order of gaps in the report and nothing else.
type Rule struct {
	ID             string
	Category       string
	Title          string
	Description    string
	Impact         string
	Recommendation string

	// Trigger decides whether the rule fires and with which outcome.
	Trigger func(assessment.Data) (Outcome, bool)
	// Detail optionally replaces Description with text built from the answers.
	Detail func(assessment.Data) string
}

// Gap renders the rule's finding for the given answers.
func (r Rule) Gap(d assessment.Data, o Outcome) assessment.Gap {
	desc := r.Description
	if r.Detail != nil {
		desc = r.Detail(d)
	}
	return assessment.Gap{
		ID:             r.ID,
		Category:       r.Category,
		Severity:       o.Severity,
		Title:          r.Title,
		Description:    desc,
		Impact:         r.Impact,
		Recommendation: r.Recommendation,
	}
}

const (
	categoryCertifications = "Certifications & Compliance"
	categoryQuality        = "Quality Systems"
	categoryTraining       = "Training & Competency"
	categoryCalibration    = "Calibration & Equipment"
	categoryToolControl    = "Tool Control & FOD"
	categoryProduction     = "Production & Quality Metrics"
	categoryAudit          = "Regulatory & Audit"
	categoryFinancial      = "Financial Performance"
)

func when(sev assessment.Severity, deduction int, pred func(assessment.Data) bool) func(assessment.Data) (Outcome, bool) {
	return func(d assessment.Data) (Outcome, bool) {
		if !pred(d) {
			return Outcome{}, false
		}
		return Outcome{Severity: sev, Deduction: deduction}, true
	}
}

func unsetOrNA(v string) bool {
	return v == "" || v == assessment.NotApplicable
}

var gapRules = []Rule{
	{
		ID:             "cert-1",
		Category:       categoryCertifications,
		Title:          "No Active Certifications",
		Description:    "Organization lacks fundamental aviation maintenance certifications such as FAA Part 145 or EASA Part 145.",
		Impact:         "Cannot legally perform maintenance on many aircraft types. Severely limits business opportunities.",
		Recommendation: "Prioritize obtaining FAA Part 145 certification. Begin by conducting a gap analysis against 14 CFR Part 145 requirements.",
		Trigger: when(assessment.SeverityCritical, 20, func(d assessment.Data) bool {
			return len(d.SelectedCertifications()) == 0
		}),
	},
	{
		ID:             "cert-2",
		Category:       categoryCertifications,
		Title:          "IS-BAO Stage Not Defined",
		Description:    "IS-BAO registration is reported but the current stage has not been identified.",
		Impact:         "Customers and auditors cannot verify the maturity of the safety program behind the registration.",
		Recommendation: "Confirm the current IS-BAO stage with your auditor and keep the registration certificate on file.",
		Trigger: when(assessment.SeverityMedium, 3, func(d assessment.Data) bool {
			return d.HasCertification(assessment.CertISBAO) && unsetOrNA(d.ISBAOStage)
		}),
	},
	{
		ID:             "cert-3",
		Category:       categoryCertifications,
		Title:          "IS-BAO Stage 1 Only",
		Description:    "IS-BAO Stage 1 confirms an SMS framework exists but not that risk management is in routine use.",
		Impact:         "Operators increasingly expect Stage 2 or higher from maintenance vendors.",
		Recommendation: "Plan the Stage 2 audit: demonstrate hazard reporting, risk assessments and safety performance monitoring in daily operations.",
		Trigger: when(assessment.SeverityMedium, 3, func(d assessment.Data) bool {
			return d.ISBAOStage == assessment.ISBAOStage1
		}),
	},
	{
		ID:             "cert-4",
		Category:       categoryCertifications,
		Title:          "Wyvern Rating Unspecified",
		Description:    "Wyvern Wingman is selected but the rating level has not been provided.",
		Impact:         "Charter customers rely on the rating level when qualifying vendors.",
		Recommendation: "Record the current Wyvern rating and renewal date alongside your other certifications.",
		Trigger: when(assessment.SeverityLow, 2, func(d assessment.Data) bool {
			return d.HasCertification(assessment.CertWyvernWingman) && unsetOrNA(d.WyvernLevel)
		}),
	},
	{
		ID:             "quality-1",
		Category:       categoryQuality,
		Title:          "No CAPA System",
		Description:    "There is no Corrective and Preventive Action system to capture, investigate and close quality issues.",
		Impact:         "Risk of recurring quality issues, audit findings, and potential certificate action by FAA.",
		Recommendation: "Implement a formal CAPA system with root cause analysis, effectiveness checks, and closure verification.",
		Trigger: when(assessment.SeverityCritical, 15, func(d assessment.Data) bool {
			return d.CAPASystemStatus == assessment.CAPANone
		}),
	},
	{
		ID:             "quality-2",
		Category:       categoryQuality,
		Title:          "Immature CAPA System",
		Description:    "Corrective and Preventive Action system is insufficient for regulatory compliance and continuous improvement.",
		Impact:         "Corrective actions may not be tracked to closure, allowing the same discrepancies to recur.",
		Recommendation: "Complete CAPA implementation: documented procedure, assigned owners, due dates and effectiveness verification.",
		Trigger: when(assessment.SeverityHigh, 10, func(d assessment.Data) bool {
			return d.CAPASystemStatus == assessment.CAPAPartiallyImplemented || d.CAPASystemStatus == assessment.CAPAInDevelopment
		}),
	},
	{
		ID:             "quality-3",
		Category:       categoryQuality,
		Title:          "CAPA System Needs Improvement",
		Description:    "A CAPA system is in place but is not reported as fully implemented across the organization.",
		Impact:         "Gaps in root cause analysis and effectiveness checks weaken audit readiness.",
		Recommendation: "Add trend analysis and effectiveness reviews to the CAPA process and extend it to all departments.",
		Trigger: when(assessment.SeverityMedium, 6, func(d assessment.Data) bool {
			return d.CAPASystemStatus == assessment.CAPAImplemented
		}),
	},
	{
		ID:             "training-1",
		Category:       categoryTraining,
		Title:          "Informal Training Program",
		Description:    "Lack of structured training program violates 14 CFR §145.163 requirements for training data.",
		Impact:         "Non-compliance with Part 145 training requirements. Risk of unqualified personnel performing critical work.",
		Recommendation: "Develop formal training program with documented curricula, competency assessments, and training records.",
		Trigger: when(assessment.SeverityHigh, 12, func(d assessment.Data) bool {
			switch d.TrainingProgramType {
			case "", assessment.TrainingOJTOnly, assessment.TrainingMinimal:
				return true
			}
			return false
		}),
	},
	{
		ID:             "calibration-1",
		Category:       categoryCalibration,
		Title:          "Calibration Program Deficiencies",
		Description:    "Inadequate calibration program or excessive overdue calibrations (14 CFR §145.109).",
		Impact:         "Risk of using out-of-tolerance equipment, leading to improper work and safety hazards.",
		Recommendation: "Establish formal calibration program with tracked intervals, vendor certifications, and overdue equipment lockout procedures.",
		Trigger: func(d assessment.Data) (Outcome, bool) {
			if d.CalibrationProgram == assessment.CalibrationNo {
				return Outcome{Severity: assessment.SeverityCritical, Deduction: 15}, true
			}
			if overdue, ok := normalize.MapOverdueCalibrations(d.OverdueCalibrations); ok && overdue > 5 {
				return Outcome{Severity: assessment.SeverityHigh, Deduction: 8}, true
			}
			return Outcome{}, false
		},
	},
	{
		ID:             "calibration-2",
		Category:       categoryCalibration,
		Title:          "Partial Calibration Program",
		Description:    "Only part of the measuring and test equipment is covered by the calibration program.",
		Impact:         "Uncontrolled equipment can be used for airworthiness determinations without traceable accuracy.",
		Recommendation: "Bring all precision tools and test equipment into the calibration recall system with unique IDs and due-date labels.",
		Trigger: when(assessment.SeverityHigh, 8, func(d assessment.Data) bool {
			return d.CalibrationProgram == assessment.CalibrationPartially
		}),
	},
	{
		ID:             "tool-1",
		Category:       categoryToolControl,
		Title:          "Tool Control System Gaps",
		Description:    "Inadequate tool control system with documented errors or missing tools.",
		Impact:         "FOD risk, safety hazard, and potential for catastrophic failures if tools left in aircraft.",
		Recommendation: "Implement shadow boards, tool checkout system, and mandatory pre/post-flight tool accountability procedures.",
		Trigger: func(d assessment.Data) (Outcome, bool) {
			if d.ToolControlMethod == assessment.ToolControlNone {
				return Outcome{Severity: assessment.SeverityHigh, Deduction: 10}, true
			}
			if d.ToolControlErrors == assessment.AnswerYes {
				return Outcome{Severity: assessment.SeverityMedium, Deduction: 5}, true
			}
			return Outcome{}, false
		},
	},
	{
		ID:             "production-1",
		Category:       categoryProduction,
		Title:          "Low First Pass Rate",
		Impact:         "Excessive rework costs, schedule delays, and reduced profitability. Indicates quality control issues.",
		Recommendation: "Implement first pass quality initiatives: enhanced training, better work instructions, and process standardization.",
		Trigger: func(d assessment.Data) (Outcome, bool) {
			rate, ok := normalize.ParsePercent(d.FirstPassRate)
			if !ok || rate >= 85 {
				return Outcome{}, false
			}
			if rate < 70 {
				return Outcome{Severity: assessment.SeverityHigh, Deduction: 8}, true
			}
			return Outcome{Severity: assessment.SeverityMedium, Deduction: 5}, true
		},
		Detail: func(d assessment.Data) string {
			return fmt.Sprintf("First pass rate of %s is below industry standard of 85-95%%.", d.FirstPassRate)
		},
	},
	{
		ID:             "audit-1",
		Category:       categoryAudit,
		Title:          "Recurring Audit Findings",
		Description:    "Same issues found in multiple surveillance visits indicates systemic CAPA failure.",
		Impact:         "High risk of certificate action. Demonstrates ineffective corrective action process.",
		Recommendation: "Conduct root cause analysis on recurring findings. Implement systemic changes and verify effectiveness.",
		Trigger: func(d assessment.Data) (Outcome, bool) {
			switch d.RecurringFindings {
			case assessment.RecurringYes:
				return Outcome{Severity: assessment.SeverityCritical, Deduction: 15}, true
			case assessment.RecurringSome:
				return Outcome{Severity: assessment.SeverityHigh, Deduction: 8}, true
			}
			return Outcome{}, false
		},
	},
	{
		ID:             "financial-1",
		Category:       categoryFinancial,
		Title:          "Low Job Margins",
		Impact:         "Reduced profitability and limited resources for quality improvements and capital investments.",
		Recommendation: "Analyze pricing strategy, reduce rework costs, improve schedule adherence, and optimize parts management.",
		Trigger: func(d assessment.Data) (Outcome, bool) {
			margin, ok := normalize.ParsePercent(d.JobMargin)
			if !ok || margin >= 15 {
				return Outcome{}, false
			}
			return Outcome{Severity: assessment.SeverityMedium, Deduction: 5}, true
		},
		Detail: func(d assessment.Data) string {
			return fmt.Sprintf("Job margins of %s are below industry standard of 20-30%%.", d.JobMargin)
		},
	},
}

// GapRules returns the gap catalogue in evaluation order.
func GapRules() []Rule {
	out := make([]Rule, len(gapRules))
	copy(out, gapRules)
	return out
}
