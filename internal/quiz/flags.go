package quiz

// Severity of a flagged area.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// Answers maps a question's answer field to the selected option value.
type Answers map[string]string

// FlaggedArea is an area where the quiz answers indicate a potential gap.
type FlaggedArea struct {
	Area        Area     `json:"area" yaml:"area"`
	Label       string   `json:"label" yaml:"label"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Description string   `json:"description" yaml:"description"`
	QuestionID  string   `json:"questionId" yaml:"questionId"`
}

const (
	fallbackHigh   = "Potential gap identified in this area."
	fallbackMedium = "Room for improvement identified in this area."
)

var descriptions = map[Area]map[Severity]string{
	AreaSMS: {
		SeverityHigh:   "Your organization may lack a formal Safety Management System. This is a critical gap for aviation operations and a focus area in FAA/EASA oversight.",
		SeverityMedium: "Your SMS appears to be in early stages. Strengthening your safety management framework could reduce risk and improve audit readiness.",
	},
	AreaCAPA: {
		SeverityHigh:   "Corrective action procedures appear to be missing or undocumented. CAPA is fundamental to regulatory compliance and continuous airworthiness.",
		SeverityMedium: "Your CAPA system may have documentation gaps. Ensuring full documentation and implementation helps prevent repeat findings.",
	},
	AreaTraining: {
		SeverityHigh:   "Training and competency tracking appears informal or absent. Regulatory bodies require documented evidence of technician qualifications.",
		SeverityMedium: "Your training tracking methods could be improved. Digital tracking systems reduce compliance risk and audit preparation time.",
	},
	AreaProcess: {
		SeverityHigh:   "Core operational processes appear to be undocumented or ad-hoc. Defined, documented processes are essential for quality and regulatory compliance.",
		SeverityMedium: "Some processes may lack formal documentation. Standardizing all core processes improves consistency and audit performance.",
	},
	AreaWorkflow: {
		SeverityHigh:   "Work order management appears to lack a formal system. This can lead to missed tasks, traceability gaps, and compliance exposure.",
		SeverityMedium: "Your work order system could benefit from modernization. Digital systems improve traceability and reduce errors.",
	},
	AreaToolControl: {
		SeverityHigh:   "Tool control and accountability appears to have significant gaps. Poor tool control is a leading cause of FOD incidents in aviation.",
		SeverityMedium: "Your tool control methods could be strengthened. Enhanced tracking reduces FOD risk and improves audit outcomes.",
	},
	AreaCalibration: {
		SeverityHigh:   "A calibration program appears to be missing. Uncalibrated measuring equipment can lead to quality escapes and regulatory findings.",
		SeverityMedium: "Your calibration tracking may have gaps. Formal tracking programs help ensure equipment accuracy and compliance.",
	},
	AreaQuality: {
		SeverityHigh:   "No formal quality methodology was identified. Implementing a recognized quality framework is critical for aviation operations.",
		SeverityMedium: "Your quality approach may benefit from a more structured methodology. Formal frameworks provide systematic improvement.",
	},
	AreaImprovement: {
		SeverityHigh:   "Continuous improvement does not appear to be actively pursued. Regulatory bodies increasingly expect evidence of proactive improvement.",
		SeverityMedium: "Continuous improvement efforts appear reactive rather than proactive. An active program with metrics demonstrates organizational maturity.",
	},
	AreaRegulatory: {
		SeverityHigh:   "Recurring audit findings suggest systemic issues that need root cause analysis. This is a significant regulatory risk factor.",
		SeverityMedium: "Some repeat findings were indicated. Addressing root causes can prevent escalation and improve your compliance posture.",
	},
}

// Describe returns the canned description for an area and severity.
func Describe(area Area, sev Severity) string {
	if d, ok := descriptions[area][sev]; ok {
		return d
	}
	if sev == SeverityHigh {
		return fallbackHigh
	}
	return fallbackMedium
}

// SeverityForWeight buckets an option weight; ok is false for weight 0.
func SeverityForWeight(weight int) (Severity, bool) {
	switch {
	case weight >= 2:
		return SeverityHigh, true
	case weight == 1:
		return SeverityMedium, true
	default:
		return "", false
	}
}

// ComputeFlaggedAreas flags every answered question whose option carries a
// weight, in question order. Unanswered questions and unknown option values
// are skipped.
func ComputeFlaggedAreas(answers Answers) []FlaggedArea {
	out := make([]FlaggedArea, 0, len(questions))
	for _, q := range questions {
		value, answered := answers[q.Field]
		if !answered || value == "" {
			continue
		}
		opt, ok := q.Option(value)
		if !ok {
			continue
		}
		sev, flagged := SeverityForWeight(opt.FlagWeight)
		if !flagged {
			continue
		}
		out = append(out, FlaggedArea{
			Area:        q.Area,
			Label:       q.AreaLabel,
			Severity:    sev,
			Description: Describe(q.Area, sev),
			QuestionID:  q.ID,
		})
	}
	return out
}

// AreaIDs returns the area ids of flags, preserving order.
func AreaIDs(flags []FlaggedArea) []string {
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		out = append(out, string(f.Area))
	}
	return out
}
