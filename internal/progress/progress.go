// Package progress computes which assessment fields currently apply and how
// much of the form has been completed. All functions are pure and cheap
// enough to run on every form update.
package progress

import (
	"reflect"

	"aerogap-backend/internal/assessment"
)

// SectionProgress is the completion of one form step.
type SectionProgress struct {
	ID         SectionID `json:"id"`
	Title      string    `json:"title"`
	Completion float64   `json:"completion"`
}

// Summary is the completion of the whole form.
type Summary struct {
	Overall  float64           `json:"overall"`
	Sections []SectionProgress `json:"sections"`
}

// Evaluator applies the dependent-field rules to a layout.
type Evaluator struct {
	layout Layout
	byID   map[SectionID]Section
}

var defaultEvaluator = NewEvaluator(DefaultLayout())

// NewEvaluator builds an evaluator for the given layout.
func NewEvaluator(layout Layout) *Evaluator {
	layout = layout.Clone()
	byID := make(map[SectionID]Section, len(layout))
	for _, s := range layout {
		byID[s.ID] = s
	}
	return &Evaluator{layout: layout, byID: byID}
}

// Default returns the evaluator for the default layout.
func Default() *Evaluator { return defaultEvaluator }

// Layout returns a copy of the sections in step order.
func (e *Evaluator) Layout() Layout { return e.layout.Clone() }

// SectionAt maps a step number to its section.
func (e *Evaluator) SectionAt(step int) (Section, bool) {
	if step < 0 || step >= len(e.layout) {
		return Section{}, false
	}
	return e.layout[step].clone(), true
}

// fieldApplies holds the dependent-field rules. Fields without an entry
// always apply. Rules follow the field wherever a layout places it.
var fieldApplies = map[string]func(assessment.Data) bool{
	// Document upload is optional and never counts toward completion.
	assessment.FieldUploadedDocuments: func(assessment.Data) bool { return false },

	assessment.FieldAS9100Rev: func(d assessment.Data) bool {
		return d.HasCertification(assessment.CertAS9100)
	},
	assessment.FieldArgusLevel: func(d assessment.Data) bool {
		return d.HasCertification(assessment.CertARGUS)
	},
	assessment.FieldISBAOStage: func(d assessment.Data) bool {
		return d.HasCertification(assessment.CertISBAO)
	},
	assessment.FieldWyvernLevel: func(d assessment.Data) bool {
		return d.HasCertification(assessment.CertWyvernWingman)
	},

	assessment.FieldToolControlErrorFrequency: func(d assessment.Data) bool {
		return d.ToolControlErrors == assessment.AnswerYes
	},

	assessment.FieldSMSProgram:  smsActive,
	assessment.FieldSMSMaturity: smsActive,

	assessment.FieldAuditSurveillance: func(d assessment.Data) bool {
		return len(d.SelectedCertifications()) > 0
	},
	assessment.FieldLastFAASurveillance: func(d assessment.Data) bool {
		return len(d.SelectedCertifications()) == 0
	},
}

func smsActive(d assessment.Data) bool {
	return d.HasSMS == assessment.SMSYes || d.HasSMS == assessment.SMSInDevelopment
}

// RelevantFields returns the fields of a section that apply given the current
// answers, as a new slice. Unknown sections, and sections where nothing
// applies, return nil.
func (e *Evaluator) RelevantFields(data assessment.Data, id SectionID) []string {
	section, ok := e.byID[id]
	if !ok {
		return nil
	}
	var out []string
	for _, field := range section.Fields {
		if applies, ok := fieldApplies[field]; ok && !applies(data) {
			continue
		}
		out = append(out, field)
	}
	return out
}

// SectionCompletion returns the filled share of a section's relevant fields in [0,1].
func (e *Evaluator) SectionCompletion(data assessment.Data, id SectionID) float64 {
	return completion(data, e.RelevantFields(data, id))
}

// OverallProgress returns the filled share of all relevant fields as a percentage.
func (e *Evaluator) OverallProgress(data assessment.Data) float64 {
	seen := make(map[string]struct{})
	var fields []string
	for _, s := range e.layout {
		for _, f := range e.RelevantFields(data, s.ID) {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			fields = append(fields, f)
		}
	}
	return completion(data, fields) * 100
}

// Summarize reports overall and per-section completion.
func (e *Evaluator) Summarize(data assessment.Data) Summary {
	out := Summary{
		Overall:  e.OverallProgress(data),
		Sections: make([]SectionProgress, 0, len(e.layout)),
	}
	for _, s := range e.layout {
		out.Sections = append(out.Sections, SectionProgress{
			ID:         s.ID,
			Title:      s.Title,
			Completion: e.SectionCompletion(data, s.ID),
		})
	}
	return out
}

// RelevantFields applies the default layout.
func RelevantFields(data assessment.Data, id SectionID) []string {
	return defaultEvaluator.RelevantFields(data, id)
}

// SectionCompletion applies the default layout.
func SectionCompletion(data assessment.Data, id SectionID) float64 {
	return defaultEvaluator.SectionCompletion(data, id)
}

// OverallProgress applies the default layout.
func OverallProgress(data assessment.Data) float64 {
	return defaultEvaluator.OverallProgress(data)
}

// IsFieldFilled reports whether a value counts as answered. Strings must be
// non-empty, sequences need at least one answered element and keyed values
// need at least one entry.
func IsFieldFilled(value any) bool {
	if value == nil {
		return false
	}
	return filled(reflect.ValueOf(value))
}

func filled(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Invalid:
		return false
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return false
		}
		return filled(v.Elem())
	case reflect.String:
		return v.Len() > 0
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if filled(v.Index(i)) {
				return true
			}
		}
		return false
	case reflect.Map:
		return v.Len() > 0
	default:
		return true
	}
}

func fieldFilled(data assessment.Data, field string) bool {
	if field == assessment.FieldAuditSurveillance {
		return auditSurveillanceFilled(data)
	}
	value, ok := data.Field(field)
	if !ok {
		return false
	}
	return IsFieldFilled(value)
}

// auditSurveillanceFilled requires an entry for every selected certification.
func auditSurveillanceFilled(data assessment.Data) bool {
	certs := data.SelectedCertifications()
	if len(certs) == 0 {
		return false
	}
	for _, c := range certs {
		if data.AuditSurveillance[c] == "" {
			return false
		}
	}
	return true
}

func completion(data assessment.Data, fields []string) float64 {
	if len(fields) == 0 {
		return 0
	}
	n := 0
	for _, f := range fields {
		if fieldFilled(data, f) {
			n++
		}
	}
	return float64(n) / float64(len(fields))
}
