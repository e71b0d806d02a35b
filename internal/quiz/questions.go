package quiz

// Area identifies the operational area a question probes.
type Area string

const (
	AreaSMS         Area = "sms"
	AreaCAPA        Area = "capa"
	AreaTraining    Area = "training"
	AreaProcess     Area = "process"
	AreaWorkflow    Area = "workflow"
	AreaToolControl Area = "toolControl"
	AreaCalibration Area = "calibration"
	AreaQuality     Area = "quality"
	AreaImprovement Area = "improvement"
	AreaRegulatory  Area = "regulatory"
)

// Option is one selectable answer. FlagWeight 0 raises nothing, 1 a medium
// flag and 2 a high flag.
type Option struct {
	Label      string `json:"label" yaml:"label"`
	Value      string `json:"value" yaml:"value"`
	FlagWeight int    `json:"flagWeight" yaml:"flagWeight"`
}

// Question is a single quiz question keyed by the answer field it fills.
type Question struct {
	ID        string   `json:"id" yaml:"id"`
	Field     string   `json:"field" yaml:"field"`
	Text      string   `json:"text" yaml:"text"`
	Area      Area     `json:"area" yaml:"area"`
	AreaLabel string   `json:"areaLabel" yaml:"areaLabel"`
	Options   []Option `json:"options" yaml:"options"`
}

// Option returns the option with the given value.
func (q Question) Option(value string) (Option, bool) {
	for _, o := range q.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

var questions = []Question{
	{
		ID: "q1", Field: "hasSMS", Area: AreaSMS, AreaLabel: "Safety Management System",
		Text: "Do you have a formal Safety Management System (SMS)?",
		Options: []Option{
			{Label: "Yes — fully implemented and documented", Value: "yes_full", FlagWeight: 0},
			{Label: "Partially — in development or informal", Value: "yes_partial", FlagWeight: 1},
			{Label: "No", Value: "no", FlagWeight: 2},
			{Label: "Not sure", Value: "not_sure", FlagWeight: 2},
		},
	},
	{
		ID: "q2", Field: "capaSystemStatus", Area: AreaCAPA, AreaLabel: "Corrective Action (CAPA)",
		Text: "Do you have documented CAPA (corrective action) procedures?",
		Options: []Option{
			{Label: "Yes — fully documented and implemented", Value: "fully_documented", FlagWeight: 0},
			{Label: "Partially documented", Value: "partially_documented", FlagWeight: 1},
			{Label: "No documented CAPA procedures", Value: "none", FlagWeight: 2},
			{Label: "Not sure", Value: "not_sure", FlagWeight: 2},
		},
	},
	{
		ID: "q3", Field: "trainingTracking", Area: AreaTraining, AreaLabel: "Training & Competency",
		Text: "How do you track technician training and competency?",
		Options: []Option{
			{Label: "Digital training management system", Value: "digital_system", FlagWeight: 0},
			{Label: "Spreadsheets or basic tracking", Value: "spreadsheets", FlagWeight: 1},
			{Label: "Paper-based records", Value: "paper", FlagWeight: 2},
			{Label: "No formal tracking", Value: "none", FlagWeight: 2},
		},
	},
	{
		ID: "q4", Field: "hasDefinedProcess", Area: AreaProcess, AreaLabel: "Process & Workflow",
		Text: "Do you have defined processes for your core operations?",
		Options: []Option{
			{Label: "Yes — all documented and followed", Value: "yes_documented", FlagWeight: 0},
			{Label: "Some documented, some informal", Value: "some_documented", FlagWeight: 1},
			{Label: "Mostly ad-hoc / tribal knowledge", Value: "ad_hoc", FlagWeight: 2},
			{Label: "No defined processes", Value: "none", FlagWeight: 2},
		},
	},
	{
		ID: "q5", Field: "workOrderSystem", Area: AreaWorkflow, AreaLabel: "Work Order Management",
		Text: "What system do you use for work orders?",
		Options: []Option{
			{Label: "Digital MRO / ERP system", Value: "digital_mro", FlagWeight: 0},
			{Label: "Basic software or spreadsheets", Value: "basic_software", FlagWeight: 1},
			{Label: "Paper-based system", Value: "paper", FlagWeight: 2},
			{Label: "No formal system", Value: "none", FlagWeight: 2},
		},
	},
	{
		ID: "q6", Field: "toolControlMethod", Area: AreaToolControl, AreaLabel: "Tool Control",
		Text: "How do you manage tool control and accountability?",
		Options: []Option{
			{Label: "Electronic tracking / RFID system", Value: "electronic", FlagWeight: 0},
			{Label: "Shadow boards and manual logs", Value: "shadow_boards", FlagWeight: 1},
			{Label: "Informal / ad-hoc methods", Value: "informal", FlagWeight: 2},
			{Label: "No tool control program", Value: "none", FlagWeight: 2},
		},
	},
	{
		ID: "q7", Field: "calibrationProgram", Area: AreaCalibration, AreaLabel: "Calibration Program",
		Text: "Do you have a calibration program for measuring equipment?",
		Options: []Option{
			{Label: "Yes — formal program with tracking", Value: "formal", FlagWeight: 0},
			{Label: "Informal tracking (spreadsheets, etc.)", Value: "informal", FlagWeight: 1},
			{Label: "No calibration program", Value: "none", FlagWeight: 2},
			{Label: "Not applicable to our operations", Value: "not_applicable", FlagWeight: 0},
		},
	},
	{
		ID: "q8", Field: "qualityMethodologies", Area: AreaQuality, AreaLabel: "Quality Management",
		Text: "What quality methodologies do you use?",
		Options: []Option{
			{Label: "Multiple (ISO 9001, AS9100, Lean, Six Sigma, etc.)", Value: "multiple", FlagWeight: 0},
			{Label: "One formal methodology", Value: "one", FlagWeight: 0},
			{Label: "Basic quality checks only", Value: "basic", FlagWeight: 1},
			{Label: "No formal quality methodology", Value: "none", FlagWeight: 2},
		},
	},
	{
		ID: "q9", Field: "continuousImprovementActive", Area: AreaImprovement, AreaLabel: "Continuous Improvement",
		Text: "Is continuous improvement actively pursued at your organization?",
		Options: []Option{
			{Label: "Yes — active program with metrics", Value: "active_program", FlagWeight: 0},
			{Label: "Occasionally — when issues arise", Value: "occasional", FlagWeight: 1},
			{Label: "No formal improvement program", Value: "no", FlagWeight: 2},
			{Label: "Not sure", Value: "not_sure", FlagWeight: 2},
		},
	},
	{
		ID: "q10", Field: "recurringFindings", Area: AreaRegulatory, AreaLabel: "Regulatory & Audit Compliance",
		Text: "Do you have recurring or repeat audit findings?",
		Options: []Option{
			{Label: "No — all findings are resolved and stay closed", Value: "none", FlagWeight: 0},
			{Label: "Some repeat findings", Value: "some", FlagWeight: 1},
			{Label: "Yes — many recurring findings", Value: "many", FlagWeight: 2},
			{Label: "Not sure / haven't tracked", Value: "not_sure", FlagWeight: 2},
		},
	},
}

// Questions returns the quiz in presentation order.
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

// QuestionByField returns the question that fills the given answer field.
func QuestionByField(field string) (Question, bool) {
	for _, q := range questions {
		if q.Field == field {
			return q, true
		}
	}
	return Question{}, false
}
