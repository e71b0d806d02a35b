package assessment

// Answer vocabularies offered by the assessment form. Rules compare against
// these enumerated values only.
const (
	NotApplicable = "N/A"
	AnswerYes     = "Yes"
	AnswerNo      = "No"
)

// Certifications.
const (
	CertFAAPart145    = "FAA Part 145"
	CertEASAPart145   = "EASA Part 145"
	CertCAAC          = "CAAC"
	CertTCCA          = "TCCA"
	CertAS9100        = "AS9100"
	CertARGUS         = "ARGUS"
	CertISBAO         = "IS-BAO"
	CertWyvernWingman = "Wyvern Wingman"
	CertISO9001       = "ISO 9001"
	CertNone          = "None"
)

// Certification detail levels.
const (
	AS9100RevD = "Rev D"
	AS9100RevC = "Rev C"

	ArgusPlatinum = "Platinum"
	ArgusGoldPlus = "Gold Plus"
	ArgusGold     = "Gold"
	ArgusSilver   = "Silver"

	ISBAOStage1 = "Stage 1"
	ISBAOStage2 = "Stage 2"
	ISBAOStage3 = "Stage 3"

	WyvernWingman    = "Wingman"
	WyvernWingmanPro = "Wingman PRO"
)

// CAPA system status.
const (
	CAPAFullyImplemented     = "Fully Implemented"
	CAPAImplemented          = "Implemented"
	CAPAPartiallyImplemented = "Partially Implemented"
	CAPAInDevelopment        = "In Development"
	CAPANone                 = "None"
)

// Training program type.
const (
	TrainingFormalProgram    = "Formal Program"
	TrainingOJTOnly          = "OJT Only"
	TrainingHybrid           = "Hybrid"
	TrainingExternalTraining = "External Training"
	TrainingMinimal          = "Minimal"
)

// Calibration program and overdue buckets.
const (
	CalibrationYes       = "Yes"
	CalibrationNo        = "No"
	CalibrationPartially = "Partially"

	OverdueNone       = "None"
	Overdue1To3       = "1-3 Items"
	Overdue4To10      = "4-10 Items"
	OverdueMoreThan10 = "More than 10"
	OverdueUnknown    = "Unknown"
)

// Tool control method.
const (
	ToolControlShadowBoards   = "Shadow Boards"
	ToolControlToolCribs      = "Tool Cribs"
	ToolControlBarcodeSystem  = "Barcode System"
	ToolControlManualTracking = "Manual Tracking"
	ToolControlNone           = "None"
)

// Software satisfaction.
const (
	SatisfactionVerySatisfied    = "Very Satisfied"
	SatisfactionSatisfied        = "Satisfied"
	SatisfactionNeutral          = "Neutral"
	SatisfactionDissatisfied     = "Dissatisfied"
	SatisfactionVeryDissatisfied = "Very Dissatisfied"
)

// Parts inventory method and accuracy buckets.
const (
	InventoryComputerized = "Computerized System"
	InventorySpreadsheet  = "Spreadsheet"
	InventoryManualPaper  = "Manual/Paper"
	InventoryHybrid       = "Hybrid"
	InventoryNone         = "None"

	Accuracy95To100 = "95-100%"
	Accuracy85To94  = "85-94%"
	Accuracy75To84  = "75-84%"
	AccuracyBelow75 = "Below 75%"
	AccuracyUnknown = "Unknown"
)

// SMS status and recurring findings.
const (
	SMSYes           = "Yes"
	SMSNo            = "No"
	SMSInDevelopment = "In Development"

	RecurringYes  = "Yes"
	RecurringSome = "Some"
	RecurringNo   = "No"
)

// Audit surveillance timeframes.
const (
	SurveillanceWithin3Months = "Within 3 months"
	Surveillance3To6Months    = "3-6 months ago"
	Surveillance6To12Months   = "6-12 months ago"
	SurveillanceOverAYear     = "Over 1 year ago"
	SurveillanceNever         = "Never"
)
