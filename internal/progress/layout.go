package progress

import (
	"slices"

	"aerogap-backend/internal/assessment"
)

// SectionID names a step of the assessment form.
type SectionID string

const (
	SectionUpload         SectionID = "upload"
	SectionCompany        SectionID = "company"
	SectionCertifications SectionID = "certifications"
	SectionAircraft       SectionID = "aircraft"
	SectionSoftware       SectionID = "software"
	SectionParts          SectionID = "parts"
	SectionQuality        SectionID = "quality"
	SectionSMS            SectionID = "sms"
	SectionTraining       SectionID = "training"
	SectionCalibration    SectionID = "calibration"
	SectionCAPA           SectionID = "capa"
	SectionRegulatory     SectionID = "regulatory"
	SectionProduction     SectionID = "production"
	SectionMetrics        SectionID = "metrics"
)

// Section is one form step and the fields it collects.
type Section struct {
	ID     SectionID `json:"id" yaml:"id"`
	Title  string    `json:"title" yaml:"title"`
	Fields []string  `json:"fields" yaml:"fields"`
}

// Layout is the ordered list of form steps. Step numbers used by clients are
// indexes into the layout.
type Layout []Section

// Clone returns a deep copy of the layout.
func (l Layout) Clone() Layout {
	if l == nil {
		return nil
	}
	out := make(Layout, len(l))
	for i, s := range l {
		out[i] = s.clone()
	}
	return out
}

func (s Section) clone() Section {
	s.Fields = slices.Clone(s.Fields)
	return s
}

// DefaultLayout returns the form layout with the optional document upload step first.
func DefaultLayout() Layout {
	return Layout{
		{ID: SectionUpload, Title: "Supporting Documents", Fields: []string{
			assessment.FieldUploadedDocuments,
		}},
		{ID: SectionCompany, Title: "Company Information", Fields: []string{
			assessment.FieldCompanyName, assessment.FieldLocation, assessment.FieldEmployeeCount,
			assessment.FieldAnnualRevenue, assessment.FieldContactName, assessment.FieldContactEmail,
			assessment.FieldContactPhone,
		}},
		{ID: SectionCertifications, Title: "Certifications & Standards", Fields: []string{
			assessment.FieldCertifications, assessment.FieldAS9100Rev, assessment.FieldArgusLevel,
			assessment.FieldISBAOStage, assessment.FieldWyvernLevel,
		}},
		{ID: SectionAircraft, Title: "Aircraft & Services", Fields: []string{
			assessment.FieldAircraftCategories, assessment.FieldSpecificAircraftTypes,
			assessment.FieldServicesOffered, assessment.FieldMechanicCount,
			assessment.FieldHangarCapabilities, assessment.FieldOEMAuthorizations,
			assessment.FieldSpecialCapabilities,
		}},
		{ID: SectionSoftware, Title: "Software & Process", Fields: []string{
			assessment.FieldMaintenanceTrackingSoftware, assessment.FieldSoftwareSatisfaction,
			assessment.FieldHasDefinedProcess, assessment.FieldProcessDocumented,
			assessment.FieldProcessFollowed, assessment.FieldProcessEffectiveness,
		}},
		{ID: SectionParts, Title: "Parts & Inventory", Fields: []string{
			assessment.FieldPartsInventoryMethod, assessment.FieldPartsTrackingSystem,
			assessment.FieldInventoryAccuracy, assessment.FieldShelfLifeTracking,
		}},
		{ID: SectionQuality, Title: "Quality & Tool Control", Fields: []string{
			assessment.FieldQualityMethodologies, assessment.FieldContinuousImprovementActive,
			assessment.FieldToolControlMethod, assessment.FieldToolControlDescription,
			assessment.FieldToolControlErrors, assessment.FieldToolControlErrorFrequency,
		}},
		{ID: SectionSMS, Title: "Safety Management System", Fields: []string{
			assessment.FieldHasSMS, assessment.FieldSMSProgram, assessment.FieldSMSMaturity,
			assessment.FieldChallenges,
		}},
		{ID: SectionTraining, Title: "Training & Competency", Fields: []string{
			assessment.FieldTrainingProgramType, assessment.FieldTrainingTracking,
			assessment.FieldInitialTrainingDuration, assessment.FieldRecurrentTrainingFrequency,
			assessment.FieldCompetencyVerification, assessment.FieldTimeToCompetency,
		}},
		{ID: SectionCalibration, Title: "Calibration", Fields: []string{
			assessment.FieldCalibrationProgram, assessment.FieldCalibrationTracking,
			assessment.FieldOverdueCalibrations, assessment.FieldOutOfToleranceFrequency,
			assessment.FieldOutOfToleranceResponse,
		}},
		{ID: SectionCAPA, Title: "Corrective & Preventive Action", Fields: []string{
			assessment.FieldCAPASystemStatus, assessment.FieldDiscrepancyTracking,
			assessment.FieldCAPAClosureTime, assessment.FieldRepeatDiscrepancies,
			assessment.FieldCAPAAuthority,
		}},
		{ID: SectionRegulatory, Title: "Regulatory & Audit", Fields: []string{
			assessment.FieldLastFAASurveillance, assessment.FieldAuditSurveillance,
			assessment.FieldAuditFindingsCount, assessment.FieldFindingSeverity,
			assessment.FieldRecurringFindings, assessment.FieldFindingClosureStatus,
			assessment.FieldCertificateActions, assessment.FieldAuditHistory,
			assessment.FieldUpcomingAudits,
		}},
		{ID: SectionProduction, Title: "Production & Operations", Fields: []string{
			assessment.FieldWorkOrderSystem, assessment.FieldScheduleAdherence,
			assessment.FieldProductionBottlenecks, assessment.FieldWIPVisibility,
			assessment.FieldRoutineInspectionDays, assessment.FieldTypicalRepairDays,
			assessment.FieldMajorOverhaulDays, assessment.FieldCapacityUtilization,
			assessment.FieldProductionPlanning,
		}},
		{ID: SectionMetrics, Title: "Metrics & Financials", Fields: []string{
			assessment.FieldFirstPassRate, assessment.FieldWarrantyRate,
			assessment.FieldRepeatMaintenanceRate, assessment.FieldReworkRate,
			assessment.FieldJobMargin, assessment.FieldRevenuePerTech,
			assessment.FieldScrapReworkCost, assessment.FieldPartsWaitDays,
			assessment.FieldInspectionWaitHours, assessment.FieldApprovalTurnaroundDays,
			assessment.FieldTurnoverRate, assessment.FieldSpecificConcerns,
		}},
	}
}
