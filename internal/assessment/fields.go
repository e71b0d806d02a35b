package assessment

// Field names as they appear on the wire.
const (
	FieldCompanyName   = "companyName"
	FieldLocation      = "location"
	FieldEmployeeCount = "employeeCount"
	FieldAnnualRevenue = "annualRevenue"
	FieldContactName   = "contactName"
	FieldContactEmail  = "contactEmail"
	FieldContactPhone  = "contactPhone"

	FieldCertifications = "certifications"
	FieldAS9100Rev      = "as9100Rev"
	FieldArgusLevel     = "argusLevel"
	FieldISBAOStage     = "isbaoStage"
	FieldWyvernLevel    = "wyvernLevel"

	FieldAircraftCategories    = "aircraftCategories"
	FieldSpecificAircraftTypes = "specificAircraftTypes"
	FieldServicesOffered       = "servicesOffered"
	FieldMechanicCount         = "mechanicCount"
	FieldHangarCapabilities    = "hangarCapabilities"
	FieldOEMAuthorizations     = "oemAuthorizations"
	FieldSpecialCapabilities   = "specialCapabilities"

	FieldMaintenanceTrackingSoftware = "maintenanceTrackingSoftware"
	FieldSoftwareSatisfaction        = "softwareSatisfaction"
	FieldHasDefinedProcess           = "hasDefinedProcess"
	FieldProcessDocumented           = "processDocumented"
	FieldProcessFollowed             = "processFollowed"
	FieldProcessEffectiveness        = "processEffectiveness"

	FieldPartsInventoryMethod = "partsInventoryMethod"
	FieldPartsTrackingSystem  = "partsTrackingSystem"
	FieldInventoryAccuracy    = "inventoryAccuracy"
	FieldShelfLifeTracking    = "shelfLifeTracking"

	FieldQualityMethodologies        = "qualityMethodologies"
	FieldContinuousImprovementActive = "continuousImprovementActive"
	FieldToolControlMethod           = "toolControlMethod"
	FieldToolControlDescription      = "toolControlDescription"
	FieldToolControlErrors           = "toolControlErrors"
	FieldToolControlErrorFrequency   = "toolControlErrorFrequency"

	FieldHasSMS      = "hasSMS"
	FieldSMSProgram  = "smsProgram"
	FieldSMSMaturity = "smsMaturity"
	FieldChallenges  = "challenges"

	FieldTrainingPrograms           = "trainingPrograms"
	FieldTrainingProgramType        = "trainingProgramType"
	FieldTrainingTracking           = "trainingTracking"
	FieldInitialTrainingDuration    = "initialTrainingDuration"
	FieldRecurrentTrainingFrequency = "recurrentTrainingFrequency"
	FieldCompetencyVerification     = "competencyVerification"
	FieldTimeToCompetency           = "timeToCompetency"

	FieldCalibrationProgram      = "calibrationProgram"
	FieldCalibrationTracking     = "calibrationTracking"
	FieldOverdueCalibrations     = "overdueCalibrations"
	FieldOutOfToleranceFrequency = "outOfToleranceFrequency"
	FieldOutOfToleranceResponse  = "outOfToleranceResponse"

	FieldCAPASystemStatus    = "capaSystemStatus"
	FieldDiscrepancyTracking = "discrepancyTracking"
	FieldCAPAClosureTime     = "capaClosureTime"
	FieldRepeatDiscrepancies = "repeatDiscrepancies"
	FieldCAPAAuthority       = "capaAuthority"

	FieldLastFAASurveillance  = "lastFAASurveillance"
	FieldAuditSurveillance    = "auditSurveillance"
	FieldAuditFindingsCount   = "auditFindingsCount"
	FieldFindingSeverity      = "findingSeverity"
	FieldRecurringFindings    = "recurringFindings"
	FieldFindingClosureStatus = "findingClosureStatus"
	FieldCertificateActions   = "certificateActions"
	FieldAuditHistory         = "auditHistory"
	FieldUpcomingAudits       = "upcomingAudits"

	FieldWorkOrderSystem       = "workOrderSystem"
	FieldScheduleAdherence     = "scheduleAdherence"
	FieldProductionBottlenecks = "productionBottlenecks"
	FieldWIPVisibility         = "wipVisibility"
	FieldRoutineInspectionDays = "routineInspectionDays"
	FieldTypicalRepairDays     = "typicalRepairDays"
	FieldMajorOverhaulDays     = "majorOverhaulDays"
	FieldCapacityUtilization   = "capacityUtilization"
	FieldProductionPlanning    = "productionPlanning"

	FieldFirstPassRate          = "firstPassRate"
	FieldWarrantyRate           = "warrantyRate"
	FieldRepeatMaintenanceRate  = "repeatMaintenanceRate"
	FieldReworkRate             = "reworkRate"
	FieldJobMargin              = "jobMargin"
	FieldRevenuePerTech         = "revenuePerTech"
	FieldScrapReworkCost        = "scrapReworkCost"
	FieldPartsWaitDays          = "partsWaitDays"
	FieldInspectionWaitHours    = "inspectionWaitHours"
	FieldApprovalTurnaroundDays = "approvalTurnaroundDays"
	FieldTurnoverRate           = "turnoverRate"
	FieldSpecificConcerns       = "specificConcerns"

	FieldUploadedDocuments = "uploadedDocuments"
)

// Field returns the value stored under the wire name. The second result is
// false for names that are not part of the record.
func (d Data) Field(name string) (any, bool) {
	switch name {
	case FieldCompanyName:
		return d.CompanyName, true
	case FieldLocation:
		return d.Location, true
	case FieldEmployeeCount:
		return d.EmployeeCount, true
	case FieldAnnualRevenue:
		return d.AnnualRevenue, true
	case FieldContactName:
		return d.ContactName, true
	case FieldContactEmail:
		return d.ContactEmail, true
	case FieldContactPhone:
		return d.ContactPhone, true
	case FieldCertifications:
		return d.Certifications, true
	case FieldAS9100Rev:
		return d.AS9100Rev, true
	case FieldArgusLevel:
		return d.ArgusLevel, true
	case FieldISBAOStage:
		return d.ISBAOStage, true
	case FieldWyvernLevel:
		return d.WyvernLevel, true
	case FieldAircraftCategories:
		return d.AircraftCategories, true
	case FieldSpecificAircraftTypes:
		return d.SpecificAircraftTypes, true
	case FieldServicesOffered:
		return d.ServicesOffered, true
	case FieldMechanicCount:
		return d.MechanicCount, true
	case FieldHangarCapabilities:
		return d.HangarCapabilities, true
	case FieldOEMAuthorizations:
		return d.OEMAuthorizations, true
	case FieldSpecialCapabilities:
		return d.SpecialCapabilities, true
	case FieldMaintenanceTrackingSoftware:
		return d.MaintenanceTrackingSoftware, true
	case FieldSoftwareSatisfaction:
		return d.SoftwareSatisfaction, true
	case FieldHasDefinedProcess:
		return d.HasDefinedProcess, true
	case FieldProcessDocumented:
		return d.ProcessDocumented, true
	case FieldProcessFollowed:
		return d.ProcessFollowed, true
	case FieldProcessEffectiveness:
		return d.ProcessEffectiveness, true
	case FieldPartsInventoryMethod:
		return d.PartsInventoryMethod, true
	case FieldPartsTrackingSystem:
		return d.PartsTrackingSystem, true
	case FieldInventoryAccuracy:
		return d.InventoryAccuracy, true
	case FieldShelfLifeTracking:
		return d.ShelfLifeTracking, true
	case FieldQualityMethodologies:
		return d.QualityMethodologies, true
	case FieldContinuousImprovementActive:
		return d.ContinuousImprovementActive, true
	case FieldToolControlMethod:
		return d.ToolControlMethod, true
	case FieldToolControlDescription:
		return d.ToolControlDescription, true
	case FieldToolControlErrors:
		return d.ToolControlErrors, true
	case FieldToolControlErrorFrequency:
		return d.ToolControlErrorFrequency, true
	case FieldHasSMS:
		return d.HasSMS, true
	case FieldSMSProgram:
		return d.SMSProgram, true
	case FieldSMSMaturity:
		return d.SMSMaturity, true
	case FieldChallenges:
		return d.Challenges, true
	case FieldTrainingPrograms:
		return d.TrainingPrograms, true
	case FieldTrainingProgramType:
		return d.TrainingProgramType, true
	case FieldTrainingTracking:
		return d.TrainingTracking, true
	case FieldInitialTrainingDuration:
		return d.InitialTrainingDuration, true
	case FieldRecurrentTrainingFrequency:
		return d.RecurrentTrainingFrequency, true
	case FieldCompetencyVerification:
		return d.CompetencyVerification, true
	case FieldTimeToCompetency:
		return d.TimeToCompetency, true
	case FieldCalibrationProgram:
		return d.CalibrationProgram, true
	case FieldCalibrationTracking:
		return d.CalibrationTracking, true
	case FieldOverdueCalibrations:
		return d.OverdueCalibrations, true
	case FieldOutOfToleranceFrequency:
		return d.OutOfToleranceFrequency, true
	case FieldOutOfToleranceResponse:
		return d.OutOfToleranceResponse, true
	case FieldCAPASystemStatus:
		return d.CAPASystemStatus, true
	case FieldDiscrepancyTracking:
		return d.DiscrepancyTracking, true
	case FieldCAPAClosureTime:
		return d.CAPAClosureTime, true
	case FieldRepeatDiscrepancies:
		return d.RepeatDiscrepancies, true
	case FieldCAPAAuthority:
		return d.CAPAAuthority, true
	case FieldLastFAASurveillance:
		return d.LastFAASurveillance, true
	case FieldAuditSurveillance:
		return d.AuditSurveillance, true
	case FieldAuditFindingsCount:
		return d.AuditFindingsCount, true
	case FieldFindingSeverity:
		return d.FindingSeverity, true
	case FieldRecurringFindings:
		return d.RecurringFindings, true
	case FieldFindingClosureStatus:
		return d.FindingClosureStatus, true
	case FieldCertificateActions:
		return d.CertificateActions, true
	case FieldAuditHistory:
		return d.AuditHistory, true
	case FieldUpcomingAudits:
		return d.UpcomingAudits, true
	case FieldWorkOrderSystem:
		return d.WorkOrderSystem, true
	case FieldScheduleAdherence:
		return d.ScheduleAdherence, true
	case FieldProductionBottlenecks:
		return d.ProductionBottlenecks, true
	case FieldWIPVisibility:
		return d.WIPVisibility, true
	case FieldRoutineInspectionDays:
		return d.RoutineInspectionDays, true
	case FieldTypicalRepairDays:
		return d.TypicalRepairDays, true
	case FieldMajorOverhaulDays:
		return d.MajorOverhaulDays, true
	case FieldCapacityUtilization:
		return d.CapacityUtilization, true
	case FieldProductionPlanning:
		return d.ProductionPlanning, true
	case FieldFirstPassRate:
		return d.FirstPassRate, true
	case FieldWarrantyRate:
		return d.WarrantyRate, true
	case FieldRepeatMaintenanceRate:
		return d.RepeatMaintenanceRate, true
	case FieldReworkRate:
		return d.ReworkRate, true
	case FieldJobMargin:
		return d.JobMargin, true
	case FieldRevenuePerTech:
		return d.RevenuePerTech, true
	case FieldScrapReworkCost:
		return d.ScrapReworkCost, true
	case FieldPartsWaitDays:
		return d.PartsWaitDays, true
	case FieldInspectionWaitHours:
		return d.InspectionWaitHours, true
	case FieldApprovalTurnaroundDays:
		return d.ApprovalTurnaroundDays, true
	case FieldTurnoverRate:
		return d.TurnoverRate, true
	case FieldSpecificConcerns:
		return d.SpecificConcerns, true
	case FieldUploadedDocuments:
		return d.UploadedDocuments, true
	default:
		return nil, false
	}
}
