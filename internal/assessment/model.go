package assessment

// UploadedDocument references a supporting document attached to an assessment.
type UploadedDocument struct {
	StorageKey string `json:"storageKey" yaml:"storageKey"`
	FileName   string `json:"fileName" yaml:"fileName"`
}

// Data is the self-assessment record collected by the multi-step form.
// Every field is optional; an empty value means the question was not answered,
// which is distinct from an explicit "None" selection.
type Data struct {
	// Company information
	CompanyName   string `json:"companyName,omitempty" yaml:"companyName,omitempty"`
	Location      string `json:"location,omitempty" yaml:"location,omitempty"`
	EmployeeCount string `json:"employeeCount,omitempty" yaml:"employeeCount,omitempty"`
	AnnualRevenue string `json:"annualRevenue,omitempty" yaml:"annualRevenue,omitempty"`
	ContactName   string `json:"contactName,omitempty" yaml:"contactName,omitempty"`
	ContactEmail  string `json:"contactEmail,omitempty" yaml:"contactEmail,omitempty"`
	ContactPhone  string `json:"contactPhone,omitempty" yaml:"contactPhone,omitempty"`

	// Certifications and standards
	Certifications []string `json:"certifications,omitempty" yaml:"certifications,omitempty"`
	AS9100Rev      string   `json:"as9100Rev,omitempty" yaml:"as9100Rev,omitempty"`
	ArgusLevel     string   `json:"argusLevel,omitempty" yaml:"argusLevel,omitempty"`
	ISBAOStage     string   `json:"isbaoStage,omitempty" yaml:"isbaoStage,omitempty"`
	WyvernLevel    string   `json:"wyvernLevel,omitempty" yaml:"wyvernLevel,omitempty"`

	// Aircraft and services
	AircraftCategories    []string `json:"aircraftCategories,omitempty" yaml:"aircraftCategories,omitempty"`
	SpecificAircraftTypes string   `json:"specificAircraftTypes,omitempty" yaml:"specificAircraftTypes,omitempty"`
	ServicesOffered       []string `json:"servicesOffered,omitempty" yaml:"servicesOffered,omitempty"`
	MechanicCount         string   `json:"mechanicCount,omitempty" yaml:"mechanicCount,omitempty"`
	HangarCapabilities    string   `json:"hangarCapabilities,omitempty" yaml:"hangarCapabilities,omitempty"`
	OEMAuthorizations     []string `json:"oemAuthorizations,omitempty" yaml:"oemAuthorizations,omitempty"`
	SpecialCapabilities   []string `json:"specialCapabilities,omitempty" yaml:"specialCapabilities,omitempty"`

	// Software and process management
	MaintenanceTrackingSoftware []string `json:"maintenanceTrackingSoftware,omitempty" yaml:"maintenanceTrackingSoftware,omitempty"`
	SoftwareSatisfaction        string   `json:"softwareSatisfaction,omitempty" yaml:"softwareSatisfaction,omitempty"`
	HasDefinedProcess           string   `json:"hasDefinedProcess,omitempty" yaml:"hasDefinedProcess,omitempty"`
	ProcessDocumented           string   `json:"processDocumented,omitempty" yaml:"processDocumented,omitempty"`
	ProcessFollowed             string   `json:"processFollowed,omitempty" yaml:"processFollowed,omitempty"`
	ProcessEffectiveness        string   `json:"processEffectiveness,omitempty" yaml:"processEffectiveness,omitempty"`

	// Parts and inventory
	PartsInventoryMethod string `json:"partsInventoryMethod,omitempty" yaml:"partsInventoryMethod,omitempty"`
	PartsTrackingSystem  string `json:"partsTrackingSystem,omitempty" yaml:"partsTrackingSystem,omitempty"`
	InventoryAccuracy    string `json:"inventoryAccuracy,omitempty" yaml:"inventoryAccuracy,omitempty"`
	ShelfLifeTracking    string `json:"shelfLifeTracking,omitempty" yaml:"shelfLifeTracking,omitempty"`

	// Quality systems and tool control
	QualityMethodologies        []string `json:"qualityMethodologies,omitempty" yaml:"qualityMethodologies,omitempty"`
	ContinuousImprovementActive string   `json:"continuousImprovementActive,omitempty" yaml:"continuousImprovementActive,omitempty"`
	ToolControlMethod           string   `json:"toolControlMethod,omitempty" yaml:"toolControlMethod,omitempty"`
	ToolControlDescription      string   `json:"toolControlDescription,omitempty" yaml:"toolControlDescription,omitempty"`
	ToolControlErrors           string   `json:"toolControlErrors,omitempty" yaml:"toolControlErrors,omitempty"`
	ToolControlErrorFrequency   string   `json:"toolControlErrorFrequency,omitempty" yaml:"toolControlErrorFrequency,omitempty"`

	// Safety management system
	HasSMS      string   `json:"hasSMS,omitempty" yaml:"hasSMS,omitempty"`
	SMSProgram  string   `json:"smsProgram,omitempty" yaml:"smsProgram,omitempty"`
	SMSMaturity string   `json:"smsMaturity,omitempty" yaml:"smsMaturity,omitempty"`
	Challenges  []string `json:"challenges,omitempty" yaml:"challenges,omitempty"`

	// Training
	TrainingPrograms           []string `json:"trainingPrograms,omitempty" yaml:"trainingPrograms,omitempty"`
	TrainingProgramType        string   `json:"trainingProgramType,omitempty" yaml:"trainingProgramType,omitempty"`
	TrainingTracking           string   `json:"trainingTracking,omitempty" yaml:"trainingTracking,omitempty"`
	InitialTrainingDuration    string   `json:"initialTrainingDuration,omitempty" yaml:"initialTrainingDuration,omitempty"`
	RecurrentTrainingFrequency string   `json:"recurrentTrainingFrequency,omitempty" yaml:"recurrentTrainingFrequency,omitempty"`
	CompetencyVerification     string   `json:"competencyVerification,omitempty" yaml:"competencyVerification,omitempty"`
	TimeToCompetency           string   `json:"timeToCompetency,omitempty" yaml:"timeToCompetency,omitempty"`

	// Calibration
	CalibrationProgram      string `json:"calibrationProgram,omitempty" yaml:"calibrationProgram,omitempty"`
	CalibrationTracking     string `json:"calibrationTracking,omitempty" yaml:"calibrationTracking,omitempty"`
	OverdueCalibrations     string `json:"overdueCalibrations,omitempty" yaml:"overdueCalibrations,omitempty"`
	OutOfToleranceFrequency string `json:"outOfToleranceFrequency,omitempty" yaml:"outOfToleranceFrequency,omitempty"`
	OutOfToleranceResponse  string `json:"outOfToleranceResponse,omitempty" yaml:"outOfToleranceResponse,omitempty"`

	// Corrective and preventive action
	CAPASystemStatus    string `json:"capaSystemStatus,omitempty" yaml:"capaSystemStatus,omitempty"`
	DiscrepancyTracking string `json:"discrepancyTracking,omitempty" yaml:"discrepancyTracking,omitempty"`
	CAPAClosureTime     string `json:"capaClosureTime,omitempty" yaml:"capaClosureTime,omitempty"`
	RepeatDiscrepancies string `json:"repeatDiscrepancies,omitempty" yaml:"repeatDiscrepancies,omitempty"`
	CAPAAuthority       string `json:"capaAuthority,omitempty" yaml:"capaAuthority,omitempty"`

	// Regulatory and audit
	LastFAASurveillance  string            `json:"lastFAASurveillance,omitempty" yaml:"lastFAASurveillance,omitempty"`
	AuditSurveillance    map[string]string `json:"auditSurveillance,omitempty" yaml:"auditSurveillance,omitempty"`
	AuditFindingsCount   string            `json:"auditFindingsCount,omitempty" yaml:"auditFindingsCount,omitempty"`
	FindingSeverity      string            `json:"findingSeverity,omitempty" yaml:"findingSeverity,omitempty"`
	RecurringFindings    string            `json:"recurringFindings,omitempty" yaml:"recurringFindings,omitempty"`
	FindingClosureStatus string            `json:"findingClosureStatus,omitempty" yaml:"findingClosureStatus,omitempty"`
	CertificateActions   []string          `json:"certificateActions,omitempty" yaml:"certificateActions,omitempty"`
	AuditHistory         string            `json:"auditHistory,omitempty" yaml:"auditHistory,omitempty"`
	UpcomingAudits       string            `json:"upcomingAudits,omitempty" yaml:"upcomingAudits,omitempty"`

	// Production and operations
	WorkOrderSystem       string   `json:"workOrderSystem,omitempty" yaml:"workOrderSystem,omitempty"`
	ScheduleAdherence     string   `json:"scheduleAdherence,omitempty" yaml:"scheduleAdherence,omitempty"`
	ProductionBottlenecks []string `json:"productionBottlenecks,omitempty" yaml:"productionBottlenecks,omitempty"`
	WIPVisibility         string   `json:"wipVisibility,omitempty" yaml:"wipVisibility,omitempty"`
	RoutineInspectionDays string   `json:"routineInspectionDays,omitempty" yaml:"routineInspectionDays,omitempty"`
	TypicalRepairDays     string   `json:"typicalRepairDays,omitempty" yaml:"typicalRepairDays,omitempty"`
	MajorOverhaulDays     string   `json:"majorOverhaulDays,omitempty" yaml:"majorOverhaulDays,omitempty"`
	CapacityUtilization   string   `json:"capacityUtilization,omitempty" yaml:"capacityUtilization,omitempty"`
	ProductionPlanning    string   `json:"productionPlanning,omitempty" yaml:"productionPlanning,omitempty"`

	// Quality metrics, financials and wait times
	FirstPassRate          string `json:"firstPassRate,omitempty" yaml:"firstPassRate,omitempty"`
	WarrantyRate           string `json:"warrantyRate,omitempty" yaml:"warrantyRate,omitempty"`
	RepeatMaintenanceRate  string `json:"repeatMaintenanceRate,omitempty" yaml:"repeatMaintenanceRate,omitempty"`
	ReworkRate             string `json:"reworkRate,omitempty" yaml:"reworkRate,omitempty"`
	JobMargin              string `json:"jobMargin,omitempty" yaml:"jobMargin,omitempty"`
	RevenuePerTech         string `json:"revenuePerTech,omitempty" yaml:"revenuePerTech,omitempty"`
	ScrapReworkCost        string `json:"scrapReworkCost,omitempty" yaml:"scrapReworkCost,omitempty"`
	PartsWaitDays          string `json:"partsWaitDays,omitempty" yaml:"partsWaitDays,omitempty"`
	InspectionWaitHours    string `json:"inspectionWaitHours,omitempty" yaml:"inspectionWaitHours,omitempty"`
	ApprovalTurnaroundDays string `json:"approvalTurnaroundDays,omitempty" yaml:"approvalTurnaroundDays,omitempty"`
	TurnoverRate           string `json:"turnoverRate,omitempty" yaml:"turnoverRate,omitempty"`
	SpecificConcerns       string `json:"specificConcerns,omitempty" yaml:"specificConcerns,omitempty"`

	UploadedDocuments []UploadedDocument `json:"uploadedDocuments,omitempty" yaml:"uploadedDocuments,omitempty"`
}

// SelectedCertifications returns the chosen certifications without the "None" marker.
func (d Data) SelectedCertifications() []string {
	out := make([]string, 0, len(d.Certifications))
	for _, c := range d.Certifications {
		if c == "" || c == CertNone {
			continue
		}
		out = append(out, c)
	}
	return out
}

// HasCertification reports whether name is among the selected certifications.
func (d Data) HasCertification(name string) bool {
	for _, c := range d.SelectedCertifications() {
		if c == name {
			return true
		}
	}
	return false
}
