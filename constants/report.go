package constants

// TestResult is the canonical outcome for rows in shrinkage_reports.
type TestResult string

// Stable values (store these exact strings in DB).
const (
	ResultPass TestResult = "Pass"
	ResultFail TestResult = "Fail"
)

// Shrinkage requirement presets offered by the control panel. A free-text
// custom requirement is also accepted.
const (
	RequirementASTCC = "ASTCC 135-15 = -50"
	RequirementISO   = "ISO 6330 - 50 Temp"
)

// Defaults applied when the corresponding form field is left blank.
const (
	DefaultTemp        = "+/- 3%"
	DefaultDescription = "ELASTIC"
)
