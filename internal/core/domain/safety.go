package domain

// SafetyLevel is the single campus-wide alert scalar broadcast to all views.
type SafetyLevel string

const (
	SafetyNormal  SafetyLevel = "normal"
	SafetyCaution SafetyLevel = "caution"
	SafetyAlert   SafetyLevel = "alert"
)

// ParseSafetyLevel validates a stored or submitted level. Unknown values
// report ok=false so callers can fall back to SafetyNormal.
func ParseSafetyLevel(raw string) (SafetyLevel, bool) {
	switch SafetyLevel(raw) {
	case SafetyNormal, SafetyCaution, SafetyAlert:
		return SafetyLevel(raw), true
	}
	return SafetyNormal, false
}
