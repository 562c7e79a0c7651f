package globals

// Lead status IDs resolved from the lead_statuses table on startup.
// Populated by initializers.InitDefaults before any handler runs.
var (
	DefaultNewLeadStatusID int

	// LeadStatusIDByName maps a status name to its row ID.
	LeadStatusIDByName = map[string]int{}
	// LeadStatusNameByID is the reverse mapping used when rendering leads.
	LeadStatusNameByID = map[int]string{}
)

// Call lifecycle statuses. Stored as plain text with a CHECK constraint.
const (
	CallStatusScheduled = "scheduled"
	CallStatusCompleted = "completed"
	CallStatusMissed    = "missed"
	CallStatusCancelled = "cancelled"
)

// ValidCallStatus reports whether s is one of the known call statuses.
func ValidCallStatus(s string) bool {
	switch s {
	case CallStatusScheduled, CallStatusCompleted, CallStatusMissed, CallStatusCancelled:
		return true
	}
	return false
}
