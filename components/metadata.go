package components

// DeathCause records why an organism died.
type DeathCause uint8

const (
	CauseNone DeathCause = iota
	CauseStarvation
	CauseOldAge
	CausePredation
)

// String returns the display name for a DeathCause.
func (c DeathCause) String() string {
	names := DeathCauseNames()
	if int(c) < len(names) {
		return names[c]
	}
	return "unknown"
}

// DeathCauseNames returns the display names for all death causes.
// The order matches the DeathCause constants.
func DeathCauseNames() []string {
	return []string{"none", "starvation", "old_age", "predation"}
}

// DeathCauseCount returns the number of death causes.
func DeathCauseCount() int {
	return len(DeathCauseNames())
}
