package cvejson

import "strings"

type Severity string

const (
	SeverityUnknown  Severity = "UNKNOWN"
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

func (s Severity) String() string {
	return string(s)
}

// Rank orders severities for comparison (LOW=1 .. CRITICAL=4, UNKNOWN=0).
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// ParseSeverity normalizes a CVSS baseSeverity string. Unrecognized
// values map to UNKNOWN, never an error.
func ParseSeverity(s string) Severity {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return SeverityLow
	case "MEDIUM", "MODERATE":
		return SeverityMedium
	case "HIGH":
		return SeverityHigh
	case "CRITICAL":
		return SeverityCritical
	default:
		return SeverityUnknown
	}
}

type AttackVector string

const (
	VectorUnknown  AttackVector = "UNKNOWN"
	VectorNetwork  AttackVector = "NETWORK"
	VectorAdjacent AttackVector = "ADJACENT_NETWORK"
	VectorLocal    AttackVector = "LOCAL"
	VectorPhysical AttackVector = "PHYSICAL"
)

func (v AttackVector) String() string {
	return string(v)
}

// ParseAttackVector normalizes a CVSS attackVector/accessVector string.
// CVSS v4 shortens ADJACENT_NETWORK to ADJACENT; both map to the same
// value. Unrecognized strings map to UNKNOWN.
func ParseAttackVector(s string) AttackVector {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NETWORK":
		return VectorNetwork
	case "ADJACENT_NETWORK", "ADJACENT":
		return VectorAdjacent
	case "LOCAL":
		return VectorLocal
	case "PHYSICAL":
		return VectorPhysical
	default:
		return VectorUnknown
	}
}
