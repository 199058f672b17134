package qstate

// Presence is the bit flag collected by DecodeStateWithMeta.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Parameter appeared in the query string.
	PresenceWasNull                             // Parameter value was the null literal.
	PresenceDefaultApplied                      // Default value was applied (absent, undecodable or rejected).
)

// PresenceMap maps parameter names to Presence flags.
type PresenceMap map[string]Presence

// Decoded carries the decoded state along with presence metadata.
type Decoded struct {
	Values   *Values
	Presence PresenceMap
	// Fallbacks lists the values rejected by validators and replaced by
	// their defaults.
	Fallbacks Issues
}

// Seen reports whether name appeared in the query string.
func (d Decoded) Seen(name string) bool { return d.Presence[name]&PresenceSeen != 0 }

// DefaultApplied reports whether name holds its default value because the
// URL did not provide a usable one.
func (d Decoded) DefaultApplied(name string) bool {
	return d.Presence[name]&PresenceDefaultApplied != 0
}

func presenceOf(r Raw) Presence {
	switch r.Kind {
	case RawNull:
		return PresenceSeen | PresenceWasNull
	case RawString:
		return PresenceSeen
	default:
		return 0
	}
}
