package vcard

// Options is the immutable configuration threaded through Fix, Normalize and
// NewGrouper. The original tool read a dozen process-wide flags at call
// time; this is the re-architected equivalent (see SPEC_FULL.md REDESIGN
// FLAGS).
type Options struct {
	// Grouper match attributes, e.g. []string{"names", "tel_!work", "email"}.
	MatchAttributes []string

	// Fuzzy matching (§4.5).
	NoMatchApprox              bool
	MatchApproxSameFirstLetter bool
	MatchApproxStartswith      bool
	MatchApproxMinLength       int
	MatchApproxMaxDistance     int // range is [-d, d)
	MatchApproxRatio           int

	UpdateGroupKey bool
	FrenchTweaks   bool

	DoNotForceEscapeCommas bool
	NoFixAndConvert        bool

	NoOverwriteNames            bool
	MoveNameParenthBracesToNote bool
	NoRemoveNameInEmail         bool

	// VCardExtension is driver-only: the file extension appended by the
	// filename sanitizer (§6.2).
	VCardExtension string
}

// DefaultOptions returns the option set the original tool used as its
// built-in defaults.
func DefaultOptions() Options {
	return Options{
		MatchAttributes:            []string{"names", "tel_!work", "email"},
		NoMatchApprox:              false,
		MatchApproxSameFirstLetter: true,
		MatchApproxStartswith:      false,
		MatchApproxMinLength:       5,
		MatchApproxMaxDistance:     3,
		MatchApproxRatio:           100,
		UpdateGroupKey:             true,
		FrenchTweaks:               false,
		DoNotForceEscapeCommas:     false,
		NoFixAndConvert:            false,
		NoOverwriteNames:           false,
		MoveNameParenthBracesToNote: false,
		NoRemoveNameInEmail:        false,
		VCardExtension:             ".vcard",
	}
}
