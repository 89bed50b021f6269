package main

import (
	"os"

	vcard "github.com/mbideau/vcardtools"
	"gopkg.in/yaml.v2"
)

// cliOptions mirrors vcard.Options one-to-one plus the driver-only flags
// (§6.3, §4.8). Grounded in sqldef-sqldef/cmd/psqldef/psqldef.go's
// option-struct-with-tags idiom. Every flag that disables a core default
// that is "on" in vcard.DefaultOptions() is spelled as a "No*"-prefixed
// flag, so its go-flags zero value (false) reproduces that default without
// needing a `default` tag on a bool field.
type cliOptions struct {
	Group  bool   `long:"group" description:"Write grouped duplicates into per-group subdirectories"`
	Merge  bool   `long:"merge" description:"Merge each group of duplicates into a single record"`
	Config string `long:"config" description:"YAML file of default option values" value-name:"filename"`

	NoMatchApprox                bool     `long:"no-match-approx" description:"Disable fuzzy name matching"`
	MatchAttributes               []string `long:"match-attributes" description:"Attribute specs used for exact matching (repeatable)"`
	MatchApproxRatio              int      `long:"match-ratio" description:"Fuzzy match token-sort-ratio threshold" default:"100"`
	MatchApproxMinLength          int      `long:"match-min-length" description:"Minimum name length considered for fuzzy matching" default:"5"`
	MatchApproxMaxDistance        int      `long:"match-max-distance" description:"Maximum length-difference window for the startswith branch" default:"3"`
	NoMatchApproxSameFirstLetter  bool     `long:"no-match-same-first-letter" description:"Disable the same-first-letter constraint for fuzzy matching"`
	MatchApproxStartswith         bool     `long:"match-startswith" description:"Enable the prefix-match fuzzy branch"`

	NoUpdateGroupKey            bool   `long:"no-update-group-key" description:"Disable renaming a group when a more relevant member joins"`
	FrenchTweaks                bool   `long:"french-tweaks" description:"Enable French-locale name/phone normalization"`
	NoForceEscapeCommas         bool   `long:"no-force-escape-commas" description:"Disable automatic comma escaping during fixing"`
	NoFixAndConvert             bool   `long:"no-fix-and-convert" description:"Skip the loose-vCard fixer entirely"`
	NoOverwriteNames            bool   `long:"no-overwrite-names" description:"Do not replace existing FN/N values"`
	MoveNameParenthBracesToNote bool   `long:"move-name-parenth-braces-to-note" description:"Move bracketed name content into NOTE"`
	NoRemoveNameInEmail         bool   `long:"no-remove-name-in-email" description:"Keep \"display\" <addr> form of EMAIL values"`
	VCardExtension              string `long:"vcard-extension" description:"Output file extension" default:".vcard"`

	Verbose []bool `short:"v" long:"verbose" description:"Increase log verbosity"`

	Args struct {
		Destination string   `positional-arg-name:"destination" description:"Output directory (must not already exist)"`
		Sources     []string `positional-arg-name:"sources" description:"Source .vcf/.vcard files"`
	} `positional-args:"yes" required:"yes"`
}

// yamlOptions is the subset of cliOptions loadable from a --config file,
// using field names matching the flag long names.
type yamlOptions struct {
	Group                        *bool     `yaml:"group"`
	Merge                        *bool     `yaml:"merge"`
	NoMatchApprox                *bool     `yaml:"no_match_approx"`
	MatchAttributes              *[]string `yaml:"match_attributes"`
	MatchApproxRatio             *int      `yaml:"match_ratio"`
	MatchApproxMinLength         *int      `yaml:"match_min_length"`
	MatchApproxMaxDistance       *int      `yaml:"match_max_distance"`
	NoMatchApproxSameFirstLetter *bool     `yaml:"no_match_same_first_letter"`
	MatchApproxStartswith        *bool     `yaml:"match_startswith"`
	NoUpdateGroupKey             *bool     `yaml:"no_update_group_key"`
	FrenchTweaks                 *bool     `yaml:"french_tweaks"`
	NoForceEscapeCommas          *bool     `yaml:"no_force_escape_commas"`
	NoFixAndConvert              *bool     `yaml:"no_fix_and_convert"`
	NoOverwriteNames             *bool     `yaml:"no_overwrite_names"`
	MoveNameParenthBracesToNote  *bool     `yaml:"move_name_parenth_braces_to_note"`
	NoRemoveNameInEmail          *bool     `yaml:"no_remove_name_in_email"`
	VCardExtension               *string   `yaml:"vcard_extension"`
}

// loadConfigDefaults reads a YAML config file and overlays its values onto
// opts: every field the file sets replaces the value in opts, including a
// value given explicitly on the command line; fields the file leaves out are
// kept as they are.
func loadConfigDefaults(path string, opts *cliOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var y yamlOptions
	if err := yaml.Unmarshal(data, &y); err != nil {
		return err
	}

	if y.Group != nil {
		opts.Group = *y.Group
	}
	if y.Merge != nil {
		opts.Merge = *y.Merge
	}
	if y.NoMatchApprox != nil {
		opts.NoMatchApprox = *y.NoMatchApprox
	}
	if y.MatchAttributes != nil {
		opts.MatchAttributes = *y.MatchAttributes
	}
	if y.MatchApproxRatio != nil {
		opts.MatchApproxRatio = *y.MatchApproxRatio
	}
	if y.MatchApproxMinLength != nil {
		opts.MatchApproxMinLength = *y.MatchApproxMinLength
	}
	if y.MatchApproxMaxDistance != nil {
		opts.MatchApproxMaxDistance = *y.MatchApproxMaxDistance
	}
	if y.NoMatchApproxSameFirstLetter != nil {
		opts.NoMatchApproxSameFirstLetter = *y.NoMatchApproxSameFirstLetter
	}
	if y.MatchApproxStartswith != nil {
		opts.MatchApproxStartswith = *y.MatchApproxStartswith
	}
	if y.NoUpdateGroupKey != nil {
		opts.NoUpdateGroupKey = *y.NoUpdateGroupKey
	}
	if y.FrenchTweaks != nil {
		opts.FrenchTweaks = *y.FrenchTweaks
	}
	if y.NoForceEscapeCommas != nil {
		opts.NoForceEscapeCommas = *y.NoForceEscapeCommas
	}
	if y.NoFixAndConvert != nil {
		opts.NoFixAndConvert = *y.NoFixAndConvert
	}
	if y.NoOverwriteNames != nil {
		opts.NoOverwriteNames = *y.NoOverwriteNames
	}
	if y.MoveNameParenthBracesToNote != nil {
		opts.MoveNameParenthBracesToNote = *y.MoveNameParenthBracesToNote
	}
	if y.NoRemoveNameInEmail != nil {
		opts.NoRemoveNameInEmail = *y.NoRemoveNameInEmail
	}
	if y.VCardExtension != nil {
		opts.VCardExtension = *y.VCardExtension
	}
	return nil
}

// toVCardOptions projects the CLI option set onto the core vcard.Options,
// un-negating the "No*" disabling flags back into the positive fields the
// core package expects.
func (o cliOptions) toVCardOptions() vcard.Options {
	return vcard.Options{
		MatchAttributes:             o.MatchAttributes,
		NoMatchApprox:               o.NoMatchApprox,
		MatchApproxSameFirstLetter:  !o.NoMatchApproxSameFirstLetter,
		MatchApproxStartswith:       o.MatchApproxStartswith,
		MatchApproxMinLength:        o.MatchApproxMinLength,
		MatchApproxMaxDistance:      o.MatchApproxMaxDistance,
		MatchApproxRatio:            o.MatchApproxRatio,
		UpdateGroupKey:              !o.NoUpdateGroupKey,
		FrenchTweaks:                o.FrenchTweaks,
		DoNotForceEscapeCommas:      o.NoForceEscapeCommas,
		NoFixAndConvert:             o.NoFixAndConvert,
		NoOverwriteNames:            o.NoOverwriteNames,
		MoveNameParenthBracesToNote: o.MoveNameParenthBracesToNote,
		NoRemoveNameInEmail:         o.NoRemoveNameInEmail,
		VCardExtension:              o.VCardExtension,
	}
}
