package vcard

import (
	"errors"
	"fmt"
)

// Signifies any error from vCard library
var ErrVCard = errors.New("vCard")

// Signifies decoding was unsuccessful because of the syntax of the vCard document and not
// more significant errors.
var ErrParsing = fmt.Errorf("%w: parsing error in Parse", ErrVCard)

// Signifies decoding was successful but there are more tokens left.
// No function in this package currently returns it.
var ErrLeftoverTokens = fmt.Errorf("%w: leftover tokens", ErrParsing)

// ErrMalformedInput signifies Parse refused the text produced by the fixer for one record.
var ErrMalformedInput = fmt.Errorf("%w: malformed input", ErrParsing)

// ErrInvalidPlaceholderEmail signifies a name was built from a Thunderbird
// "nowhere.invalid" placeholder address. Locally recoverable: callers fall
// back to other candidate name sources.
var ErrInvalidPlaceholderEmail = fmt.Errorf("%w: invalid placeholder email", ErrVCard)

// ErrEmptyCandidateList signifies SelectMostRelevantName was invoked with no
// non-empty candidates.
var ErrEmptyCandidateList = fmt.Errorf("%w: empty candidate name list", ErrVCard)

// ErrUndecodedValue signifies the selected name contains '=', suggesting
// un-decoded quoted-printable content.
var ErrUndecodedValue = fmt.Errorf("%w: undecoded value in selected name", ErrVCard)

// ErrGroupKeyCollision signifies an attempt to create a group whose key
// already exists in the group table. Indicates a logic bug in the grouper.
var ErrGroupKeyCollision = fmt.Errorf("%w: group key collision", ErrVCard)

// ErrOutputExists signifies a target output path already exists.
var ErrOutputExists = fmt.Errorf("%w: output path already exists", ErrVCard)

// ErrTypeMismatch signifies an internal contract violation, such as an ORG
// value that is not a list where one was expected.
var ErrTypeMismatch = fmt.Errorf("%w: type mismatch", ErrVCard)

// vCardErrf wraps a formatted error under ErrVCard, in the teacher
// library's error-construction style.
func vCardErrf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrVCard}, args...)...)
}
