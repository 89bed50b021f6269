package vcard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixUppercasesBeginEnd(t *testing.T) {
	out := Fix([]byte("begin:vcard\r\nFN:A\r\nend:vcard\r\n"), DefaultOptions())
	require.Contains(t, out, "BEGIN:VCARD")
	require.Contains(t, out, "END:VCARD")
}

func TestFixEscapesUnescapedCommas(t *testing.T) {
	out := Fix([]byte("BEGIN:VCARD\r\nNOTE:a,b\r\nEND:VCARD\r\n"), DefaultOptions())
	require.Contains(t, out, `NOTE:a\,b`)
}

func TestFixDoesNotDoubleEscapeCommas(t *testing.T) {
	out := Fix([]byte("BEGIN:VCARD\r\nNOTE:a\\,b\r\nEND:VCARD\r\n"), DefaultOptions())
	require.Contains(t, out, `NOTE:a\,b`)
	require.NotContains(t, out, `a\\,b`)
}

func TestFixCommaEscapingCanBeDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.DoNotForceEscapeCommas = true
	out := Fix([]byte("BEGIN:VCARD\r\nNOTE:a,b\r\nEND:VCARD\r\n"), opts)
	require.Contains(t, out, "NOTE:a,b")
}

func TestFixBareTypeTokensGetCoalesced(t *testing.T) {
	out := Fix([]byte("BEGIN:VCARD\r\nTEL;HOME;VOICE:0123456789\r\nEND:VCARD\r\n"), DefaultOptions())
	require.Contains(t, out, "TEL;TYPE=HOME,VOICE:0123456789")
}

func TestFixEncodingBase64Normalizes(t *testing.T) {
	out := Fix([]byte("BEGIN:VCARD\r\nPHOTO;ENCODING=BASE64;JPEG:ZGF0YQ==\r\nEND:VCARD\r\n"), DefaultOptions())
	require.Contains(t, out, "TYPE=JPEG")
	require.Contains(t, out, "ENCODING=b")
}

func TestFixPhotoWithoutEncodingGetsValueURI(t *testing.T) {
	out := Fix([]byte("BEGIN:VCARD\r\nPHOTO;JPEG:http://example.com/p.jpg\r\nEND:VCARD\r\n"), DefaultOptions())
	require.Contains(t, out, "VALUE=URI")
}

func TestFixQuotedPrintableGetsCharset(t *testing.T) {
	out := Fix([]byte("BEGIN:VCARD\r\nNOTE;QUOTED-PRINTABLE:abc\r\nEND:VCARD\r\n"), DefaultOptions())
	require.Contains(t, out, "ENCODING=QUOTED-PRINTABLE")
	require.Contains(t, out, "CHARSET=UTF-8")
}

func TestFixQuotedPrintableContinuationLinesAreJoined(t *testing.T) {
	out := Fix([]byte("BEGIN:VCARD\r\nNOTE;ENCODING=QUOTED-PRINTABLE:abc=\r\ndef\r\nEND:VCARD\r\n"), DefaultOptions())
	require.Contains(t, out, "NOTE;ENCODING=QUOTED-PRINTABLE;CHARSET=UTF-8:abcdef")
}
