package vcard

import "testing"

func TestParseSimpleRecord(t *testing.T) {
	input := "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:John Doe\r\nEMAIL:john@example.com\r\nEND:VCARD\r\n"
	records, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertEq(t, len(records), 1)
	assertStringsEq(t, records[0].FN(), "John Doe")
	assertStringsEq(t, records[0].First("EMAIL").Value.Scalar, "john@example.com")
	if records[0].Has("VERSION") {
		t.Error("VERSION should never survive into the internal representation")
	}
}

func TestParseFoldedContinuationLine(t *testing.T) {
	input := "BEGIN:VCARD\r\nNOTE:first line\r\n second line\r\nEND:VCARD\r\n"
	records, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertStringsEq(t, records[0].First("NOTE").Value.Scalar, "first linesecond line")
}

func TestParseStructuredName(t *testing.T) {
	input := "BEGIN:VCARD\r\nN:Doe;John;;;Jr.\r\nEND:VCARD\r\n"
	records, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := records[0].N()
	assertStringsEq(t, n.Family, "Doe")
	assertStringsEq(t, n.Given, "John")
	assertStringsEq(t, n.Suffix, "Jr.")
}

func TestParseOrgList(t *testing.T) {
	input := "BEGIN:VCARD\r\nORG:Acme\\, Inc.;Widgets\r\nEND:VCARD\r\n"
	records, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	org := records[0].First("ORG").Value
	assertEq(t, org.Kind, ValueList)
	assertSlicesEq(t, org.List, []string{"Acme, Inc.", "Widgets"})
}

func TestParseTypeParams(t *testing.T) {
	input := "BEGIN:VCARD\r\nTEL;TYPE=HOME,VOICE:0123456789\r\nEND:VCARD\r\n"
	records, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tel := records[0].First("TEL")
	assertSlicesEq(t, tel.Params.Values("TYPE"), []string{"HOME", "VOICE"})
}

func TestParseMultipleRecords(t *testing.T) {
	input := "BEGIN:VCARD\r\nFN:A\r\nEND:VCARD\r\nBEGIN:VCARD\r\nFN:B\r\nEND:VCARD\r\n"
	records, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertEq(t, len(records), 2)
	assertStringsEq(t, records[0].FN(), "A")
	assertStringsEq(t, records[1].FN(), "B")
}

func TestParseMissingEndFails(t *testing.T) {
	_, err := Parse("BEGIN:VCARD\r\nFN:A\r\n")
	assertErrIs(t, err, ErrMalformedInput, "missing END:VCARD")
}

func TestParseNestedBeginFails(t *testing.T) {
	_, err := Parse("BEGIN:VCARD\r\nBEGIN:VCARD\r\nEND:VCARD\r\nEND:VCARD\r\n")
	assertErrIs(t, err, ErrMalformedInput, "nested BEGIN:VCARD")
}

func TestParseEscapedValues(t *testing.T) {
	input := "BEGIN:VCARD\r\nNOTE:a\\, b\\; c\\\\ d\\nsecond\r\nEND:VCARD\r\n"
	records, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertStringsEq(t, records[0].First("NOTE").Value.Scalar, "a, b; c\\ d\nsecond")
}
