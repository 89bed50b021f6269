package vcard

import (
	"io"
	"strings"
)

// Encoder writes Records as strict vCard 3.0 text. It keeps the teacher
// library's newline-sequence configurability but serializes the explicit
// Record/Property model of record.go instead of binding to a reflected
// user struct (see SPEC_FULL.md REDESIGN FLAGS).
type Encoder struct {
	w               io.Writer
	newlineSequence string
}

// NewEncoder creates an Encoder writing to w, with the RFC 6350 §3.2
// default newline sequence "\r\n".
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, newlineSequence: "\r\n"}
}

// SetNewlineSequence overrides the newline sequence. Returns the encoder for
// chaining, matching the teacher library's builder style.
func (e *Encoder) SetNewlineSequence(seq string) *Encoder {
	e.newlineSequence = seq
	return e
}

// Encode writes one record as a full BEGIN:VCARD...END:VCARD block.
func (e *Encoder) Encode(r *Record) error {
	var b strings.Builder
	e.encodeInto(&b, r)
	_, err := io.WriteString(e.w, b.String())
	if err != nil {
		return vCardErrf("cannot write: %w", err)
	}
	return nil
}

// EncodeAll writes every record in order, each as its own block.
func (e *Encoder) EncodeAll(records []*Record) error {
	var b strings.Builder
	for _, r := range records {
		e.encodeInto(&b, r)
	}
	_, err := io.WriteString(e.w, b.String())
	if err != nil {
		return vCardErrf("cannot write: %w", err)
	}
	return nil
}

func (e *Encoder) encodeInto(b *strings.Builder, r *Record) {
	nl := e.newlineSequence
	b.WriteString("BEGIN:VCARD")
	b.WriteString(nl)
	b.WriteString("VERSION:3.0")
	b.WriteString(nl)

	for _, p := range r.Properties {
		if p.Name == "VERSION" {
			continue
		}
		b.WriteString(p.Name)
		for _, pname := range p.Params.Names() {
			values := p.Params.Values(pname)
			if len(values) == 0 {
				continue
			}
			b.WriteByte(';')
			b.WriteString(pname)
			b.WriteByte('=')
			b.WriteString(strings.Join(values, ","))
		}
		b.WriteByte(':')
		b.WriteString(encodeValue(p.Name, p.Value))
		b.WriteString(nl)
	}

	b.WriteString("END:VCARD")
	b.WriteString(nl)
}

func encodeValue(name string, v Value) string {
	switch v.Kind {
	case ValueName:
		return strings.Join([]string{
			escapeValue(v.Name.Family),
			escapeValue(v.Name.Given),
			"",
			"",
			escapeValue(v.Name.Suffix),
		}, ";")
	case ValueList:
		escaped := make([]string, len(v.List))
		for i, item := range v.List {
			escaped[i] = escapeValue(item)
		}
		return strings.Join(escaped, ";")
	default:
		return escapeValue(v.Scalar)
	}
}

// escapeValue applies RFC 6350 backslash-escaping to a literal value.
func escapeValue(s string) string {
	if !strings.ContainsAny(s, "\\,;\n") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\', ',', ';':
			b.WriteByte('\\')
			b.WriteByte(s[i])
		case '\n':
			b.WriteString("\\n")
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
