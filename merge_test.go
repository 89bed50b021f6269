package vcard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// propertyNames extracts the property-name sequence of a record, the part of
// BuildRecord's output that must stay stable across runs on identical input.
func propertyNames(r *Record) []string {
	names := make([]string, len(r.Properties))
	for i, p := range r.Properties {
		names[i] = p.Name
	}
	return names
}

func TestAddAttributeDeduplicatesByValue(t *testing.T) {
	var instances []*attributeInstance
	p1 := NewProperty("TEL", NewScalar("0102030405"))
	p1.Params.Add("TYPE", "HOME")
	p2 := NewProperty("TEL", NewScalar("0102030405"))
	p2.Params.Add("TYPE", "VOICE")

	instances = AddAttribute(instances, p1)
	instances = AddAttribute(instances, p2)

	require.Len(t, instances, 1)
	assert.ElementsMatch(t, []string{"HOME", "VOICE"}, instances[0].Params.Values("TYPE"))
}

func TestCollectAttributesSkipsVersion(t *testing.T) {
	r := NewRecord()
	r.Add(NewProperty("VERSION", NewScalar("3.0")))
	r.Add(NewProperty("FN", NewScalar("John Doe")))

	attrs, order := CollectAttributes([]*Record{r})
	_, hasVersion := attrs["VERSION"]
	assert.False(t, hasVersion)
	assert.Len(t, attrs["FN"], 1)
	assert.Equal(t, []string{"FN"}, order)
}

func TestSetNameSelectsMostRelevant(t *testing.T) {
	r1 := NewRecord()
	r1.Add(NewProperty("FN", NewScalar("J. Doe")))
	r2 := NewRecord()
	r2.Add(NewProperty("FN", NewScalar("John Doe")))

	attrs, order := CollectAttributes([]*Record{r1, r2})
	order, err := SetName(attrs, order, DefaultOptions())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"FN", "N"}, order)

	require.Len(t, attrs["FN"], 1)
	assert.Equal(t, "John Doe", attrs["FN"][0].Value.Scalar)
	require.Len(t, attrs["N"], 1)
	assert.Equal(t, "Doe", attrs["N"][0].Value.Name.Family)
}

func TestBuildRecordKeepsOnlyFirstUID(t *testing.T) {
	attrs := map[string][]*attributeInstance{
		"UID": {
			{Value: NewScalar("first"), Params: NewParams()},
			{Value: NewScalar("second"), Params: NewParams()},
		},
	}
	r := BuildRecord(attrs, []string{"UID"})
	require.Len(t, r.All("UID"), 1)
	assert.Equal(t, "first", r.First("UID").Value.Scalar)
}

// TestBuildRecordPropertyOrderIsDeterministic rebuilds the same record from
// the same two source records several times and asserts the resulting
// property-name sequence is identical every time, since BuildRecord now
// iterates the order slice returned by CollectAttributes instead of ranging
// over the attrs map.
func TestBuildRecordPropertyOrderIsDeterministic(t *testing.T) {
	build := func() *Record {
		r1 := NewRecord()
		r1.Add(NewProperty("EMAIL", NewScalar("john@example.com")))
		r1.Add(NewProperty("FN", NewScalar("John Doe")))
		r2 := NewRecord()
		r2.Add(NewProperty("TEL", NewScalar("0102030405")))
		r2.Add(NewProperty("ORG", NewListValue([]string{"Acme"})))

		attrs, order := CollectAttributes([]*Record{r1, r2})
		return BuildRecord(attrs, order)
	}

	want := propertyNames(build())
	for i := 0; i < 5; i++ {
		got := propertyNames(build())
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("property order differs across runs (-want +got):\n%s", diff)
		}
	}
	assert.Equal(t, []string{"EMAIL", "FN", "TEL", "ORG"}, want)
}

func TestMergeConcatenatesWithoutDeduplication(t *testing.T) {
	base := NewRecord()
	base.Add(NewProperty("TEL", NewScalar("0102030405")))
	other := NewRecord()
	other.Add(NewProperty("TEL", NewScalar("0102030405")))

	Merge(base, other)
	assert.Len(t, base.All("TEL"), 2)
}

func TestMergeSkipsVersion(t *testing.T) {
	base := NewRecord()
	other := NewRecord()
	other.Add(NewProperty("VERSION", NewScalar("3.0")))
	Merge(base, other)
	assert.False(t, base.Has("VERSION"))
}

func TestDeduplicateFoldsDuplicateEmailAndHarmonizesName(t *testing.T) {
	r := NewRecord()
	r.Add(NewProperty("FN", NewScalar("J. Doe")))
	r.Add(NewProperty("FN", NewScalar("John Doe")))
	r.Add(NewProperty("EMAIL", NewScalar("john@example.com")))
	r.Add(NewProperty("EMAIL", NewScalar("john@example.com")))

	result, err := Deduplicate(r, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "John Doe", result.FN())
	assert.Len(t, result.All("EMAIL"), 1)
}
