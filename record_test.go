package vcard

import "testing"

func TestParamsAddDeduplicates(t *testing.T) {
	p := NewParams()
	p.Add("TYPE", "HOME")
	p.Add("TYPE", "HOME")
	p.Add("TYPE", "VOICE")
	assertSlicesEq(t, p.Values("TYPE"), []string{"HOME", "VOICE"})
}

func TestParamsMergeFromUnionsValues(t *testing.T) {
	p1 := NewParams()
	p1.Add("TYPE", "HOME")
	p2 := NewParams()
	p2.Add("TYPE", "VOICE")
	p2.Add("PREF", "1")

	p1.MergeFrom(p2)
	assertSlicesEq(t, p1.Values("TYPE"), []string{"HOME", "VOICE"})
	assertSlicesEq(t, p1.Values("PREF"), []string{"1"})
}

func TestRecordRemoveAllLeavesOthersIntact(t *testing.T) {
	r := NewRecord()
	r.Add(NewProperty("FN", NewScalar("A")))
	r.Add(NewProperty("EMAIL", NewScalar("a@example.com")))
	r.RemoveAll("FN")
	if r.Has("FN") {
		t.Error("FN should have been removed")
	}
	assertStringsEq(t, r.First("EMAIL").Value.Scalar, "a@example.com")
}

func TestWorkingSetUniqueKeyAvoidsCollisions(t *testing.T) {
	ws := NewWorkingSet()
	ws.Put("John Doe", NewRecord())
	k := ws.UniqueKey("John Doe")
	assertStringsEq(t, k, "John Doe(1)")
	ws.Put(k, NewRecord())
	k2 := ws.UniqueKey("John Doe")
	assertStringsEq(t, k2, "John Doe(2)")
}

func TestValueEqual(t *testing.T) {
	a := NewListValue([]string{"x", "y"})
	b := NewListValue([]string{"x", "y"})
	c := NewListValue([]string{"x"})
	if !a.Equal(b) {
		t.Error("expected equal list values to compare equal")
	}
	if a.Equal(c) {
		t.Error("expected different-length list values to compare unequal")
	}
}
