package params

import (
	"testing"
)

func TestCompact_DropsOnlyUnsetFields(t *testing.T) {
	t.Parallel()

	in := New().
		With("name", String("test")).
		With("value", Unset()).
		With("count", Int(42)).
		With("flag", Null())

	got := Compact(in)

	if got.Len() != 3 {
		t.Fatalf("expected 3 fields, got %d", got.Len())
	}
	if got[0].Key != "name" || got[1].Key != "count" || got[2].Key != "flag" {
		t.Fatalf("unexpected key order: %v %v %v", got[0].Key, got[1].Key, got[2].Key)
	}
	if v, ok := got.Get("flag"); !ok || !v.IsNull() {
		t.Fatalf("expected null flag to be retained")
	}
	if _, ok := got.Get("value"); ok {
		t.Fatalf("expected unset value to be dropped")
	}
}

func TestCompact_EmptyRecord(t *testing.T) {
	t.Parallel()

	if got := Compact(New()); got.Len() != 0 {
		t.Fatalf("expected empty output, got %d fields", got.Len())
	}
	if got := Compact(nil); got == nil || got.Len() != 0 {
		t.Fatalf("expected fresh empty output for nil input, got %#v", got)
	}
}

func TestCompact_AllUnset(t *testing.T) {
	t.Parallel()

	in := New().With("a", Unset()).With("b", Unset())
	if got := Compact(in); got.Len() != 0 {
		t.Fatalf("expected empty output, got %d fields", got.Len())
	}
}

func TestCompact_KeepsFalsyDefinedValues(t *testing.T) {
	t.Parallel()

	in := New().
		With("zero", Int(0)).
		With("empty", String("")).
		With("false", Bool(false)).
		With("null", Null()).
		With("undef", Unset())

	got := Compact(in)
	if got.Len() != 4 {
		t.Fatalf("expected 4 fields, got %d", got.Len())
	}
	for i, key := range []string{"zero", "empty", "false", "null"} {
		if got[i].Key != key {
			t.Fatalf("expected key %q at position %d, got %q", key, i, got[i].Key)
		}
	}
	if encoded, ok := got[0].Value.Encode(); !ok || encoded != "0" {
		t.Fatalf("expected zero to encode as 0, got %q ok=%t", encoded, ok)
	}
	if encoded, ok := got[2].Value.Encode(); !ok || encoded != "false" {
		t.Fatalf("expected false to encode as false, got %q ok=%t", encoded, ok)
	}
}

func TestCompact_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := New().With("keep", String("x")).With("drop", Unset())
	_ = Compact(in)

	if in.Len() != 2 {
		t.Fatalf("input length changed to %d", in.Len())
	}
	if v, ok := in.Get("drop"); !ok || !v.IsUnset() {
		t.Fatalf("input unset field was modified")
	}
}

func TestCompact_Idempotent(t *testing.T) {
	t.Parallel()

	in := New().
		With("season", Int(2024)).
		With("team", Unset()).
		With("search", String("")).
		With("current", Bool(true))

	once := Compact(in)
	twice := Compact(once)

	if once.Len() != twice.Len() {
		t.Fatalf("second pass changed length: %d vs %d", once.Len(), twice.Len())
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("second pass changed field %d: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestBuildQuery_MatchesCompactForEveryInput(t *testing.T) {
	t.Parallel()

	inputs := []Record{
		nil,
		New(),
		New().With("a", Unset()).With("b", Unset()),
		New().With("season", Int(2024)).With("team", Unset()).With("limit", Int(10)),
		New().With("zero", Int(0)).With("null", Null()).With("name", String("x")),
	}

	for _, in := range inputs {
		viaAlias := BuildQuery(in)
		viaPrimary := Compact(in)
		if viaAlias.Len() != viaPrimary.Len() {
			t.Fatalf("alias diverged on %+v: %d vs %d fields", in, viaAlias.Len(), viaPrimary.Len())
		}
		for i := range viaAlias {
			if viaAlias[i] != viaPrimary[i] {
				t.Fatalf("alias diverged on field %d of %+v", i, in)
			}
		}
	}
}

func TestBuildQuery_QueryAssembly(t *testing.T) {
	t.Parallel()

	in := New().
		With("season", Int(2024)).
		With("team", Unset()).
		With("limit", Int(10))

	got := BuildQuery(in).QueryString()
	want := "season=2024&limit=10"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRecord_QueryValuesSkipsUnsetAndKeepsNull(t *testing.T) {
	t.Parallel()

	in := New().
		With("league", Int(39)).
		With("team", Unset()).
		With("search", Null())

	values := in.QueryValues()
	if values.Get("league") != "39" {
		t.Fatalf("expected league=39, got %q", values.Get("league"))
	}
	if _, ok := values["team"]; ok {
		t.Fatalf("unset field leaked into url.Values")
	}
	if _, ok := values["search"]; !ok {
		t.Fatalf("null field missing from url.Values")
	}
	if values.Get("search") != "" {
		t.Fatalf("expected empty encoding for null, got %q", values.Get("search"))
	}
}
