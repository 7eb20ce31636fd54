package attributes

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/danmuck/shippoctl/internal/testutil/testlog"
)

var distanceUnits = OneOf("cm", "in", "ft", "mm", "m", "yd")

func TestMustHaveMatchesMayHaveForPresentKeys(t *testing.T) {
	testlog.Start(t)
	bag := New(map[string]any{
		"length":         json.Number("5"),
		"distance_unit":  "cm",
		"is_residential": true,
		"object_created": "2015-06-01T10:20:30.123Z",
		"messages":       []any{"a", "b"},
	})

	mustInt, err := bag.MustHave("length").AsInteger()
	if err != nil {
		t.Fatalf("must have length: %v", err)
	}
	mayInt, err := bag.MayHave("length").AsInteger()
	if err != nil || mayInt != mustInt {
		t.Fatalf("may have length=%d err=%v, want %d", mayInt, err, mustInt)
	}

	mustStr, _ := bag.MustHave("distance_unit").AsString(distanceUnits)
	mayStr, _ := bag.MayHave("distance_unit").AsString(distanceUnits)
	if mustStr != "cm" || mayStr != mustStr {
		t.Fatalf("distance_unit must=%q may=%q", mustStr, mayStr)
	}

	mustBool, _ := bag.MustHave("is_residential").AsBool()
	mayBool, _ := bag.MayHave("is_residential").AsBool()
	if !mustBool || mayBool != mustBool {
		t.Fatalf("is_residential must=%v may=%v", mustBool, mayBool)
	}

	mustTime, _ := bag.MustHave("object_created").AsDateTime()
	mayTime, _ := bag.MayHave("object_created").AsDateTime()
	if mustTime.IsZero() || !mayTime.Equal(mustTime) {
		t.Fatalf("object_created must=%v may=%v", mustTime, mayTime)
	}

	mustArr, _ := bag.MustHave("messages").AsArray()
	mayArr, _ := bag.MayHave("messages").AsArray()
	if mustArr.Len() != 2 || mayArr.Len() != mustArr.Len() {
		t.Fatalf("messages must=%d may=%d", mustArr.Len(), mayArr.Len())
	}
}

func TestMayHaveMissingYieldsNeutralDefaults(t *testing.T) {
	testlog.Start(t)
	bag := New(map[string]any{"template": nil})

	if s, err := bag.MayHave("template").AsString(); err != nil || s != "" {
		t.Fatalf("string default=%q err=%v", s, err)
	}
	if n, err := bag.MayHave("length").AsInteger(); err != nil || n != 0 {
		t.Fatalf("integer default=%d err=%v", n, err)
	}
	if f, err := bag.MayHave("weight").AsFloat(); err != nil || f != 0 {
		t.Fatalf("float default=%v err=%v", f, err)
	}
	if b, err := bag.MayHave("is_residential").AsBool(); err != nil || b {
		t.Fatalf("bool default=%v err=%v", b, err)
	}
	if ts, err := bag.MayHave("object_created").AsDateTime(); err != nil || !ts.IsZero() {
		t.Fatalf("datetime default=%v err=%v", ts, err)
	}
	if arr, err := bag.MayHave("messages").AsArray(); err != nil || arr.Len() != 0 || arr.IsMap() {
		t.Fatalf("array default len=%d err=%v", arr.Len(), err)
	}
}

func TestMustHaveMissingFailsEveryCoercion(t *testing.T) {
	testlog.Start(t)
	bag := New(map[string]any{"present": "x", "nulled": nil})

	for _, key := range []string{"absent", "nulled"} {
		acc := bag.MustHave(key)
		checks := map[string]error{}
		_, checks["integer"] = acc.AsInteger()
		_, checks["float"] = acc.AsFloat()
		_, checks["string"] = acc.AsString()
		_, checks["bool"] = acc.AsBool()
		_, checks["datetime"] = acc.AsDateTime()
		_, checks["array"] = acc.AsArray()
		_, checks["instance"] = acc.AsInstanceOf(func(b *Bag) any { return b })
		for kind, err := range checks {
			if !errors.Is(err, ErrMissingRequiredAttribute) {
				t.Fatalf("%s %s: expected ErrMissingRequiredAttribute, got %v", key, kind, err)
			}
			var missing *MissingRequiredAttributeError
			if !errors.As(err, &missing) || missing.Key != key {
				t.Fatalf("%s %s: expected key in error, got %v", key, kind, err)
			}
		}
	}
}

func TestAsStringPredicate(t *testing.T) {
	testlog.Start(t)
	bag := New(map[string]any{"good": "cm", "bad": "parsec"})

	got, err := bag.MayHave("good").AsString(distanceUnits)
	if err != nil || got != "cm" {
		t.Fatalf("expected cm, got %q err=%v", got, err)
	}

	_, err = bag.MayHave("bad").AsString(distanceUnits)
	if !errors.Is(err, ErrInvalidAttributeValue) {
		t.Fatalf("expected ErrInvalidAttributeValue, got %v", err)
	}
	var invalid *InvalidAttributeValueError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidAttributeValueError, got %T", err)
	}
	if invalid.Key != "bad" || invalid.Expected != TypeString || invalid.Got != "parsec" {
		t.Fatalf("unexpected error fields: %+v", invalid)
	}

	if _, err := bag.MayHave("missing").AsString(distanceUnits); err != nil {
		t.Fatalf("predicate must not run on missing may-have value: %v", err)
	}
}

func TestMetadataLengthBoundary(t *testing.T) {
	testlog.Start(t)
	maxLen := MaxLength(100)
	exact := strings.Repeat("a", 100)
	over := strings.Repeat("a", 101)
	multibyte := strings.Repeat("é", 100)

	bag := New(map[string]any{"exact": exact, "over": over, "multibyte": multibyte})
	if _, err := bag.MayHave("exact").AsString(maxLen); err != nil {
		t.Fatalf("100 characters should pass: %v", err)
	}
	if _, err := bag.MayHave("over").AsString(maxLen); !errors.Is(err, ErrInvalidAttributeValue) {
		t.Fatalf("101 characters should fail, got %v", err)
	}
	if _, err := bag.MayHave("multibyte").AsString(maxLen); err != nil {
		t.Fatalf("100 multibyte characters should pass: %v", err)
	}
}

func TestAsIntegerCoercion(t *testing.T) {
	testlog.Start(t)
	tests := []struct {
		name    string
		value   any
		want    int
		wantErr bool
	}{
		{name: "int", value: 5, want: 5},
		{name: "float truncated", value: 5.9, want: 5},
		{name: "json integer", value: json.Number("12"), want: 12},
		{name: "json float", value: json.Number("2.0"), want: 2},
		{name: "numeric string", value: "42", want: 42},
		{name: "decimal string", value: " 7.25 ", want: 7},
		{name: "negative", value: "-3", want: -3},
		{name: "word", value: "five", wantErr: true},
		{name: "bool", value: true, wantErr: true},
		{name: "list", value: []any{1}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bag := New(map[string]any{"n": tc.value})
			got, err := bag.MustHave("n").AsInteger()
			if tc.wantErr {
				var invalid *InvalidAttributeValueError
				if !errors.As(err, &invalid) || invalid.Expected != TypeInteger {
					t.Fatalf("expected integer InvalidAttributeValue, got %v", err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("got %d err=%v, want %d", got, err, tc.want)
			}
		})
	}
}

func TestPresentInvalidValueFailsUnderMayHave(t *testing.T) {
	testlog.Start(t)
	bag := New(map[string]any{"length": "abc"})
	if _, err := bag.MayHave("length").AsInteger(); !errors.Is(err, ErrInvalidAttributeValue) {
		t.Fatalf("expected invalid value for present non-numeric, got %v", err)
	}
}

func TestEmptyStringPolicy(t *testing.T) {
	testlog.Start(t)
	bag := New(map[string]any{"insurance_amount": "", "street2": ""})

	if n, err := bag.MayHave("insurance_amount").AsInteger(); err != nil || n != 0 {
		t.Fatalf("may-have empty integer=%d err=%v", n, err)
	}
	if _, err := bag.MustHave("insurance_amount").AsInteger(); !errors.Is(err, ErrInvalidAttributeValue) {
		t.Fatalf("must-have empty integer should be invalid, got %v", err)
	}
	if s, err := bag.MustHave("street2").AsString(); err != nil || s != "" {
		t.Fatalf("must-have empty string=%q err=%v", s, err)
	}
}

func TestAsStringFormatsScalars(t *testing.T) {
	testlog.Start(t)
	bag := New(map[string]any{
		"int":    15,
		"float":  2.5,
		"number": json.Number("5.0"),
		"bool":   true,
		"list":   []any{"x"},
	})
	want := map[string]string{"int": "15", "float": "2.5", "number": "5.0", "bool": "true"}
	for key, expected := range want {
		got, err := bag.MustHave(key).AsString()
		if err != nil || got != expected {
			t.Fatalf("%s: got %q err=%v, want %q", key, got, err, expected)
		}
	}
	if _, err := bag.MustHave("list").AsString(); !errors.Is(err, ErrInvalidAttributeValue) {
		t.Fatalf("list should not coerce to string, got %v", err)
	}
}

func TestAsDateTime(t *testing.T) {
	testlog.Start(t)
	tests := []struct {
		raw  string
		want time.Time
	}{
		{raw: "2015-06-01T10:20:30.123Z", want: time.Date(2015, 6, 1, 10, 20, 30, 123000000, time.UTC)},
		{raw: "2015-06-01T12:20:30+02:00", want: time.Date(2015, 6, 1, 10, 20, 30, 0, time.UTC)},
		{raw: "2015-06-01T10:20:30+0000", want: time.Date(2015, 6, 1, 10, 20, 30, 0, time.UTC)},
		{raw: "2015-06-01", want: time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		got, err := New(map[string]any{"ts": tc.raw}).MustHave("ts").AsDateTime()
		if err != nil {
			t.Fatalf("parse %q: %v", tc.raw, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("parse %q: got %v, want %v", tc.raw, got, tc.want)
		}
	}

	_, err := New(map[string]any{"ts": "yesterday"}).MayHave("ts").AsDateTime()
	var invalid *InvalidAttributeValueError
	if !errors.As(err, &invalid) || invalid.Expected != TypeDateTime {
		t.Fatalf("expected datetime InvalidAttributeValue, got %v", err)
	}
}

func TestAsArrayShapes(t *testing.T) {
	testlog.Start(t)
	bag := New(map[string]any{
		"list":  []any{"a", json.Number("1")},
		"map":   map[string]any{"b": 2, "a": 1},
		"other": "x",
	})

	list, err := bag.MustHave("list").AsArray()
	if err != nil || list.IsMap() || list.Len() != 2 {
		t.Fatalf("list: %+v err=%v", list, err)
	}
	m, err := bag.MustHave("map").AsArray()
	if err != nil || !m.IsMap() || m.Len() != 2 {
		t.Fatalf("map: %+v err=%v", m, err)
	}
	if vals := m.List(); vals[0] != 1 || vals[1] != 2 {
		t.Fatalf("map values should be ordered by key: %v", vals)
	}
	if _, err := bag.MustHave("other").AsArray(); !errors.Is(err, ErrInvalidAttributeValue) {
		t.Fatalf("string should not be array-shaped, got %v", err)
	}
}

type point struct {
	city string
}

func newPoint(b *Bag) *point {
	city, _ := b.MayHave("city").AsString()
	return &point{city: city}
}

func TestInstanceOf(t *testing.T) {
	testlog.Start(t)
	bag := New(map[string]any{
		"location": map[string]any{"city": "San Francisco"},
		"bad":      []any{"x"},
		"history":  []any{map[string]any{"city": "A"}, map[string]any{"city": "B"}},
		"mixed":    []any{map[string]any{"city": "A"}, "B"},
	})

	loc, err := InstanceOf(bag.MayHave("location"), newPoint)
	if err != nil || loc.city != "San Francisco" {
		t.Fatalf("location=%+v err=%v", loc, err)
	}

	empty, err := InstanceOf(bag.MayHave("missing"), newPoint)
	if err != nil || empty == nil || empty.city != "" {
		t.Fatalf("missing may-have should build from empty bag: %+v err=%v", empty, err)
	}

	if _, err := InstanceOf(bag.MayHave("bad"), newPoint); !errors.Is(err, ErrInvalidAttributeValue) {
		t.Fatalf("list should not build an instance, got %v", err)
	}

	history, err := ListOf(bag.MayHave("history"), newPoint)
	if err != nil || len(history) != 2 || history[1].city != "B" {
		t.Fatalf("history=%+v err=%v", history, err)
	}

	_, err = ListOf(bag.MayHave("mixed"), newPoint)
	var invalid *InvalidAttributeValueError
	if !errors.As(err, &invalid) || invalid.Key != "mixed[1]" {
		t.Fatalf("expected element error for mixed[1], got %v", err)
	}
}
