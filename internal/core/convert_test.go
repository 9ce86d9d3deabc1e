package core

import (
	"reflect"
	"testing"
)

// ----------------------------------------------------------------------------
// ParseJSONField Tests
// ----------------------------------------------------------------------------

func TestParseJSONField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{
			name:  "object",
			input: `{"url":"https://cdn.adalo.com/a.png","size":120}`,
			want:  map[string]any{"url": "https://cdn.adalo.com/a.png", "size": 120.0},
		},
		{
			name:  "array",
			input: `[1,2]`,
			want:  []any{1.0, 2.0},
		},
		{
			name:  "wrapped in double quotes",
			input: `"{"a":1}"`,
			want:  map[string]any{"a": 1.0},
		},
		{
			name:  "wrapped in single quotes",
			input: `'{"a":1}'`,
			want:  map[string]any{"a": 1.0},
		},
		{
			name:  "surrounding whitespace",
			input: "  {\"a\":true}\n",
			want:  map[string]any{"a": true},
		},
		{
			name:  "bare number",
			input: "42",
			want:  42.0,
		},
		{
			name:  "quoted string loses its quotes and fails",
			input: `"hello"`,
			want:  nil,
		},
		{
			name:  "malformed",
			input: `{"a":`,
			want:  nil,
		},
		{
			name:  "plain text",
			input: "not json",
			want:  nil,
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseJSONField(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseJSONField(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ParseBoolean Tests
// ----------------------------------------------------------------------------

func TestParseBoolean(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		// Truthy tokens
		{"TRUE", true},
		{"True", true},
		{"true", true},
		{"1", true},

		// Falsy tokens, including empty
		{"FALSE", false},
		{"False", false},
		{"false", false},
		{"0", false},
		{"", false},

		// Anything else is unknown
		{"yes", nil},
		{"tRuE", nil},
		{" true", nil},
		{"2", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseBoolean(tt.input); got != tt.want {
				t.Errorf("ParseBoolean(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ParseTimestamp Tests
// ----------------------------------------------------------------------------

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"adalo format", "2025-11-18T16:15:25.000Z", "2025-11-18T16:15:25.000Z"},
		{"not validated", "next tuesday", "next tuesday"},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseTimestamp(tt.input); got != tt.want {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ParseNumber Tests
// ----------------------------------------------------------------------------

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"integer", "7", int64(7)},
		{"negative integer", "-4", int64(-4)},
		{"zero", "0", int64(0)},
		{"decimal", "12.50", 12.5},
		{"leading decimal point", ".5", 0.5},
		{"surrounding whitespace", " 3 ", int64(3)},
		{"letters", "abc", nil},
		{"exponent without dot", "1e5", nil},
		{"two dots", "1.2.3", nil},
		{"thousands separator", "1,000", nil},
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseNumber(tt.input); got != tt.want {
				t.Errorf("ParseNumber(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ParseArray Tests
// ----------------------------------------------------------------------------

func TestParseArray(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"json strings", `["Food","Drink"]`, []string{"Food", "Drink"}},
		{"json mixed elements", `[1,"x",true]`, []string{"1", "x", "true"}},
		{"json empty", `[]`, []string{}},
		{"comma separated", "Food, Drink ,Retail", []string{"Food", "Drink", "Retail"}},
		{"blank segments dropped", "a,, ,b,", []string{"a", "b"}},
		{"single value", "Food", []string{"Food"}},
		{"json null falls back to text", "null", []string{"null"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseArray(tt.input)
			if got == nil {
				t.Fatalf("ParseArray(%q) = nil, want non-nil slice", tt.input)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseArray(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Coercer Tests
// ----------------------------------------------------------------------------

func TestCoercers(t *testing.T) {
	tests := []struct {
		name   string
		coerce Coercer
		input  string
		want   any
	}{
		{"raw keeps empty", Raw, "", ""},
		{"raw keeps value", Raw, " Ping ", " Ping "},
		{"text empty is null", Text, "", nil},
		{"text keeps value", Text, "Leeds", "Leeds"},
		{"text or default on empty", TextOr("Ping Local Member"), "", "Ping Local Member"},
		{"text or keeps value", TextOr("Ping Local Member"), "Gold", "Gold"},
		{"number or default on empty", NumberOr(0), "", int64(0)},
		{"number or default on garbage", NumberOr(5), "abc", int64(5)},
		{"number or default on zero", NumberOr(5), "0", int64(5)},
		{"number or keeps value", NumberOr(0), "12", int64(12)},
		{"number or keeps float", NumberOr(0), "2.5", 2.5},
		{"bool", Bool, "True", true},
		{"timestamp", Timestamp, "", nil},
		{"json doc empty is null", JSONDoc, "", nil},
		{"json doc malformed is null", JSONDoc, "{", nil},
		{"json doc wraps value", JSONDoc, `{"a":1}`, JSON{V: map[string]any{"a": 1.0}}},
		{"array", Array, "a,b", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.coerce(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("coerce(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCoercers_Deterministic(t *testing.T) {
	coercers := map[string]Coercer{
		"raw":      Raw,
		"text":     Text,
		"number":   Number,
		"bool":     Bool,
		"json":     JSONDoc,
		"array":    Array,
		"numberOr": NumberOr(0),
	}
	inputs := []string{"", "0", "12.50", "true", `{"a":[1,2]}`, "a, b", "garbage"}

	for name, c := range coercers {
		for _, in := range inputs {
			first, second := c(in), c(in)
			if !reflect.DeepEqual(first, second) {
				t.Errorf("%s(%q) not deterministic: %#v then %#v", name, in, first, second)
			}
		}
	}
}

func TestJSON_Encoding(t *testing.T) {
	doc := JSON{V: map[string]any{"url": "x"}}

	b, err := doc.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(b) != `{"url":"x"}` {
		t.Errorf("MarshalJSON() = %s", b)
	}

	v, err := doc.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if v != `{"url":"x"}` {
		t.Errorf("Value() = %#v, want JSON text", v)
	}
}
