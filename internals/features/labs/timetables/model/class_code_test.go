package model

import (
	"errors"
	"testing"
)

func TestParseClassCode(t *testing.T) {
	cases := []struct {
		in      string
		grade   int
		section byte
		ok      bool
	}{
		{"9B", 9, 'B', true},
		{"12A", 12, 'A', true},
		{" 7C ", 7, 'C', true},
		{"9b", 0, 0, false},
		{" 7c ", 0, 0, false},
		{"14A", 14, 'A', true}, // rentang dicek kategori, bukan parser
		{"abc", 0, 0, false},
		{"", 0, 0, false},
		{"123A", 0, 0, false},
		{"9", 0, 0, false},
		{"9AB", 0, 0, false},
		{"A9", 0, 0, false},
	}
	for _, tc := range cases {
		code, err := ParseClassCode(tc.in)
		if tc.ok != (err == nil) {
			t.Fatalf("%q: ok=%v err=%v", tc.in, tc.ok, err)
		}
		if !tc.ok {
			var pe *ParseError
			if !errors.As(err, &pe) || pe.Input != tc.in {
				t.Fatalf("%q: want ParseError with input, got %v", tc.in, err)
			}
			continue
		}
		if code.Grade != tc.grade || code.Section != tc.section {
			t.Fatalf("%q: got %+v", tc.in, code)
		}
	}
}

func TestClassCodeString(t *testing.T) {
	code, err := ParseClassCode("09B")
	if err != nil {
		t.Fatal(err)
	}
	if code.String() != "9B" {
		t.Fatalf("want canonical 9B, got %s", code)
	}
}
