package subject

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{" math ", "MATH"},
		{"MATH", "MATH"},
		{"Phy sics", "PHY SICS"},
		{"", ""},
		{"   ", ""},
		{"\tChemistry\n", "CHEMISTRY"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if Normalize(" math ") != Normalize("MATH") {
		t.Error("case/whitespace variants must normalize equal")
	}
}

func TestSplitNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"math", []string{"MATH"}},
		{" math , physics", []string{"MATH", "PHYSICS"}},
		{"math,,physics,", []string{"MATH", "PHYSICS"}},
		{"", nil},
		{" , ", nil},
	}
	for _, tc := range cases {
		if got := SplitNormalize(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("SplitNormalize(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
