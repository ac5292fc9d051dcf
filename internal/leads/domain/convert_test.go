package domain

import "testing"

func TestSplitName(t *testing.T) {
	cases := []struct {
		name      string
		wantFirst string
		wantLast  string
	}{
		{"John Doe", "John", "Doe"},
		{"John Michael Doe", "John", "Michael Doe"},
		{"Viktor", "Viktor", ""},
		{"  Jane Smith  ", "Jane", "Smith"},
		{"", "", ""},
	}

	for _, tc := range cases {
		first, last := SplitName(tc.name)
		if first != tc.wantFirst || last != tc.wantLast {
			t.Errorf("SplitName(%q) = (%q, %q), want (%q, %q)",
				tc.name, first, last, tc.wantFirst, tc.wantLast)
		}
	}
}

func TestDefaultJobDescription(t *testing.T) {
	cases := []struct {
		situation Situation
		want      string
	}{
		{SituationRepair, "Irrigation system repair"},
		{SituationNewSystem, "New irrigation system installation"},
		{SituationUpgrade, "Irrigation system upgrade"},
		{SituationExploring, "Irrigation consultation"},
		{Situation("unknown"), ""},
	}

	for _, tc := range cases {
		if got := DefaultJobDescription(tc.situation); got != tc.want {
			t.Errorf("DefaultJobDescription(%q) = %q, want %q", tc.situation, got, tc.want)
		}
	}
}
