package text

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "North London Derby", want: "north-london-derby"},
		{in: "  Mbappé scores twice!  ", want: "mbappe-scores-twice"},
		{in: "Atlético -- Real (2-1)", want: "atletico-real-2-1"},
		{in: "???", want: ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Fatalf("Slugify(%q)=%q want=%q", tt.in, got, tt.want)
		}
	}
}
