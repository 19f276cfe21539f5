package comments

import "testing"

func TestSearchTerms(t *testing.T) {
	cases := []struct {
		headline string
		maxWords int
		want     string
	}{
		{"Lakers rally past Warriors as LeBron James scores 40", 4, "Lakers rally past Warriors"},
		{"The Celtics, after a slow start, win again!", 3, "Celtics slow start"},
		{"Jokic vs. Embiid: the MVP race", 4, "Jokic Embiid MVP race"},
		{"", 4, ""},
		{"of the and", 4, ""},
	}
	for _, tc := range cases {
		if got := SearchTerms(tc.headline, tc.maxWords); got != tc.want {
			t.Errorf("SearchTerms(%q, %d) = %q, want %q", tc.headline, tc.maxWords, got, tc.want)
		}
	}
}

func TestSearchTermsDefaultsMaxWords(t *testing.T) {
	got := SearchTerms("Warriors guard Curry drops fifty against Kings tonight", 0)
	if got != "Warriors guard Curry drops" {
		t.Errorf("got %q", got)
	}
}
