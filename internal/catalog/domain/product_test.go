package domain

import "testing"

func TestProductMatches(t *testing.T) {
	p := Product{Name: "Classic Tee", Slug: "classic-tee"}

	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"tee", true},
		{"CLASSIC", true},
		{"mug", false},
	}
	for _, tt := range tests {
		if got := p.Matches(tt.query); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}
