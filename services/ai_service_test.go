package services

import "testing"

func TestStripFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"name": "Anna"}`, `{"name": "Anna"}`},
		{"```json\n{\"name\": \"Anna\"}\n```", `{"name": "Anna"}`},
		{"```\n{\"name\": \"Anna\"}\n```", `{"name": "Anna"}`},
		{"  {\"name\": \"Anna\"}  \n", `{"name": "Anna"}`},
	}

	for _, tt := range tests {
		if got := stripFences(tt.in); got != tt.want {
			t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
