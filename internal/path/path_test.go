package path

import "testing"

func TestDisplay(t *testing.T) {
	tests := []struct {
		path string
		sep  string
		want string
	}{
		{"src/lib.rs", "", "src/lib.rs"},
		{"src/lib.rs", "/", "src/lib.rs"},
		{"src/lib.rs", ";", "src;lib.rs"},
		{"a/b/c.go", "::", "a::b::c.go"},
		{"README.md", ";", "README.md"},
	}

	for _, tt := range tests {
		t.Run(tt.path+"_"+tt.sep, func(t *testing.T) {
			got := Display(tt.path, tt.sep)
			if got != tt.want {
				t.Errorf("Display(%q, %q) = %q, want %q", tt.path, tt.sep, got, tt.want)
			}
		})
	}
}
