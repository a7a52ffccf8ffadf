package lang

import "testing"

func TestFromFlag(t *testing.T) {
	tests := []struct {
		in      string
		want    Tag
		wantErr bool
	}{
		{"rust", Rust, false},
		{"RUST", Rust, false},
		{"toml", Toml, false},
		{"c-sharp", CSharp, false},
		{"nonexistent", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := FromFlag(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromFlag(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("FromFlag(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromIgnoreName(t *testing.T) {
	got, ok := FromIgnoreName("py")
	if !ok || got != Python {
		t.Fatalf("FromIgnoreName(py) = %v, %v, want Python, true", got, ok)
	}
	if _, ok := FromIgnoreName("nope"); ok {
		t.Fatalf("expected FromIgnoreName(nope) to fail")
	}
}

func TestAmbiguityErrorMessage(t *testing.T) {
	err := &AmbiguityError{
		Path:       "./example.h",
		Candidates: []Tag{C, Cpp, ObjectiveC},
	}
	want := `File "./example.h" has ambiguous file-type, could be C, C++, or Objective-C. Try passing the --language flag`
	if got := err.Error(); got != want {
		t.Errorf("Error() =\n%s\nwant\n%s", got, want)
	}
}

func TestAllTagsHaveNames(t *testing.T) {
	for _, tag := range All {
		if tag.IgnoreName() == "" {
			t.Errorf("tag %v has no ignore name", tag)
		}
		if tag.String() == "" {
			t.Errorf("tag %v has no display name", tag)
		}
	}
}
