package password

import (
	"strings"
	"testing"
)

func TestGenerate_Length(t *testing.T) {
	g := NewGenerator()

	for _, length := range []int{8, 12, 20, 64} {
		pw, err := g.Generate(length)
		if err != nil {
			t.Fatalf("Generate(%d): %v", length, err)
		}
		if len(pw) != length {
			t.Errorf("Generate(%d) returned %d characters", length, len(pw))
		}
	}
}

func TestGenerate_ShortLengthFallsBackToDefault(t *testing.T) {
	g := NewGenerator()

	for _, length := range []int{0, -5, 7} {
		pw, err := g.Generate(length)
		if err != nil {
			t.Fatalf("Generate(%d): %v", length, err)
		}
		if len(pw) != defLength {
			t.Errorf("Generate(%d) returned %d characters, want %d", length, len(pw), defLength)
		}
	}
}

func TestGenerate_ContainsEveryCharacterClass(t *testing.T) {
	g := NewGenerator()

	// Small sample; each password must carry one of each class.
	for i := 0; i < 20; i++ {
		pw, err := g.Generate(12)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if !strings.ContainsAny(pw, lowercase) {
			t.Errorf("%q has no lowercase letter", pw)
		}
		if !strings.ContainsAny(pw, uppercase) {
			t.Errorf("%q has no uppercase letter", pw)
		}
		if !strings.ContainsAny(pw, digits) {
			t.Errorf("%q has no digit", pw)
		}
		if !strings.ContainsAny(pw, symbols) {
			t.Errorf("%q has no symbol", pw)
		}
	}
}

func TestGenerate_NotConstant(t *testing.T) {
	g := NewGenerator()

	a, err := g.Generate(16)
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.Generate(16)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Errorf("two generated passwords are identical: %q", a)
	}
}
