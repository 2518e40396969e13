package services

import (
	"regexp"
	"testing"

	"github.com/camden-git/clientsysbackend/models"
)

// fakeClientRepo satisfies repository.ClientRepository with a fixed set of
// taken codes so the probing loop can be exercised without a database.
type fakeClientRepo struct {
	takenCodes map[string]bool
}

func (f *fakeClientRepo) Create(*models.Client) error                  { return nil }
func (f *fakeClientRepo) GetByID(uint) (*models.Client, error)         { return nil, nil }
func (f *fakeClientRepo) ListAll() ([]models.Client, error)            { return nil, nil }
func (f *fakeClientRepo) Update(uint, *string) (*models.Client, error) { return nil, nil }
func (f *fakeClientRepo) Delete(uint) error                            { return nil }
func (f *fakeClientRepo) CodeExists(code string) (bool, error)         { return f.takenCodes[code], nil }

func TestDeriveAlphaPart(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"three words", "Acme Corp Partners", "ACP"},
		{"more than three words", "Acme Corp Partners International", "ACP"},
		{"two words", "Acme Corp", "ACO"},
		{"one word", "Acme", "ACM"},
		{"one short word", "Go", "GOB"},
		{"single letter", "x", "XAB"},
		{"two single-letter words", "A B", "ABB"},
		{"lowercase input", "acme corp partners", "ACP"},
		{"extra whitespace", "  Acme   Corp  Partners ", "ACP"},
		{"empty name", "", "AAA"},
		{"whitespace-only name", "   ", "AAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveAlphaPart(tt.input)
			if got != tt.expected {
				t.Errorf("DeriveAlphaPart(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestGenerateStartsAtOne(t *testing.T) {
	gen := NewCodeGenerator(&fakeClientRepo{takenCodes: map[string]bool{}})

	code, err := gen.Generate("Acme Corp Partners")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if code != "ACP001" {
		t.Errorf("Generate = %q, expected ACP001", code)
	}
}

func TestGenerateSkipsTakenSuffixes(t *testing.T) {
	repo := &fakeClientRepo{takenCodes: map[string]bool{
		"ACP001": true,
		"ACP002": true,
	}}
	gen := NewCodeGenerator(repo)

	code, err := gen.Generate("Acme Cool Products")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if code != "ACP003" {
		t.Errorf("Generate = %q, expected ACP003", code)
	}
}

func TestGenerateShape(t *testing.T) {
	codeShape := regexp.MustCompile(`^[A-Z]{3}[0-9]{3}$`)
	gen := NewCodeGenerator(&fakeClientRepo{takenCodes: map[string]bool{}})

	names := []string{
		"Acme Corp Partners",
		"Acme Corp",
		"Acme",
		"Go",
		"x",
		"",
		"one two three four five",
	}
	for _, name := range names {
		code, err := gen.Generate(name)
		if err != nil {
			t.Fatalf("Generate(%q) returned error: %v", name, err)
		}
		if !codeShape.MatchString(code) {
			t.Errorf("Generate(%q) = %q, does not match AAA###", name, code)
		}
	}
}
