package filter

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `contains(email, "@example.com")`,
			wantErr:    false,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `contains(email, "unclosed`,
			wantErr:    true,
		},
		{
			name:       "wrong helper arity",
			expression: `lower("a", "b") == "a"`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `isActive and has("email") and daysSince(fromMillis(createdAt)) > 30`,
			wantErr:    false,
		},
	}

	compiler := NewCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error but got none")
				}
				var compErr *CompilationError
				if !errors.As(err, &compErr) {
					t.Errorf("expected CompilationError, got %T", err)
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.Expression() != strings.TrimSpace(tt.expression) {
				t.Errorf("Expression() = %q", f.Expression())
			}
		})
	}
}

func TestMatch(t *testing.T) {
	created := float64(time.Now().AddDate(0, -2, 0).UnixMilli())
	owner := Record{
		"ownerId":   float64(42),
		"email":     "Jane@Example.com",
		"firstName": "Jane",
		"isActive":  true,
		"createdAt": created,
		"remoteList": []any{
			map[string]any{"remoteType": "HUBSPOT"},
		},
	}

	tests := []struct {
		name       string
		expression string
		want       bool
	}{
		{"string helper is case insensitive", `contains(email, "example.com")`, true},
		{"starts with", `startsWith(firstName, "ja")`, true},
		{"ends with", `endsWith(email, ".org")`, false},
		{"numeric comparison", `ownerId == 42`, true},
		{"boolean field", `isActive`, true},
		{"negation", `not isActive`, false},
		{"has present field", `has("firstName")`, true},
		{"has missing field", `has("lastName")`, false},
		{"record index", `record["firstName"] == "Jane"`, true},
		{"date from millis", `daysSince(fromMillis(createdAt)) >= 55`, true},
		{"parse date", `fromMillis(createdAt).After(parseDate("2000-01-01"))`, true},
		{"upper", `upper(firstName) == "JANE"`, true},
		{"nested list", `len(remoteList) == 1`, true},
		{"undefined variable errors as no match", `contains(lastName, "x")`, false},
	}

	compiler := NewCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			if got := f.Match(owner); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateError(t *testing.T) {
	f, err := NewCompiler().Compile(`contains(missing, "x")`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	_, err = f.Evaluate(Record{})
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %v", err)
	}
	if evalErr.Expression != `contains(missing, "x")` {
		t.Errorf("unexpected expression %q", evalErr.Expression)
	}
}

func TestApply(t *testing.T) {
	records := []Record{
		{"name": "Cool Stuff", "slug": "cool-stuff"},
		{"name": "News", "slug": "news"},
		{"name": "Cool Events", "slug": "events"},
	}

	f, err := Compile(`startsWith(name, "cool")`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	got := f.Apply(records)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0]["slug"] != "cool-stuff" || got[1]["slug"] != "events" {
		t.Errorf("unexpected order: %v", got)
	}
}

func TestCompilerCache(t *testing.T) {
	compiler := NewCompiler(WithCache(2))

	first, err := compiler.Compile(`isActive`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	again, _ := compiler.Compile(`  isActive  `)
	if first != again {
		t.Errorf("expected cached filter to be reused")
	}

	compiler.Compile(`has("a")`)
	compiler.Compile(`has("b")`)
	if size := compiler.Size(); size != 2 {
		t.Errorf("Size() = %d, want 2", size)
	}

	compiler.Clear()
	if size := compiler.Size(); size != 0 {
		t.Errorf("Size() after Clear = %d, want 0", size)
	}

	if NewCompiler().Size() != 0 {
		t.Errorf("uncached compiler should report zero size")
	}
}

func TestCustomFunctions(t *testing.T) {
	compiler := NewCompiler(WithCustomFunctions(map[string]any{
		"domain": func(email string) string {
			_, d, _ := strings.Cut(email, "@")
			return d
		},
	}))

	f, err := compiler.Compile(`domain(email) == "example.com"`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !f.Match(Record{"email": "a@example.com"}) {
		t.Errorf("expected match")
	}
}

func TestFromMillis(t *testing.T) {
	want := time.UnixMilli(1500000000000)
	for _, v := range []any{float64(1500000000000), int64(1500000000000), 1500000000000, "1500000000000"} {
		if got := fromMillis(v); !got.Equal(want) {
			t.Errorf("fromMillis(%T) = %v", v, got)
		}
	}
	if !fromMillis(nil).IsZero() {
		t.Errorf("fromMillis(nil) should be zero")
	}
}
