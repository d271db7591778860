package textgen

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/matzehuels/vamsha/pkg/family"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

type fakeGenerator struct {
	mu      sync.Mutex
	prompts []string
	reply   func(prompt string) (string, error)
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return f.reply(prompt)
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func quiet() *log.Logger {
	return log.New(io.Discard)
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name  string
		reply func(string) (string, error)
		text  string
		want  string
		calls int
	}{
		{
			name:  "success trimmed",
			reply: func(string) (string, error) { return "  राम\n", nil },
			text:  "Ram",
			want:  "राम",
			calls: 1,
		},
		{
			name:  "error falls back",
			reply: func(string) (string, error) { return "", fmt.Errorf("boom") },
			text:  "Ram",
			want:  "Ram",
			calls: 1,
		},
		{
			name:  "empty response falls back",
			reply: func(string) (string, error) { return "   ", nil },
			text:  "Ram",
			want:  "Ram",
			calls: 1,
		},
		{
			name:  "blank text skips request",
			reply: func(string) (string, error) { return "x", nil },
			text:  "  ",
			want:  "  ",
			calls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{reply: tt.reply}
			c := New(gen, quiet())
			if got := c.Translate(context.Background(), tt.text, family.Hindi); got != tt.want {
				t.Errorf("Translate() = %q, want %q", got, tt.want)
			}
			if got := gen.calls(); got != tt.calls {
				t.Errorf("calls = %d, want %d", got, tt.calls)
			}
		})
	}
}

func TestTranslateUnavailable(t *testing.T) {
	c := New(nil, quiet())
	if c.Available() {
		t.Fatal("Available() = true without generator")
	}
	if got := c.Translate(context.Background(), "Ram", family.Tamil); got != "Ram" {
		t.Errorf("Translate() = %q, want input", got)
	}
	if got := c.Narrate(context.Background(), family.Seed(), family.Tamil); got != Unavailable {
		t.Errorf("Narrate() = %q, want %q", got, Unavailable)
	}
}

func TestTranslatePrompt(t *testing.T) {
	want := `Translate the name or phrase "Sita Devi" into Bengali script. Return ONLY the translated text, no explanation.`
	if got := TranslatePrompt("Sita Devi", family.Bengali); got != want {
		t.Errorf("TranslatePrompt() =\n%s\nwant\n%s", got, want)
	}
}

func TestTranslatePair(t *testing.T) {
	reply := func(p string) (string, error) {
		switch {
		case strings.Contains(p, `"Ram"`):
			return "राम", nil
		case strings.Contains(p, `"Sita"`):
			return "सीता", nil
		}
		return "", fmt.Errorf("unexpected prompt %q", p)
	}

	t.Run("both", func(t *testing.T) {
		gen := &fakeGenerator{reply: reply}
		got := New(gen, quiet()).TranslatePair(context.Background(), "Ram", "Sita", family.Hindi)
		if diff := cmp.Diff(Pair{Name: "राम", Spouse: "सीता"}, got); diff != "" {
			t.Errorf("TranslatePair() mismatch (-want +got):\n%s", diff)
		}
		if gen.calls() != 2 {
			t.Errorf("calls = %d, want 2", gen.calls())
		}
	})

	t.Run("no spouse", func(t *testing.T) {
		gen := &fakeGenerator{reply: reply}
		got := New(gen, quiet()).TranslatePair(context.Background(), "Ram", "", family.Hindi)
		if diff := cmp.Diff(Pair{Name: "राम"}, got); diff != "" {
			t.Errorf("TranslatePair() mismatch (-want +got):\n%s", diff)
		}
		if gen.calls() != 1 {
			t.Errorf("calls = %d, want 1", gen.calls())
		}
	})

	t.Run("spouse failure keeps input", func(t *testing.T) {
		gen := &fakeGenerator{reply: func(p string) (string, error) {
			if strings.Contains(p, `"Sita"`) {
				return "", fmt.Errorf("quota")
			}
			return "राम", nil
		}}
		got := New(gen, quiet()).TranslatePair(context.Background(), "Ram", "Sita", family.Hindi)
		if diff := cmp.Diff(Pair{Name: "राम", Spouse: "Sita"}, got); diff != "" {
			t.Errorf("TranslatePair() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestNarrate(t *testing.T) {
	members := family.Members{
		{ID: "a", Name: "Ram & Sons", Relation: family.RelationRoot, BirthDate: "1900"},
		{ID: "b", ParentID: "a", Name: "Lav", Relation: family.RelationSon},
	}

	t.Run("prompt", func(t *testing.T) {
		want := `Based on the following family tree structure, write a short, poetic summary of the family legacy in Marathi language. Keep it under 100 words. Structure: [{"name":"Ram & Sons","relation":"Root"},{"name":"Lav","relation":"Son"}]`
		if got := NarrativePrompt(members, family.Marathi); got != want {
			t.Errorf("NarrativePrompt() =\n%s\nwant\n%s", got, want)
		}
	})

	t.Run("success", func(t *testing.T) {
		gen := &fakeGenerator{reply: func(string) (string, error) { return "A legacy.\n", nil }}
		if got := New(gen, quiet()).Narrate(context.Background(), members, family.Marathi); got != "A legacy." {
			t.Errorf("Narrate() = %q", got)
		}
	})

	t.Run("failure", func(t *testing.T) {
		gen := &fakeGenerator{reply: func(string) (string, error) { return "", fmt.Errorf("boom") }}
		if got := New(gen, quiet()).Narrate(context.Background(), members, family.Marathi); got != "" {
			t.Errorf("Narrate() = %q, want empty", got)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		gen := &fakeGenerator{reply: func(string) (string, error) { return "late", nil }}
		if got := New(gen, quiet()).Narrate(ctx, members, family.Marathi); got != "" {
			t.Errorf("Narrate() = %q, want empty", got)
		}
	})
}

func TestNewGenAIRequiresKey(t *testing.T) {
	if _, err := NewGenAI(context.Background(), "", ""); err == nil {
		t.Fatal("NewGenAI() with empty key succeeded")
	}
}
