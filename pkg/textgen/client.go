package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/vamsha/pkg/errors"
	"github.com/matzehuels/vamsha/pkg/family"
	"github.com/matzehuels/vamsha/pkg/observability"
)

// Unavailable is the narrative shown when no text service is configured.
const Unavailable = "AI service unavailable."

// Operation names reported to observability hooks.
const (
	OpTranslate = "translate"
	OpNarrate   = "narrate"
)

// Client runs translation and narrative requests with fallbacks.
// It is safe for concurrent use.
type Client struct {
	gen    Generator
	logger *log.Logger

	warnOnce sync.Once
}

// New returns a client. A nil generator makes every request fall back
// immediately; a nil logger uses log.Default().
func New(gen Generator, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{gen: gen, logger: logger}
}

// Available reports whether a generator is configured.
func (c *Client) Available() bool {
	return c.gen != nil
}

func (c *Client) unavailable() {
	c.warnOnce.Do(func() {
		c.logger.Warn("text service not configured; set GEMINI_API_KEY",
			"code", errors.ErrCodeServiceUnavailable)
	})
}

// TranslatePrompt returns the prompt asking for text in the language's
// script.
func TranslatePrompt(text string, lang family.Language) string {
	return fmt.Sprintf("Translate the name or phrase \"%s\" into %s script. Return ONLY the translated text, no explanation.", text, lang)
}

// NarrativePrompt returns the prompt asking for a short family legacy
// summary. Only names and relations are sent.
func NarrativePrompt(members family.Members, lang family.Language) string {
	type entry struct {
		Name     string `json:"name"`
		Relation string `json:"relation"`
	}
	entries := make([]entry, len(members))
	for i, m := range members {
		entries[i] = entry{Name: m.Name, Relation: m.Relation}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(entries)

	return fmt.Sprintf("Based on the following family tree structure, write a short, poetic summary of the family legacy in %s language. Keep it under 100 words. Structure: %s",
		lang, strings.TrimSpace(buf.String()))
}

func (c *Client) generate(ctx context.Context, op string, lang family.Language, prompt string) (string, error) {
	hooks := observability.Text()
	hooks.OnRequest(ctx, op, string(lang))
	start := time.Now()

	out, err := c.gen.Generate(ctx, prompt)
	out = strings.TrimSpace(out)
	if err == nil && out == "" {
		err = errors.New(errors.ErrCodeEmptyResponse, "%s returned no text", op)
	}
	hooks.OnResponse(ctx, op, string(lang), time.Since(start), err)
	if err != nil {
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeNetwork
		}
		c.logger.Error("text service request failed", "op", op, "language", lang, "code", code, "err", err)
		return "", err
	}
	return out, nil
}

// Translate renders text in the language's script. It returns text
// unchanged when no service is configured, the request fails, or the
// response is empty. Blank text is returned without a request.
func (c *Client) Translate(ctx context.Context, text string, lang family.Language) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	if c.gen == nil {
		c.unavailable()
		return text
	}
	out, err := c.generate(ctx, OpTranslate, lang, TranslatePrompt(text, lang))
	if err != nil {
		return text
	}
	return out
}

// Pair is the result of translating a member's name and spouse name.
type Pair struct {
	Name   string
	Spouse string // empty when no spouse name was given
}

// TranslatePair translates a name and a spouse name concurrently and
// returns both once both requests have finished. An empty spouse name is
// not sent and yields an empty Spouse.
func (c *Client) TranslatePair(ctx context.Context, name, spouse string, lang family.Language) Pair {
	var p Pair
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p.Name = c.Translate(gctx, name, lang)
		return nil
	})
	if spouse != "" {
		g.Go(func() error {
			p.Spouse = c.Translate(gctx, spouse, lang)
			return nil
		})
	}
	_ = g.Wait()
	return p
}

// Narrate writes a short poetic summary of the family in the language.
// It returns [Unavailable] when no service is configured and "" when the
// request fails or the response is empty.
func (c *Client) Narrate(ctx context.Context, members family.Members, lang family.Language) string {
	if c.gen == nil {
		c.unavailable()
		return Unavailable
	}
	out, err := c.generate(ctx, OpNarrate, lang, NarrativePrompt(members, lang))
	if err != nil {
		return ""
	}
	return out
}
