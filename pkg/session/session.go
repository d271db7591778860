package session

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vamsha/pkg/errors"
	"github.com/matzehuels/vamsha/pkg/family"
	"github.com/matzehuels/vamsha/pkg/layout"
	"github.com/matzehuels/vamsha/pkg/pipeline"
	"github.com/matzehuels/vamsha/pkg/textgen"
)

// Session is the mutable editor state. It is safe for concurrent use.
type Session struct {
	mu sync.RWMutex

	runner *pipeline.Runner
	logger *log.Logger

	members  family.Members
	selected string
	lang     family.Language
	width    float64
	height   float64
	story    string
	modified bool

	// seq is bumped on every tracked change. gens records the seq of each
	// member's last edit; storyGen the seq of the last change a story
	// depends on.
	seq      uint64
	gens     map[string]uint64
	storyGen uint64
}

// New starts a session over members. An empty collection starts from
// [family.Seed]. A nil runner uses the default fonts and logger.
func New(members family.Members, runner *pipeline.Runner, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(logger, nil)
	}
	if len(members) == 0 {
		members = family.Seed()
	}
	s := &Session{
		runner:  runner,
		logger:  logger,
		members: members.Clone(),
		lang:    family.DefaultLanguage,
		width:   layout.DefaultWidth,
		height:  layout.DefaultHeight,
		gens:    make(map[string]uint64, len(members)),
	}
	return s
}

// bump records a change to id, or a collection-wide change when id is "".
// Callers hold the write lock.
func (s *Session) bump(id string) {
	s.seq++
	if id != "" {
		s.gens[id] = s.seq
	}
	s.storyGen = s.seq
	s.modified = true
}

// Members returns a copy of the collection.
func (s *Session) Members() family.Members {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.members.Clone()
}

// Member returns the member with the given identity.
func (s *Session) Member(id string) (family.Member, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.members.Find(id)
}

// Selected returns the selected member identity, or "".
func (s *Session) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Language returns the target language.
func (s *Session) Language() family.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lang
}

// Dimensions returns the drawing surface size.
func (s *Session) Dimensions() (width, height float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

// Story returns the last family narrative, or "".
func (s *Session) Story() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.story
}

// Modified reports whether the collection changed since the session
// started or since the last [Session.MarkSaved].
func (s *Session) Modified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modified
}

// MarkSaved clears the modified flag.
func (s *Session) MarkSaved() {
	s.mu.Lock()
	s.modified = false
	s.mu.Unlock()
}

// UpdateMember replaces the member with m's identity. Any translation in
// flight for that member is invalidated.
func (s *Session) UpdateMember(m family.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.members.Update(m)
	if err != nil {
		return err
	}
	s.members = updated
	s.bump(m.ID)
	return nil
}

// AddChild appends a placeholder child of parentID, selects it and returns
// its identity.
func (s *Session) AddChild(parentID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := family.NewID()
	updated, err := s.members.AddChild(parentID, id)
	if err != nil {
		return "", err
	}
	s.members = updated
	s.selected = id
	s.bump(id)
	s.logger.Debug("added member", "id", id, "parent", parentID)
	return id, nil
}

// DeleteSubtree removes id and all its descendants and clears the
// selection. The root cannot be deleted.
func (s *Session) DeleteSubtree(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.members.DeleteSubtree(id)
	if err != nil {
		return err
	}
	removed := len(s.members) - len(updated)
	for _, m := range s.members {
		if _, ok := updated.Find(m.ID); !ok {
			delete(s.gens, m.ID)
		}
	}
	s.members = updated
	s.selected = ""
	s.bump("")
	s.logger.Debug("deleted subtree", "id", id, "removed", removed)
	return nil
}

// Select highlights a member. An empty id clears the selection.
func (s *Session) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if _, ok := s.members.Find(id); !ok {
			return errors.New(errors.ErrCodeNotFound, "member %q not found", id)
		}
	}
	s.selected = id
	return nil
}

// SetLanguage changes the target language for later requests.
func (s *Session) SetLanguage(lang family.Language) error {
	if !lang.Valid() {
		return errors.New(errors.ErrCodeInvalidLanguage, "unsupported language %q", lang)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if lang != s.lang {
		s.lang = lang
		s.seq++
		s.storyGen = s.seq
	}
	return nil
}

// SetDimensions resizes the drawing surface.
func (s *Session) SetDimensions(width, height float64) error {
	if !(width > 0) || !(height > 0) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid surface size %gx%g", width, height)
	}
	s.mu.Lock()
	s.width, s.height = width, height
	s.mu.Unlock()
	return nil
}

// SetStory replaces the family narrative.
func (s *Session) SetStory(text string) {
	s.mu.Lock()
	s.story = text
	s.mu.Unlock()
}

// View derives the displayable state from a snapshot of the session.
func (s *Session) View(ctx context.Context) pipeline.View {
	s.mu.RLock()
	members := s.members.Clone()
	opts := pipeline.Options{Selected: s.selected, Width: s.width, Height: s.height}
	s.mu.RUnlock()

	return s.runner.Derive(ctx, members, opts)
}

// Ticket identifies a translation request and the inputs it was issued with.
type Ticket struct {
	ID       string
	Name     string
	Spouse   string
	Language family.Language

	gen uint64
}

// BeginTranslation captures the member's current name, spouse name and the
// session language for a translation request.
func (s *Session) BeginTranslation(id string) (Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members.Find(id)
	if !ok {
		return Ticket{}, errors.New(errors.ErrCodeNotFound, "member %q not found", id)
	}
	return Ticket{
		ID:       id,
		Name:     m.Name,
		Spouse:   m.SpouseName,
		Language: s.lang,
		gen:      s.gens[id],
	}, nil
}

// ApplyTranslation writes a finished translation to the ticket's member.
// RegionalName is always replaced; SpouseRegionalName only when the member
// has a spouse and the result carries a spouse translation. It returns
// false without changing anything when the member was edited or deleted
// after the ticket was issued.
func (s *Session) ApplyTranslation(t Ticket, p textgen.Pair) (bool, error) {
	if t.ID == "" {
		return false, errors.New(errors.ErrCodeInvalidInput, "translation ticket has no member")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members.Find(t.ID)
	if !ok {
		s.logger.Warn("dropping translation for deleted member", "id", t.ID)
		return false, nil
	}
	if s.gens[t.ID] != t.gen {
		s.logger.Warn("dropping stale translation", "id", t.ID)
		return false, nil
	}

	m.RegionalName = p.Name
	if m.HasSpouse() && p.Spouse != "" {
		m.SpouseRegionalName = p.Spouse
	}
	updated, err := s.members.Update(m)
	if err != nil {
		return false, err
	}
	s.members = updated
	s.modified = true
	return true, nil
}

// StoryTicket identifies a narrative request and its inputs.
type StoryTicket struct {
	Members  family.Members
	Language family.Language

	gen uint64
}

// BeginStory captures the collection and language for a narrative request.
func (s *Session) BeginStory() StoryTicket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StoryTicket{Members: s.members.Clone(), Language: s.lang, gen: s.storyGen}
}

// ApplyStory stores a finished narrative unless the collection or language
// changed after the ticket was issued.
func (s *Session) ApplyStory(t StoryTicket, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.gen != s.storyGen {
		s.logger.Warn("dropping stale story", "language", t.Language)
		return false
	}
	s.story = text
	return true
}
