package scene

import (
	"math"

	"github.com/matzehuels/vamsha/pkg/family"
	"github.com/matzehuels/vamsha/pkg/fonts"
	"github.com/matzehuels/vamsha/pkg/hierarchy"
	"github.com/matzehuels/vamsha/pkg/layout"
)

// Card geometry relative to the card centre.
const (
	CardWidth    = 220.0
	CardHeight   = 110.0
	CardRadius   = 12.0
	AvatarY      = -55.0
	AvatarRadius = 24.0
	MaxNameWidth = 200.0
)

// Colours.
const (
	ColorCardFill       = "#ffffff"
	ColorCardStroke     = "#e5e7eb"
	ColorSelectedFill   = "#fef2f2"
	ColorSelectedStroke = "#dc2626"
	ColorAvatarFemale   = "#fee2e2"
	ColorAvatarDefault  = "#f3f4f6"
	ColorAvatarRing     = "#ffffff"
	ColorGlyph          = "#374151"
	ColorName           = "#111827"
	ColorRegional       = "#dc2626"
	ColorSpouse         = "#4b5563"
	ColorSpouseRegional = "#ef4444"
	ColorConnector      = "#d1d5db"
	ColorDiagnostic     = "#ef4444"
	ColorBackground     = "#ffffff"
)

// Text roles, in drawing order.
const (
	RoleGlyph          = "glyph"
	RoleName           = "name"
	RoleRegional       = "regional"
	RoleSpouse         = "spouse"
	RoleSpouseRegional = "spouse-regional"
)

// SpouseMarker prefixes the spouse line.
const SpouseMarker = "❤ "

// Paint is a fill and stroke pair.
type Paint struct {
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// Circle is the avatar disc, centre-relative.
type Circle struct {
	CX    float64 `json:"cx"`
	CY    float64 `json:"cy"`
	R     float64 `json:"r"`
	Paint Paint   `json:"paint"`
}

// Text is one centred text line. Y is the baseline offset from the card
// centre.
type Text struct {
	Role    string      `json:"role"`
	Content string      `json:"content"`
	Y       float64     `json:"y"`
	Size    float64     `json:"size"`
	Weight  int         `json:"weight"`
	Color   string      `json:"color"`
	Font    fonts.Style `json:"-"`
}

// Card is a member drawn at its layout position.
type Card struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Depth    int     `json:"depth"`
	Selected bool    `json:"selected,omitempty"`
	Box      Paint   `json:"box"`
	Avatar   Circle  `json:"avatar"`
	Texts    []Text  `json:"texts"`
	Photo    string  `json:"photo,omitempty"`
}

// Rect returns the card rectangle in scene coordinates.
func (c Card) Rect() layout.Rect {
	return layout.Rect{
		MinX: c.X - CardWidth/2,
		MinY: c.Y - CardHeight/2,
		MaxX: c.X + CardWidth/2,
		MaxY: c.Y + CardHeight/2,
	}
}

// AvatarRect returns the bounding box of the avatar disc in scene coordinates.
func (c Card) AvatarRect() layout.Rect {
	cx, cy := c.X+c.Avatar.CX, c.Y+c.Avatar.CY
	return layout.Rect{MinX: cx - c.Avatar.R, MinY: cy - c.Avatar.R, MaxX: cx + c.Avatar.R, MaxY: cy + c.Avatar.R}
}

// Text returns the line with the given role.
func (c Card) Text(role string) (Text, bool) {
	for _, t := range c.Texts {
		if t.Role == role {
			return t, true
		}
	}
	return Text{}, false
}

// contains reports whether the scene point lies on the card or its avatar.
func (c Card) contains(x, y float64) bool {
	if c.Rect().Contains(x, y) {
		return true
	}
	dx, dy := x-(c.X+c.Avatar.CX), y-(c.Y+c.Avatar.CY)
	return dx*dx+dy*dy <= c.Avatar.R*c.Avatar.R
}

// Connector is a vertical cubic curve from a parent's centre to a child's.
type Connector struct {
	From        string  `json:"from"`
	To          string  `json:"to"`
	X0          float64 `json:"x0"`
	Y0          float64 `json:"y0"`
	X1          float64 `json:"x1"`
	Y1          float64 `json:"y1"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// Controls returns the two control points of the curve.
func (c Connector) Controls() (cx0, cy0, cx1, cy1 float64) {
	ym := (c.Y0 + c.Y1) / 2
	return c.X0, ym, c.X1, ym
}

// Scene is the drawable form of a laid-out tree.
type Scene struct {
	Cards      []Card      `json:"cards"`      // drawn in order, last on top
	Connectors []Connector `json:"connectors"` // drawn beneath cards
	Width      float64     `json:"width"`      // surface
	Height     float64     `json:"height"`
	Diagnostic string      `json:"diagnostic,omitempty"`

	index map[string]int
}

// Options configures [Build].
type Options struct {
	Selected string   // highlighted member; unknown identities highlight nothing
	Measurer Measurer // defaults to the embedded Go fonts
	Width    float64  // surface size, defaults to the layout's
	Height   float64
}

// Build converts a layout of t into a scene. A nil tree or empty layout
// yields an empty scene.
func Build(l layout.Layout, t *hierarchy.Tree, opts Options) *Scene {
	if opts.Measurer == nil {
		opts.Measurer = fonts.Default()
	}
	s := &Scene{Width: opts.Width, Height: opts.Height}
	if s.Width <= 0 {
		s.Width = l.Width
	}
	if s.Height <= 0 {
		s.Height = l.Height
	}
	if t == nil || len(l.Nodes) == 0 {
		return s
	}

	s.index = make(map[string]int, len(l.Nodes))
	for _, ln := range l.Links {
		from, ok1 := l.Position(ln.From)
		to, ok2 := l.Position(ln.To)
		if !ok1 || !ok2 {
			continue
		}
		s.Connectors = append(s.Connectors, Connector{
			From: ln.From, To: ln.To,
			X0: from.X, Y0: from.Y, X1: to.X, Y1: to.Y,
			Stroke: ColorConnector, StrokeWidth: 2,
		})
	}

	for _, ln := range l.Nodes {
		n, ok := t.Node(ln.ID)
		if !ok {
			continue
		}
		s.index[ln.ID] = len(s.Cards)
		s.Cards = append(s.Cards, newCard(ln, n.Member, ln.ID == opts.Selected, opts.Measurer))
	}
	return s
}

func newCard(ln layout.Node, m family.Member, selected bool, ms Measurer) Card {
	c := Card{
		ID:       ln.ID,
		X:        ln.X,
		Y:        ln.Y,
		Depth:    ln.Depth,
		Selected: selected,
		Box:      Paint{Fill: ColorCardFill, Stroke: ColorCardStroke, StrokeWidth: 1},
		Avatar: Circle{
			CY: AvatarY, R: AvatarRadius,
			Paint: Paint{Fill: ColorAvatarDefault, Stroke: ColorAvatarRing, StrokeWidth: 2},
		},
		Photo: m.PhotoURL,
	}
	if m.Gender == family.GenderFemale {
		c.Avatar.Paint.Fill = ColorAvatarFemale
	}
	if selected {
		c.Box = Paint{Fill: ColorSelectedFill, Stroke: ColorSelectedStroke, StrokeWidth: 3}
		c.Avatar.Paint.Stroke = ColorSelectedStroke
	}

	nameStyle := styleFor(ms, fonts.Bold, m.Name)
	c.Texts = append(c.Texts,
		Text{Role: RoleGlyph, Content: m.Gender.Glyph(), Y: -48, Size: 14, Weight: 400, Color: ColorGlyph, Font: fonts.Regular},
		Text{Role: RoleName, Content: Truncate(m.Name, MaxNameWidth, ms, nameStyle, 16), Y: -10, Size: 16, Weight: 700, Color: ColorName, Font: nameStyle},
		Text{Role: RoleRegional, Content: m.RegionalName, Y: 12, Size: 15, Weight: 500, Color: ColorRegional, Font: fonts.Script},
	)
	if m.HasSpouse() {
		c.Texts = append(c.Texts, Text{Role: RoleSpouse, Content: SpouseMarker + m.SpouseName, Y: 32, Size: 13, Weight: 400, Color: ColorSpouse, Font: styleFor(ms, fonts.Regular, m.SpouseName)})
		if m.SpouseRegionalName != "" {
			c.Texts = append(c.Texts, Text{Role: RoleSpouseRegional, Content: m.SpouseRegionalName, Y: 48, Size: 13, Weight: 400, Color: ColorSpouseRegional, Font: fonts.Script})
		}
	}
	return c
}

// Invalid returns a scene that shows msg instead of a diagram.
func Invalid(msg string, width, height float64) *Scene {
	return &Scene{Width: width, Height: height, Diagnostic: msg}
}

// Empty reports whether the scene has nothing to draw besides a diagnostic.
func (s *Scene) Empty() bool {
	return s == nil || len(s.Cards) == 0
}

// Card returns the card for a member identity.
func (s *Scene) Card(id string) (Card, bool) {
	if s == nil {
		return Card{}, false
	}
	if s.index != nil {
		i, ok := s.index[id]
		if !ok {
			return Card{}, false
		}
		return s.Cards[i], true
	}
	for _, c := range s.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// Selected returns the highlighted card, if any.
func (s *Scene) Selected() (Card, bool) {
	if s == nil {
		return Card{}, false
	}
	for _, c := range s.Cards {
		if c.Selected {
			return c, true
		}
	}
	return Card{}, false
}

// Bounds returns the box around everything drawn: card rectangles and
// avatar discs. An empty scene has zero bounds.
func (s *Scene) Bounds() layout.Rect {
	if s.Empty() {
		return layout.Rect{}
	}
	b := s.Cards[0].Rect()
	for _, c := range s.Cards {
		b = b.Union(c.Rect()).Union(c.AvatarRect())
	}
	return b
}

// HitTest returns the identity of the topmost card under the scene point.
func (s *Scene) HitTest(x, y float64) (string, bool) {
	if s == nil {
		return "", false
	}
	for i := len(s.Cards) - 1; i >= 0; i-- {
		if s.Cards[i].contains(x, y) {
			return s.Cards[i].ID, true
		}
	}
	return "", false
}

// Extent returns the bounds grown by padding on every side, rounded out to
// whole units.
func (s *Scene) Extent(padding float64) layout.Rect {
	b := s.Bounds().Inset(padding)
	return layout.Rect{
		MinX: math.Floor(b.MinX),
		MinY: math.Floor(b.MinY),
		MaxX: math.Ceil(b.MaxX),
		MaxY: math.Ceil(b.MaxY),
	}
}
