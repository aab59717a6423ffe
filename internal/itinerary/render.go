package itinerary

import (
	"html/template"
	"strings"

	"tripboard/internal/model"
)

// htmlRenderer writes blocks as page fragments. Text and details fields are
// trusted static HTML; everything else is escaped.
type htmlRenderer struct {
	b strings.Builder
}

func (r *htmlRenderer) esc(s string) string { return template.HTMLEscapeString(s) }

func (r *htmlRenderer) VisitText(b model.TextBlock) {
	r.b.WriteString(`<div class="block block-text"><p>`)
	r.b.WriteString(b.HTML)
	r.b.WriteString(`</p></div>`)
}

func (r *htmlRenderer) VisitSuggestion(b model.SuggestionBlock) {
	r.b.WriteString(`<div class="block block-suggestion"><h4>`)
	if b.Emoji != "" {
		r.b.WriteString(r.esc(b.Emoji) + " ")
	}
	r.b.WriteString(r.esc(b.Title))
	r.b.WriteString(`</h4>`)
	if b.Time != "" || b.Location != "" {
		r.b.WriteString(`<p class="meta">`)
		if b.Time != "" {
			r.b.WriteString(`<span class="time">` + r.esc(b.Time) + `</span>`)
		}
		if b.Location != "" {
			r.b.WriteString(`<span class="location">` + r.esc(b.Location) + `</span>`)
		}
		r.b.WriteString(`</p>`)
	}
	field := func(label, value string) {
		if value == "" {
			return
		}
		r.b.WriteString(`<p><strong>` + label + `:</strong> ` + r.esc(value) + `</p>`)
	}
	field("Why it fits", b.WhyItFits)
	field("Ambiance", b.Ambiance)
	field("Recommended", b.RecommendedDish)
	if b.Details != "" {
		r.b.WriteString(`<p class="details">` + b.Details + `</p>`)
	}
	r.b.WriteString(`</div>`)
}

func (r *htmlRenderer) VisitImage(b model.ImageBlock) {
	r.b.WriteString(`<figure class="block block-image"><img loading="lazy" src="`)
	r.b.WriteString(r.esc(b.Src))
	r.b.WriteString(`" alt="`)
	r.b.WriteString(r.esc(b.Alt))
	r.b.WriteString(`"></figure>`)
}

func (r *htmlRenderer) VisitOptions(b model.OptionsBlock) {
	r.b.WriteString(`<div class="block block-options">`)
	for _, o := range b.Options {
		r.b.WriteString(`<div class="option"><h4>` + r.esc(o.Title) + `</h4>`)
		r.b.WriteString(`<p>` + r.esc(o.Description) + `</p>`)
		if o.Details != "" {
			r.b.WriteString(`<p class="details">` + o.Details + `</p>`)
		}
		r.b.WriteString(`</div>`)
	}
	r.b.WriteString(`</div>`)
}

// RenderHTML renders one block.
func RenderHTML(b model.Block) template.HTML {
	r := &htmlRenderer{}
	b.Accept(r)
	return template.HTML(r.b.String())
}

// RenderDayHTML renders every block of d in order.
func RenderDayHTML(d model.Day) template.HTML {
	r := &htmlRenderer{}
	for _, b := range d.Blocks {
		b.Accept(r)
	}
	return template.HTML(r.b.String())
}

// BlockJSON is the wire form of a block, tagged by Type.
type BlockJSON struct {
	Type            string       `json:"type"`
	Content         string       `json:"content,omitempty"`
	Emoji           string       `json:"emoji,omitempty"`
	Title           string       `json:"title,omitempty"`
	Time            string       `json:"time,omitempty"`
	Location        string       `json:"location,omitempty"`
	WhyItFits       string       `json:"whyItFits,omitempty"`
	Ambiance        string       `json:"ambiance,omitempty"`
	RecommendedDish string       `json:"recommendedDish,omitempty"`
	Details         string       `json:"details,omitempty"`
	Src             string       `json:"src,omitempty"`
	Alt             string       `json:"alt,omitempty"`
	Options         []OptionJSON `json:"options,omitempty"`
}

type OptionJSON struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Details     string `json:"details,omitempty"`
}

// DayJSON is the wire form of a day.
type DayJSON struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Subtitle  string           `json:"subtitle"`
	Date      string           `json:"date"`
	Blocks    []BlockJSON      `json:"activities"`
	Locations []model.Location `json:"locations,omitempty"`
}

type jsonEncoder struct {
	out []BlockJSON
}

func (e *jsonEncoder) VisitText(b model.TextBlock) {
	e.out = append(e.out, BlockJSON{Type: "text", Content: b.HTML})
}

func (e *jsonEncoder) VisitSuggestion(b model.SuggestionBlock) {
	e.out = append(e.out, BlockJSON{
		Type:            "suggestion",
		Emoji:           b.Emoji,
		Title:           b.Title,
		Time:            b.Time,
		Location:        b.Location,
		WhyItFits:       b.WhyItFits,
		Ambiance:        b.Ambiance,
		RecommendedDish: b.RecommendedDish,
		Details:         b.Details,
	})
}

func (e *jsonEncoder) VisitImage(b model.ImageBlock) {
	e.out = append(e.out, BlockJSON{Type: "image", Src: b.Src, Alt: b.Alt})
}

func (e *jsonEncoder) VisitOptions(b model.OptionsBlock) {
	opts := make([]OptionJSON, 0, len(b.Options))
	for _, o := range b.Options {
		opts = append(opts, OptionJSON{Title: o.Title, Description: o.Description, Details: o.Details})
	}
	e.out = append(e.out, BlockJSON{Type: "options", Options: opts})
}

// ToJSON converts days into their wire form.
func ToJSON(days []model.Day) []DayJSON {
	out := make([]DayJSON, 0, len(days))
	for _, d := range days {
		enc := &jsonEncoder{out: make([]BlockJSON, 0, len(d.Blocks))}
		for _, b := range d.Blocks {
			b.Accept(enc)
		}
		out = append(out, DayJSON{
			ID:        d.ID,
			Title:     d.Title,
			Subtitle:  d.Subtitle,
			Date:      d.Date,
			Blocks:    enc.out,
			Locations: d.Locations,
		})
	}
	return out
}

// PlainText flattens a block to one line of text for terminal output.
func PlainText(b model.Block) string {
	p := &plainText{}
	b.Accept(p)
	return p.s
}

type plainText struct{ s string }

var inlineTags = strings.NewReplacer("<br>", " / ", "<strong>", "", "</strong>", "")

func stripTags(s string) string {
	s = inlineTags.Replace(s)
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (p *plainText) VisitText(b model.TextBlock) { p.s = stripTags(b.HTML) }

func (p *plainText) VisitSuggestion(b model.SuggestionBlock) {
	parts := []string{strings.TrimSpace(b.Emoji + " " + b.Title)}
	if b.Time != "" {
		parts = append(parts, b.Time)
	}
	if b.Location != "" {
		parts = append(parts, b.Location)
	}
	p.s = strings.Join(parts, " · ")
}

func (p *plainText) VisitImage(b model.ImageBlock) { p.s = "[image] " + b.Alt }

func (p *plainText) VisitOptions(b model.OptionsBlock) {
	titles := make([]string, 0, len(b.Options))
	for _, o := range b.Options {
		titles = append(titles, o.Title)
	}
	p.s = strings.Join(titles, " | ")
}
