package model

// Block is a unit of day content. The set of cases is closed: every
// implementation lives in this file and dispatch goes through
// BlockVisitor, so adding a case breaks every visitor at compile time.
type Block interface {
	Accept(v BlockVisitor)
}

// BlockVisitor has exactly one method per Block case.
type BlockVisitor interface {
	VisitText(TextBlock)
	VisitSuggestion(SuggestionBlock)
	VisitImage(ImageBlock)
	VisitOptions(OptionsBlock)
}

// TextBlock is a paragraph of trusted, static HTML.
type TextBlock struct {
	HTML string
}

// SuggestionBlock highlights a venue recommendation.
type SuggestionBlock struct {
	Emoji           string
	Title           string
	Time            string
	Location        string
	WhyItFits       string
	Ambiance        string
	RecommendedDish string
	Details         string // trusted HTML
}

// ImageBlock is an illustrative picture.
type ImageBlock struct {
	Src string
	Alt string
}

// Option is one alternative of an OptionsBlock.
type Option struct {
	Title       string
	Description string
	Details     string
}

// OptionsBlock offers alternative plans for the same slot.
type OptionsBlock struct {
	Options []Option
}

func (b TextBlock) Accept(v BlockVisitor)       { v.VisitText(b) }
func (b SuggestionBlock) Accept(v BlockVisitor) { v.VisitSuggestion(b) }
func (b ImageBlock) Accept(v BlockVisitor)      { v.VisitImage(b) }
func (b OptionsBlock) Accept(v BlockVisitor)    { v.VisitOptions(b) }
