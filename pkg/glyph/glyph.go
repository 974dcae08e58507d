package glyph

// Glyph pairs a printed symbol with the alias users can type for it.
type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
}

// Symbols used on entry cards.
const (
	Pin    = "📌"
	Image  = "🖼"
	Tag    = "#"
	Clock  = "🗓"
	Search = "🔍"
)

// DefaultMoods returns the mood palette in display order.
func DefaultMoods() []Glyph {
	return []Glyph{
		{Key: "happy", Symbol: "😀", Meaning: "happy"},
		{Key: "neutral", Symbol: "😐", Meaning: "neutral"},
		{Key: "sad", Symbol: "😢", Meaning: "sad"},
		{Key: "angry", Symbol: "😡", Meaning: "angry"},
		{Key: "sleepy", Symbol: "😴", Meaning: "sleepy"},
		{Key: "excited", Symbol: "🤩", Meaning: "excited"},
		{Key: "thinking", Symbol: "🤔", Meaning: "thinking"},
		{Key: "party", Symbol: "🥳", Meaning: "celebrating"},
	}
}

func (g Glyph) String() string {
	return g.Symbol
}
