package model

// PromptTemplate is a predefined prompt offered to the user for a media kind
type PromptTemplate struct {
	Icon     string
	Text     string
	Category string
	Kind     MediaKind
}

var imageTemplates = []PromptTemplate{
	{Icon: "✨", Text: "Космический пейзаж с туманностями", Category: "Природа", Kind: KindImage},
	{Icon: "🎨", Text: "Абстрактное искусство в стиле киберпанк", Category: "Арт", Kind: KindImage},
	{Icon: "📷", Text: "Портрет в стиле ренессанс", Category: "Портрет", Kind: KindImage},
	{Icon: "⚡", Text: "Футуристический город с неоновыми огнями", Category: "Фантастика", Kind: KindImage},
}

var videoTemplates = []PromptTemplate{
	{Icon: "🎬", Text: "Облака движутся над горным пейзажем", Category: "Природа", Kind: KindVideo},
	{Icon: "🌊", Text: "Океанские волны разбиваются о берег", Category: "Вода", Kind: KindVideo},
	{Icon: "🔥", Text: "Огонь танцует в камине", Category: "Огонь", Kind: KindVideo},
	{Icon: "🌌", Text: "Северное сияние в ночном небе", Category: "Небо", Kind: KindVideo},
}

// TemplatesFor returns a copy of the built-in templates for kind
func TemplatesFor(kind MediaKind) []PromptTemplate {
	var src []PromptTemplate
	switch kind {
	case KindImage:
		src = imageTemplates
	case KindVideo:
		src = videoTemplates
	default:
		return nil
	}
	out := make([]PromptTemplate, len(src))
	copy(out, src)
	return out
}
