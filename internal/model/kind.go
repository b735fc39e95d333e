package model

// ElementKind classifies an element for style-inventory purposes.
// The set of kinds is closed: analysis code switches exhaustively over it
// rather than branching on raw tag-name strings.
type ElementKind int

// Element kind constants.
const (
	// KindGeneric is any element not covered by a specific kind.
	KindGeneric ElementKind = iota
	// KindHeading is h1 through h6.
	KindHeading
	// KindParagraph is body copy: p, li, blockquote, span.
	KindParagraph
	// KindButton is a button element, a submit/button input, or a
	// button-styled anchor.
	KindButton
	// KindLink is an anchor that is not button-styled.
	KindLink
)

// String returns the kind name for logging.
func (k ElementKind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindButton:
		return "button"
	case KindLink:
		return "link"
	case KindGeneric:
		return "generic"
	}
	return "generic"
}

// Style taxonomy keys. Each inventory map in PageResult and
// AccumulatedReport is keyed by the fixed sub-types listed here.
var (
	// HeadingLevels are the heading sub-types.
	HeadingLevels = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

	// ParagraphKinds are the body-copy sub-types.
	ParagraphKinds = []string{"p", "li", "blockquote", "span"}

	// ButtonKinds are the button sub-types.
	ButtonKinds = []string{"primary", "secondary", "other"}

	// LinkKinds are the link sub-types, by structural location.
	LinkKinds = []string{"content", "nav", "footer"}
)

// headingKinds is the lookup set for KindHeading classification.
var headingKinds = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// paragraphKinds is the lookup set for KindParagraph classification.
var paragraphKinds = map[string]bool{
	"p": true, "li": true, "blockquote": true, "span": true,
}

// ClassifyElement maps a lower-cased tag name to an ElementKind.
// buttonStyled reports whether an anchor carries button styling; it is
// only consulted for "a" elements.
func ClassifyElement(tagName string, buttonStyled bool) ElementKind {
	switch {
	case headingKinds[tagName]:
		return KindHeading
	case paragraphKinds[tagName]:
		return KindParagraph
	case tagName == "button":
		return KindButton
	case tagName == "a" && buttonStyled:
		return KindButton
	case tagName == "a":
		return KindLink
	default:
		return KindGeneric
	}
}
