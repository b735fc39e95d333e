package audit

import (
	"context"
	"log/slog"
	"strings"

	"github.com/designlens/designlens/internal/dom"
	"github.com/designlens/designlens/internal/model"
	"github.com/designlens/designlens/internal/selector"
	"golang.org/x/net/html"
)

// textSampleLimit bounds the text sample stored per style location.
const textSampleLimit = 80

// InventoryStep populates the style inventory: headings, paragraphs,
// buttons, and links into their taxonomy maps, plus the image list.
type InventoryStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// InventoryStepOption configures an InventoryStep.
type InventoryStepOption func(*InventoryStep)

// WithInventoryLogger sets a custom logger for the inventory step.
func WithInventoryLogger(logger *slog.Logger) InventoryStepOption {
	return func(s *InventoryStep) {
		s.logger = logger
	}
}

// NewInventoryStep creates a new style-inventory step.
func NewInventoryStep(opts ...InventoryStepOption) *InventoryStep {
	s := &InventoryStep{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *InventoryStep) Name() string {
	return "style_inventory"
}

// Do walks every element once, classifying it into the closed element
// kind set and recording a style location for the matching sub-type.
func (s *InventoryStep) Do(_ context.Context, page *dom.Document, result *model.PageResult) error {
	page.Each(func(el *dom.Element) {
		tag := el.TagName()

		if tag == "img" {
			result.Images = append(result.Images, model.ImageInfo{
				Page:     page.URL,
				Src:      el.Attr("src"),
				Alt:      strings.TrimSpace(el.Attr("alt")),
				Selector: selector.Generate(el),
			})
			return
		}

		kind := classify(el)
		switch kind {
		case model.KindHeading:
			appendLocation(result.Headings, tag, styleLocation(page, el))
		case model.KindParagraph:
			appendLocation(result.Paragraphs, tag, styleLocation(page, el))
		case model.KindButton:
			appendLocation(result.Buttons, buttonKind(el), styleLocation(page, el))
		case model.KindLink:
			appendLocation(result.Links, linkKind(el), styleLocation(page, el))
		case model.KindGeneric:
			// Not inventoried.
		}
	})

	s.logger.Debug("style inventory complete",
		"page", page.URL,
		"images", len(result.Images),
	)
	return nil
}

// classify maps an element to its kind, folding submit/button inputs
// into the button kind.
func classify(el *dom.Element) model.ElementKind {
	tag := el.TagName()
	if tag == "input" {
		switch el.Attr("type") {
		case "submit", "button", "reset":
			return model.KindButton
		}
		return model.KindGeneric
	}
	return model.ClassifyElement(tag, tag == "a" && IsButtonStyled(el))
}

// buttonKind maps a button element to its taxonomy sub-type by class.
func buttonKind(el *dom.Element) string {
	switch {
	case el.HasClassSubstring("primary"):
		return "primary"
	case el.HasClassSubstring("secondary"):
		return "secondary"
	default:
		return "other"
	}
}

// linkKind maps a link to its taxonomy sub-type by structural location.
func linkKind(el *dom.Element) string {
	switch structuralLocation(el) {
	case locationNavigation:
		return "nav"
	case locationFooter:
		return "footer"
	default:
		return "content"
	}
}

// appendLocation appends a location to the group for the given sub-type,
// creating the group when the sub-type is outside the seeded taxonomy.
func appendLocation(groups map[string]*model.StyleGroup, kind string, loc model.StyleLocation) {
	group, ok := groups[kind]
	if !ok {
		group = &model.StyleGroup{}
		groups[kind] = group
	}
	group.Locations = append(group.Locations, loc)
}

// styleLocation captures the style snapshot for an inventoried element.
func styleLocation(page *dom.Document, el *dom.Element) model.StyleLocation {
	return model.StyleLocation{
		Page:       page.URL,
		PageTitle:  page.Title,
		Selector:   selector.Generate(el),
		Text:       truncate(el.Text(), textSampleLimit),
		FontSize:   resolvedFontSize(el),
		FontWeight: resolvedFontWeight(el),
		FontFamily: resolvedFontFamily(el),
		Color:      resolvedTextColor(el),
		Background: EffectiveBackground(el),
	}
}

// truncate shortens a string to at most limit runes.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// ColorContrastStep runs the color and contrast tracker over every
// element of the page.
type ColorContrastStep struct {
	// sectionLabel and blockLabel are passed through to the tracker.
	sectionLabel LabelFunc
	blockLabel   LabelFunc

	// logger for structured logging.
	logger *slog.Logger
}

// ColorContrastStepOption configures a ColorContrastStep.
type ColorContrastStepOption func(*ColorContrastStep)

// WithStepSectionLabel sets the section label lookup.
func WithStepSectionLabel(fn LabelFunc) ColorContrastStepOption {
	return func(s *ColorContrastStep) {
		s.sectionLabel = fn
	}
}

// WithStepBlockLabel sets the block label lookup.
func WithStepBlockLabel(fn LabelFunc) ColorContrastStepOption {
	return func(s *ColorContrastStep) {
		s.blockLabel = fn
	}
}

// WithColorLogger sets a custom logger for the color step.
func WithColorLogger(logger *slog.Logger) ColorContrastStepOption {
	return func(s *ColorContrastStep) {
		s.logger = logger
	}
}

// NewColorContrastStep creates a new color and contrast tracking step.
func NewColorContrastStep(opts ...ColorContrastStepOption) *ColorContrastStep {
	s := &ColorContrastStep{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ColorContrastStep) Name() string {
	return "color_contrast"
}

// Do walks every element once, recording declared background, text, and
// border colors as swatches and measuring contrast for elements that
// carry a direct text node.
func (s *ColorContrastStep) Do(_ context.Context, page *dom.Document, result *model.PageResult) error {
	opts := []TrackerOption{WithTrackerLogger(s.logger)}
	if s.sectionLabel != nil {
		opts = append(opts, WithSectionLabel(s.sectionLabel))
	}
	if s.blockLabel != nil {
		opts = append(opts, WithBlockLabel(s.blockLabel))
	}
	tracker := NewTracker(
		PageInfo{URL: page.URL, Title: page.Title},
		result.ColorData,
		&result.Palette,
		opts...,
	)

	page.Each(func(el *dom.Element) {
		style := el.Style()

		if bg := style.BackgroundColor(); bg != "" {
			paired := ""
			if el.HasDirectText() {
				paired = resolvedTextColor(el)
			}
			tracker.TrackColor(el, "background-color", bg, paired)
		}

		text := style.Color()
		if text == "" && el.HasDirectText() && bearsIdentity(el) {
			// Any class or id counts as explicitly styled, even when the
			// token has nothing to do with color. The inherited value is
			// then recorded as the element's own.
			text = resolvedTextColor(el)
		}
		if text != "" {
			tracker.TrackColor(el, "color", text, EffectiveBackground(el))
		}

		if border := style.BorderColor(); border != "" {
			tracker.TrackColor(el, "border-color", border, "")
		}

		if el.HasDirectText() {
			tracker.TrackContrast(el, resolvedTextColor(el))
		}
	})

	return nil
}

// bearsIdentity reports whether the element has any class or id token.
func bearsIdentity(el *dom.Element) bool {
	return el.ID() != "" || len(el.Classes()) > 0
}

// QualityStep derives accessibility and consistency findings from the
// page and from the results of the preceding steps. It must run after
// the inventory and color steps.
type QualityStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// QualityStepOption configures a QualityStep.
type QualityStepOption func(*QualityStep)

// WithQualityLogger sets a custom logger for the quality step.
func WithQualityLogger(logger *slog.Logger) QualityStepOption {
	return func(s *QualityStep) {
		s.logger = logger
	}
}

// NewQualityStep creates a new quality-check step.
func NewQualityStep(opts ...QualityStepOption) *QualityStep {
	s := &QualityStep{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *QualityStep) Name() string {
	return "quality_checks"
}

// Do records the page's quality findings.
func (s *QualityStep) Do(_ context.Context, page *dom.Document, result *model.PageResult) error {
	for _, img := range result.Images {
		if img.Alt == "" {
			result.AddIssue(model.CheckMissingAlt, model.QualityIssue{
				Page:     page.URL,
				Selector: img.Selector,
				Detail:   "image has no alt text: " + img.Src,
			})
		}
	}

	lastHeading := 0
	page.Each(func(el *dom.Element) {
		tag := el.TagName()

		if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
			level := int(tag[1] - '0')
			if lastHeading != 0 && level > lastHeading+1 {
				result.AddIssue(model.CheckHeadingSkips, model.QualityIssue{
					Page:     page.URL,
					Selector: selector.Generate(el),
					Detail:   "heading level skips from h" + string(rune('0'+lastHeading)) + " to " + tag,
				})
			}
			lastHeading = level
		}

		if tag == "a" && el.Text() == "" && el.Attr("aria-label") == "" && !hasLabeledImage(el) {
			result.AddIssue(model.CheckEmptyLinks, model.QualityIssue{
				Page:     page.URL,
				Selector: selector.Generate(el),
				Detail:   "link has no text and no accessible label",
			})
		}

		if IsGhostButton(el) {
			result.AddIssue(model.CheckGhostButtons, model.QualityIssue{
				Page:     page.URL,
				Selector: selector.Generate(el),
				Detail:   "button has no text and no aria-label",
			})
		}
	})

	if result.ColorData != nil {
		for _, pair := range result.ColorData.ContrastPairs {
			if pair.Passes {
				continue
			}
			result.AddIssue(model.CheckContrastFailures, model.QualityIssue{
				Page:     page.URL,
				Selector: pair.TagName,
				Detail:   pair.TextHex + " on " + pair.BackgroundHex + " fails WCAG AA",
			})
		}
	}

	return nil
}

// hasLabeledImage reports whether the element's subtree contains an
// image with non-empty alt text, which makes a textless link labeled.
func hasLabeledImage(el *dom.Element) bool {
	var found bool
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found {
			return
		}
		if n.Type == html.ElementNode && n.Data == "img" {
			for _, a := range n.Attr {
				if a.Key == "alt" && strings.TrimSpace(a.Val) != "" {
					found = true
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(el.Node())
	return found
}
