package audit

import (
	"log/slog"
	"strings"

	"github.com/designlens/designlens/internal/css"
	"github.com/designlens/designlens/internal/dom"
	"github.com/designlens/designlens/internal/model"
	"github.com/designlens/designlens/internal/selector"
)

// LabelFunc maps an element to an opaque grouping label. Section and
// block semantics belong to the caller (platform-specific selectors live
// outside this core); the tracker only consumes the labels.
type LabelFunc func(*dom.Element) string

// PageInfo identifies the page a tracker is recording for.
type PageInfo struct {
	// URL is the full page URL.
	URL string

	// Title is the page title.
	Title string
}

// Tracker records color sightings and contrast measurements for one page.
// All side effects are additive to the page-scoped result; no shared
// state is touched until the merge engine runs. A Tracker is not safe for
// concurrent use and is discarded with its page.
type Tracker struct {
	// page identifies the page being tracked.
	page PageInfo

	// data receives color entries and contrast pairs.
	data *model.ColorData

	// palette receives the page's palette sets.
	palette *model.Palette

	// sectionLabel and blockLabel are the caller-supplied lookups.
	sectionLabel LabelFunc
	blockLabel   LabelFunc

	// seenPairs is the page-scoped contrast dedup set, keyed by
	// (page URL, section, block, context). First occurrence wins; the
	// set dies with the page so the same key on another page records
	// independently.
	seenPairs map[string]bool

	// logger for structured logging.
	logger *slog.Logger
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithSectionLabel sets the section label lookup.
func WithSectionLabel(fn LabelFunc) TrackerOption {
	return func(t *Tracker) {
		t.sectionLabel = fn
	}
}

// WithBlockLabel sets the block label lookup.
func WithBlockLabel(fn LabelFunc) TrackerOption {
	return func(t *Tracker) {
		t.blockLabel = fn
	}
}

// WithTrackerLogger sets a custom logger.
func WithTrackerLogger(logger *slog.Logger) TrackerOption {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// NewTracker creates a Tracker recording into data and palette.
func NewTracker(page PageInfo, data *model.ColorData, palette *model.Palette, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		page:      page,
		data:      data,
		palette:   palette,
		seenPairs: make(map[string]bool),
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.sectionLabel == nil {
		t.sectionLabel = func(*dom.Element) string { return "" }
	}
	if t.blockLabel == nil {
		t.blockLabel = func(*dom.Element) string { return "" }
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}

	return t
}

// TrackColor records one color sighting for an element. Decorative
// elements, ghost buttons, transparent values, and colors that fail hex
// conversion are skipped silently; skipping one data point never aborts
// the walk. pairedRaw is the companion color when one applies (text for a
// background sighting and vice versa) and may be empty.
func (t *Tracker) TrackColor(el *dom.Element, cssProperty, raw, pairedRaw string) {
	if IsDecorative(el) || IsGhostButton(el) {
		return
	}
	if css.IsTransparent(raw) {
		return
	}
	hex, ok := css.RGBToHex(raw)
	if !ok {
		t.logger.Debug("unparseable color skipped",
			"page", t.page.URL,
			"property", cssProperty,
			"value", raw,
		)
		return
	}

	paired := ""
	if pairedRaw != "" && !css.IsTransparent(pairedRaw) {
		if p, ok := css.RGBToHex(pairedRaw); ok {
			paired = p
		}
	}

	location := structuralLocation(el)

	entry := t.data.Entry(hex)
	entry.Count++
	entry.AddUsage(usageForProperty(cssProperty))
	if tag, ok := usageForLocation(location); ok {
		entry.AddUsage(tag)
	}
	entry.Instances = append(entry.Instances, model.ColorInstance{
		Page:        t.page.URL,
		PageTitle:   t.page.Title,
		TagName:     el.TagName(),
		CSSProperty: cssProperty,
		Section:     t.sectionLabel(el),
		Block:       t.blockLabel(el),
		Context:     selector.Generate(el),
		Location:    location,
		PairedColor: paired,
	})

	if t.palette != nil {
		switch usageForProperty(cssProperty) {
		case model.UsageBackground:
			t.palette.AddBackground(hex)
		case model.UsageText:
			t.palette.AddText(hex)
		case model.UsageBorder:
			t.palette.AddBorder(hex)
		default:
			t.palette.AddAll(hex)
		}
	}
}

// TrackContrast measures and records the contrast pair for an element
// carrying a direct text node. Elements whose resolved text color equals
// their effective background are definitionally invisible and treated as
// a false positive, never recorded. Within the page, the first pair per
// (page, section, block, context) key wins.
func (t *Tracker) TrackContrast(el *dom.Element, textRaw string) {
	if IsDecorative(el) || IsGhostButton(el) {
		return
	}
	if !el.HasDirectText() {
		return
	}

	textHex, ok := css.RGBToHex(textRaw)
	if !ok {
		return
	}
	bgHex := EffectiveBackground(el)
	if textHex == bgHex {
		return
	}

	section := t.sectionLabel(el)
	block := t.blockLabel(el)
	context := selector.Generate(el)
	key := t.page.URL + "|" + section + "|" + block + "|" + context
	if t.seenPairs[key] {
		return
	}
	t.seenPairs[key] = true

	ratio, ok := css.ContrastRatio(textHex, bgHex)
	if !ok {
		return
	}
	large := css.IsLargeText(resolvedFontSize(el), resolvedFontWeight(el))
	level := css.ClassifyRatio(ratio, large)

	t.data.ContrastPairs = append(t.data.ContrastPairs, model.ContrastPair{
		TextHex:       textHex,
		BackgroundHex: bgHex,
		Ratio:         ratio,
		Passes:        level != css.LevelFail,
		WCAGLevel:     string(level),
		IsLargeText:   large,
		Page:          t.page.URL,
		PageTitle:     t.page.Title,
		Location:      structuralLocation(el),
		Section:       section,
		Block:         block,
		TagName:       el.TagName(),
	})
}

// usageForProperty maps a CSS property name to a usage tag.
func usageForProperty(property string) model.UsageTag {
	switch {
	case strings.Contains(property, "background"):
		return model.UsageBackground
	case strings.Contains(property, "border"):
		return model.UsageBorder
	default:
		return model.UsageText
	}
}

// usageForLocation maps a structural location to its usage tag.
// Content is the default location and carries no tag.
func usageForLocation(location string) (model.UsageTag, bool) {
	switch location {
	case locationNavigation:
		return model.UsageNavigation, true
	case locationHeader:
		return model.UsageHeader, true
	case locationFooter:
		return model.UsageFooter, true
	default:
		return "", false
	}
}

// Structural location labels.
const (
	locationNavigation = "navigation"
	locationHeader     = "header"
	locationFooter     = "footer"
	locationContent    = "content"
)

// structuralLocation classifies where an element sits on the page.
// The first ancestor match wins, checked by tag name first and class/id
// substring second; content is the default.
func structuralLocation(el *dom.Element) string {
	for cur := el; cur != nil; cur = cur.Parent() {
		switch cur.TagName() {
		case "nav":
			return locationNavigation
		case "header":
			return locationHeader
		case "footer":
			return locationFooter
		}
		idAndClasses := strings.ToLower(cur.ID() + " " + strings.Join(cur.Classes(), " "))
		switch {
		case strings.Contains(idAndClasses, "nav"):
			return locationNavigation
		case strings.Contains(idAndClasses, "header"):
			return locationHeader
		case strings.Contains(idAndClasses, "footer"):
			return locationFooter
		}
	}
	return locationContent
}
