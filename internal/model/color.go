package model

// UsageTag describes how a color is used on a page.
// Tags are derived from the sampled CSS property (background, text, border)
// and from the element's structural location (navigation, header, footer).
type UsageTag string

// Usage tag constants.
const (
	// UsageBackground marks a color sampled from a background property.
	UsageBackground UsageTag = "background"
	// UsageText marks a color sampled from the text color property.
	UsageText UsageTag = "text"
	// UsageBorder marks a color sampled from a border property.
	UsageBorder UsageTag = "border"
	// UsageNavigation marks a color used inside a navigation landmark.
	UsageNavigation UsageTag = "navigation"
	// UsageHeader marks a color used inside a page header.
	UsageHeader UsageTag = "header"
	// UsageFooter marks a color used inside a page footer.
	UsageFooter UsageTag = "footer"
)

// ColorInstance records one sighting of a color on a page.
// Instances are immutable once appended to a ColorEntry.
type ColorInstance struct {
	// Page is the URL of the page where the color was seen.
	Page string `json:"page"`

	// PageTitle is the title of that page.
	PageTitle string `json:"page_title,omitempty"`

	// TagName is the lower-cased tag of the element carrying the color.
	TagName string `json:"tag_name"`

	// CSSProperty is the property the color was sampled from
	// (e.g. "background-color", "color", "border-color").
	CSSProperty string `json:"css_property"`

	// Section is the caller-supplied section label for the element.
	Section string `json:"section,omitempty"`

	// Block is the caller-supplied block label for the element.
	Block string `json:"block,omitempty"`

	// Context is the selector-derived context label for the element.
	Context string `json:"context,omitempty"`

	// Location is the structural location (navigation, header, footer,
	// content) the element was found in.
	Location string `json:"location,omitempty"`

	// PairedColor is the hex color paired with this one (the text color for
	// a background sighting and vice versa). Empty when no pairing applies.
	PairedColor string `json:"paired_color,omitempty"`
}

// ColorEntry aggregates all sightings of one color, keyed in ColorData by
// the 6-digit uppercase hex value. An entry is created on first sighting,
// mutated by every subsequent sighting, and never deleted within a session.
type ColorEntry struct {
	// Count is the total number of sightings. Always at least 1.
	Count int `json:"count"`

	// UsedAs is the ordered set of usage tags, insertion order preserved.
	UsedAs []UsageTag `json:"used_as"`

	// Instances holds every sighting in traversal order.
	Instances []ColorInstance `json:"instances"`
}

// AddUsage unions a tag into UsedAs, preserving insertion order.
func (e *ColorEntry) AddUsage(tag UsageTag) {
	for _, t := range e.UsedAs {
		if t == tag {
			return
		}
	}
	e.UsedAs = append(e.UsedAs, tag)
}

// ContrastPair records one text/background contrast measurement.
// Pairs are immutable once appended. Uniqueness is enforced only within a
// single page via a per-page dedup key; the same pair re-appearing on a
// different page is recorded independently.
type ContrastPair struct {
	// TextHex is the resolved text color.
	TextHex string `json:"text_hex"`

	// BackgroundHex is the resolved effective background color.
	BackgroundHex string `json:"background_hex"`

	// Ratio is the WCAG contrast ratio, in [1, 21].
	Ratio float64 `json:"ratio"`

	// Passes is true if the pair meets at least level AA.
	Passes bool `json:"passes"`

	// WCAGLevel is "AAA", "AA", or "Fail".
	WCAGLevel string `json:"wcag_level"` //nolint:tagliatelle // WCAG is a standard name

	// IsLargeText is true if the element qualifies for the relaxed
	// large-text thresholds.
	IsLargeText bool `json:"is_large_text"`

	// Page is the URL of the page the pair was measured on.
	Page string `json:"page"`

	// PageTitle is the title of that page.
	PageTitle string `json:"page_title,omitempty"`

	// Location is the structural location of the element.
	Location string `json:"location,omitempty"`

	// Section is the caller-supplied section label.
	Section string `json:"section,omitempty"`

	// Block is the caller-supplied block label.
	Block string `json:"block,omitempty"`

	// TagName is the lower-cased tag of the measured element.
	TagName string `json:"tag_name"`
}

// ColorData holds all color sightings and contrast measurements for one
// page (while analysis runs) or for the whole site (after merging).
type ColorData struct {
	// Colors maps 6-digit uppercase hex values to their entries.
	Colors map[string]*ColorEntry `json:"colors"`

	// ContrastPairs holds measurements in traversal order.
	ContrastPairs []ContrastPair `json:"contrast_pairs"`
}

// NewColorData creates an empty ColorData with an initialized color map.
func NewColorData() *ColorData {
	return &ColorData{
		Colors:        make(map[string]*ColorEntry),
		ContrastPairs: make([]ContrastPair, 0),
	}
}

// Entry returns the ColorEntry for hex, creating it on first sighting.
func (d *ColorData) Entry(hex string) *ColorEntry {
	if d.Colors == nil {
		d.Colors = make(map[string]*ColorEntry)
	}
	entry, ok := d.Colors[hex]
	if !ok {
		entry = &ColorEntry{
			UsedAs:    make([]UsageTag, 0),
			Instances: make([]ColorInstance, 0),
		}
		d.Colors[hex] = entry
	}
	return entry
}

// Palette is the site-wide color palette, split by usage.
// Each field is an ordered set of hex values, insertion order preserved.
type Palette struct {
	// All contains every color seen anywhere on the site.
	All []string `json:"all"`

	// Backgrounds contains colors seen as backgrounds.
	Backgrounds []string `json:"backgrounds"`

	// Text contains colors seen as text colors.
	Text []string `json:"text"`

	// Borders contains colors seen as border colors.
	Borders []string `json:"borders"`
}

// addToSet appends hex to set if not already present, preserving order.
func addToSet(set []string, hex string) []string {
	for _, h := range set {
		if h == hex {
			return set
		}
	}
	return append(set, hex)
}

// AddAll records hex in the site-wide set.
func (p *Palette) AddAll(hex string) { p.All = addToSet(p.All, hex) }

// AddBackground records hex as a background color (and in the All set).
func (p *Palette) AddBackground(hex string) {
	p.All = addToSet(p.All, hex)
	p.Backgrounds = addToSet(p.Backgrounds, hex)
}

// AddText records hex as a text color (and in the All set).
func (p *Palette) AddText(hex string) {
	p.All = addToSet(p.All, hex)
	p.Text = addToSet(p.Text, hex)
}

// AddBorder records hex as a border color (and in the All set).
func (p *Palette) AddBorder(hex string) {
	p.All = addToSet(p.All, hex)
	p.Borders = addToSet(p.Borders, hex)
}
