package model

// StyleGroup collects every sighting of one style sub-type (e.g. all h2
// headings, all primary buttons) across the analyzed pages.
type StyleGroup struct {
	// Locations holds sightings in the order they were recorded.
	Locations []StyleLocation `json:"locations"`
}

// StyleLocation records one sighting of a styled element.
type StyleLocation struct {
	// Page is the URL of the page the element was found on.
	Page string `json:"page"`

	// PageTitle is the title of that page.
	PageTitle string `json:"page_title,omitempty"`

	// Selector is the durable selector addressing the element.
	Selector string `json:"selector"`

	// Text is a sample of the element's text content, truncated.
	Text string `json:"text,omitempty"`

	// FontSize is the computed font size in pixels. Zero when unknown.
	FontSize float64 `json:"font_size,omitempty"`

	// FontWeight is the computed font weight. Zero when unknown.
	FontWeight int `json:"font_weight,omitempty"`

	// FontFamily is the computed font family, as declared.
	FontFamily string `json:"font_family,omitempty"`

	// Color is the element's text color as 6-digit uppercase hex.
	Color string `json:"color,omitempty"`

	// Background is the element's effective background as hex.
	Background string `json:"background,omitempty"`
}

// ImageInfo records one image found on a page.
type ImageInfo struct {
	// Page is the URL of the page the image was found on.
	Page string `json:"page"`

	// Src is the image source URL as written in the document.
	Src string `json:"src"`

	// Alt is the alt text. Empty means missing or empty alt.
	Alt string `json:"alt,omitempty"`

	// Selector is the durable selector addressing the image.
	Selector string `json:"selector"`
}

// QualityIssue records one accessibility or consistency finding.
type QualityIssue struct {
	// Page is the URL of the page the issue was found on.
	Page string `json:"page"`

	// Selector addresses the offending element.
	Selector string `json:"selector"`

	// Detail is a human-readable description of the issue.
	Detail string `json:"detail,omitempty"`
}

// Quality check category names. QualityChecks maps are keyed by these.
const (
	// CheckMissingAlt flags images with no alt text.
	CheckMissingAlt = "missing_alt_text"
	// CheckEmptyLinks flags anchors with no text and no accessible label.
	CheckEmptyLinks = "empty_links"
	// CheckGhostButtons flags buttons with no text and no aria-label.
	CheckGhostButtons = "ghost_buttons"
	// CheckHeadingSkips flags heading levels that skip (e.g. h1 to h3).
	CheckHeadingSkips = "heading_level_skips"
	// CheckContrastFailures flags text failing WCAG AA contrast.
	CheckContrastFailures = "contrast_failures"
)

// QualityCheckNames lists every check category in report order.
var QualityCheckNames = []string{
	CheckMissingAlt,
	CheckEmptyLinks,
	CheckGhostButtons,
	CheckHeadingSkips,
	CheckContrastFailures,
}

// PageResult is the transient output of analyzing a single page.
// It is merged into the AccumulatedReport and then discarded.
type PageResult struct {
	// URL is the full URL of the analyzed page.
	URL string `json:"url"`

	// Path is the page path before normalization.
	Path string `json:"path"`

	// Title is the page title.
	Title string `json:"title,omitempty"`

	// Headings maps heading sub-types (h1..h6) to their sightings.
	Headings map[string]*StyleGroup `json:"headings,omitempty"`

	// Paragraphs maps body-copy sub-types to their sightings.
	Paragraphs map[string]*StyleGroup `json:"paragraphs,omitempty"`

	// Buttons maps button sub-types to their sightings.
	Buttons map[string]*StyleGroup `json:"buttons,omitempty"`

	// Links maps link sub-types to their sightings.
	Links map[string]*StyleGroup `json:"links,omitempty"`

	// Images lists every image found, in document order.
	Images []ImageInfo `json:"images,omitempty"`

	// QualityChecks maps check categories to their findings.
	QualityChecks map[string][]QualityIssue `json:"quality_checks,omitempty"`

	// Palette is the page's color palette.
	Palette Palette `json:"color_palette"`

	// ColorData holds the page's color sightings and contrast pairs.
	ColorData *ColorData `json:"color_data,omitempty"`
}

// newStyleMap seeds an inventory map with the given taxonomy keys.
func newStyleMap(kinds []string) map[string]*StyleGroup {
	m := make(map[string]*StyleGroup, len(kinds))
	for _, k := range kinds {
		m[k] = &StyleGroup{Locations: make([]StyleLocation, 0)}
	}
	return m
}

// NewPageResult creates an empty PageResult for the given page with all
// taxonomy maps seeded.
func NewPageResult(pageURL, path, title string) *PageResult {
	return &PageResult{
		URL:           pageURL,
		Path:          path,
		Title:         title,
		Headings:      newStyleMap(HeadingLevels),
		Paragraphs:    newStyleMap(ParagraphKinds),
		Buttons:       newStyleMap(ButtonKinds),
		Links:         newStyleMap(LinkKinds),
		Images:        make([]ImageInfo, 0),
		QualityChecks: make(map[string][]QualityIssue),
		ColorData:     NewColorData(),
	}
}

// AddIssue appends a finding to the named quality check category.
func (r *PageResult) AddIssue(check string, issue QualityIssue) {
	r.QualityChecks[check] = append(r.QualityChecks[check], issue)
}
