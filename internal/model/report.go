package model

import "strings"

// Metadata identifies the site a report belongs to and which pages have
// already been analyzed.
type Metadata struct {
	// Domain is the host the report was built for.
	Domain string `json:"domain"`

	// PagesAnalyzed is the ordered list of normalized page paths that have
	// been merged into the report. Each path appears at most once; this is
	// the hard invariant that makes merging idempotent.
	PagesAnalyzed []string `json:"pages_analyzed"`
}

// AccumulatedReport is the site-wide aggregate built up across pages.
// It is the union, not the intersection, of all analyzed pages' data:
// no element is ever removed once merged.
//
// Design decision: The report is an explicitly owned aggregate passed by
// reference through the analysis session rather than ambient global state.
// It is created fresh at the start of a session (or loaded from storage)
// and cleared only by an explicit reset.
type AccumulatedReport struct {
	// Headings maps heading sub-types (h1..h6) to their sightings.
	Headings map[string]*StyleGroup `json:"headings"`

	// Paragraphs maps body-copy sub-types to their sightings.
	Paragraphs map[string]*StyleGroup `json:"paragraphs"`

	// Buttons maps button sub-types to their sightings.
	Buttons map[string]*StyleGroup `json:"buttons"`

	// Links maps link sub-types to their sightings.
	Links map[string]*StyleGroup `json:"links"`

	// Images lists every image found across all pages.
	Images []ImageInfo `json:"images"`

	// QualityChecks maps check categories to their findings.
	QualityChecks map[string][]QualityIssue `json:"quality_checks"`

	// Palette is the site-wide color palette.
	Palette Palette `json:"color_palette"`

	// ColorData holds all color sightings and contrast pairs.
	ColorData *ColorData `json:"color_data"`

	// Metadata identifies the site and the analyzed pages.
	Metadata Metadata `json:"metadata"`
}

// NewAccumulatedReport creates an empty report for the given domain with
// all taxonomy maps seeded.
func NewAccumulatedReport(domain string) *AccumulatedReport {
	return &AccumulatedReport{
		Headings:      newStyleMap(HeadingLevels),
		Paragraphs:    newStyleMap(ParagraphKinds),
		Buttons:       newStyleMap(ButtonKinds),
		Links:         newStyleMap(LinkKinds),
		Images:        make([]ImageInfo, 0),
		QualityChecks: make(map[string][]QualityIssue),
		ColorData:     NewColorData(),
		Metadata: Metadata{
			Domain:        domain,
			PagesAnalyzed: make([]string, 0),
		},
	}
}

// HasPage reports whether the normalized path has already been merged.
func (r *AccumulatedReport) HasPage(normalizedPath string) bool {
	for _, p := range r.Metadata.PagesAnalyzed {
		if p == normalizedPath {
			return true
		}
	}
	return false
}

// AddPage records the normalized path as analyzed. It is the caller's
// responsibility to check HasPage first; AddPage refuses duplicates to
// keep the invariant even on misuse.
func (r *AccumulatedReport) AddPage(normalizedPath string) {
	if r.HasPage(normalizedPath) {
		return
	}
	r.Metadata.PagesAnalyzed = append(r.Metadata.PagesAnalyzed, normalizedPath)
}

// NormalizePath strips trailing slashes from a page path, keeping the root
// path as "/". An empty path normalizes to "/". A missing leading slash is
// added so that paths from different sources compare equal.
func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	return path
}
