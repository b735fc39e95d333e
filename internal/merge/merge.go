package merge

import (
	"net/url"

	"github.com/designlens/designlens/internal/model"
)

// Merge combines a per-page result into the accumulated site report.
//
// A nil accumulated report is seeded from the incoming result. If the
// incoming page's normalized path has already been merged, the
// accumulated report is returned unchanged with alreadyAnalyzed=true.
// Otherwise every category is deep-unioned: location lists, images, and
// quality findings are concatenated, palette sets are unioned, color
// entries are summed per hex, and contrast pairs are concatenated.
// Cross-page contrast duplicates are accepted: contrast dedup is
// page-scoped by design, so the same finding on two pages appears twice.
//
// The incoming result is never mutated and can be discarded afterwards.
func Merge(accumulated *model.AccumulatedReport, incoming *model.PageResult) (merged *model.AccumulatedReport, alreadyAnalyzed bool) {
	if incoming == nil {
		return accumulated, false
	}

	normalized := model.NormalizePath(incoming.Path)

	if accumulated == nil {
		accumulated = model.NewAccumulatedReport(domainOf(incoming.URL))
	} else if accumulated.HasPage(normalized) {
		return accumulated, true
	}

	mergeStyleMap(accumulated.Headings, incoming.Headings)
	mergeStyleMap(accumulated.Paragraphs, incoming.Paragraphs)
	mergeStyleMap(accumulated.Buttons, incoming.Buttons)
	mergeStyleMap(accumulated.Links, incoming.Links)

	accumulated.Images = append(accumulated.Images, incoming.Images...)

	for _, check := range model.QualityCheckNames {
		if issues := incoming.QualityChecks[check]; len(issues) > 0 {
			accumulated.QualityChecks[check] = append(accumulated.QualityChecks[check], issues...)
		}
	}
	// Categories outside the fixed list still merge; unknown findings
	// are carried rather than dropped.
	for check, issues := range incoming.QualityChecks {
		if knownCheck(check) || len(issues) == 0 {
			continue
		}
		accumulated.QualityChecks[check] = append(accumulated.QualityChecks[check], issues...)
	}

	mergePalette(&accumulated.Palette, &incoming.Palette)
	mergeColorData(accumulated.ColorData, incoming.ColorData)

	accumulated.AddPage(normalized)
	return accumulated, false
}

// mergeStyleMap concatenates location lists per sub-type. A nil incoming
// map is treated as empty.
func mergeStyleMap(dst, src map[string]*model.StyleGroup) {
	for kind, group := range src {
		if group == nil || len(group.Locations) == 0 {
			continue
		}
		target, ok := dst[kind]
		if !ok {
			target = &model.StyleGroup{}
			dst[kind] = target
		}
		target.Locations = append(target.Locations, group.Locations...)
	}
}

// mergePalette unions the four palette sets, preserving dst order.
func mergePalette(dst, src *model.Palette) {
	for _, hex := range src.All {
		dst.AddAll(hex)
	}
	for _, hex := range src.Backgrounds {
		dst.AddBackground(hex)
	}
	for _, hex := range src.Text {
		dst.AddText(hex)
	}
	for _, hex := range src.Borders {
		dst.AddBorder(hex)
	}
}

// mergeColorData sums counts, unions usage tags, and concatenates
// instances per hex key, then concatenates contrast pairs. A nil or
// partially populated incoming ColorData is treated as empty.
func mergeColorData(dst, src *model.ColorData) {
	if src == nil {
		return
	}
	for hex, entry := range src.Colors {
		if entry == nil {
			continue
		}
		target := dst.Entry(hex)
		target.Count += entry.Count
		for _, tag := range entry.UsedAs {
			target.AddUsage(tag)
		}
		target.Instances = append(target.Instances, entry.Instances...)
	}
	dst.ContrastPairs = append(dst.ContrastPairs, src.ContrastPairs...)
}

// knownCheck reports whether a check name is in the fixed category list.
func knownCheck(name string) bool {
	for _, known := range model.QualityCheckNames {
		if known == name {
			return true
		}
	}
	return false
}

// domainOf extracts the host from a page URL for report metadata.
func domainOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
