package merge

import (
	"encoding/json"
	"testing"

	"github.com/designlens/designlens/internal/model"
)

// pageResult builds a small per-page result for merge tests.
func pageResult(pageURL, path string) *model.PageResult {
	r := model.NewPageResult(pageURL, path, "Title of "+path)

	r.Headings["h1"].Locations = append(r.Headings["h1"].Locations, model.StyleLocation{
		Page:     pageURL,
		Selector: "h1",
		Text:     "Welcome",
	})
	r.Images = append(r.Images, model.ImageInfo{Page: pageURL, Src: "/logo.png", Selector: "img"})
	r.AddIssue(model.CheckMissingAlt, model.QualityIssue{Page: pageURL, Selector: "img"})

	r.Palette.AddBackground("#FFFFFF")
	r.Palette.AddText("#111111")

	entry := r.ColorData.Entry("#111111")
	entry.Count = 2
	entry.AddUsage(model.UsageText)
	entry.Instances = append(entry.Instances, model.ColorInstance{
		Page: pageURL, TagName: "p", CSSProperty: "color",
	})

	r.ColorData.ContrastPairs = append(r.ColorData.ContrastPairs, model.ContrastPair{
		TextHex:       "#111111",
		BackgroundHex: "#FFFFFF",
		Ratio:         18.88,
		Passes:        true,
		WCAGLevel:     "AAA",
		Page:          pageURL,
		Section:       "main",
		Block:         "intro",
		TagName:       "p",
	})

	return r
}

// TestMergeSeedsFromNil tests seeding an empty accumulated report.
func TestMergeSeedsFromNil(t *testing.T) {
	t.Parallel()

	incoming := pageResult("https://example.com/about/", "/about/")
	merged, already := Merge(nil, incoming)

	t.Run("not flagged as duplicate", func(t *testing.T) {
		t.Parallel()
		if already {
			t.Error("first merge reported alreadyAnalyzed")
		}
	})

	t.Run("derives domain from URL", func(t *testing.T) {
		t.Parallel()
		if merged.Metadata.Domain != "example.com" {
			t.Errorf("got domain %q, expected example.com", merged.Metadata.Domain)
		}
	})

	t.Run("seeds normalized path", func(t *testing.T) {
		t.Parallel()
		if len(merged.Metadata.PagesAnalyzed) != 1 || merged.Metadata.PagesAnalyzed[0] != "/about" {
			t.Errorf("got pages %v, expected [/about]", merged.Metadata.PagesAnalyzed)
		}
	})

	t.Run("carries page data", func(t *testing.T) {
		t.Parallel()
		if len(merged.Headings["h1"].Locations) != 1 {
			t.Error("expected one h1 location")
		}
		if merged.ColorData.Colors["#111111"] == nil {
			t.Error("expected color entry to be carried")
		}
	})
}

// TestMergeIdempotence tests the duplicate-page guard.
func TestMergeIdempotence(t *testing.T) {
	t.Parallel()

	first, _ := Merge(nil, pageResult("https://example.com/blog/post/", "/blog/post/"))

	before, err := json.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}

	// Same page, different trailing-slash spelling.
	merged, already := Merge(first, pageResult("https://example.com/blog/post", "/blog/post"))

	if !already {
		t.Error("expected alreadyAnalyzed on second merge of the same path")
	}
	if merged != first {
		t.Error("expected the existing report to be returned")
	}

	after, err := json.Marshal(merged)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("duplicate merge changed the accumulated report")
	}
}

// TestMergeDeepUnion tests combining two distinct pages.
func TestMergeDeepUnion(t *testing.T) {
	t.Parallel()

	merged, _ := Merge(nil, pageResult("https://example.com/", "/"))
	merged, already := Merge(merged, pageResult("https://example.com/about", "/about"))

	if already {
		t.Fatal("distinct page flagged as duplicate")
	}

	t.Run("counts summed per hex", func(t *testing.T) {
		t.Parallel()
		entry := merged.ColorData.Colors["#111111"]
		if entry == nil || entry.Count != 4 {
			t.Fatalf("got entry %+v, expected count 4", entry)
		}
	})

	t.Run("usage tags not duplicated", func(t *testing.T) {
		t.Parallel()
		entry := merged.ColorData.Colors["#111111"]
		if len(entry.UsedAs) != 1 || entry.UsedAs[0] != model.UsageText {
			t.Errorf("got tags %v, expected [text]", entry.UsedAs)
		}
	})

	t.Run("instances concatenated", func(t *testing.T) {
		t.Parallel()
		if got := len(merged.ColorData.Colors["#111111"].Instances); got != 2 {
			t.Errorf("got %d instances, expected 2", got)
		}
	})

	t.Run("locations concatenated", func(t *testing.T) {
		t.Parallel()
		if got := len(merged.Headings["h1"].Locations); got != 2 {
			t.Errorf("got %d h1 locations, expected 2", got)
		}
	})

	t.Run("palette sets unioned", func(t *testing.T) {
		t.Parallel()
		if len(merged.Palette.All) != 2 || len(merged.Palette.Backgrounds) != 1 {
			t.Errorf("got palette %+v, expected 2 colors with 1 background", merged.Palette)
		}
	})

	t.Run("both pages recorded", func(t *testing.T) {
		t.Parallel()
		want := []string{"/", "/about"}
		if len(merged.Metadata.PagesAnalyzed) != 2 {
			t.Fatalf("got pages %v, expected %v", merged.Metadata.PagesAnalyzed, want)
		}
		for i, p := range want {
			if merged.Metadata.PagesAnalyzed[i] != p {
				t.Errorf("got pages %v, expected %v", merged.Metadata.PagesAnalyzed, want)
			}
		}
	})
}

// TestMergeCrossPageContrastDuplicates documents that contrast dedup is
// page-scoped: the same dedup key on two different pages records two
// pairs. Report-wide dedup would be a behavior change.
func TestMergeCrossPageContrastDuplicates(t *testing.T) {
	t.Parallel()

	a := pageResult("https://example.com/a", "/a")
	b := pageResult("https://example.com/b", "/b")
	// Identical section/block/tag on both pages.
	b.ColorData.ContrastPairs[0].Page = "https://example.com/b"

	merged, _ := Merge(nil, a)
	merged, _ = Merge(merged, b)

	if got := len(merged.ColorData.ContrastPairs); got != 2 {
		t.Errorf("got %d contrast pairs, expected 2 (one per page)", got)
	}
}

// TestMergeMissingSubstructures tests graceful degradation for sparse
// incoming results.
func TestMergeMissingSubstructures(t *testing.T) {
	t.Parallel()

	sparse := &model.PageResult{
		URL:  "https://example.com/sparse",
		Path: "/sparse",
		// No maps, no ColorData, no palette.
	}

	merged, already := Merge(nil, sparse)
	if already {
		t.Error("sparse result flagged as duplicate")
	}
	if !merged.HasPage("/sparse") {
		t.Error("sparse page not recorded")
	}

	full, already := Merge(merged, pageResult("https://example.com/full", "/full"))
	if already {
		t.Error("full result flagged as duplicate")
	}
	if full.ColorData.Colors["#111111"] == nil {
		t.Error("merge after sparse page lost color data")
	}
}

// TestMergeNilIncoming tests the defensive nil path.
func TestMergeNilIncoming(t *testing.T) {
	t.Parallel()

	report := model.NewAccumulatedReport("example.com")
	merged, already := Merge(report, nil)
	if merged != report || already {
		t.Error("nil incoming should return the accumulated report unchanged")
	}
}
