// Package audit implements the color and accessibility analysis of one
// page and the session that accumulates results across pages.
//
// The package contains:
//   - the effective-background resolver (DOM-ancestry transparency walk)
//   - the decorative-element classifier (icons, social widgets, ghost buttons)
//   - the color and contrast tracker populating per-page color data
//   - the style-inventory and quality-check pipeline steps
//   - the Session owning the accumulated report and serializing merges
//
// All per-element failures degrade locally: an unparseable color or a
// broken selector skips that single data point and the page walk continues.
package audit
