// Package model defines the core data structures used throughout DesignLens.
//
// This package contains the following main types:
//   - ColorEntry / ColorInstance: sightings of a color and where it was used
//   - ContrastPair: one text/background WCAG contrast measurement
//   - PageResult: the transient result of analyzing a single page
//   - AccumulatedReport: the site-wide report built up across pages
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (audit, merge, report, database) need to use
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage. Ordered sets (palette colors, usage tags, analyzed pages)
// are stored as slices with membership checks on insert so that JSON
// round-trips preserve insertion order.
package model
