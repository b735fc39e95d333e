// Package dom wraps a parsed HTML document together with its stylesheets
// and provides per-element computed styles.
//
// Design decision: We build on goquery/x-net-html rather than walking raw
// nodes because:
//  1. It correctly handles malformed HTML common on the web
//  2. cascadia gives us real CSS selector matching, which the selector
//     generator needs for empirical uniqueness checks
//  3. The same selector engine matches stylesheet rules to elements
//
// Computed styles are an approximation of a browser's style resolution:
// rules from <style> elements are applied in source order, later rules win,
// and inline style attributes win over everything. Specificity, external
// stylesheets, and inheritance are not modeled; callers that need the
// inherited value walk ancestors themselves.
package dom
