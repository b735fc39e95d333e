// Package pipeline orchestrates the per-page analysis steps.
//
// A pipeline runs an ordered list of steps against one parsed page,
// each step populating a different part of the page result (style
// inventory, color and contrast tracking, quality checks). Steps run
// sequentially, one element at a time, because concurrent DOM reads of a
// single page would race on the shared accumulation sets without gaining
// anything - the work is CPU-light and ordering must stay deterministic
// so recorded instances match document traversal order.
package pipeline
