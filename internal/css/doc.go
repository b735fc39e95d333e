// Package css provides color parsing and WCAG contrast computation.
//
// The package deliberately accepts only two textual color forms: 6-digit
// hex strings and rgb()/rgba() functional strings with integer channels.
// Named colors and shorthand (#RGB) are rejected so that color identity
// stays deterministic; upstream style computation is expected to have
// already expanded other forms.
//
// Contrast math follows the WCAG 2.x definitions of relative luminance
// and contrast ratio.
package css
