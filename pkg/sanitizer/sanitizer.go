// Package sanitizer normalizes user-supplied strings before validation and
// persistence. It only cleans whitespace and casing; it never rejects input,
// that is the validators' job.
package sanitizer
