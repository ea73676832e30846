// Package selector implements the vectrune merge selector grammar.
//
// A selector is a dot-separated path into a document tree, optionally
// ending in a merge instruction:
//
//	environment.preview.[].(name=allowedIps on value from Ips)
//	api_config.(keys from api_keys)
//	(preview|prod).hosts
//
// Segment kinds:
//
//   - literal: matches exactly one object key ("environment")
//   - group: "(a|b)" matches any of the named keys that are present
//   - wildcard: "[]" matches every array element or object value
//   - instruction: "(key=target on field from source)" keyed update, or
//     "(field from source)" direct assignment; only valid as the final
//     segment
//
// Parse rejects malformed selectors with errors carrying the failing
// offset; it never coerces bad input into a degenerate selector.
package selector
