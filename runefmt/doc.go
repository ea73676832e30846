// Package runefmt parses and encodes the rune record format.
//
// A rune document is a sequence of sections:
//
//	#!RUNE
//	@App
//	name = "demo"
//	port = 3000
//
//	@Route/GET /health
//	description = "liveness probe"
//
//	@Skateboarder
//	+ name = "Tony Hawk"
//	+ name = "Rodney Mullen"
//
//	@Data
//	Ips:
//	  - 12.12.12.10
//	  - 12.12.12.13
//
// Section headers start with '@' and nest with '/'. Sections hold
// key/value pairs ("k = v"), series ("k:" followed by indented items),
// records ("+" lines, collected under the "record" field), map blocks
// ("k {" ... "}") and multiline strings ("k >" until a blank line).
// Values of the form $NAME$ expand from the process environment.
//
// Documents map onto ir.Node trees: the root is an object, section paths
// nest as objects, series become arrays, records become the section's
// "record" array.
package runefmt
