// Package yaml implements config.Parser with github.com/goccy/go-yaml.
//
// Sections are addressed with colon-separated keys, converted to YAML paths:
//
//	""               -> whole document
//	"serve"          -> $.serve
//	"github:timeout" -> $.github.timeout
package yaml
