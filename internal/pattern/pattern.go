// Package pattern compiles tracked base filenames into matchers that
// recognize their renamed variants (browser auto-renames, manual copies).
package pattern

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Variant is one compiled matcher bound to the base filename it resolves to.
// Variants are built once at startup and never mutated.
type Variant struct {
	re   *regexp.Regexp
	Base string
}

// Match tests a bare filename (no directory) against the variant.
func (v Variant) Match(filename string) bool {
	return v.re.MatchString(filename)
}

func (v Variant) String() string {
	return v.re.String()
}

// versionMarker is the suffix stamped onto archived files. Names carrying it
// are the versioning engine's own output and must never match as variants,
// or every archive would immediately be re-archived.
var versionMarker = regexp.MustCompile(`_v\d{4}-\d{2}-\d{2}`)

// HasVersionMarker reports whether filename contains a version suffix.
func HasVersionMarker(filename string) bool {
	return versionMarker.MatchString(filename)
}

// Compile builds the variant matchers for one base filename, most specific
// first. All expressions are anchored to the whole filename and
// case-sensitive.
func Compile(baseFilename string) []Variant {
	ext := filepath.Ext(baseFilename)
	name := strings.TrimSuffix(baseFilename, ext)

	qFull := regexp.QuoteMeta(baseFilename)
	qName := regexp.QuoteMeta(name)
	qExt := regexp.QuoteMeta(ext)

	exprs := []string{
		// Chrome download prefix: (1)invoice.pdf
		`^\(\d+\)` + qFull + `$`,
		// copy suffix: invoice_copy.pdf, invoice copy2.pdf
		`^` + qName + `[ _-]copy\d*` + qExt + `$`,
		// parenthesized counter: invoice (2).pdf
		`^` + qName + ` \(\d+\)` + qExt + `$`,
		// separator plus digits: invoice_3.pdf
		`^` + qName + `[ _-]\d+` + qExt + `$`,
		// fallback: anything containing the name and ending in the extension
		`^.*` + qName + `.*` + qExt + `$`,
	}

	variants := make([]Variant, 0, len(exprs))
	for _, e := range exprs {
		variants = append(variants, Variant{re: regexp.MustCompile(e), Base: baseFilename})
	}
	return variants
}

// CompileAll compiles every base filename, preserving configuration order.
// When a filename matches patterns of more than one spec, the first match in
// this list decides which base it resolves to.
func CompileAll(baseFilenames []string) []Variant {
	var out []Variant
	for _, b := range baseFilenames {
		out = append(out, Compile(b)...)
	}
	return out
}
