package naming

import (
	"regexp"

	"github.com/handiism/pbrset/internal/model"
)

// Patterns holds the compiled regular expressions describing the texture
// naming convention
//
//	<setname>[-_ ]<PASS>[16][-_ ]<VAR#>[-_ ]<size|HIRES>.<ext>
//
// The patterns are compiled once at package initialisation and shared.
// RE2 has no lookahead, so "last occurrence" lookups go through
// lastMatch instead of being encoded in the expressions.
type Patterns struct {
	// SearchSize finds a size tag such as the "_2K_" in "Wood_COL_2K_x"
	// or the "_14K." in "Wood_COL_14K.png".
	SearchSize *regexp.Regexp

	// SearchHires finds a HIRES tag, e.g. in "Wood_GLOSS_HIRES.jpeg".
	SearchHires *regexp.Regexp

	// SpecWorkflow matches a SPECULAR workflow marker at the end of a name.
	SpecWorkflow *regexp.Regexp

	// MetalWorkflow matches a METALNESS workflow marker at the end of a name.
	MetalWorkflow *regexp.Regexp

	// BeforeLastSeparator captures everything up to and including the last
	// separator, e.g. "Wood_" out of "Wood_2K".
	BeforeLastSeparator *regexp.Regexp

	// SearchVar finds a VAR<N> marker.
	SearchVar *regexp.Regexp

	// SearchThumb finds preview markers in files that are not in a
	// dedicated preview folder.
	SearchThumb *regexp.Regexp

	// SplitName splits a material name into words.
	SplitName *regexp.Regexp

	// NameWords extracts capitalised words and digit runs.
	NameWords *regexp.Regexp

	tokens map[string]passToken
}

type passToken struct {
	plain     *regexp.Regexp
	sixteen   *regexp.Regexp
	anywhere  *regexp.Regexp
	looseName model.LooseName
}

// Default is the pattern set used by every package level function.
var Default = compilePatterns()

func compilePatterns() *Patterns {
	p := &Patterns{
		SearchSize:          regexp.MustCompile(`[-_ ][0-9]{1,3}[kK][-_ .]`),
		SearchHires:         regexp.MustCompile(`(?i)[-_ ]HIRES`),
		SpecWorkflow:        regexp.MustCompile(`(?i)SPECULAR\.[a-z]{3,4}$`),
		MetalWorkflow:       regexp.MustCompile(`(?i)METALNESS\.[a-z]{3,4}$`),
		BeforeLastSeparator: regexp.MustCompile(`^(.*[-_ ])`),
		SearchVar:           regexp.MustCompile(`(?i)[-_ ]var([0-9]{1,2})[-_ .]`),
		SearchThumb:         regexp.MustCompile(`(?i)[-_ ](PREVIEW|THUMB|THUMBNAIL|ICON)[-_ .]`),
		SplitName:           regexp.MustCompile(`[-_ .]|[0-9]{1,2}[kK]`),
		NameWords:           regexp.MustCompile(`[A-Z][^A-Z0-9]*|[0-9]+`),
		tokens:              make(map[string]passToken),
	}

	for _, ln := range model.LooseNames() {
		quoted := regexp.QuoteMeta(ln.Name)
		p.tokens[ln.Name] = passToken{
			plain:     regexp.MustCompile(`(?i)[-_ ]` + quoted + `[-_ .]`),
			sixteen:   regexp.MustCompile(`(?i)[-_ ]` + quoted + `16[-_ .]`),
			anywhere:  regexp.MustCompile(`(?i)[-_ ]` + quoted + `(16)?[-_ .]`),
			looseName: ln,
		}
	}

	return p
}

// HasPassToken reports whether name contains the pass spelling as a
// separator-delimited token, e.g. "_NRM_" or "-COLOR.".
func (p *Patterns) HasPassToken(name, pass string) bool {
	tok, ok := p.tokens[pass]
	return ok && tok.plain.MatchString(name)
}

// HasPassToken16 reports whether name contains the 16-bit form of the
// pass spelling, e.g. "_NRM16_".
func (p *Patterns) HasPassToken16(name, pass string) bool {
	tok, ok := p.tokens[pass]
	return ok && tok.sixteen.MatchString(name)
}

// firstPassToken returns the leftmost pass token in name, or -1.
func (p *Patterns) firstPassToken(name string) int {
	first := -1
	for _, ln := range model.LooseNames() {
		loc := p.tokens[ln.Name].anywhere.FindStringIndex(name)
		if loc != nil && (first == -1 || loc[0] < first) {
			first = loc[0]
		}
	}
	return first
}

// lastMatch returns the submatch indices of the rightmost match of re in
// s, including matches that overlap an earlier one. It returns nil when
// there is no match.
func lastMatch(re *regexp.Regexp, s string) []int {
	var last []int
	for off := 0; off <= len(s); {
		loc := re.FindStringSubmatchIndex(s[off:])
		if loc == nil {
			break
		}
		for i := range loc {
			if loc[i] >= 0 {
				loc[i] += off
			}
		}
		last = loc
		off = loc[0] + 1
	}
	return last
}
