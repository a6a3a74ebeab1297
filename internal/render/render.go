// Package render turns a template pattern and one episode into the final
// description text via simultaneous token substitution.
package render

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/burnoutdv/epinames/internal/episode"
)

// Token markers recognized in template patterns. These are literal,
// case-sensitive byte sequences; saved templates depend on them staying
// exactly as they are.
const (
	TokenCounter    = "$$counter1$$"
	TokenPart       = "$$counter2$$"
	TokenSession    = "$$session$$"
	TokenRecordDate = "$$record_date$$"
	TokenTitle      = "$$title$$"
)

// tokens lists every recognized marker. Order matters only for the
// documentation-facing Tokens().
var tokens = []string{
	TokenCounter,
	TokenPart,
	TokenSession,
	TokenRecordDate,
	TokenTitle,
}

// markerPattern matches any recognized token marker. Building a single
// alternation and substituting in one pass is a correctness requirement,
// not a style choice: sequential find-and-replace could reinterpret a
// substituted value that happens to contain another marker's literal text.
var markerPattern = buildMarkerPattern()

func buildMarkerPattern() *regexp.Regexp {
	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		quoted[i] = regexp.QuoteMeta(tok)
	}
	return regexp.MustCompile(strings.Join(quoted, "|"))
}

// Tokens returns the recognized token markers, for help text.
func Tokens() []string {
	out := make([]string, len(tokens))
	copy(out, tokens)
	return out
}

// Describe renders a template pattern against one episode's fields.
// Every recognized marker is replaced with its value in a single scan of
// the pattern; replacement text is never rescanned, so a field value that
// textually equals a marker comes through literally. Unrecognized markers
// are left verbatim.
func Describe(pattern string, e episode.Episode) string {
	values := map[string]string{
		TokenCounter:    strconv.Itoa(e.Counter),
		TokenPart:       strconv.Itoa(e.Part),
		TokenSession:    e.Session,
		TokenRecordDate: e.RecordedOn.Format(episode.DisplayDateFormat),
		TokenTitle:      e.Title,
	}
	return markerPattern.ReplaceAllStringFunc(pattern, func(m string) string {
		return values[m]
	})
}
