package records

import (
	"sort"
	"strings"
)

const (
	// keywordWindow is the number of characters kept on each side of the
	// first field-keyword hit when hunting for name candidates.
	keywordWindow = 120

	nameTrimCutset = " .;-:,"
)

// nameStrategy is one step of the ordered extraction cascade. Strategies are
// tried in sequence and the first non-empty result wins.
type nameStrategy struct {
	name    string
	extract func(e *Extractor, block string) string
}

// nameStrategies is evaluated in priority order: phrase-anchored, then
// role-anchored, then the windowed uppercase-run heuristic.
var nameStrategies = []nameStrategy{
	{name: "phrase", extract: (*Extractor).nameAfterGrantPhrase},
	{name: "role", extract: (*Extractor).nameAfterRole},
	{name: "window", extract: (*Extractor).nameFromKeywordWindow},
}

func (e *Extractor) extractName(block string) string {
	for _, s := range nameStrategies {
		if name := s.extract(e, block); name != "" {
			return name
		}
	}
	return ""
}

func (e *Extractor) nameAfterGrantPhrase(block string) string {
	m := reNameAfterGrant.FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	return strings.Trim(m[1], nameTrimCutset)
}

func (e *Extractor) nameAfterRole(block string) string {
	m := reNameAfterRole.FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	return strings.Trim(m[1], nameTrimCutset)
}

// nameFromKeywordWindow takes a bounded window around the first field
// keyword, collects maximal all-uppercase word runs, drops runs containing
// stoplisted boilerplate, and ranks the survivors by descending length with
// a preference for runs holding an adjacent two-word uppercase pair.
func (e *Extractor) nameFromKeywordWindow(block string) string {
	window := block
	if loc := reFieldKeyword.FindStringIndex(block); loc != nil {
		start := max(0, loc[0]-keywordWindow)
		end := min(len(block), loc[1]+keywordWindow)
		// The offsets are byte-based and may land inside a multibyte rune.
		for start > 0 && !isRuneStart(block[start]) {
			start--
		}
		for end < len(block) && !isRuneStart(block[end]) {
			end++
		}
		window = block[start:end]
	}

	var candidates []string
	for _, m := range reUppercaseRun.FindAllStringSubmatch(window, -1) {
		run := strings.TrimSpace(m[1])
		parts := strings.Fields(run)
		if len(parts) < 2 {
			continue
		}
		if e.containsStopToken(parts) {
			continue
		}
		candidates = append(candidates, run)
	}
	if len(candidates) == 0 {
		return ""
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		li, lj := len(candidates[i]), len(candidates[j])
		if li != lj {
			return li > lj
		}
		return reUppercasePair.MatchString(candidates[i]) && !reUppercasePair.MatchString(candidates[j])
	})
	return candidates[0]
}

func (e *Extractor) containsStopToken(parts []string) bool {
	for _, p := range parts {
		if _, bad := e.stopTokens[strings.ToUpper(p)]; bad {
			return true
		}
	}
	return false
}
