package records

import "regexp"

// Patterns operate on the whitespace-collapsed original block text;
// classification runs on the normalized form (see extractor.go).
var (
	// reUppercaseRun matches maximal runs of two-or-more consecutive
	// all-uppercase words, each at least two letters long. \b is an ASCII
	// boundary and would clip an accented initial, so the run is delimited
	// by explicit non-letter guards instead.
	reUppercaseRun = regexp.MustCompile(`(?:^|[^\p{L}])([A-ZÁÉÍÓÚÂÊÔÃÕÇ]{2,}(?:\s+[A-ZÁÉÍÓÚÂÊÔÃÕÇ]{2,}){1,})(?:[^\p{L}]|$)`)

	// reUppercasePair matches one adjacent two-word uppercase pair, used as
	// a "looks like a full personal name" tiebreaker.
	reUppercasePair = regexp.MustCompile(`(?:^|[^\p{L}])[A-ZÁÉÍÓÚÂÊÔÃÕÇ]{2,}\s+[A-ZÁÉÍÓÚÂÊÔÃÕÇ]{2,}(?:[^\p{L}]|$)`)

	// reRegistrationID captures the token after a "matrícula" label,
	// tolerating ordinal/punctuation noise ("Matrícula nº: 123.456-7").
	reRegistrationID = regexp.MustCompile(`(?i)matr[íi]cul[ao]?(?:\s*n[ºo°.\-:]*)?\s*[:\-]?\s*([A-Z0-9./\-]+)`)

	// reCaseNumber captures the token after a "processo" label.
	reCaseNumber = regexp.MustCompile(`(?i)processo(?:\s*n[ºo°.\-:]*)?\s*[:\-]?\s*([A-Z0-9./\-]+)`)

	// reNameAfterGrant captures the grantee after "conceder
	// aposentadoria|pensão", an optional vitalícia/temporária qualifier and
	// an optional "por <reason>" clause, then the preposition a/ao/à. The
	// capture runs to the next clause boundary.
	reNameAfterGrant = regexp.MustCompile(`(?i)conceder\s+(?:aposentadori[ao]|pens[aã]o)\s+(?:vital[ií]cia|tempor[áa]ria)?\s*(?:,?\s*por[^,.;]+)?\s*a[oà]?\s+([A-ZÁÉÍÓÚÂÊÔÃÕÇ][A-ZÁÉÍÓÚÂÊÔÃÕÇ\s\-.]{6,}?)(?:,|\.|;|$)`)

	// reNameAfterRole captures the name following a role noun.
	reNameAfterRole = regexp.MustCompile(`(?i)(?:servidor(?:a)?|benefici[áa]ri[ao]|pensionist[ao]|requerente)\s+([A-ZÁÉÍÓÚÂÊÔÃÕÇ][A-ZÁÉÍÓÚÂÊÔÃÕÇ\s\-.]{6,})`)

	// reFieldKeyword locates the anchor for the windowed name heuristic.
	reFieldKeyword = regexp.MustCompile(`(?i)matr[íi]cul|processo|benefici[áa]ri[ao]|pensionist[ao]`)

	reCollapseSpace = regexp.MustCompile(`\s+`)
)

// defaultStopTokens is boilerplate that disqualifies an uppercase run from
// being a personal name: act names, government entities, conjunctions.
var defaultStopTokens = []string{
	"APOSENTADORIA", "PENSÃO", "PENSAO", "PORTARIA", "GABINETE",
	"PRESIDÊNCIA", "PRESIDENCIA", "ESTADO", "PARAÍBA", "PARAIBA",
	"DO", "DA", "DE", "E", "O", "A", "DIÁRIO", "OFICIAL", "GOVERNO",
	"PBPREV", "SECRETARIA", "RESOLVE", "CONCEDER", "VOLUNTÁRIA",
	"COMPULSÓRIA", "COMPULSORIA",
}
