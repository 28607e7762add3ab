package records

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestExtractor(opts ...Option) *Extractor {
	return NewExtractor(&stubDecoder{}, opts...)
}

func TestExtractName_PhraseBeatsRole(t *testing.T) {
	e := newTestExtractor()
	block := "RESOLVE CONCEDER PENSÃO vitalícia a MARIA LUCIA SANTOS, dependente da servidora ANA PAULA SOUZA, matrícula 10"

	assert.Equal(t, "MARIA LUCIA SANTOS", e.extractName(block))
}

func TestExtractName_RoleAnchoredFallback(t *testing.T) {
	e := newTestExtractor()
	block := "Fica deferido o benefício à servidora HELENA CRISTINA ALVES, matrícula 42"

	assert.Equal(t, "HELENA CRISTINA ALVES", e.extractName(block))
}

func TestExtractName_WindowHeuristicPicksLongestRun(t *testing.T) {
	e := newTestExtractor()
	// Neither anchored pattern applies; the window around "matrícula" holds
	// two uppercase runs and the longer one must win.
	block := "Benefício concedido em favor de FRANCISCO CHAGAS BEZERRA NETO conforme ato publicado, JOAO SOUZA, matrícula 555, nos termos da lei"

	assert.Equal(t, "FRANCISCO CHAGAS BEZERRA NETO", e.extractName(block))
}

func TestExtractName_WindowHeuristicDropsStoplistedRuns(t *testing.T) {
	e := newTestExtractor()
	// "GABINETE", "PRESIDENCIA", "RESOLVE", "CONCEDER" are institutional
	// boilerplate; the surviving run is the personal name.
	block := "GABINETE DA PRESIDENCIA RESOLVE CONCEDER o benefício, matrícula 9, em favor de LUCAS MARTINS PEREIRA conforme processo"

	assert.Equal(t, "LUCAS MARTINS PEREIRA", e.extractName(block))
}

func TestExtractName_WindowHeuristicKeepsAccentedInitial(t *testing.T) {
	e := newTestExtractor()
	// A run opening with an accented letter must survive intact; an ASCII
	// word boundary would clip the leading Â.
	block := "Benefício concedido em favor de ÂNGELA MARIA BORGES, matrícula 9, nos termos da lei"

	assert.Equal(t, "ÂNGELA MARIA BORGES", e.extractName(block))
}

func TestExtractName_WindowEdgeInsideMultibyteRune(t *testing.T) {
	e := newTestExtractor()
	// Filler sized so the raw window start lands on the second byte of Â;
	// the window must widen to the rune boundary instead of splitting it.
	block := "ÂNGELA MARIA " + strings.Repeat("x", 106) + " matrícula 9"

	assert.Equal(t, "ÂNGELA MARIA", e.extractName(block))
}

func TestExtractName_SingleUppercaseWordIgnored(t *testing.T) {
	e := newTestExtractor()
	block := "matrícula 10 do interessado FULANO conforme despacho"

	assert.Equal(t, "", e.extractName(block))
}

func TestExtractName_NoStrategyMatchesLeavesEmpty(t *testing.T) {
	e := newTestExtractor()
	assert.Equal(t, "", e.extractName("nada a extrair deste texto em minúsculas"))
}

func TestExtractName_CustomStoplist(t *testing.T) {
	e := newTestExtractor(WithStopTokens([]string{"LUCAS", "MARTINS", "PEREIRA"}))
	block := "matrícula 9 em favor de LUCAS MARTINS PEREIRA conforme despacho de JOANA PRADO"

	assert.Equal(t, "JOANA PRADO", e.extractName(block))
}
