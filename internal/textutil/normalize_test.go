package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_LowercasesAndStripsAccents(t *testing.T) {
	assert.Equal(t, "concedera pensao", Normalize("CONCEDERÁ PENSÃO"))
	assert.Equal(t, "isencao de imposto de renda", Normalize("Isenção de Imposto de Renda"))
	assert.Equal(t, "aposentadoria vitalicia", Normalize("APOSENTADORIA VITALÍCIA"))
}

func TestNormalize_PreservesTokenBoundaries(t *testing.T) {
	in := "Diário  Oficial\t05-03-2018"
	out := Normalize(in)
	assert.Equal(t, "diario  oficial\t05-03-2018", out)
	assert.Equal(t, len([]rune(in)), len([]rune(out)))
}

func TestNormalize_PlainASCIIUnchanged(t *testing.T) {
	assert.Equal(t, "conceder aposentadoria a jose", Normalize("conceder aposentadoria a jose"))
}

func TestNormalize_EmptyString(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
}
