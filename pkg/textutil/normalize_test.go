package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "cafe", Fold("Café"))
	assert.Equal(t, "perifericos", Fold("Periféricos"))
	assert.Equal(t, "nino", Fold("NIÑO"))
	assert.Equal(t, "teclado", Fold("teclado"))
	assert.Equal(t, "", Fold(""))
}
