package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrecoFormatado(t *testing.T) {
	assert.Equal(t, "R$ 10.00", Peca{Preco: 10}.PrecoFormatado())
	assert.Equal(t, "R$ 3.50", Peca{Preco: 3.5}.PrecoFormatado())
	assert.Equal(t, "R$ 0.00", Peca{}.PrecoFormatado())
}

func TestCategoriaValida(t *testing.T) {
	for _, cat := range Categorias {
		assert.True(t, CategoriaValida(cat), cat)
	}
	assert.False(t, CategoriaValida("Eletrônico"))
	assert.False(t, CategoriaValida(""))
	assert.False(t, CategoriaValida("camisa"), "a enumeração diferencia maiúsculas")
}
