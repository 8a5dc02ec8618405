package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Categorias is the fixed enumeration of item categories.
var Categorias = []string{
	"Camisa",
	"Calça",
	"Vestido",
	"Sapato",
	"Acessório",
	"Outro",
}

// CategoriaValida reports whether c is one of the fixed categories.
func CategoriaValida(c string) bool {
	for _, cat := range Categorias {
		if cat == c {
			return true
		}
	}
	return false
}

// Peca is a donated item tracked in inventory.
type Peca struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nome         string             `bson:"nome" json:"nome"`
	Cor          string             `bson:"cor,omitempty" json:"cor,omitempty"`
	Categoria    string             `bson:"categoria" json:"categoria"`
	Quantidade   int                `bson:"quantidade" json:"quantidade"`
	Preco        float64            `bson:"preco" json:"preco"`
	Observacoes  string             `bson:"observacoes,omitempty" json:"observacoes,omitempty"`
	Disponivel   bool               `bson:"disponivel" json:"disponivel"`
	CriadoEm     time.Time          `bson:"criado_em" json:"criadoEm"`
	AtualizadoEm time.Time          `bson:"atualizado_em" json:"atualizadoEm"`
}

// PrecoFormatado renders the unit price as displayed in the console, e.g. "R$ 10.00".
func (p Peca) PrecoFormatado() string {
	return fmt.Sprintf("R$ %.2f", p.Preco)
}
