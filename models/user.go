package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Endereco is the postal address embedded in the user record.
type Endereco struct {
	Cep         string `bson:"cep" json:"cep"`
	Logradouro  string `bson:"logradouro" json:"logradouro"`
	Numero      string `bson:"numero" json:"numero"`
	Complemento string `bson:"complemento,omitempty" json:"complemento,omitempty"`
	Bairro      string `bson:"bairro" json:"bairro"`
	Cidade      string `bson:"cidade" json:"cidade"`
	Estado      string `bson:"estado" json:"estado"`
	Pais        string `bson:"pais" json:"pais"`
}

// Igreja is the church affiliation embedded in the user record.
type Igreja struct {
	Nome   string `bson:"nome" json:"nome"`
	Cnpj   string `bson:"cnpj" json:"cnpj"`
	Cidade string `bson:"cidade" json:"cidade"`
	Estado string `bson:"estado" json:"estado"`
}

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nome         string             `bson:"nome" json:"nome"`
	Email        string             `bson:"email" json:"email"`
	SenhaHash    string             `bson:"senha_hash" json:"-"`
	CPF          string             `bson:"cpf" json:"cpf"`
	Cargo        string             `bson:"cargo,omitempty" json:"cargo,omitempty"`
	Endereco     Endereco           `bson:"endereco" json:"endereco"`
	Igreja       Igreja             `bson:"igreja" json:"igreja"`
	FotoPerfil   string             `bson:"foto_perfil,omitempty" json:"fotoPerfil,omitempty"`
	CriadoEm     time.Time          `bson:"criado_em" json:"criadoEm"`
	AtualizadoEm time.Time          `bson:"atualizado_em" json:"atualizadoEm"`
}

// RegistroRequest is the full registration payload accepted by /auth/register.
type RegistroRequest struct {
	Nome     string   `json:"nome" binding:"required"`
	Email    string   `json:"email" binding:"required,email"`
	Senha    string   `json:"senha" binding:"required,min=6"`
	CPF      string   `json:"cpf" binding:"required"`
	Cargo    string   `json:"cargo"`
	Endereco Endereco `json:"endereco" binding:"required"`
	Igreja   Igreja   `json:"igreja" binding:"required"`
}
