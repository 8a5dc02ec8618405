package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Doador is the donor snapshot stored inside a donation record.
type Doador struct {
	Nome        string `bson:"nome" json:"nome"`
	Contato     string `bson:"contato,omitempty" json:"contato,omitempty"`
	Observacoes string `bson:"observacoes,omitempty" json:"observacoes,omitempty"`
}

// Doacao links a donor to one peça and a quantity.
type Doacao struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PecaID     primitive.ObjectID `bson:"peca_id" json:"pecaId"`
	NomePeca   string             `bson:"nome_peca" json:"nomePeca"`
	Doador     Doador             `bson:"doador" json:"doador"`
	Quantidade int                `bson:"quantidade" json:"quantidade"`
	DataDoacao time.Time          `bson:"data_doacao" json:"dataDoacao"`
}

// NovaPecaComDoacaoRequest is the combined payload of POST /pecas/pecas-com-doacao:
// the peça is created together with its donation record.
type NovaPecaComDoacaoRequest struct {
	Nome              string  `json:"nome" binding:"required"`
	Cor               string  `json:"cor"`
	Categoria         string  `json:"categoria" binding:"required"`
	Quantidade        int     `json:"quantidade" binding:"required,gte=1"`
	Preco             float64 `json:"preco" binding:"gte=0"`
	Observacoes       string  `json:"observacoes"`
	NomeDoador        string  `json:"nomeDoador" binding:"required"`
	Contato           string  `json:"contato"`
	ObservacoesDoador string  `json:"observacoesDoador"`
}

// RankingDoador is one row of the donor ranking.
type RankingDoador struct {
	Nome         string `bson:"_id" json:"nome"`
	TotalDoacoes int    `bson:"total_doacoes" json:"totalDoacoes"`
}
