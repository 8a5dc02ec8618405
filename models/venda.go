package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Venda is a sale of a peça within an active evento. PecaNome is a snapshot
// taken at sale time so the record survives later edits to the peça.
type Venda struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PecaID          primitive.ObjectID `bson:"peca_id" json:"pecaId"`
	PecaNome        string             `bson:"peca_nome" json:"pecaNome"`
	EventoID        primitive.ObjectID `bson:"evento_id" json:"eventoId"`
	Comprador       string             `bson:"comprador,omitempty" json:"comprador,omitempty"`
	Quantidade      int                `bson:"quantidade" json:"quantidade"`
	ValorArrecadado float64            `bson:"valor_arrecadado" json:"valorArrecadado"`
	DataVenda       time.Time          `bson:"data_venda" json:"dataVenda"`
}

// VendaRequest is the payload of POST /sales/new.
type VendaRequest struct {
	PecaID            string `json:"pecaId" binding:"required"`
	EventoID          string `json:"eventoId" binding:"required"`
	QuantidadeVendida int    `json:"quantidadeVendida" binding:"required,gte=1"`
	Comprador         string `json:"comprador"`
}
