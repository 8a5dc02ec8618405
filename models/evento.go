package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event types. Only "bazar" is enabled for creation today; the others are
// reserved values already present in historical data.
const (
	TipoBazar        = "bazar"
	TipoCantina      = "cantina"
	TipoDoacao       = "doacao"
	TipoVendaExterna = "venda externa"
)

// Event lifecycle statuses. Transitions are monotonic:
// planejando -> em andamento -> finalizado.
const (
	StatusPlanejando  = "planejando"
	StatusEmAndamento = "em andamento"
	StatusFinalizado  = "finalizado"
)

// CriadorRef is the creator snapshot embedded in an event.
type CriadorRef struct {
	ID   primitive.ObjectID `bson:"id" json:"id"`
	Nome string             `bson:"nome" json:"nome"`
}

// Evento is a time-boxed fundraising event against which sales are recorded.
type Evento struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Tipo       string             `bson:"tipo" json:"tipo"`
	Descricao  string             `bson:"descricao,omitempty" json:"descricao,omitempty"`
	DataInicio *time.Time         `bson:"data_inicio,omitempty" json:"dataInicio,omitempty"`
	DataFim    *time.Time         `bson:"data_fim,omitempty" json:"dataFim,omitempty"`
	Status     string             `bson:"status" json:"status"`
	CriadoPor  CriadorRef         `bson:"criado_por" json:"criadoPor"`
	CriadoEm   time.Time          `bson:"criado_em" json:"criadoEm"`
}

// EmAndamento reports whether the event is in progress: it has started and
// has not ended. Sales may only be registered while this holds.
func (e Evento) EmAndamento() bool {
	return e.DataInicio != nil && e.DataFim == nil
}

// NovoEventoRequest is the creation payload of POST /events/new.
type NovoEventoRequest struct {
	Tipo      string `json:"tipo" binding:"required"`
	Descricao string `json:"descricao"`
}
