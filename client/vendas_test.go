package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/ranieriiuri/eclesial-arrecadacoes/models"
)

func TestRegistrarVendaRejeitaSemIrAoServidor(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	ctx := context.Background()

	inicio := time.Now()
	fim := inicio.Add(time.Hour)
	peca := models.Peca{ID: primitive.NewObjectID(), Nome: "Sapato social", Quantidade: 3, Preco: 25}

	t.Run("evento ainda em planejamento", func(t *testing.T) {
		planejando := models.Evento{ID: primitive.NewObjectID(), Status: models.StatusPlanejando}
		_, err := c.RegistrarVenda(ctx, peca, planejando, 1, "")
		assert.ErrorIs(t, err, ErrEventoNaoEmAndamento)
	})

	t.Run("evento já finalizado", func(t *testing.T) {
		finalizado := models.Evento{
			ID:         primitive.NewObjectID(),
			Status:     models.StatusFinalizado,
			DataInicio: &inicio,
			DataFim:    &fim,
		}
		_, err := c.RegistrarVenda(ctx, peca, finalizado, 1, "")
		assert.ErrorIs(t, err, ErrEventoNaoEmAndamento)
	})

	emAndamento := models.Evento{
		ID:         primitive.NewObjectID(),
		Status:     models.StatusEmAndamento,
		DataInicio: &inicio,
	}

	t.Run("quantidade acima do estoque", func(t *testing.T) {
		_, err := c.RegistrarVenda(ctx, peca, emAndamento, 4, "")
		assert.ErrorIs(t, err, ErrQuantidadeIndisponivel)
	})

	t.Run("quantidade abaixo de um", func(t *testing.T) {
		_, err := c.RegistrarVenda(ctx, peca, emAndamento, 0, "")
		assert.ErrorIs(t, err, ErrQuantidadeIndisponivel)
	})

	assert.Zero(t, requests, "rejeição local nunca emite requisição")
}

func TestRegistrarVendaEnviaEInvalidaCaches(t *testing.T) {
	peca := models.Peca{ID: primitive.NewObjectID(), Nome: "Calça jeans", Quantidade: 5, Preco: 15}
	inicio := time.Now()
	evento := models.Evento{ID: primitive.NewObjectID(), Status: models.StatusEmAndamento, DataInicio: &inicio}

	var vendasCalls, pecasCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("GET /sales", func(w http.ResponseWriter, r *http.Request) {
		vendasCalls++
		_ = json.NewEncoder(w).Encode([]models.Venda{})
	})
	mux.HandleFunc("GET /pecas", func(w http.ResponseWriter, r *http.Request) {
		pecasCalls++
		_ = json.NewEncoder(w).Encode([]models.Peca{peca})
	})
	mux.HandleFunc("POST /sales/new", func(w http.ResponseWriter, r *http.Request) {
		var req models.VendaRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, peca.ID.Hex(), req.PecaID)
		assert.Equal(t, evento.ID.Hex(), req.EventoID)
		assert.Equal(t, 2, req.QuantidadeVendida)
		assert.Equal(t, "Ana", req.Comprador)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Venda{
			PecaID:          peca.ID,
			PecaNome:        peca.Nome,
			EventoID:        evento.ID,
			Comprador:       req.Comprador,
			Quantidade:      req.QuantidadeVendida,
			ValorArrecadado: 30,
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.ListVendas(ctx)
	assert.NoError(t, err)
	_, err = c.ListPecas(ctx, "")
	assert.NoError(t, err)

	venda, err := c.RegistrarVenda(ctx, peca, evento, 2, "Ana")
	assert.NoError(t, err)
	assert.Equal(t, "Calça jeans", venda.PecaNome)
	assert.Equal(t, 30.0, venda.ValorArrecadado)

	// A venda mexeu tanto nas listas de vendas quanto no estoque das peças.
	_, err = c.ListVendas(ctx)
	assert.NoError(t, err)
	_, err = c.ListPecas(ctx, "")
	assert.NoError(t, err)
	assert.Equal(t, 2, vendasCalls)
	assert.Equal(t, 2, pecasCalls)
}
