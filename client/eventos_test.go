package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/ranieriiuri/eclesial-arrecadacoes/models"
)

func TestExcluirEventoInvalidaCache(t *testing.T) {
	id := primitive.NewObjectID()

	var listCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("GET /events", func(w http.ResponseWriter, r *http.Request) {
		listCalls++
		_ = json.NewEncoder(w).Encode([]models.Evento{})
	})
	mux.HandleFunc("DELETE /events/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, id.Hex(), r.PathValue("id"))
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "evento deleted", "id": id.Hex()})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.ListEventos(ctx, "")
	assert.NoError(t, err)
	_, err = c.ListEventos(ctx, "")
	assert.NoError(t, err)
	assert.Equal(t, 1, listCalls)

	assert.NoError(t, c.ExcluirEvento(ctx, id.Hex()))

	_, err = c.ListEventos(ctx, "")
	assert.NoError(t, err)
	assert.Equal(t, 2, listCalls, "a exclusão invalida a lista de eventos")
}

func TestExcluirEventoPropagaConflito(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "apenas eventos em planejamento podem ser excluídos"})
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	err := c.ExcluirEvento(context.Background(), primitive.NewObjectID().Hex())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "apenas eventos em planejamento")
}
