package controllers

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	models "github.com/ranieriiuri/eclesial-arrecadacoes/models"
)

func TestWriteRelatorioCSV(t *testing.T) {
	evento := models.Evento{Tipo: models.TipoBazar}
	data := time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC)
	vendas := []models.Venda{
		{PecaNome: "Camisa social", Comprador: "Ana", Quantidade: 2, ValorArrecadado: 20, DataVenda: data},
		{PecaNome: "Sapato social", Quantidade: 1, ValorArrecadado: 25.5, DataVenda: data},
	}

	var buf bytes.Buffer
	assert.NoError(t, writeRelatorioCSV(&buf, evento, vendas))

	rows, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 4, "cabeçalho + duas vendas + total")

	assert.Equal(t, []string{"peca", "comprador", "quantidade", "valor", "data"}, rows[0])
	assert.Equal(t, []string{"Camisa social", "Ana", "2", "20.00", "2026-08-15T14:30:00Z"}, rows[1])
	assert.Equal(t, []string{"Sapato social", "", "1", "25.50", "2026-08-15T14:30:00Z"}, rows[2])
	assert.Equal(t, []string{"TOTAL (bazar)", "", "3", "45.50", ""}, rows[3])
}

func TestWriteRelatorioCSVSemVendas(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, writeRelatorioCSV(&buf, models.Evento{Tipo: models.TipoBazar}, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, []string{"TOTAL (bazar)", "", "0", "0.00", ""}, rows[1])
}
