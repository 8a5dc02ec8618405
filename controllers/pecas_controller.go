package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/ranieriiuri/eclesial-arrecadacoes/config"
	models "github.com/ranieriiuri/eclesial-arrecadacoes/models"
	utils "github.com/ranieriiuri/eclesial-arrecadacoes/utils"
)

// ---------------- LIST ----------------
func ListPecas(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.Collection("pecas")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		filter := bson.M{}
		if categoria := c.Query("categoria"); categoria != "" {
			filter["categoria"] = categoria
		}

		cursor, err := col.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not fetch pecas"})
			return
		}

		var pecas []models.Peca
		if err := cursor.All(ctx, &pecas); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not decode pecas"})
			return
		}

		if len(pecas) == 0 {
			c.JSON(http.StatusOK, []models.Peca{})
			return
		}

		// --- Pick the most recently updated peça ---
		latest := pecas[0]
		for _, p := range pecas {
			if p.AtualizadoEm.After(latest.AtualizadoEm) {
				latest = p
			}
		}

		etag := utils.GenerateETag(latest.ID, latest.AtualizadoEm)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.AtualizadoEm.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, pecas)
	}
}

// ---------------- LIST AVAILABLE ----------------
func ListPecasDisponiveis(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.Collection("pecas")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := col.Find(ctx, bson.M{"disponivel": true, "quantidade": bson.M{"$gt": 0}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not fetch pecas"})
			return
		}

		var pecas []models.Peca
		if err := cursor.All(ctx, &pecas); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not decode pecas"})
			return
		}
		if pecas == nil {
			pecas = []models.Peca{}
		}

		c.JSON(http.StatusOK, pecas)
	}
}

// ---------------- CREATE (peça + doação) ----------------
// CreatePecaComDoacao registers a new peça and its donation record in one
// request; the donor data is stored as a snapshot inside the doação.
func CreatePecaComDoacao(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NovaPecaComDoacaoRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		if !models.CategoriaValida(input.Categoria) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "categoria inválida"})
			return
		}

		now := time.Now()
		peca := models.Peca{
			ID:           primitive.NewObjectID(),
			Nome:         input.Nome,
			Cor:          input.Cor,
			Categoria:    input.Categoria,
			Quantidade:   input.Quantidade,
			Preco:        input.Preco,
			Observacoes:  input.Observacoes,
			Disponivel:   true,
			CriadoEm:     now,
			AtualizadoEm: now,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := cfg.Collection("pecas").InsertOne(ctx, peca); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not create peca"})
			return
		}

		doacao := models.Doacao{
			ID:       primitive.NewObjectID(),
			PecaID:   peca.ID,
			NomePeca: peca.Nome,
			Doador: models.Doador{
				Nome:        input.NomeDoador,
				Contato:     input.Contato,
				Observacoes: input.ObservacoesDoador,
			},
			Quantidade: input.Quantidade,
			DataDoacao: now,
		}

		if _, err := cfg.Collection("doacoes").InsertOne(ctx, doacao); err != nil {
			// Keep peça and doação atomic from the caller's point of view.
			_, _ = cfg.Collection("pecas").DeleteOne(ctx, bson.M{"_id": peca.ID})
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not create doacao"})
			return
		}

		c.JSON(http.StatusCreated, doacao)
	}
}

// ---------------- UPDATE ----------------
func UpdatePeca(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid peca id"})
			return
		}

		var input struct {
			Nome        string   `json:"nome"`
			Cor         string   `json:"cor"`
			Categoria   string   `json:"categoria"`
			Quantidade  *int     `json:"quantidade"`
			Preco       *float64 `json:"preco"`
			Observacoes string   `json:"observacoes"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		update := bson.M{"atualizado_em": time.Now()}
		if input.Nome != "" {
			update["nome"] = input.Nome
		}
		if input.Cor != "" {
			update["cor"] = input.Cor
		}
		if input.Categoria != "" {
			if !models.CategoriaValida(input.Categoria) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "categoria inválida"})
				return
			}
			update["categoria"] = input.Categoria
		}
		if input.Quantidade != nil {
			if *input.Quantidade < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"message": "quantidade não pode ser negativa"})
				return
			}
			update["quantidade"] = *input.Quantidade
			update["disponivel"] = *input.Quantidade > 0
		}
		if input.Preco != nil {
			if *input.Preco < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"message": "preço não pode ser negativo"})
				return
			}
			update["preco"] = *input.Preco
		}
		if input.Observacoes != "" {
			update["observacoes"] = input.Observacoes
		}

		if len(update) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "no fields to update"})
			return
		}

		col := cfg.Collection("pecas")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not update peca"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "peca not found"})
			return
		}

		var updated models.Peca
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to retrieve updated peca"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// ---------------- DELETE ----------------
func DeletePeca(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid peca id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := cfg.Collection("pecas").DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete peca"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "peca not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "peca deleted", "id": oid.Hex()})
	}
}
