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
)

// ---------------- LIST ----------------
func ListVendas(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		listVendas(cfg, c, bson.M{})
	}
}

func ListVendasPorEvento(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid evento id"})
			return
		}
		listVendas(cfg, c, bson.M{"evento_id": oid})
	}
}

func listVendas(cfg *config.Config, c *gin.Context, filter bson.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := cfg.Collection("vendas").Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not fetch vendas"})
		return
	}

	var vendas []models.Venda
	if err := cursor.All(ctx, &vendas); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not decode vendas"})
		return
	}
	if vendas == nil {
		vendas = []models.Venda{}
	}

	c.JSON(http.StatusOK, vendas)
}

// ---------------- CREATE ----------------
// CreateVenda registers a sale against an event that must be "em andamento".
// Stock is decremented with a quantity-guarded filter so it never goes
// negative, even when two sales race for the same peça.
func CreateVenda(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.VendaRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		pecaID, err := primitive.ObjectIDFromHex(input.PecaID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid peca id"})
			return
		}
		eventoID, err := primitive.ObjectIDFromHex(input.EventoID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid evento id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var evento models.Evento
		if err := cfg.Collection("eventos").FindOne(ctx, bson.M{"_id": eventoID}).Decode(&evento); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "evento not found"})
			return
		}
		if evento.Status != models.StatusEmAndamento || !evento.EmAndamento() {
			c.JSON(http.StatusConflict, gin.H{"message": "evento não está em andamento"})
			return
		}

		pecasCol := cfg.Collection("pecas")
		var peca models.Peca
		if err := pecasCol.FindOne(ctx, bson.M{"_id": pecaID}).Decode(&peca); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "peca not found"})
			return
		}

		qtd := input.QuantidadeVendida
		if qtd > peca.Quantidade {
			c.JSON(http.StatusConflict, gin.H{"message": "quantidade indisponível em estoque"})
			return
		}

		// Guarded decrement: only applies while enough stock remains.
		res, err := pecasCol.UpdateOne(ctx,
			bson.M{"_id": pecaID, "quantidade": bson.M{"$gte": qtd}},
			bson.M{
				"$inc": bson.M{"quantidade": -qtd},
				"$set": bson.M{"atualizado_em": time.Now()},
			})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not update estoque"})
			return
		}
		if res.ModifiedCount == 0 {
			c.JSON(http.StatusConflict, gin.H{"message": "quantidade indisponível em estoque"})
			return
		}

		// Flip availability off when the stock hits zero.
		_, _ = pecasCol.UpdateOne(ctx,
			bson.M{"_id": pecaID, "quantidade": 0},
			bson.M{"$set": bson.M{"disponivel": false}})

		venda := models.Venda{
			ID:              primitive.NewObjectID(),
			PecaID:          pecaID,
			PecaNome:        peca.Nome,
			EventoID:        eventoID,
			Comprador:       input.Comprador,
			Quantidade:      qtd,
			ValorArrecadado: peca.Preco * float64(qtd),
			DataVenda:       time.Now(),
		}

		if _, err := cfg.Collection("vendas").InsertOne(ctx, venda); err != nil {
			// Put the stock back; the sale was not recorded.
			_, _ = pecasCol.UpdateOne(ctx, bson.M{"_id": pecaID},
				bson.M{"$inc": bson.M{"quantidade": qtd}, "$set": bson.M{"disponivel": true}})
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not create venda"})
			return
		}

		c.JSON(http.StatusCreated, venda)
	}
}
