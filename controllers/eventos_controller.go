package controllers

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/ranieriiuri/eclesial-arrecadacoes/config"
	models "github.com/ranieriiuri/eclesial-arrecadacoes/models"
)

// ---------------- LIST ----------------
func ListEventos(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.Collection("eventos")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		filter := bson.M{}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}

		cursor, err := col.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not fetch eventos"})
			return
		}

		var eventos []models.Evento
		if err := cursor.All(ctx, &eventos); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not decode eventos"})
			return
		}
		if eventos == nil {
			eventos = []models.Evento{}
		}

		c.JSON(http.StatusOK, eventos)
	}
}

// ---------------- GET ----------------
func GetEvento(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid evento id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var evento models.Evento
		if err := cfg.Collection("eventos").FindOne(ctx, bson.M{"_id": oid}).Decode(&evento); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "evento not found"})
			return
		}

		c.JSON(http.StatusOK, evento)
	}
}

// ---------------- CREATE ----------------
// CreateEvento accepts only tipo "bazar" for now; the event starts in
// "planejando" with a creator snapshot of the authenticated user.
func CreateEvento(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid user id"})
			return
		}

		var input models.NovoEventoRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		if input.Tipo != models.TipoBazar {
			c.JSON(http.StatusBadRequest, gin.H{"message": "por enquanto, só é permitido criar eventos do tipo 'bazar'"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var criador models.User
		if err := cfg.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&criador); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "user not found"})
			return
		}

		evento := models.Evento{
			ID:        primitive.NewObjectID(),
			Tipo:      input.Tipo,
			Descricao: input.Descricao,
			Status:    models.StatusPlanejando,
			CriadoPor: models.CriadorRef{ID: criador.ID, Nome: criador.Nome},
			CriadoEm:  time.Now(),
		}

		if _, err := cfg.Collection("eventos").InsertOne(ctx, evento); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not create evento"})
			return
		}

		c.JSON(http.StatusCreated, evento)
	}
}

// ---------------- LIFECYCLE ----------------
// StartEvento moves planejando -> em andamento and stamps dataInicio.
// The filter carries the expected status so the transition stays monotonic
// even under concurrent requests.
func StartEvento(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		transitionEvento(cfg, c, models.StatusPlanejando, models.StatusEmAndamento, "data_inicio")
	}
}

// FinishEvento moves em andamento -> finalizado and stamps dataFim.
func FinishEvento(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		transitionEvento(cfg, c, models.StatusEmAndamento, models.StatusFinalizado, "data_fim")
	}
}

func transitionEvento(cfg *config.Config, c *gin.Context, from, to, dateField string) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid evento id"})
		return
	}

	col := cfg.Collection("eventos")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := col.UpdateOne(ctx,
		bson.M{"_id": oid, "status": from},
		bson.M{"$set": bson.M{"status": to, dateField: time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not update evento"})
		return
	}
	if res.MatchedCount == 0 {
		var existing models.Evento
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "evento not found"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{
			"message": fmt.Sprintf("evento com status '%s' não pode ir para '%s'", existing.Status, to),
		})
		return
	}

	var updated models.Evento
	if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to retrieve updated evento"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ---------------- DELETE ----------------
// Only events still in planning may be deleted.
func DeleteEvento(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid evento id"})
			return
		}

		col := cfg.Collection("eventos")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Evento
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "evento not found"})
			return
		}
		if existing.Status != models.StatusPlanejando {
			c.JSON(http.StatusConflict, gin.H{"message": "apenas eventos em planejamento podem ser excluídos"})
			return
		}

		if _, err := col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete evento"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "evento deleted", "id": oid.Hex()})
	}
}

// ---------------- REPORT ----------------
// EventoReport streams a CSV of the event's sales as a download.
func EventoReport(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid evento id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var evento models.Evento
		if err := cfg.Collection("eventos").FindOne(ctx, bson.M{"_id": oid}).Decode(&evento); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "evento not found"})
			return
		}

		cursor, err := cfg.Collection("vendas").Find(ctx, bson.M{"evento_id": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not fetch vendas"})
			return
		}

		var vendas []models.Venda
		if err := cursor.All(ctx, &vendas); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not decode vendas"})
			return
		}

		filename := fmt.Sprintf("relatorio-evento-%s.csv", oid.Hex())
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)

		if err := writeRelatorioCSV(c.Writer, evento, vendas); err != nil {
			// Headers are already out; all we can do is log via gin's recovery path.
			_ = c.Error(err)
		}
	}
}

// writeRelatorioCSV renders the sales report: one row per sale plus a totals
// row with the number of items and the amount collected.
func writeRelatorioCSV(w io.Writer, evento models.Evento, vendas []models.Venda) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"peca", "comprador", "quantidade", "valor", "data"}); err != nil {
		return err
	}

	var totalItens int
	var totalValor float64
	for _, v := range vendas {
		totalItens += v.Quantidade
		totalValor += v.ValorArrecadado
		row := []string{
			v.PecaNome,
			v.Comprador,
			fmt.Sprintf("%d", v.Quantidade),
			fmt.Sprintf("%.2f", v.ValorArrecadado),
			v.DataVenda.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	total := []string{
		fmt.Sprintf("TOTAL (%s)", evento.Tipo),
		"",
		fmt.Sprintf("%d", totalItens),
		fmt.Sprintf("%.2f", totalValor),
		"",
	}
	if err := cw.Write(total); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}
