package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	config "github.com/ranieriiuri/eclesial-arrecadacoes/config"
	models "github.com/ranieriiuri/eclesial-arrecadacoes/models"
)

// layouts accepted for the ranking range params; the console sends the
// datetime-local shape, API clients may send RFC3339.
var rankingLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func parseRankingTime(s string) (time.Time, bool) {
	for _, layout := range rankingLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ---------------- DONOR RANKING ----------------
// DonorRanking aggregates donation counts per donor inside [inicio, fim],
// sorted descending.
func DonorRanking(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		inicio, ok := parseRankingTime(c.Query("inicio"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "parâmetro 'inicio' inválido"})
			return
		}
		fim, ok := parseRankingTime(c.Query("fim"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "parâmetro 'fim' inválido"})
			return
		}
		if fim.Before(inicio) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "'fim' deve ser posterior a 'inicio'"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pipeline := mongoRankingPipeline(inicio, fim)
		cursor, err := cfg.Collection("doacoes").Aggregate(ctx, pipeline)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not aggregate ranking"})
			return
		}

		var ranking []models.RankingDoador
		if err := cursor.All(ctx, &ranking); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not decode ranking"})
			return
		}
		if ranking == nil {
			ranking = []models.RankingDoador{}
		}

		c.JSON(http.StatusOK, ranking)
	}
}

func mongoRankingPipeline(inicio, fim time.Time) []bson.M {
	return []bson.M{
		{"$match": bson.M{"data_doacao": bson.M{"$gte": inicio, "$lte": fim}}},
		{"$group": bson.M{
			"_id":           "$doador.nome",
			"total_doacoes": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"total_doacoes": -1}},
	}
}
