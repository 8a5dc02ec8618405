package client

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"time"

	models "github.com/ranieriiuri/eclesial-arrecadacoes/models"
)

// RankingDoadores fetches the donor ranking inside [inicio, fim]. The result
// is re-sorted descending by totalDoacoes here: the display order must not
// depend on whatever order the server returned.
func (c *Client) RankingDoadores(ctx context.Context, inicio, fim time.Time) ([]models.RankingDoador, error) {
	q := url.Values{}
	q.Set("inicio", inicio.Format(time.RFC3339))
	q.Set("fim", fim.Format(time.RFC3339))

	var ranking []models.RankingDoador
	if err := c.do(ctx, http.MethodGet, "/donations/donors/ranking/range?"+q.Encode(), nil, &ranking); err != nil {
		return nil, err
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].TotalDoacoes > ranking[j].TotalDoacoes
	})
	return ranking, nil
}
