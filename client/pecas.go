package client

import (
	"context"
	"net/http"
	"net/url"

	models "github.com/ranieriiuri/eclesial-arrecadacoes/models"
)

const (
	resourcePecas            = "pecas"
	resourcePecasDisponiveis = "pecas-disponiveis"
)

// ListPecas lists the inventory, optionally filtered by category. Results are
// cached per category until a peça write invalidates them.
func (c *Client) ListPecas(ctx context.Context, categoria string) ([]models.Peca, error) {
	if v, ok := c.cache.get(resourcePecas, categoria); ok {
		return v.([]models.Peca), nil
	}

	path := "/pecas"
	if categoria != "" {
		path += "?categoria=" + url.QueryEscape(categoria)
	}

	var pecas []models.Peca
	if err := c.do(ctx, http.MethodGet, path, nil, &pecas); err != nil {
		return nil, err
	}
	c.cache.put(resourcePecas, categoria, pecas)
	return pecas, nil
}

// ListPecasDisponiveis lists only sellable items (available, stock > 0).
func (c *Client) ListPecasDisponiveis(ctx context.Context) ([]models.Peca, error) {
	if v, ok := c.cache.get(resourcePecasDisponiveis, ""); ok {
		return v.([]models.Peca), nil
	}

	var pecas []models.Peca
	if err := c.do(ctx, http.MethodGet, "/pecas/disponiveis", nil, &pecas); err != nil {
		return nil, err
	}
	c.cache.put(resourcePecasDisponiveis, "", pecas)
	return pecas, nil
}

// CriarPecaComDoacao registers a peça together with its donation record and
// returns the server-echoed doação.
func (c *Client) CriarPecaComDoacao(ctx context.Context, req models.NovaPecaComDoacaoRequest) (*models.Doacao, error) {
	var doacao models.Doacao
	if err := c.do(ctx, http.MethodPost, "/pecas/pecas-com-doacao", req, &doacao); err != nil {
		return nil, err
	}
	c.invalidatePecas()
	return &doacao, nil
}

// AtualizarPeca updates the peça's own fields and returns the stored version.
func (c *Client) AtualizarPeca(ctx context.Context, peca models.Peca) (*models.Peca, error) {
	var updated models.Peca
	if err := c.do(ctx, http.MethodPut, "/pecas/"+peca.ID.Hex(), peca, &updated); err != nil {
		return nil, err
	}
	c.invalidatePecas()
	return &updated, nil
}

// ExcluirPeca removes a peça by id.
func (c *Client) ExcluirPeca(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/pecas/"+id, nil, nil); err != nil {
		return err
	}
	c.invalidatePecas()
	return nil
}

func (c *Client) invalidatePecas() {
	c.cache.Invalidate(resourcePecas)
	c.cache.Invalidate(resourcePecasDisponiveis)
}
