package client

import (
	"context"
	"errors"
	"net/http"

	models "github.com/ranieriiuri/eclesial-arrecadacoes/models"
)

const resourceVendas = "vendas"

// Pre-submission rejections: when these fire, no request is issued.
var (
	ErrEventoNaoEmAndamento   = errors.New("evento não está em andamento")
	ErrQuantidadeIndisponivel = errors.New("quantidade indisponível em estoque")
)

// ListVendas lists every sale.
func (c *Client) ListVendas(ctx context.Context) ([]models.Venda, error) {
	if v, ok := c.cache.get(resourceVendas, ""); ok {
		return v.([]models.Venda), nil
	}

	var vendas []models.Venda
	if err := c.do(ctx, http.MethodGet, "/sales", nil, &vendas); err != nil {
		return nil, err
	}
	c.cache.put(resourceVendas, "", vendas)
	return vendas, nil
}

// ListVendasPorEvento lists the sales of one event.
func (c *Client) ListVendasPorEvento(ctx context.Context, eventoID string) ([]models.Venda, error) {
	if v, ok := c.cache.get(resourceVendas, eventoID); ok {
		return v.([]models.Venda), nil
	}

	var vendas []models.Venda
	if err := c.do(ctx, http.MethodGet, "/sales/event/"+eventoID, nil, &vendas); err != nil {
		return nil, err
	}
	c.cache.put(resourceVendas, eventoID, vendas)
	return vendas, nil
}

// RegistrarVenda submits a sale of qtd units of peca within evento. The same
// checks that gate the sale form run first: the event must be in progress and
// the quantity must fit the stock — on violation the request is never issued.
func (c *Client) RegistrarVenda(ctx context.Context, peca models.Peca, evento models.Evento, qtd int, comprador string) (*models.Venda, error) {
	if !evento.EmAndamento() {
		return nil, ErrEventoNaoEmAndamento
	}
	if qtd < 1 || qtd > peca.Quantidade {
		return nil, ErrQuantidadeIndisponivel
	}

	req := models.VendaRequest{
		PecaID:            peca.ID.Hex(),
		EventoID:          evento.ID.Hex(),
		QuantidadeVendida: qtd,
		Comprador:         comprador,
	}

	var venda models.Venda
	if err := c.do(ctx, http.MethodPost, "/sales/new", req, &venda); err != nil {
		return nil, err
	}

	// The sale changed both the sales lists and the item's stock.
	c.cache.Invalidate(resourceVendas)
	c.invalidatePecas()
	return &venda, nil
}
