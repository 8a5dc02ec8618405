package client

import (
	"context"
	"io"
	"net/http"
	"net/url"

	models "github.com/ranieriiuri/eclesial-arrecadacoes/models"
)

const resourceEventos = "eventos"

// ListEventos lists events, optionally filtered by status
// (planejando | em andamento | finalizado).
func (c *Client) ListEventos(ctx context.Context, status string) ([]models.Evento, error) {
	if v, ok := c.cache.get(resourceEventos, status); ok {
		return v.([]models.Evento), nil
	}

	path := "/events"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	var eventos []models.Evento
	if err := c.do(ctx, http.MethodGet, path, nil, &eventos); err != nil {
		return nil, err
	}
	c.cache.put(resourceEventos, status, eventos)
	return eventos, nil
}

// GetEvento fetches one event by id (never cached; the panel polls it).
func (c *Client) GetEvento(ctx context.Context, id string) (*models.Evento, error) {
	var evento models.Evento
	if err := c.do(ctx, http.MethodGet, "/events/"+id, nil, &evento); err != nil {
		return nil, err
	}
	return &evento, nil
}

// CriarEvento creates a new event in "planejando".
func (c *Client) CriarEvento(ctx context.Context, req models.NovoEventoRequest) (*models.Evento, error) {
	var evento models.Evento
	if err := c.do(ctx, http.MethodPost, "/events/new", req, &evento); err != nil {
		return nil, err
	}
	c.cache.Invalidate(resourceEventos)
	return &evento, nil
}

// IniciarEvento transitions planejando -> em andamento.
func (c *Client) IniciarEvento(ctx context.Context, id string) (*models.Evento, error) {
	return c.transitionEvento(ctx, id, "starting")
}

// FinalizarEvento transitions em andamento -> finalizado.
func (c *Client) FinalizarEvento(ctx context.Context, id string) (*models.Evento, error) {
	return c.transitionEvento(ctx, id, "finishing")
}

func (c *Client) transitionEvento(ctx context.Context, id, action string) (*models.Evento, error) {
	var evento models.Evento
	if err := c.do(ctx, http.MethodPut, "/events/"+id+"/"+action, nil, &evento); err != nil {
		return nil, err
	}
	c.cache.Invalidate(resourceEventos)
	return &evento, nil
}

// ExcluirEvento removes an event still in planning.
func (c *Client) ExcluirEvento(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/events/"+id, nil, nil); err != nil {
		return err
	}
	c.cache.Invalidate(resourceEventos)
	return nil
}

// BaixarRelatorio streams the event's report file into w.
func (c *Client) BaixarRelatorio(ctx context.Context, id string, w io.Writer) error {
	return c.download(ctx, "/events/"+id+"/report", w)
}
