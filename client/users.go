package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	models "github.com/ranieriiuri/eclesial-arrecadacoes/models"
)

// Me fetches the current profile ("who am I"). Used by the session store on
// startup and after login.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// loginResponse is the body of /auth/login and /auth/register.
type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login exchanges credentials for a token and the profile. It does not touch
// the default token; the session store decides when to install it.
func (c *Client) Login(ctx context.Context, email, senha string) (string, *models.User, error) {
	body := map[string]string{"email": email, "senha": senha}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return "", nil, err
	}
	return resp.Token, &resp.User, nil
}

// Register posts the full registration record; success yields an immediately
// usable token, no separate login needed.
func (c *Client) Register(ctx context.Context, req models.RegistroRequest) (string, *models.User, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return "", nil, err
	}
	return resp.Token, &resp.User, nil
}

// AtualizarPerfil updates the editable profile fields.
func (c *Client) AtualizarPerfil(ctx context.Context, nome, cargo string, endereco *models.Endereco, igreja *models.Igreja) (*models.User, error) {
	body := map[string]any{}
	if nome != "" {
		body["nome"] = nome
	}
	if cargo != "" {
		body["cargo"] = cargo
	}
	if endereco != nil {
		body["endereco"] = endereco
	}
	if igreja != nil {
		body["igreja"] = igreja
	}

	var user models.User
	if err := c.do(ctx, http.MethodPut, "/users/me/data", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// EnviarFotoPerfil uploads a new profile photo as multipart field "foto".
func (c *Client) EnviarFotoPerfil(ctx context.Context, filename string, photo io.Reader) (*models.User, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("foto", filepath.Base(filename))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, photo); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/users/me/photo", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("PUT /users/me/photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp)
	}

	var user models.User
	if err := decodeJSON(resp.Body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// AlterarSenha changes the account password.
func (c *Client) AlterarSenha(ctx context.Context, senhaAtual, novaSenha string) error {
	body := map[string]string{"senhaAtual": senhaAtual, "novaSenha": novaSenha}
	return c.do(ctx, http.MethodPost, "/users/change-password", body, nil)
}
