package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ranieriiuri/eclesial-arrecadacoes/client"
	models "github.com/ranieriiuri/eclesial-arrecadacoes/models"
)

// fakeAPI is a minimal /auth/login + /auth/me backend that records how it was
// called.
type fakeAPI struct {
	validToken string
	user       models.User

	meCalls   int
	meHeaders []string
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email string `json:"email"`
			Senha string `json:"senha"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Email != "maria@igreja.org" || body.Senha != "segredo" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "credenciais inválidas"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"token": f.validToken, "user": f.user})
	})

	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		var form models.RegistroRequest
		_ = json.NewDecoder(r.Body).Decode(&form)
		if form.Email == "maria@igreja.org" {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "e-mail já cadastrado"})
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": f.validToken,
			"user":  models.User{Nome: form.Nome, Email: form.Email},
		})
	})

	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		f.meCalls++
		auth := r.Header.Get("Authorization")
		f.meHeaders = append(f.meHeaders, auth)
		if auth != "Bearer "+f.validToken {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "token inválido ou expirado"})
			return
		}
		_ = json.NewEncoder(w).Encode(f.user)
	})

	return mux
}

func newTestStore(t *testing.T, api *fakeAPI) (*Store, *client.Client, string) {
	t.Helper()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	tokenPath := filepath.Join(t.TempDir(), "token")
	tokens, err := NewFileStore(tokenPath)
	assert.NoError(t, err)

	c := client.New(srv.URL)
	s, err := New(c, tokens)
	assert.NoError(t, err)
	return s, c, tokenPath
}

func TestLoginThenLogoutLeavesNothingBehind(t *testing.T) {
	api := &fakeAPI{validToken: "tok-1", user: models.User{Nome: "Maria"}}
	s, c, tokenPath := newTestStore(t, api)

	assert.Equal(t, Unauthenticated, s.State())

	err := s.Login(context.Background(), "maria@igreja.org", "segredo")
	assert.NoError(t, err)
	assert.Equal(t, Authenticated, s.State())
	assert.Equal(t, "Maria", s.User().Nome)
	assert.Equal(t, "tok-1", c.Token())

	data, err := os.ReadFile(tokenPath)
	assert.NoError(t, err)
	assert.Equal(t, "tok-1", string(data))

	s.Logout()
	assert.Equal(t, Unauthenticated, s.State())
	assert.Nil(t, s.User())
	assert.Empty(t, c.Token(), "o header padrão deve sumir no logout")
	_, err = os.Stat(tokenPath)
	assert.True(t, os.IsNotExist(err), "o token durável deve ser removido no logout")
}

func TestLoginFailureSurfacesServerMessage(t *testing.T) {
	api := &fakeAPI{validToken: "tok-1"}
	s, c, tokenPath := newTestStore(t, api)

	err := s.Login(context.Background(), "maria@igreja.org", "errada")
	assert.EqualError(t, err, "credenciais inválidas")
	assert.Equal(t, "credenciais inválidas", s.Err())
	assert.Equal(t, Unauthenticated, s.State())
	assert.Empty(t, c.Token())
	_, statErr := os.Stat(tokenPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRegisterOpensSessionImmediately(t *testing.T) {
	api := &fakeAPI{validToken: "tok-novo"}
	s, c, tokenPath := newTestStore(t, api)

	form := models.RegistroRequest{
		Nome:  "Rute",
		Email: "rute@igreja.org",
		Senha: "segredo1",
		CPF:   "123.456.789-00",
	}
	err := s.Register(context.Background(), form)
	assert.NoError(t, err)

	assert.Equal(t, Authenticated, s.State())
	assert.Equal(t, "Rute", s.User().Nome)
	assert.Equal(t, "tok-novo", c.Token(), "o header padrão é instalado no cadastro")

	data, err := os.ReadFile(tokenPath)
	assert.NoError(t, err)
	assert.Equal(t, "tok-novo", string(data), "o token do cadastro é persistido")

	assert.Zero(t, api.meCalls, "o perfil vem na resposta do cadastro, sem who-am-I")
}

func TestRegisterFailureSurfacesServerMessage(t *testing.T) {
	api := &fakeAPI{validToken: "tok-1"}
	s, c, tokenPath := newTestStore(t, api)

	form := models.RegistroRequest{Nome: "Maria", Email: "maria@igreja.org", Senha: "segredo1"}
	err := s.Register(context.Background(), form)
	assert.EqualError(t, err, "e-mail já cadastrado")
	assert.Equal(t, "e-mail já cadastrado", s.Err())
	assert.Equal(t, Unauthenticated, s.State())
	assert.Empty(t, c.Token())
	_, statErr := os.Stat(tokenPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestInitializeWithValidStoredToken(t *testing.T) {
	api := &fakeAPI{validToken: "tok-guardado", user: models.User{Nome: "Maria"}}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	tokenPath := filepath.Join(t.TempDir(), "token")
	tokens, err := NewFileStore(tokenPath)
	assert.NoError(t, err)
	assert.NoError(t, tokens.Save("tok-guardado"))

	c := client.New(srv.URL)
	s, err := New(c, tokens)
	assert.NoError(t, err)
	assert.Equal(t, Initializing, s.State())

	s.Initialize(context.Background())
	assert.Equal(t, Authenticated, s.State())
	assert.Equal(t, "Maria", s.User().Nome)

	// O who-am-I saiu com o token guardado como credencial bearer.
	for _, h := range api.meHeaders {
		assert.Equal(t, "Bearer tok-guardado", h)
	}
}

func TestInitializeWithStaleTokenPurgesEverything(t *testing.T) {
	api := &fakeAPI{validToken: "tok-valido"}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	tokenPath := filepath.Join(t.TempDir(), "token")
	tokens, err := NewFileStore(tokenPath)
	assert.NoError(t, err)
	assert.NoError(t, tokens.Save("tok-vencido"))

	c := client.New(srv.URL)
	s, err := New(c, tokens)
	assert.NoError(t, err)

	s.Initialize(context.Background())

	assert.Equal(t, Unauthenticated, s.State())
	assert.Nil(t, s.User())
	assert.Empty(t, s.Err(), "logout implícito não é um erro visível")
	assert.Empty(t, c.Token())
	_, statErr := os.Stat(tokenPath)
	assert.True(t, os.IsNotExist(statErr), "o token inválido deve ser expurgado")

	// Uma tentativa + uma repetição automática, nada além disso.
	assert.Equal(t, 2, api.meCalls)
}

func TestInitializeIsNoopWithoutStoredToken(t *testing.T) {
	api := &fakeAPI{validToken: "tok-1"}
	s, _, _ := newTestStore(t, api)

	s.Initialize(context.Background())
	assert.Equal(t, Unauthenticated, s.State())
	assert.Zero(t, api.meCalls)
}
