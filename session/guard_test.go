package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireAuth(t *testing.T) {
	t.Run("sem token redireciona para a raiz sem renderizar", func(t *testing.T) {
		d := RequireAuth(false)
		assert.False(t, d.Allow)
		assert.Equal(t, LoginRoute, d.RedirectTo)
	})

	t.Run("com token renderiza", func(t *testing.T) {
		d := RequireAuth(true)
		assert.True(t, d.Allow)
		assert.Empty(t, d.RedirectTo)
	})
}

func TestRequireAnon(t *testing.T) {
	t.Run("com token redireciona para o dashboard", func(t *testing.T) {
		d := RequireAnon(true)
		assert.False(t, d.Allow)
		assert.Equal(t, DashboardRoute, d.RedirectTo)
	})

	t.Run("sem token renderiza", func(t *testing.T) {
		d := RequireAnon(false)
		assert.True(t, d.Allow)
		assert.Empty(t, d.RedirectTo)
	})
}
