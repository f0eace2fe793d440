package http

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbis-erp/orbis-api/internal/domain"
)

func errorResponseFor(t *testing.T, err error) (int, string) {
	t.Helper()
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		return writeError(c, err)
	})
	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, reqErr)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

// El 409 de stock insuficiente conserva el detalle que envuelve el ledger:
// el cliente debe poder saber QUÉ producto no tenía saldo.
func TestWriteError_StockInsuficienteNombraElProducto(t *testing.T) {
	status, body := errorResponseFor(t,
		fmt.Errorf("%w: %s", domain.ErrInsufficientStock, "SKU-001"))

	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, body, "INSUFFICIENT_STOCK")
	assert.Contains(t, body, "SKU-001", "la respuesta debe nombrar el producto sin saldo")
}

// Un mismo error de negocio produce el mismo status en cualquier endpoint.
func TestWriteError_MapeoConsistente(t *testing.T) {
	cases := []struct {
		err  error
		want int
		code string
	}{
		{domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrInvalidStatus, http.StatusConflict, "INVALID_STATUS"},
	}
	for _, tc := range cases {
		status, body := errorResponseFor(t, tc.err)
		assert.Equal(t, tc.want, status)
		assert.Contains(t, body, tc.code)
	}
}
