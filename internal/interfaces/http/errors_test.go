package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-stock-engine/internal/application/dto"
	"github.com/jhoicas/wms-stock-engine/internal/domain"
)

func TestWriteError_MapeaErroresDeDominio(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("movimiento: %w", domain.ErrInvalidQuantity), fiber.StatusBadRequest, "VALIDATION"},
		{domain.ErrLocationUnavailable, fiber.StatusBadRequest, "VALIDATION"},
		{fmt.Errorf("tarea: %w", domain.ErrNotFound), fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{fmt.Errorf("%w (3 intentos)", domain.ErrConcurrentModification), fiber.StatusServiceUnavailable, "CONFLICT_RETRY"},
		{errors.New("conexión perdida"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeError(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)

			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.code, body.Code)
		})
	}
}
