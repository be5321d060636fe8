package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-stock-engine/pkg/jwt"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := jwt.Generate("secret", "user-1", "wms", 5)
	require.NoError(t, err)

	userID, err := jwt.Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secret", "user-1", "wms", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("secret", "user-1", "wms", -1)
	require.NoError(t, err)

	_, err = jwt.Parse("secret", token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "user-1", "wms", 5)
	assert.Error(t, err)
}
