package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irvanshandika/PUSCOM-sub000/pkg/jwt"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := jwt.Generate("s3cr3t", "uid-1", "a@b.id", "teknisi", "puscom", 5)
	require.NoError(t, err)

	c, err := jwt.Parse("s3cr3t", tok)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", c.UserID)
	assert.Equal(t, "a@b.id", c.Email)
	assert.Equal(t, "teknisi", c.Role)
	assert.Equal(t, "puscom", c.Issuer)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := jwt.Generate("s3cr3t", "uid-1", "", "user", "puscom", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := jwt.Generate("s3cr3t", "uid-1", "", "user", "puscom", -1)
	require.NoError(t, err)

	_, err = jwt.Parse("s3cr3t", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "uid-1", "", "user", "puscom", 5)
	assert.ErrorIs(t, err, jwt.ErrSecretVacio)
}
