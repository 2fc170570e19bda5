package utils

import (
    "strings"
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
    h, err := HashPassword("s3cret", bcrypt.MinCost)
    require.NoError(t, err)
    assert.NotEqual(t, "s3cret", h)
    assert.True(t, VerifyPassword(h, "s3cret"))
    assert.False(t, VerifyPassword(h, "S3cret"))
    assert.False(t, VerifyPassword("not-a-hash", "s3cret"))
}

func TestHashPassword_CostOutOfRange(t *testing.T) {
    h, err := HashPassword("pw", 99)
    require.NoError(t, err)
    cost, err := bcrypt.Cost([]byte(h))
    require.NoError(t, err)
    assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestHashPassword_TooLong(t *testing.T) {
    _, err := HashPassword(strings.Repeat("x", 80), bcrypt.MinCost)
    assert.Error(t, err)
}

func TestAccessTokenRoundTrip(t *testing.T) {
    at, err := NewAccessToken("k", 42, "a@b.c", 5)
    require.NoError(t, err)
    assert.WithinDuration(t, time.Now().Add(5*time.Minute), at.Exp, 5*time.Second)

    claims, err := ParseAccessToken("k", at.Token)
    require.NoError(t, err)
    id, err := claims.VendorID()
    require.NoError(t, err)
    assert.Equal(t, uint64(42), id)
    assert.Equal(t, "a@b.c", claims.Email)
}

func TestParseAccessToken_Rejects(t *testing.T) {
    at, err := NewAccessToken("k", 42, "", 5)
    require.NoError(t, err)

    _, err = ParseAccessToken("other", at.Token)
    assert.ErrorIs(t, err, ErrInvalidToken)

    expired, err := NewAccessToken("k", 42, "", -1)
    require.NoError(t, err)
    _, err = ParseAccessToken("k", expired.Token)
    assert.ErrorIs(t, err, ErrInvalidToken)

    none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "42", "exp": time.Now().Add(time.Hour).Unix()})
    raw, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
    require.NoError(t, err)
    _, err = ParseAccessToken("k", raw)
    assert.ErrorIs(t, err, ErrInvalidToken)

    _, err = ParseAccessToken("k", "garbage")
    assert.ErrorIs(t, err, ErrInvalidToken)
}
