package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	entryDate := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	token := EncodeToken(entryDate, 1042)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedID, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.True(t, entryDate.Equal(decodedDate), "Entry date should match after decode")
	assert.Equal(t, int64(1042), decodedID)
}

func TestEncodeTokenDropsTimeOfDay(t *testing.T) {
	withTime := time.Date(2024, 3, 31, 17, 45, 0, 0, time.UTC)

	decodedDate, _, err := DecodeToken(EncodeToken(withTime, 1))
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), decodedDate)
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	_, _, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("2024-03-31")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	_, _, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("notadate|12")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "entry date parse")

	_, _, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("2024-03-31|abc")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "journal id parse")
}
