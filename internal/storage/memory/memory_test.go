package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbecom/storeapi/internal/storage"
)

func TestUploadAndGetURL(t *testing.T) {
	s := New("http://localhost:8080")

	result, err := s.Upload(context.Background(), &storage.UploadInput{
		Key:         "9-cafe.png",
		ContentType: "image/png",
		Size:        4,
		Data:        strings.NewReader("data"),
	})
	require.NoError(t, err)
	assert.Equal(t, "9-cafe.png", result.Key)
	assert.Equal(t, "http://localhost:8080/images/9-cafe.png", result.URL)

	url, err := s.GetURL(context.Background(), "9-cafe.png")
	require.NoError(t, err)
	assert.Equal(t, result.URL, url)
}

func TestDelete(t *testing.T) {
	s := New("http://localhost:8080")

	_, err := s.Upload(context.Background(), &storage.UploadInput{Key: "gone.png"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), "gone.png"))

	_, err = s.GetURL(context.Background(), "gone.png")
	assert.Error(t, err)

	assert.Error(t, s.Delete(context.Background(), "gone.png"))
}
