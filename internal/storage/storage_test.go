package storage

import (
	"context"
	"strings"
	"testing"

	"childrenlk/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	name := ObjectName("/resources/", "application/pdf")
	assert.True(t, strings.HasPrefix(name, "resources/"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))

	other := ObjectName("resources", "application/pdf")
	assert.NotEqual(t, name, other)

	bare := ObjectName("", "application/x-unknown-type")
	assert.NotContains(t, bare, "/")
}

func TestNew_UnsupportedProvider(t *testing.T) {
	_, err := New(context.Background(), &config.Config{MediaProvider: "s3"})
	assert.Error(t, err)
}

func TestCloudinary_RejectsEmptyFile(t *testing.T) {
	host, err := NewCloudinary(&config.Config{
		CloudinaryCloudName: "demo",
		CloudinaryAPIKey:    "key",
		CloudinaryAPISecret: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "cloudinary", host.Provider())

	_, err = host.Upload(context.Background(), File{})
	assert.ErrorIs(t, err, ErrEmptyFile)
}
