package minio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/tagsearch/v1/logger"
)

func TestConfigDefaultsAndValidate(t *testing.T) {
	cfg := Config{Endpoint: "localhost:9000", BucketName: "docs"}
	cfg.applyDefaults()

	assert.Equal(t, DefaultRegion, cfg.Region)
	assert.Equal(t, DefaultPrefix, cfg.Prefix)
	assert.Equal(t, DefaultInitTimeout, cfg.InitTimeout)
	assert.NoError(t, cfg.Validate())

	assert.Error(t, Config{BucketName: "docs"}.Validate())
	assert.Error(t, Config{Endpoint: "localhost:9000"}.Validate())
}

func TestDocumentKey(t *testing.T) {
	assert.Equal(t, "documents/42.pdf", DocumentKey("documents", 42))
	assert.Equal(t, "archive/pdf/7.pdf", DocumentKey("archive/pdf/", 7))
	assert.Equal(t, "7.pdf", DocumentKey("", 7))
}

func TestNewClientWithDIDisabled(t *testing.T) {
	client, err := NewClientWithDI(MinioParams{Config: Config{}, Logger: logger.NewNop()})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewClientRejectsMissingEndpoint(t *testing.T) {
	_, err := NewClient(Config{BucketName: "docs"}, logger.NewNop())
	assert.Error(t, err)
}
