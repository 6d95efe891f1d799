package providers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"paper-swipe/config"
)

func TestNewArxiv_WithoutArchive(t *testing.T) {
	cfg := &config.Config{
		ArxivBaseURL:    "http://localhost:9/api/query",
		ArxivTimeout:    time.Second,
		ArxivMaxResults: 10,
	}
	client, err := NewArxiv(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "arxiv", client.Name())
}

func TestNewArxiv_WithArchive(t *testing.T) {
	cfg := &config.Config{
		ArchiveS3URL:    "http://localhost:9000",
		ArchiveS3Region: "us-east-1",
		ArchiveS3Key:    "key",
		ArchiveS3Secret: "secret",
		ArchiveS3Bucket: "feeds",
	}
	client, err := NewArxiv(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, client)
}
