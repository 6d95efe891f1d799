package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	bucket, key string
	body        []byte
	err         error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestUploadFile(t *testing.T) {
	put := &fakePutter{}
	link, err := UploadFile(context.Background(), put, "bucket", "backups/x.sql.gz", []byte("dump"), "https://s3.example.org")
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example.org/bucket/backups/x.sql.gz", link)
	assert.Equal(t, "bucket", put.bucket)
	assert.Equal(t, []byte("dump"), put.body)
}

func TestUploadFile_Error(t *testing.T) {
	_, err := UploadFile(context.Background(), &fakePutter{err: errors.New("denied")}, "b", "k", nil, "")
	assert.EqualError(t, err, "denied")
}

func TestFeedArchive_Key(t *testing.T) {
	put := &fakePutter{}
	a := NewFeedArchive(put, "feeds-bucket", "https://s3.example.org")
	a.now = func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 0, time.FixedZone("CET", 3600)) }

	require.NoError(t, a.ArchiveFeed(context.Background(), "cat:cs.AI AND all:\"graph nets\"", []byte("<feed/>")))
	assert.Equal(t, "feeds/20250304T040607Z-cat_cs.AI_AND_all_graph_nets.xml", put.key)
	assert.Equal(t, "feeds-bucket", put.bucket)
	assert.Equal(t, "<feed/>", string(put.body))

	assert.Equal(t, "feeds/20250304T040607Z-all.xml", a.key(" :: "))
	long := a.key(strings.Repeat("x", 200))
	assert.Equal(t, "feeds/20250304T040607Z-"+strings.Repeat("x", 80)+".xml", long)
}
