package storage

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"paper-swipe/config"
)

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// NewS3Client erstellt einen S3-Client für einen S3-kompatiblen Endpunkt.
func NewS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               cfg.ArchiveS3URL,
				SigningRegion:     cfg.ArchiveS3Region,
				HostnameImmutable: true,
			}, nil
		},
	)
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.ArchiveS3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.ArchiveS3Key, cfg.ArchiveS3Secret, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg), nil
}

// ObjectPutter ist der Teil des S3-Clients, den das Archiv benötigt.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// FeedArchive legt rohe ArXiv-Feeds unter feeds/<zeitstempel>-<query>.xml ab.
type FeedArchive struct {
	client  ObjectPutter
	bucket  string
	baseURL string
	now     func() time.Time
}

// NewFeedArchive erstellt ein Archiv über einem S3-Client.
func NewFeedArchive(client ObjectPutter, bucket, baseURL string) *FeedArchive {
	return &FeedArchive{client: client, bucket: bucket, baseURL: baseURL, now: time.Now}
}

// ArchiveFeed lädt einen Feed hoch.
func (a *FeedArchive) ArchiveFeed(ctx context.Context, query string, body []byte) error {
	_, err := UploadFile(ctx, a.client, a.bucket, a.key(query), body, a.baseURL)
	return err
}

func (a *FeedArchive) key(query string) string {
	name := strings.Trim(unsafeKeyChars.ReplaceAllString(query, "_"), "_")
	if len(name) > 80 {
		name = name[:80]
	}
	if name == "" {
		name = "all"
	}
	return fmt.Sprintf("feeds/%s-%s.xml", a.now().UTC().Format("20060102T150405Z"), name)
}

// UploadFile lädt eine Datei ins S3 hoch und gibt den Link zurück.
func UploadFile(ctx context.Context, client ObjectPutter, bucket, key string, data []byte, baseURL string) (string, error) {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", baseURL, bucket, key), nil
}
