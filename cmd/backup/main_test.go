package main

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
)

func TestBackupKey(t *testing.T) {
	now := time.Date(2025, 2, 3, 4, 5, 6, 0, time.FixedZone("CET", 3600))
	assert.Equal(t, "backups/backup-2025-02-03T03-05-06Z.sql.gz", backupKey(now))
}

func TestExpiredBackups(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	obj := func(key string, day int) types.Object {
		return types.Object{Key: aws.String(key), LastModified: aws.Time(base.AddDate(0, 0, day))}
	}
	objects := []types.Object{obj("b", 2), obj("d", 4), obj("a", 1), obj("c", 3)}

	expired := expiredBackups(objects, 2)
	keys := make([]string, 0, len(expired))
	for _, o := range expired {
		keys = append(keys, aws.ToString(o.Key))
	}
	assert.Equal(t, []string{"b", "a"}, keys)

	assert.Nil(t, expiredBackups(objects, 4))
	assert.Len(t, expiredBackups(objects, -1), 4)
	// Eingabe bleibt unverändert.
	assert.Equal(t, "b", aws.ToString(objects[0].Key))
}
