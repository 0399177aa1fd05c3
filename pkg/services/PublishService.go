package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/adamgokit/s3/createbucketoptions"
	"github.com/adampresley/adamgokit/s3/listoptions"
	"github.com/adampresley/cloudgallery/pkg/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type PublishServicer interface {
	Publish(outputDir string) (PublishResult, error)
}

type PublishServiceConfig struct {
	Bucket   string
	Prefix   string
	Region   string
	Ledger   LedgerServicer
	S3Client s3.S3Client
}

type PublishResult struct {
	Uploaded int
	Skipped  int
	Removed  int
}

type PublishService struct {
	bucket   string
	prefix   string
	region   string
	ledger   LedgerServicer
	s3Client s3.S3Client
}

func NewPublishService(config PublishServiceConfig) PublishService {
	return PublishService{
		bucket:   config.Bucket,
		prefix:   config.Prefix,
		region:   config.Region,
		ledger:   config.Ledger,
		s3Client: config.S3Client,
	}
}

/*
Publish uploads the built gallery to the bucket. Files whose checksum matches
the ledger and which still exist in the bucket are skipped. Objects under the
prefix that the build did not produce are deleted.
*/
func (s PublishService) Publish(outputDir string) (PublishResult, error) {
	var (
		err    error
		result PublishResult
	)

	if err = s.ensureBucketExists(s.bucket); err != nil {
		return result, err
	}

	built := map[string]struct{}{}

	err = filepath.WalkDir(outputDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		rel, _ := filepath.Rel(outputDir, p)
		key := objectKey(s.prefix, rel)
		built[key] = struct{}{}

		uploaded, err := s.publishFile(p, key)

		if err != nil {
			return err
		}

		if uploaded {
			result.Uploaded++
		} else {
			result.Skipped++
		}

		return nil
	})

	if err != nil {
		return result, fmt.Errorf("error publishing '%s': %w", outputDir, err)
	}

	if result.Removed, err = s.prune(built); err != nil {
		return result, err
	}

	slog.Info("gallery published", "bucket", s.bucket, "prefix", s.prefix, "uploaded", result.Uploaded, "skipped", result.Skipped, "removed", result.Removed)
	return result, nil
}

func (s PublishService) publishFile(filePath, key string) (bool, error) {
	var (
		err      error
		checksum string
		size     int64
		existing *models.PublishedObject
	)

	if checksum, size, err = fileChecksum(filePath); err != nil {
		return false, err
	}

	existing, err = s.ledger.Get(key)

	if err != nil && !errors.Is(err, models.ErrPublishedObjectNotFound) {
		return false, err
	}

	if existing != nil && existing.Checksum == checksum {
		stat, err := s.s3Client.StatObject(s.bucket, key)

		if err != nil {
			return false, err
		}

		if stat != nil {
			return false, nil
		}

		slog.Info("published object missing from bucket, uploading again", "key", key)
	}

	f, err := os.Open(filePath)

	if err != nil {
		return false, fmt.Errorf("error opening '%s': %w", filePath, err)
	}

	defer f.Close()

	if _, err = s.s3Client.Put(s.bucket, key, f); err != nil {
		return false, fmt.Errorf("error uploading '%s' to S3: %w", key, err)
	}

	slog.Debug("uploaded object", "key", key, "size", size)

	err = s.ledger.Record(models.PublishedObject{
		ObjectKey: key,
		Checksum:  checksum,
		Size:      size,
	})

	return true, err
}

func (s PublishService) prune(built map[string]struct{}) (int, error) {
	var (
		err      error
		response s3.ListResponse
	)

	response, err = s.s3Client.List(
		s.bucket,
		s.prefix,
		listoptions.WithGetAll(),
		listoptions.WithFilter(func(obj types.Object) bool {
			_, ok := built[aws.ToString(obj.Key)]
			return !ok
		}),
	)

	if err != nil {
		return 0, fmt.Errorf("error listing published objects: %w", err)
	}

	if len(response.Objects) == 0 {
		return 0, nil
	}

	keys := []string{}

	for _, obj := range response.Objects {
		keys = append(keys, obj.Key)
	}

	slog.Info("removing stale objects", "bucket", s.bucket, "count", len(keys))

	if _, err = s.s3Client.Delete(s.bucket, keys); err != nil {
		return 0, fmt.Errorf("error removing stale objects: %w", err)
	}

	for _, key := range keys {
		if err = s.ledger.Remove(key); err != nil {
			return 0, err
		}
	}

	return len(keys), nil
}

func (s PublishService) ensureBucketExists(bucketName string) error {
	var (
		err    error
		exists bool
	)

	exists, err = s.s3Client.BucketExists(bucketName)

	if err != nil {
		return fmt.Errorf("error ensuring bucket '%s' exists: %w", bucketName, err)
	}

	if exists {
		return nil
	}

	slog.Info("creating bucket", "bucketName", bucketName)

	err = s.s3Client.CreateBucket(
		bucketName,
		createbucketoptions.WithRegion(s.region),
	)

	if err != nil {
		return fmt.Errorf("error creating bucket '%s': %w", bucketName, err)
	}

	return nil
}

func objectKey(prefix, rel string) string {
	return path.Join(prefix, filepath.ToSlash(rel))
}

func fileChecksum(filePath string) (string, int64, error) {
	f, err := os.Open(filePath)

	if err != nil {
		return "", 0, fmt.Errorf("error opening '%s': %w", filePath, err)
	}

	defer f.Close()

	hash := sha256.New()
	size, err := io.Copy(hash, f)

	if err != nil {
		return "", 0, fmt.Errorf("error reading '%s': %w", filePath, err)
	}

	return hex.EncodeToString(hash.Sum(nil)), size, nil
}
