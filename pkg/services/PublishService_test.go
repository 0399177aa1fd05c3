package services

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/adamgokit/s3/createbucketoptions"
	"github.com/adampresley/adamgokit/s3/listoptions"
	"github.com/adampresley/cloudgallery/pkg/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testBucket = "gallery-bucket"
	testPrefix = "gallery"
	testRegion = "us-east-2"
)

func newTestPublishService(t *testing.T, client s3.S3Client, ledger LedgerServicer) PublishService {
	t.Helper()

	return NewPublishService(PublishServiceConfig{
		Bucket:   testBucket,
		Prefix:   testPrefix,
		Region:   testRegion,
		Ledger:   ledger,
		S3Client: client,
	})
}

func writeTestOutput(t *testing.T) string {
	t.Helper()

	out := t.TempDir()
	writeFile(t, filepath.Join(out, "index.html"), "<html>index</html>")
	writeFile(t, filepath.Join(out, "hiking", "index.html"), "<html>hiking</html>")

	return out
}

// listFiltered answers List with the candidates that pass the caller's filter.
func listFiltered(candidates ...string) func(string, string, ...listoptions.ListOption) (s3.ListResponse, error) {
	return func(bucket, path string, options ...listoptions.ListOption) (s3.ListResponse, error) {
		opts := &listoptions.ListOptions{}

		for _, o := range options {
			o(opts)
		}

		response := s3.ListResponse{Objects: []s3.Object{}}

		for _, key := range candidates {
			if opts.Filter != nil && !opts.Filter(types.Object{Key: aws.String(key)}) {
				continue
			}

			response.Objects = append(response.Objects, s3.Object{Key: key})
		}

		response.NumObjects = len(response.Objects)
		return response, nil
	}
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "gallery/hiking/index.html", objectKey("gallery", filepath.Join("hiking", "index.html")))
	assert.Equal(t, "index.html", objectKey("", "index.html"))
	assert.Equal(t, "gallery/index.html", objectKey("gallery/", "index.html"))
}

func TestFileChecksum(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a.txt")
	writeFile(t, p, "hello")

	checksum, size, err := fileChecksum(p)

	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", checksum)

	_, _, err = fileChecksum(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestPublishService_SecondPublishSkipsUnchangedFiles(t *testing.T) {
	out := writeTestOutput(t)
	ledger := newTestLedger(t)
	client := s3.NewMockS3Client(t)

	client.EXPECT().BucketExists(testBucket).Return(true, nil)
	client.EXPECT().Put(testBucket, mock.Anything, mock.Anything).Return(s3.PutObjectResponse{}, nil).Times(2)
	client.EXPECT().StatObject(testBucket, mock.Anything).Return(&s3.ObjectMetadata{Size: 1}, nil)
	client.EXPECT().List(testBucket, testPrefix, mock.Anything, mock.Anything).RunAndReturn(listFiltered("gallery/index.html", "gallery/hiking/index.html"))

	service := newTestPublishService(t, client, ledger)

	first, err := service.Publish(out)
	require.NoError(t, err)
	assert.Equal(t, PublishResult{Uploaded: 2}, first)

	second, err := service.Publish(out)
	require.NoError(t, err)
	assert.Equal(t, PublishResult{Skipped: 2}, second)

	client.AssertNumberOfCalls(t, "Put", 2)

	recorded, err := ledger.GetAll()
	require.NoError(t, err)
	assert.Len(t, recorded, 2)
}

func TestPublishService_ChangedFileIsUploadedAgain(t *testing.T) {
	out := writeTestOutput(t)
	ledger := newTestLedger(t)
	client := s3.NewMockS3Client(t)

	require.NoError(t, ledger.Record(models.PublishedObject{ObjectKey: "gallery/index.html", Checksum: "stale", Size: 1}))
	require.NoError(t, ledger.Record(models.PublishedObject{ObjectKey: "gallery/hiking/index.html", Checksum: "stale", Size: 1}))

	client.EXPECT().BucketExists(testBucket).Return(true, nil)
	client.EXPECT().Put(testBucket, mock.Anything, mock.Anything).Return(s3.PutObjectResponse{}, nil).Times(2)
	client.EXPECT().List(testBucket, testPrefix, mock.Anything, mock.Anything).RunAndReturn(listFiltered())

	result, err := newTestPublishService(t, client, ledger).Publish(out)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Uploaded)

	object, err := ledger.Get("gallery/index.html")
	require.NoError(t, err)
	assert.NotEqual(t, "stale", object.Checksum)
}

func TestPublishService_ObjectMissingFromBucketIsUploadedAgain(t *testing.T) {
	out := t.TempDir()
	writeFile(t, filepath.Join(out, "index.html"), "hello")

	ledger := newTestLedger(t)
	require.NoError(t, ledger.Record(models.PublishedObject{
		ObjectKey: "gallery/index.html",
		Checksum:  "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		Size:      5,
	}))

	client := s3.NewMockS3Client(t)
	client.EXPECT().BucketExists(testBucket).Return(true, nil)
	client.EXPECT().StatObject(testBucket, "gallery/index.html").Return(nil, nil).Once()
	client.EXPECT().Put(testBucket, "gallery/index.html", mock.Anything).Return(s3.PutObjectResponse{Size: 5}, nil).Once()
	client.EXPECT().List(testBucket, testPrefix, mock.Anything, mock.Anything).RunAndReturn(listFiltered("gallery/index.html"))

	result, err := newTestPublishService(t, client, ledger).Publish(out)

	require.NoError(t, err)
	assert.Equal(t, PublishResult{Uploaded: 1}, result)
}

func TestPublishService_PrunesStaleObjects(t *testing.T) {
	out := writeTestOutput(t)
	ledger := newTestLedger(t)
	client := s3.NewMockS3Client(t)

	require.NoError(t, ledger.Record(models.PublishedObject{ObjectKey: "gallery/old/index.html", Checksum: "abc", Size: 3}))

	client.EXPECT().BucketExists(testBucket).Return(true, nil)
	client.EXPECT().Put(testBucket, mock.Anything, mock.Anything).Return(s3.PutObjectResponse{}, nil).Times(2)
	client.EXPECT().List(testBucket, testPrefix, mock.Anything, mock.Anything).
		RunAndReturn(listFiltered("gallery/index.html", "gallery/hiking/index.html", "gallery/old/index.html"))
	client.EXPECT().Delete(testBucket, []string{"gallery/old/index.html"}).
		Return(s3.DeleteResponse{DeletedKeys: []string{"gallery/old/index.html"}}, nil).Once()

	result, err := newTestPublishService(t, client, ledger).Publish(out)

	require.NoError(t, err)
	assert.Equal(t, PublishResult{Uploaded: 2, Removed: 1}, result)

	_, err = ledger.Get("gallery/old/index.html")
	require.ErrorIs(t, err, models.ErrPublishedObjectNotFound)
}

func TestPublishService_CreatesMissingBucket(t *testing.T) {
	client := s3.NewMockS3Client(t)

	client.EXPECT().BucketExists(testBucket).Return(false, nil)
	client.EXPECT().CreateBucket(testBucket, mock.Anything).
		RunAndReturn(func(bucket string, options ...createbucketoptions.CreateBucketOption) error {
			opts := &createbucketoptions.CreateBucketOptions{}

			for _, o := range options {
				o(opts)
			}

			assert.Equal(t, types.BucketLocationConstraint(testRegion), opts.Region)
			return nil
		}).Once()
	client.EXPECT().List(testBucket, testPrefix, mock.Anything, mock.Anything).RunAndReturn(listFiltered())

	result, err := newTestPublishService(t, client, newTestLedger(t)).Publish(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, PublishResult{}, result)
}

func TestPublishService_BucketCheckFailureStopsPublish(t *testing.T) {
	bucketErr := errors.New("access denied")
	client := s3.NewMockS3Client(t)

	client.EXPECT().BucketExists(testBucket).Return(false, bucketErr)

	_, err := newTestPublishService(t, client, newTestLedger(t)).Publish(writeTestOutput(t))

	require.ErrorIs(t, err, bucketErr)
}
