package services

import (
	"context"
	"fmt"
	"time"

	"github.com/adampresley/cloudgallery/pkg/models"
	"github.com/rfberaldo/sqlz"
)

type LedgerServicer interface {
	Get(key string) (*models.PublishedObject, error)
	GetAll() ([]models.PublishedObject, error)
	Record(object models.PublishedObject) error
	Remove(key string) error
}

type LedgerServiceConfig struct {
	DB *sqlz.DB
}

/*
LedgerService keeps track of what was uploaded to the bucket and with which
checksum, so unchanged files are not uploaded again.
*/
type LedgerService struct {
	db *sqlz.DB
}

func NewLedgerService(config LedgerServiceConfig) LedgerService {
	return LedgerService{
		db: config.DB,
	}
}

func (s LedgerService) Get(key string) (*models.PublishedObject, error) {
	var (
		err error
	)

	result := &models.PublishedObject{}

	sql := `
SELECT
   p.object_key
   , p.checksum
   , p.size
   , p.published_at
FROM published_objects AS p
WHERE 1=1
   AND p.object_key=?
   `

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.QueryRow(ctx, result, sql, key); err != nil {
		if sqlz.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrPublishedObjectNotFound, key)
		}

		return nil, fmt.Errorf("error querying for published object '%s': %w", key, err)
	}

	return result, nil
}

func (s LedgerService) GetAll() ([]models.PublishedObject, error) {
	var (
		err     error
		objects []models.PublishedObject
	)

	sql := `
SELECT
   p.object_key
   , p.checksum
   , p.size
   , p.published_at
FROM published_objects AS p
ORDER BY p.object_key
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.Query(ctx, &objects, sql); err != nil && !sqlz.IsNotFound(err) {
		return nil, fmt.Errorf("error querying for all published objects: %w", err)
	}

	return objects, nil
}

func (s LedgerService) Record(object models.PublishedObject) error {
	if object.PublishedAt == 0 {
		object.PublishedAt = time.Now().Unix()
	}

	sql := `
INSERT INTO published_objects (
    object_key,
    checksum,
    size,
    published_at
) VALUES (?, ?, ?, ?)
ON CONFLICT(object_key) DO UPDATE SET
    checksum=excluded.checksum,
    size=excluded.size,
    published_at=excluded.published_at
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if _, err := s.db.Exec(ctx, sql, object.ObjectKey, object.Checksum, object.Size, object.PublishedAt); err != nil {
		return fmt.Errorf("error recording published object '%s': %w", object.ObjectKey, err)
	}

	return nil
}

func (s LedgerService) Remove(key string) error {
	sql := `
DELETE FROM published_objects
WHERE 1=1
    AND object_key = ?
`

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if _, err := s.db.Exec(ctx, sql, key); err != nil {
		return fmt.Errorf("error removing published object '%s': %w", key, err)
	}

	return nil
}
