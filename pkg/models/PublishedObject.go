package models

import (
	"fmt"
)

var (
	ErrPublishedObjectNotFound = fmt.Errorf("published object not found")
)

type PublishedObject struct {
	ObjectKey   string `db:"object_key"`
	Checksum    string `db:"checksum"`
	Size        int64  `db:"size"`
	PublishedAt int64  `db:"published_at"`
}
