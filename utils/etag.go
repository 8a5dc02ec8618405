package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GenerateETag derives a strong ETag from a document id and its last update
// time. Listing handlers use the most recently updated document of the result
// set so the tag changes whenever anything in the list does.
func GenerateETag(id primitive.ObjectID, updatedAt time.Time) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s:%d", id.Hex(), updatedAt.UnixNano())))
	return `"` + hex.EncodeToString(sum[:]) + `"`
}
