package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateETag(t *testing.T) {
	id := primitive.NewObjectID()
	at := time.Now()

	tag := GenerateETag(id, at)
	assert.True(t, strings.HasPrefix(tag, `"`) && strings.HasSuffix(tag, `"`))

	assert.Equal(t, tag, GenerateETag(id, at), "same inputs, same tag")
	assert.NotEqual(t, tag, GenerateETag(id, at.Add(time.Second)))
	assert.NotEqual(t, tag, GenerateETag(primitive.NewObjectID(), at))
}
