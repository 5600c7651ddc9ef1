package quiz

import (
	"encoding/binary"
	"math/rand"

	"github.com/google/uuid"
)

// shuffleNamespace scopes the name-based UUIDs used as shuffle seeds.
var shuffleNamespace = uuid.MustParse("9b6f1c52-5d0e-4c55-8a43-0f5f2f3c6a11")

// ShuffleSeed derives a stable seed from a lesson path and question id, so a
// question keeps the same answer order every time a lesson is opened.
func ShuffleSeed(lessonPath, questionID string) int64 {
	id := uuid.NewSHA1(shuffleNamespace, []byte(lessonPath+"|"+questionID))
	return int64(binary.BigEndian.Uint64(id[:8]))
}

// Shuffle permutes order in place with a Fisher-Yates pass driven by seed.
func Shuffle(order []int, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for i := len(order) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
}
