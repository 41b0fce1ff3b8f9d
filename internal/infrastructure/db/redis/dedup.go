package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// DedupChecker provides duplicate-submission checks for the contact form,
// backed by Redis. Key format: contact:<email>:<subject_hash>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether the same sender already submitted this subject
// inside the dedup window.
func (d *DedupChecker) IsDuplicate(ctx context.Context, email, subject string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(email, subject)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records the submission (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, email, subject string) error {
	return d.client.Set(ctx, d.key(email, subject), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(email, subject string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(subject))))
	return fmt.Sprintf("contact:%s:%s", strings.ToLower(email), hex.EncodeToString(sum[:8]))
}
