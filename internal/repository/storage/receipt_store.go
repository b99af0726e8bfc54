package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
)

// ReceiptStore defines the interface for receipt object storage
type ReceiptStore interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// ObjectPath builds a unique storage key for a receipt image variant.
// Layout: <user>/receipts/<expense>/<random>_<variant><ext>
func ObjectPath(userID uuid.UUID, expenseID int32, variant, ext string) string {
	filename := fmt.Sprintf("%s_%s%s", uuid.New().String(), variant, ext)
	return path.Join(userID.String(), "receipts", fmt.Sprintf("%d", expenseID), filename)
}
