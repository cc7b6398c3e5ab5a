package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jsamuelsen/blog-service/internal/domain"
)

// storeError wraps a driver error with the operation that produced it.
// Connectivity failures become domain.ErrUnavailable so the HTTP layer can
// answer 503 instead of 500. An expired request deadline is kept as is.
func storeError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}

	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return fmt.Errorf("%s: %w", op, domain.NewUnavailableError(healthCheckName, err.Error()))
	}

	return fmt.Errorf("%s: %w", op, err)
}
