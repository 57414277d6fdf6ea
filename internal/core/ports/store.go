package ports

import "go.trai.ch/deps/internal/core/domain"

// ReceiptStore defines the interface for storing and retrieving install receipts.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ReceiptStore interface {
	// Get retrieves the receipt for a package identifier.
	// Returns nil, nil if not found.
	Get(pkg string) (*domain.Receipt, error)

	// Put stores the receipt.
	Put(receipt domain.Receipt) error
}
