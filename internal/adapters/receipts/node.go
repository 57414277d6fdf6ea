package receipts

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/deps/internal/adapters/logger"
	"go.trai.ch/deps/internal/core/ports"
)

// NodeID is the unique identifier for the receipt store Graft node.
const NodeID graft.ID = "adapter.receipt_store"

func init() {
	graft.Register(graft.Node[ports.ReceiptStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ReceiptStore, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			path, err := DefaultPath()
			if err != nil {
				return nil, err
			}
			return NewStore(path, log), nil
		},
	})
}
