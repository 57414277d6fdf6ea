package bootstrap

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/deps/internal/adapters/logger"
	"go.trai.ch/deps/internal/adapters/receipts"
	"go.trai.ch/deps/internal/adapters/telemetry/progrock"
	"go.trai.ch/deps/internal/adapters/toolchain"
	"go.trai.ch/deps/internal/core/ports"
)

// NodeID is the unique identifier for the bootstrap engine Graft node.
const NodeID graft.ID = "engine.bootstrap"

func init() {
	graft.Register(graft.Node[*Bootstrapper]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			toolchain.NodeID,
			receipts.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Bootstrapper, error) {
			installer, err := graft.Dep[ports.Installer](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ReceiptStore](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(installer, store, tel, log), nil
		},
	})
}
