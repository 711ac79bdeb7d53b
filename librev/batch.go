package librev

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/2x3systems/gorev/rev"
)

// OpRequest is one operation of a batch.
type OpRequest struct {
	Op    rev.Op
	Slot1 *rev.Graph
	Slot2 *rev.Graph
}

// ApplyBatch applies each request on up to maxWorkers goroutines (0 means one per request).
// Results are returned in request order.  The first failed request (or ctx cancellation) stops the batch.
func (m *Machine) ApplyBatch(ctx context.Context, reqs []OpRequest, maxWorkers int) ([]*rev.Graph, error) {
	results := make([]*rev.Graph, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	if maxWorkers > 0 {
		g.SetLimit(maxWorkers)
	}

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			Xout, err := m.Apply(req.Op, req.Slot1, req.Slot2)
			if err != nil {
				return err
			}
			results[i] = Xout
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
