package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/telemetry"
)

// MovementService is the inventory mutation engine. Every operation follows
// the same protocol: replay lookup on the idempotency key, then a single
// transaction that locks the touched stock rows in canonical
// (product_id, location_id) ascending order, applies the change and appends
// exactly one movement. A unique-key conflict on the append rolls the whole
// transaction back and the winner's movement is returned as a replay.
type MovementService struct {
	scope     TransactionScope
	movements inventory.StockMovementRepository
	stocks    inventory.StockLevelRepository
	replay    ReplayCache
}

// NewMovementService creates a MovementService. The movements and stocks
// repositories here are non-transactional and serve reads only; all writes
// go through the scope.
func NewMovementService(
	scope TransactionScope,
	movements inventory.StockMovementRepository,
	stocks inventory.StockLevelRepository,
	replay ReplayCache,
) *MovementService {
	if replay == nil {
		replay = NopReplayCache{}
	}
	return &MovementService{
		scope:     scope,
		movements: movements,
		stocks:    stocks,
		replay:    replay,
	}
}

// Transfer moves on-hand quantity from one location to another. Reserved
// stock at the source never moves.
func (s *MovementService) Transfer(ctx context.Context, req TransferRequest) (*MovementResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "stock", "transfer",
		attribute.Int64(telemetry.SpanAttrProductID, req.ProductID),
		attribute.Int64(telemetry.SpanAttrQuantity, req.Quantity))
	defer span.End()

	if err := inventory.ValidateIdempotencyKey(req.IdempotencyKey); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if req.ProductID <= 0 || req.FromLocationID <= 0 || req.ToLocationID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product and both locations are required")
	}
	if req.FromLocationID == req.ToLocationID {
		return nil, shared.NewDomainError("INVALID_INPUT", "Source and destination locations must differ")
	}
	if req.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	if resp, ok := s.replayLookup(ctx, req.IdempotencyKey); ok {
		return resp, nil
	}

	happenedAt := at(req.HappenedAt)
	from := req.FromLocationID
	to := req.ToLocationID

	var out *MovementResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if prior, err := repos.Movements().FindByIdempotencyKey(ctx, req.IdempotencyKey); err == nil {
			out = ToMovementResponse(prior, true)
			return nil
		} else if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		levels, err := lockStockRows(ctx, repos.StockLevels(), []stockKey{
			{req.ProductID, from},
			{req.ProductID, to},
		})
		if err != nil {
			return err
		}
		src := levels[stockKey{req.ProductID, from}]
		dst := levels[stockKey{req.ProductID, to}]

		if err := src.RemoveOnHand(req.Quantity); err != nil {
			return err
		}
		if err := dst.AddOnHand(req.Quantity); err != nil {
			return err
		}
		if err := repos.StockLevels().Save(ctx, src); err != nil {
			return err
		}
		if err := repos.StockLevels().Save(ctx, dst); err != nil {
			return err
		}

		movement, err := inventory.NewStockMovement(
			req.ProductID, &from, &to, inventory.MovementTypeTransfer,
			req.Quantity, req.Reason, happenedAt, req.ActorID, req.IdempotencyKey)
		if err != nil {
			return err
		}
		if err := repos.Movements().Append(ctx, movement); err != nil {
			return err
		}
		out = ToMovementResponse(movement, false)
		return nil
	})
	resp, err := s.settle(ctx, req.IdempotencyKey, out, err)
	if err != nil {
		telemetry.RecordError(span, err)
	}
	return resp, err
}

// Reserve earmarks available quantity at a location for later issue
func (s *MovementService) Reserve(ctx context.Context, req ReservationRequest) (*MovementResponse, error) {
	return s.applyAtLocation(ctx, req, inventory.MovementTypeReserve,
		func(level *inventory.StockLevel) error { return level.Reserve(req.Quantity) })
}

// Unreserve releases previously reserved quantity back to available
func (s *MovementService) Unreserve(ctx context.Context, req ReservationRequest) (*MovementResponse, error) {
	return s.applyAtLocation(ctx, req, inventory.MovementTypeUnreserve,
		func(level *inventory.StockLevel) error { return level.Unreserve(req.Quantity) })
}

// Issue consumes reserved quantity out of the warehouse. Both the
// reservation and the on-hand stock decrease.
func (s *MovementService) Issue(ctx context.Context, req ReservationRequest) (*MovementResponse, error) {
	return s.applyAtLocation(ctx, req, inventory.MovementTypeIssue,
		func(level *inventory.StockLevel) error { return level.Issue(req.Quantity) })
}

func (s *MovementService) applyAtLocation(
	ctx context.Context,
	req ReservationRequest,
	movementType inventory.MovementType,
	apply func(*inventory.StockLevel) error,
) (*MovementResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "stock", strings.ToLower(string(movementType)),
		attribute.Int64(telemetry.SpanAttrProductID, req.ProductID),
		attribute.Int64(telemetry.SpanAttrLocationID, req.LocationID),
		attribute.Int64(telemetry.SpanAttrQuantity, req.Quantity))
	defer span.End()

	if err := inventory.ValidateIdempotencyKey(req.IdempotencyKey); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if req.ProductID <= 0 || req.LocationID <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product and location are required")
	}
	if req.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	if resp, ok := s.replayLookup(ctx, req.IdempotencyKey); ok {
		return resp, nil
	}

	happenedAt := at(req.HappenedAt)
	loc := req.LocationID

	// The issue movement records the location goods leave from, the
	// reservation movements record the location they are held at.
	var fromLoc, toLoc *int64
	if movementType == inventory.MovementTypeIssue {
		fromLoc = &loc
	} else {
		toLoc = &loc
	}

	var out *MovementResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if prior, err := repos.Movements().FindByIdempotencyKey(ctx, req.IdempotencyKey); err == nil {
			out = ToMovementResponse(prior, true)
			return nil
		} else if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		level, err := repos.StockLevels().FindOrCreateForUpdate(ctx, req.ProductID, req.LocationID)
		if err != nil {
			return err
		}
		if err := apply(level); err != nil {
			return err
		}
		if err := repos.StockLevels().Save(ctx, level); err != nil {
			return err
		}

		movement, err := inventory.NewStockMovement(
			req.ProductID, fromLoc, toLoc, movementType,
			req.Quantity, req.Reason, happenedAt, req.ActorID, req.IdempotencyKey)
		if err != nil {
			return err
		}
		if err := repos.Movements().Append(ctx, movement); err != nil {
			return err
		}
		out = ToMovementResponse(movement, false)
		return nil
	})
	resp, err := s.settle(ctx, req.IdempotencyKey, out, err)
	if err != nil {
		telemetry.RecordError(span, err)
	}
	return resp, err
}

// replayLookup serves retries without re-entering the engine: the advisory
// cache first, then the movement table.
func (s *MovementService) replayLookup(ctx context.Context, key string) (*MovementResponse, bool) {
	if resp, ok := s.replay.Get(ctx, key); ok {
		return resp, true
	}
	if prior, err := s.movements.FindByIdempotencyKey(ctx, key); err == nil {
		return ToMovementResponse(prior, true), true
	}
	return nil, false
}

// settle finishes a mutation attempt. A unique-key conflict means another
// request with the same key committed first: our transaction has rolled
// back, so the winner's movement is read and returned as a replay.
func (s *MovementService) settle(ctx context.Context, key string, out *MovementResponse, err error) (*MovementResponse, error) {
	if errors.Is(err, shared.ErrIdempotencyConflict) {
		winner, readErr := s.movements.FindByIdempotencyKey(ctx, key)
		if readErr != nil {
			return nil, shared.ErrIntegrity
		}
		return ToMovementResponse(winner, true), nil
	}
	if err != nil {
		return nil, err
	}
	if out != nil && !out.Replayed {
		s.replay.Set(ctx, key, out)
	}
	return out, nil
}

// GetStock lists stock rows matching the filter
func (s *MovementService) GetStock(ctx context.Context, filter inventory.StockFilter) ([]StockLevelResponse, error) {
	levels, err := s.stocks.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]StockLevelResponse, 0, len(levels))
	for i := range levels {
		out = append(out, ToStockLevelResponse(&levels[i]))
	}
	return out, nil
}

// ListMovements returns the most recent movements for a product
func (s *MovementService) ListMovements(ctx context.Context, productID int64, limit int) ([]*MovementResponse, error) {
	if productID <= 0 {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	movements, err := s.movements.FindByProduct(ctx, productID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*MovementResponse, 0, len(movements))
	for i := range movements {
		out = append(out, ToMovementResponse(&movements[i], false))
	}
	return out, nil
}

func at(t *time.Time) time.Time {
	if t != nil {
		return *t
	}
	return time.Now()
}
