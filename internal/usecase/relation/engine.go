// Package relation flips a user's membership in the reaction, save and
// subscription relationships. Both sides of a relationship are changed and
// persisted in one unit of work, so readers never see a half-applied toggle.
package relation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"guidepedia/internal/domain/entity"
	"guidepedia/internal/observability/logging"
	"guidepedia/internal/observability/metrics"
	"guidepedia/internal/observability/tracing"
	"guidepedia/internal/repository"
	"guidepedia/internal/usecase/lookup"
)

// Request asks for the actor's membership in the target's relationship set
// to become Present.
type Request struct {
	Kind     entity.RelationKind
	ActorID  int64
	TargetID int64
	Present  bool
}

// Outcome carries both sides after a successful toggle. Exactly one of
// TargetUser and TargetArticle is set, depending on Kind.
type Outcome struct {
	Kind          entity.RelationKind
	Actor         *entity.User
	TargetUser    *entity.User
	TargetArticle *entity.Article
	Present       bool
}

// Engine applies toggles.
type Engine struct {
	tx    repository.Transactor
	guard *lookup.Guard
	now   func() time.Time
}

// NewEngine builds an Engine. The guard's repositories are also used to
// persist both sides of the relationship.
func NewEngine(tx repository.Transactor, guard *lookup.Guard) *Engine {
	return &Engine{tx: tx, guard: guard, now: time.Now}
}

// Toggle validates the request, flips the membership on both sides and saves
// them. Failures are typed: entity.ErrNotFound, entity.ErrSelfReference,
// entity.ErrInvalidTransition, entity.ErrConcurrentModification or a
// *entity.ValidationError. Nothing is persisted when Toggle fails.
func (e *Engine) Toggle(ctx context.Context, req Request) (*Outcome, error) {
	start := e.now()
	ctx, span := tracing.GetTracer().Start(ctx, "relation.Toggle",
		trace.WithAttributes(
			attribute.String("relation.kind", req.Kind.String()),
			attribute.Int64("relation.actor_id", req.ActorID),
			attribute.Int64("relation.target_id", req.TargetID),
			attribute.String("relation.target_kind", string(req.Kind.TargetKind())),
			attribute.Bool("relation.present", req.Present),
		),
	)
	defer span.End()

	out, err := e.toggle(ctx, req)

	result := classify(err)
	metrics.RecordRelationToggle(req.Kind.String(), result, e.now().Sub(start))
	span.SetAttributes(attribute.String("relation.result", result))

	logger := logging.WithTrace(ctx, logging.FromContext(ctx))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, result)
		level := slog.LevelDebug
		if result == metrics.ResultError {
			level = slog.LevelError
		}
		logger.Log(ctx, level, "relation toggle failed",
			slog.String("kind", req.Kind.String()),
			slog.Int64("actor_id", req.ActorID),
			slog.Int64("target_id", req.TargetID),
			slog.String("target_kind", string(req.Kind.TargetKind())),
			slog.String("result", result),
			slog.Any("error", err))
		return nil, err
	}

	logger.Debug("relation toggled",
		slog.String("kind", req.Kind.String()),
		slog.Int64("actor_id", req.ActorID),
		slog.Int64("target_id", req.TargetID),
		slog.Bool("present", req.Present))
	return out, nil
}

func (e *Engine) toggle(ctx context.Context, req Request) (*Outcome, error) {
	if !req.Kind.IsValid() {
		return nil, &entity.ValidationError{
			Field:   "kind",
			Message: fmt.Sprintf("unsupported relation %q", req.Kind),
		}
	}
	desc := descriptors[req.Kind]

	var out *Outcome
	err := e.tx.WithinTx(ctx, func(ctx context.Context) error {
		actor, err := e.guard.User(ctx, req.ActorID)
		if err != nil {
			return err
		}
		if !desc.allowSelf && req.ActorID == req.TargetID {
			return fmt.Errorf("%s of user %d: %w", req.Kind, req.ActorID, entity.ErrSelfReference)
		}
		tgt, err := desc.load(ctx, e.guard, req.TargetID)
		if err != nil {
			return err
		}

		forward := tgt.forward
		inverse := desc.inverse(actor)
		if forward.Contains(actor.ID) == req.Present {
			return &entity.TransitionError{Relation: req.Kind, Present: req.Present}
		}

		if req.Present {
			forward.Add(actor.ID)
			inverse.Add(req.TargetID)
		} else {
			forward.Remove(actor.ID)
			inverse.Remove(req.TargetID)
		}

		if err := e.guard.Users.Save(ctx, actor); err != nil {
			return fmt.Errorf("save actor: %w", err)
		}
		if err := tgt.save(ctx, e.guard); err != nil {
			return fmt.Errorf("save target: %w", err)
		}

		out = &Outcome{
			Kind:          req.Kind,
			Actor:         actor,
			TargetUser:    tgt.user,
			TargetArticle: tgt.article,
			Present:       req.Present,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func classify(err error) string {
	var verr *entity.ValidationError
	switch {
	case err == nil:
		return metrics.ResultApplied
	case errors.Is(err, entity.ErrInvalidTransition):
		return metrics.ResultRejected
	case errors.Is(err, entity.ErrSelfReference):
		return metrics.ResultSelfReference
	case errors.Is(err, entity.ErrNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, entity.ErrConcurrentModification):
		return metrics.ResultConflict
	case errors.As(err, &verr):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}
