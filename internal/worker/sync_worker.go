// Package worker pushes locally cached rows to the hosted table store.
package worker

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// RemoteStore is the hosted table store the worker pushes rows to.
type RemoteStore interface {
	AppendIncome(ctx context.Context, in core.Income) (string, error)
	AppendExpense(ctx context.Context, e core.Expense) (string, error)
}

type SyncWorker struct {
	repo      *storage.Repository
	remote    RemoteStore
	batchSize int
	log       *log.Logger
}

func NewSyncWorker(repo *storage.Repository, remote RemoteStore, batchSize int, logger *log.Logger) *SyncWorker {
	return &SyncWorker{
		repo:      repo,
		remote:    remote,
		batchSize: batchSize,
		log:       logger.WithComponent(log.ComponentWorker),
	}
}

// HandleSyncMessage pushes one row named by a queue message. Returning an
// error makes the AMQP client nack-and-requeue the delivery.
func (w *SyncWorker) HandleSyncMessage(msg *amqp.RecordSyncMessage) error {
	ctx := context.Background()
	if err := w.pushRow(ctx, msg.Kind, msg.ID); err != nil {
		if markErr := w.repo.MarkSyncError(ctx, msg.Kind, msg.ID); markErr != nil {
			w.log.ErrorContext(ctx, "Failed to mark sync error",
				log.FieldKind, msg.Kind, log.FieldRecordID, msg.ID, log.FieldError, markErr.Error())
		}
		return err
	}
	return nil
}

func (w *SyncWorker) pushRow(ctx context.Context, kind string, id int64) error {
	var (
		ref string
		err error
	)
	switch kind {
	case amqp.KindIncome:
		var in core.Income
		if in, err = w.repo.GetIncome(ctx, id); err == nil {
			ref, err = w.remote.AppendIncome(ctx, in)
		}
	case amqp.KindExpense:
		var e core.Expense
		if e, err = w.repo.GetExpense(ctx, id); err == nil {
			ref, err = w.remote.AppendExpense(ctx, e)
		}
	default:
		return fmt.Errorf("unknown record kind: %s", kind)
	}
	if err != nil {
		return fmt.Errorf("push %s %d: %w", kind, id, err)
	}

	if err := w.repo.MarkSynced(ctx, kind, id); err != nil {
		return fmt.Errorf("mark synced %s %d: %w", kind, id, err)
	}

	w.log.InfoContext(ctx, "Row synced to table store",
		log.FieldKind, kind, log.FieldRecordID, id, log.FieldRemoteRef, ref)
	return nil
}

// ProcessPending sweeps both tables for rows that never made it remote,
// income and expense backlogs in parallel. Used by the periodic job and on
// startup to catch messages lost while the worker was down.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range []string{amqp.KindIncome, amqp.KindExpense} {
		g.Go(func() error {
			return w.processPendingKind(gctx, kind)
		})
	}
	return g.Wait()
}

func (w *SyncWorker) processPendingKind(ctx context.Context, kind string) error {
	ids, err := w.repo.ListPendingSync(ctx, kind, w.batchSize)
	if err != nil {
		return fmt.Errorf("list pending %s: %w", kind, err)
	}
	if len(ids) == 0 {
		return nil
	}

	w.log.InfoContext(ctx, "Sweeping pending rows", log.FieldKind, kind, log.FieldCount, len(ids))
	for _, id := range ids {
		if err := w.pushRow(ctx, kind, id); err != nil {
			w.log.ErrorContext(ctx, "Failed to sweep row",
				log.FieldKind, kind, log.FieldRecordID, id, log.FieldError, err.Error())
			if markErr := w.repo.MarkSyncError(ctx, kind, id); markErr != nil {
				w.log.ErrorContext(ctx, "Failed to mark sync error",
					log.FieldKind, kind, log.FieldRecordID, id, log.FieldError, markErr.Error())
			}
		}
	}
	return nil
}
