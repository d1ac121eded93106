package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"studiosync/internal/model"
	"studiosync/internal/repository"
)

// SyncAuditWorker drains the sync event queue into sync_logs rows.
type SyncAuditWorker struct {
	conn      *amqp.Connection
	repo      *repository.SyncLogRepository
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSyncAuditWorker(conn *amqp.Connection, repo *repository.SyncLogRepository, queueName string) *SyncAuditWorker {
	return &SyncAuditWorker{
		conn:      conn,
		repo:      repo,
		queueName: queueName,
	}
}

func (w *SyncAuditWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var event model.SyncEvent
				if err := json.Unmarshal(d.Body, &event); err != nil {
					log.Printf("worker decode sync event failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				entry := model.SyncLog{
					UserID:   event.UserID,
					Kind:     event.Kind,
					Count:    event.Count,
					SyncedAt: event.SyncedAt,
				}
				if err := w.repo.Create(&entry); err != nil {
					log.Printf("worker persist sync log failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *SyncAuditWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
