package messaging

import (
	"log"
	"sync"
	"time"

	"github.com/0xSujith18/Talkit/internal/repositories"
)

const (
	workerInterval     = 1 * time.Second
	batchSize          = 50
	cleanupInterval    = 1 * time.Hour
	publishedRetention = 24 * time.Hour
)

// OutboxWorker drains staged notification events to RabbitMQ
type OutboxWorker struct {
	outboxRepo repositories.OutboxRepository
	rmq        *RabbitMQ
	done       chan struct{}
	wg         sync.WaitGroup
}

// NewOutboxWorker creates a new OutboxWorker
func NewOutboxWorker(outboxRepo repositories.OutboxRepository, rmq *RabbitMQ) *OutboxWorker {
	return &OutboxWorker{
		outboxRepo: outboxRepo,
		rmq:        rmq,
		done:       make(chan struct{}),
	}
}

// Start begins the worker loops
func (w *OutboxWorker) Start() {
	w.wg.Add(2)
	go w.processLoop()
	go w.cleanupLoop()
	log.Println("outbox: started")
}

// Stop halts the worker and waits for in-flight batches
func (w *OutboxWorker) Stop() {
	close(w.done)
	w.wg.Wait()
	log.Println("outbox: stopped")
}

func (w *OutboxWorker) processLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(workerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			w.processPendingMessages()
		}
	}
}

func (w *OutboxWorker) processPendingMessages() {
	messages, err := w.outboxRepo.GetPendingMessages(batchSize)
	if err != nil {
		log.Printf("outbox: get pending: %v", err)
		return
	}

	for _, msg := range messages {
		if err := w.rmq.Publish(msg.ID.String(), msg.RoutingKey, msg.Payload); err != nil {
			log.Printf("outbox: publish %s: %v", msg.ID, err)
			if err := w.outboxRepo.MarkAsFailed(msg.ID, err.Error()); err != nil {
				log.Printf("outbox: mark failed %s: %v", msg.ID, err)
			}
			continue
		}

		if err := w.outboxRepo.MarkAsPublished(msg.ID); err != nil {
			log.Printf("outbox: mark published %s: %v", msg.ID, err)
		}
	}
}

func (w *OutboxWorker) cleanupLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-publishedRetention)
			if err := w.outboxRepo.DeletePublishedBefore(cutoff); err != nil {
				log.Printf("outbox: cleanup: %v", err)
			}
		}
	}
}
