package sink

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/strikepick/strikepick/src/models"
)

var ErrQueueFull = fmt.Errorf("sink: queue full")

const defaultQueueSize = 256

// PostgresSink writes audit rows through a bounded queue so a slow database
// never blocks the selection path. Write enqueues or fails immediately; a
// background worker drains the queue.
type PostgresSink struct {
	db    *gorm.DB
	queue chan *models.SelectionRecord
	done  chan struct{}
}

func NewPostgresSink(db *gorm.DB, queueSize int) *PostgresSink {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	s := &PostgresSink{
		db:    db,
		queue: make(chan *models.SelectionRecord, queueSize),
		done:  make(chan struct{}),
	}

	go s.drain()

	return s
}

func (s *PostgresSink) Write(ctx context.Context, record *models.SelectionRecord) error {
	select {
	case s.queue <- record:
		return nil
	default:
		return ErrQueueFull
	}
}

func (s *PostgresSink) drain() {
	defer close(s.done)

	for record := range s.queue {
		if err := s.db.Create(record).Error; err != nil {
			log.WithFields(log.Fields{
				"request_id": record.RequestID,
				"ticker":     record.Ticker,
			}).Errorf("PostgresSink: failed to write selection record: %v", err)
		}
	}
}

// Close stops accepting rows and waits for the queue to flush, up to the
// given timeout.
func (s *PostgresSink) Close(timeout time.Duration) error {
	close(s.queue)

	select {
	case <-s.done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("PostgresSink: Close: flush timed out after %v", timeout)
	}
}
