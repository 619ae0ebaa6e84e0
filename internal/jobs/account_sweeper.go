package jobs

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/0xSujith18/Talkit/internal/services"
)

// AccountSweeper periodically removes accounts whose deletion grace period
// has elapsed. The sweep runs independently of request traffic, takes no
// global lock, and a pass that finds no due users is a no-op.
type AccountSweeper struct {
	accountService *services.AccountService
	interval       time.Duration
	done           chan struct{}
	wg             sync.WaitGroup
}

// NewAccountSweeper creates a new AccountSweeper
func NewAccountSweeper(accountService *services.AccountService, interval time.Duration) *AccountSweeper {
	return &AccountSweeper{
		accountService: accountService,
		interval:       interval,
		done:           make(chan struct{}),
	}
}

// Start begins the sweep loop. One sweep runs immediately so deletions due
// across a restart are not delayed a full interval.
func (s *AccountSweeper) Start() {
	s.wg.Add(1)
	go s.loop()
	log.Printf("sweep: started, interval %s", s.interval)
}

// Stop halts the loop and waits for an in-flight sweep
func (s *AccountSweeper) Stop() {
	close(s.done)
	s.wg.Wait()
	log.Println("sweep: stopped")
}

func (s *AccountSweeper) loop() {
	defer s.wg.Done()

	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *AccountSweeper) sweep() {
	deleted, err := s.accountService.SweepDueUsers(context.Background(), time.Now())
	if err != nil {
		log.Printf("sweep: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("sweep: removed %d users", deleted)
	}
}
