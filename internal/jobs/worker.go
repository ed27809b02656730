package jobs

import (
	"context"
	"log"
	"time"
)

// PassRunner runs one ingestion pass over the pending sources.
type PassRunner interface {
	RunPass(ctx context.Context) error
}

// Poller re-runs ingestion passes on a fixed interval so documents uploaded
// after startup get indexed. A failed pass is logged and the next tick tries
// again; the poller itself never gives up.
type Poller struct {
	runner   PassRunner
	interval time.Duration
	stopChan chan struct{}
	doneChan chan struct{}
}

// NewPoller creates a Poller running passes on the given interval.
func NewPoller(runner PassRunner, interval time.Duration) *Poller {
	return &Poller{
		runner:   runner,
		interval: interval,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start begins the polling loop and blocks until stopped.
func (p *Poller) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	defer close(p.doneChan)

	log.Printf("poller: checking for new sources every %v", p.interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("poller: context cancelled, stopping")
			return
		case <-p.stopChan:
			log.Println("poller: stop requested")
			return
		case <-ticker.C:
			if err := p.runner.RunPass(ctx); err != nil {
				log.Printf("poller: ingestion pass failed: %v", err)
			}
		}
	}
}

// Stop stops the poller and waits for the loop to exit. A pass already in
// flight runs to completion first.
func (p *Poller) Stop() {
	close(p.stopChan)
	<-p.doneChan
	log.Println("poller: shutdown complete")
}
