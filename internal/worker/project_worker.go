package worker

import (
	"context"
	"log"
	"time"

	"devfolio/internal/service"
)

// ProjectWorker периодически синхронизирует проекты с GitHub
type ProjectWorker struct {
	service  service.ProjectService
	interval time.Duration
	stopChan chan struct{}
	running  bool
}

func NewProjectWorker(service service.ProjectService, interval time.Duration) *ProjectWorker {
	return &ProjectWorker{
		service:  service,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (w *ProjectWorker) Start() {
	if w.running {
		return
	}

	w.running = true
	log.Printf("Project worker started with interval %v", w.interval)

	// Первая синхронизация сразу при старте
	w.sync()

	go w.run()
}

func (w *ProjectWorker) Stop() {
	if !w.running {
		return
	}

	close(w.stopChan)
	w.running = false
	log.Println("Project worker stopped")
}

func (w *ProjectWorker) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.sync()
		case <-w.stopChan:
			return
		}
	}
}

func (w *ProjectWorker) sync() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := w.service.Sync(ctx)
	if err != nil {
		log.Printf("Project worker sync error: %v", err)
		return
	}
	if result.Status == "skipped" {
		log.Printf("Project worker: sync skipped (%s)", result.Reason)
	}
}
