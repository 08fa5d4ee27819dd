package metrics

import (
	"context"
	"time"

	"github.com/fadelsew02/maxime-app-sub000/internal/model"
	"gorm.io/gorm"
)

// Collector periodically refreshes the gauges that require a database
// round-trip: connection pool stats and the per-stage echantillon counts.
type Collector struct {
	db       *gorm.DB
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewCollector creates a collector with the given refresh interval.
func NewCollector(db *gorm.DB, interval time.Duration) *Collector {
	ctx, cancel := context.WithCancel(context.Background())
	return &Collector{
		db:       db,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start launches the background refresh loop.
func (c *Collector) Start() {
	go c.collect()
}

// Stop halts the loop and waits for it to exit.
func (c *Collector) Stop() {
	c.cancel()
	<-c.done
}

func (c *Collector) collect() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.done)

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			_ = UpdateDatabaseConnections(c.db)
			c.refreshStageCounts()
		}
	}
}

func (c *Collector) refreshStageCounts() {
	type row struct {
		Statut string
		Count  int64
	}
	var rows []row
	if err := c.db.Model(&model.Echantillon{}).
		Select("statut, count(*) as count").
		Group("statut").
		Find(&rows).Error; err != nil {
		return
	}
	for _, r := range rows {
		UpdateEchantillonsByStage(r.Statut, float64(r.Count))
	}
}
