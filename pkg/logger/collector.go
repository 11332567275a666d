package logger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// Publisher ships a payload to a topic. pkg/kafka.Producer implements it.
type Publisher interface {
	PublishMessage(ctx context.Context, topic string, payload interface{}) error
}

type CollectionConfig struct {
	TimeInterval   time.Duration // flush interval, default 30s
	CountThreshold int           // unique entries that force a flush, default 100
	Topic          string
	Publisher      Publisher
	Service        string
	Environment    string
	// IgnoreFields are left out of the dedup key so one failure seen by many
	// sessions collapses into a single entry. Defaults to session and remote.
	IgnoreFields []string
}

type AggregatedLogEntry struct {
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields"`
	Caller    string                 `json:"caller"`
	Count     int                    `json:"count"`
	FirstSeen time.Time              `json:"first_seen"`
	LastSeen  time.Time              `json:"last_seen"`
}

// LogBatch is one published flush, most frequent entries first.
type LogBatch struct {
	Service     string               `json:"service,omitempty"`
	Environment string               `json:"environment,omitempty"`
	FlushedAt   time.Time            `json:"flushed_at"`
	Entries     []AggregatedLogEntry `json:"entries"`
}

// LogCollector dedupes warn and error logs and publishes them in batches.
type LogCollector struct {
	config  *CollectionConfig
	ignored map[string]struct{}

	mu      sync.Mutex
	entries map[string]*AggregatedLogEntry

	ctx     context.Context
	cancel  context.CancelFunc
	loop    sync.WaitGroup
	publish sync.WaitGroup
}

func NewLogCollector(config *CollectionConfig) *LogCollector {
	if config.TimeInterval <= 0 {
		config.TimeInterval = 30 * time.Second
	}
	if config.CountThreshold <= 0 {
		config.CountThreshold = 100
	}
	if config.IgnoreFields == nil {
		config.IgnoreFields = []string{"session", "remote"}
	}
	ignored := make(map[string]struct{}, len(config.IgnoreFields))
	for _, f := range config.IgnoreFields {
		ignored[f] = struct{}{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &LogCollector{
		config:  config,
		ignored: ignored,
		entries: make(map[string]*AggregatedLogEntry),
		ctx:     ctx,
		cancel:  cancel,
	}

	c.loop.Add(1)
	go c.run()
	return c
}

func (c *LogCollector) AddLog(level, message string, fields map[string]interface{}, caller string) {
	now := time.Now().UTC()
	key := c.key(level, message, fields, caller)

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.Count++
		e.LastSeen = now
	} else {
		c.entries[key] = &AggregatedLogEntry{
			Level:     level,
			Message:   message,
			Fields:    fields,
			Caller:    caller,
			Count:     1,
			FirstSeen: now,
			LastSeen:  now,
		}
	}

	if len(c.entries) >= c.config.CountThreshold {
		c.flushLocked()
	}
}

// Pending reports the number of unique entries waiting for the next flush.
func (c *LogCollector) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *LogCollector) key(level, message string, fields map[string]interface{}, caller string) string {
	kept := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if _, skip := c.ignored[k]; !skip {
			kept[k] = v
		}
	}
	// goccy sorts map keys, so equal field sets hash equally.
	b, _ := json.Marshal(struct {
		L string                 `json:"l"`
		M string                 `json:"m"`
		F map[string]interface{} `json:"f"`
		C string                 `json:"c"`
	}{level, message, kept, caller})
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func (c *LogCollector) run() {
	defer c.loop.Done()

	ticker := time.NewTicker(c.config.TimeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			c.flushLocked()
			c.mu.Unlock()
		case <-c.ctx.Done():
			c.mu.Lock()
			c.flushLocked()
			c.mu.Unlock()
			return
		}
	}
}

func (c *LogCollector) flushLocked() {
	if len(c.entries) == 0 || c.config.Publisher == nil {
		return
	}

	batch := LogBatch{
		Service:     c.config.Service,
		Environment: c.config.Environment,
		FlushedAt:   time.Now().UTC(),
		Entries:     make([]AggregatedLogEntry, 0, len(c.entries)),
	}
	for _, e := range c.entries {
		batch.Entries = append(batch.Entries, *e)
	}
	sort.Slice(batch.Entries, func(i, j int) bool {
		if batch.Entries[i].Count != batch.Entries[j].Count {
			return batch.Entries[i].Count > batch.Entries[j].Count
		}
		return batch.Entries[i].FirstSeen.Before(batch.Entries[j].FirstSeen)
	})
	c.entries = make(map[string]*AggregatedLogEntry)

	c.publish.Add(1)
	go func() {
		defer c.publish.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := c.config.Publisher.PublishMessage(ctx, c.config.Topic, batch); err != nil {
			// The logger cannot log its own shipping failures.
			fmt.Fprintf(os.Stderr, "log collector: publish to %s failed: %v\n", c.config.Topic, err)
		}
	}()
}

// Close flushes what is pending and waits for in-flight publishes.
func (c *LogCollector) Close() {
	c.cancel()
	c.loop.Wait()
	c.publish.Wait()
}
