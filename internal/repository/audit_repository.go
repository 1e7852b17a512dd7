package repository

import (
	"sync"

	"github.com/darisadam/bankist-server/internal/domain/audit"
)

const DefaultAuditCapacity = 1000

// AuditRepository keeps the most recent activity entries in memory.
type AuditRepository interface {
	Create(entry *audit.Entry)
	ListByUserName(userName string, limit int) []audit.Entry
	Count() int
}

type auditRepository struct {
	mu       sync.RWMutex
	entries  []audit.Entry
	nextID   int64
	capacity int
}

func NewAuditRepository(capacity int) AuditRepository {
	if capacity <= 0 {
		capacity = DefaultAuditCapacity
	}
	return &auditRepository{capacity: capacity, nextID: 1}
}

// Create assigns the entry an ID and drops the oldest entry when full.
func (r *auditRepository) Create(entry *audit.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = r.nextID
	r.nextID++

	r.entries = append(r.entries, *entry)
	if len(r.entries) > r.capacity {
		r.entries = append([]audit.Entry(nil), r.entries[len(r.entries)-r.capacity:]...)
	}
}

// ListByUserName returns up to limit entries that involve userName as actor
// or transfer counterparty, newest first.
func (r *auditRepository) ListByUserName(userName string, limit int) []audit.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]audit.Entry, 0)
	for i := len(r.entries) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		if r.entries[i].Involves(userName) {
			out = append(out, r.entries[i])
		}
	}
	return out
}

func (r *auditRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
