package repositories

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// ErrAnalysisNotFound is returned when no entry exists for the requested id.
var ErrAnalysisNotFound = fmt.Errorf("analysis not found")

// AnalysisRepository is a bounded in-memory cache of completed analyses.
// Insertion order is the eviction order: once the capacity is exceeded, the
// oldest entry goes, regardless of how often it was read. Contents are lost
// on process restart by design.
type AnalysisRepository interface {
	Insert(analysis *models.Analysis) string
	FindByID(id string) (*models.Analysis, error)
	Len() int
}

type analysisRepository struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*models.Analysis
	order    []string
}

func NewAnalysisRepository(capacity int) AnalysisRepository {
	if capacity <= 0 {
		capacity = 100
	}
	return &analysisRepository{
		capacity: capacity,
		entries:  make(map[string]*models.Analysis),
	}
}

// Insert implements AnalysisRepository. It generates a fresh id, stamps it on
// the record and stores it, evicting the oldest entry when over capacity.
// The insert plus eviction happens under one lock so two concurrent inserts
// cannot both evict.
func (r *analysisRepository) Insert(analysis *models.Analysis) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := newAnalysisID()
	for _, exists := r.entries[id]; exists; _, exists = r.entries[id] {
		id = newAnalysisID()
	}

	analysis.ID = id
	r.entries[id] = analysis
	r.order = append(r.order, id)

	for len(r.entries) > r.capacity {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.entries, oldest)
	}

	return id
}

// FindByID implements AnalysisRepository. Reads do not refresh recency.
func (r *analysisRepository) FindByID(id string) (*models.Analysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	analysis, ok := r.entries[id]
	if !ok {
		return nil, ErrAnalysisNotFound
	}
	return analysis, nil
}

// Len implements AnalysisRepository.
func (r *analysisRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// newAnalysisID builds an opaque identifier from a base36 millisecond
// timestamp plus a random suffix. Collision-resistant within one process
// lifetime, which is all the ephemeral cache needs.
func newAnalysisID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + suffix
}
