package result

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"
)

type ResultRepository interface {
	Create(ctx context.Context, r *Result) error
	ListBest(ctx context.Context, limit int) ([]*Result, error)
	ListByPlayer(ctx context.Context, player string) ([]*Result, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(ctx context.Context, res *Result) error {
	return r.db.WithContext(ctx).Create(res).Error
}

// ListBest returns each player's best result, ranked. A limit <= 0 returns
// every player.
func (r *resultRepository) ListBest(ctx context.Context, limit int) ([]*Result, error) {
	var results []*Result
	if err := bestQuery(r.db.WithContext(ctx), limit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func bestQuery(db *gorm.DB, limit int) *gorm.DB {
	db = db.Session(&gorm.Session{})
	best := db.Model(&Result{}).
		Select("DISTINCT ON (player) *").
		Order("player").
		Order("percentage DESC").
		Order("score DESC").
		Order("created_at ASC")

	q := db.Table("(?) AS best", best).
		Order("percentage DESC").
		Order("score DESC").
		Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}

func (r *resultRepository) ListByPlayer(ctx context.Context, player string) ([]*Result, error) {
	var results []*Result
	if err := r.db.WithContext(ctx).
		Where("player = ?", player).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// memoryRepository keeps results in process memory; they are lost on restart.
type memoryRepository struct {
	mu      sync.RWMutex
	results []*Result
}

func NewMemoryRepository() ResultRepository {
	return &memoryRepository{}
}

func (m *memoryRepository) Create(_ context.Context, res *Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *res
	m.results = append(m.results, &stored)
	return nil
}

func (m *memoryRepository) ListBest(_ context.Context, limit int) ([]*Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	slot := make(map[string]int)
	var out []*Result
	for _, r := range m.results {
		i, ok := slot[r.Player]
		switch {
		case !ok:
			slot[r.Player] = len(out)
			out = append(out, r)
		case ranksAbove(r, out[i]):
			out[i] = r
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return ranksAbove(out[i], out[j]) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func ranksAbove(a, b *Result) bool {
	if a.Percentage != b.Percentage {
		return a.Percentage > b.Percentage
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

func (m *memoryRepository) ListByPlayer(_ context.Context, player string) ([]*Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Result
	for i := len(m.results) - 1; i >= 0; i-- {
		if m.results[i].Player == player {
			out = append(out, m.results[i])
		}
	}
	return out, nil
}
