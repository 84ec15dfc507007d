package result

import "gorm.io/gorm"

type ResultContainer struct {
	Handler *Handler
	Service ResultService
}

// NewResultContainer stores results in db, or in memory when db is nil.
func NewResultContainer(db *gorm.DB, leaderboardLimit int) *ResultContainer {
	var repo ResultRepository
	if db != nil {
		repo = NewRepository(db)
	} else {
		repo = NewMemoryRepository()
	}
	service := NewService(repo)
	handler := NewHandler(service, leaderboardLimit)

	return &ResultContainer{
		Handler: handler,
		Service: service,
	}
}
