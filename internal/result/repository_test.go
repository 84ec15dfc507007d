package result

import (
	"strings"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=localhost user=quiz dbname=quiz sslmode=disable"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return db
}

func TestBestQuery(t *testing.T) {
	db := dryRunDB(t)

	t.Run("BestPerPlayerWithLimit", func(t *testing.T) {
		sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			var results []*Result
			return bestQuery(tx, 3).Find(&results)
		})

		for _, want := range []string{
			`SELECT DISTINCT ON (player) * FROM "results" ORDER BY player,percentage DESC,score DESC,created_at ASC`,
			`AS best ORDER BY percentage DESC,score DESC,created_at ASC LIMIT 3`,
		} {
			if !strings.Contains(sql, want) {
				t.Errorf("query %q does not contain %q", sql, want)
			}
		}
	})

	t.Run("NoLimit", func(t *testing.T) {
		sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			var results []*Result
			return bestQuery(tx, 0).Find(&results)
		})

		if strings.Contains(sql, "LIMIT") {
			t.Errorf("query %q should not be limited", sql)
		}
		if !strings.Contains(sql, "DISTINCT ON (player)") {
			t.Errorf("query %q does not pick one result per player", sql)
		}
	})
}
