package service

import (
	"errors"

	"github.com/fadelsew02/maxime-app-sub000/internal/workflow"
	"gorm.io/gorm"
)

// updateVersioned writes a record guarded by an optimistic version check.
// record must already carry the incremented version; previous is the version
// the caller read. Zero rows affected means another writer got there first:
// the caller's view is stale and the operation must be replayed from a fresh
// read, which is exactly the InvalidTransition contract.
func updateVersioned(tx *gorm.DB, previous int, record interface{}) error {
	res := tx.Model(record).
		Where("version = ?", previous).
		Select("*").
		Omit("created_at").
		Updates(record)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return workflow.InvalidTransitionf("record was modified concurrently, re-fetch and retry")
	}
	return nil
}

// translateNotFound maps gorm's record-not-found onto the workflow error
// taxonomy so callers never see storage internals.
func translateNotFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return workflow.NotFoundf(format, args...)
	}
	return err
}
