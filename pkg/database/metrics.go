package database

import (
	"errors"
	"time"

	"blog_crud_jwt/pkg/metrics"

	"gorm.io/gorm"
)

const startTimeKey = "metrics:start_time"

// instrumentQueries hooks the gorm callback chain so every statement feeds
// the db_query_duration and db_errors series.
func instrumentQueries(db *gorm.DB) {
	before := func(db *gorm.DB) {
		db.InstanceSet(startTimeKey, time.Now())
	}

	after := func(operation string) func(*gorm.DB) {
		return func(db *gorm.DB) {
			v, ok := db.InstanceGet(startTimeKey)
			if !ok {
				return
			}
			started, ok := v.(time.Time)
			if !ok {
				return
			}

			err := db.Error
			// A miss is an answer, not a failure.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				err = nil
			}

			table := db.Statement.Table
			if table == "" {
				table = "unknown"
			}
			metrics.GetGlobalCollector().RecordDBQuery(operation, table, time.Since(started), err)
		}
	}

	_ = db.Callback().Create().Before("gorm:create").Register("metrics:before_create", before)
	_ = db.Callback().Create().After("gorm:create").Register("metrics:after_create", after("create"))
	_ = db.Callback().Query().Before("gorm:query").Register("metrics:before_query", before)
	_ = db.Callback().Query().After("gorm:query").Register("metrics:after_query", after("query"))
	_ = db.Callback().Update().Before("gorm:update").Register("metrics:before_update", before)
	_ = db.Callback().Update().After("gorm:update").Register("metrics:after_update", after("update"))
	_ = db.Callback().Delete().Before("gorm:delete").Register("metrics:before_delete", before)
	_ = db.Callback().Delete().After("gorm:delete").Register("metrics:after_delete", after("delete"))
	_ = db.Callback().Row().Before("gorm:row").Register("metrics:before_row", before)
	_ = db.Callback().Row().After("gorm:row").Register("metrics:after_row", after("row"))
	_ = db.Callback().Raw().Before("gorm:raw").Register("metrics:before_raw", before)
	_ = db.Callback().Raw().After("gorm:raw").Register("metrics:after_raw", after("raw"))
}
