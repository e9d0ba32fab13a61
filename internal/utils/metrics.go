package utils

import (
	"time"

	"homefinder-listings/pkg/metrics"
)

func RecordDBOperationDuration(driver, operation, collection string, start time.Time) {
	duration := time.Since(start).Seconds()
	metrics.DBOperationDuration.WithLabelValues(driver, operation, collection).Observe(duration)
}

func RecordDBError(driver, operation, collection string) {
	metrics.DBErrorsTotal.WithLabelValues(driver, operation, collection).Inc()
}
