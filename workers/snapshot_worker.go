// workers/snapshot_worker.go
package workers

import (
	"context"
	"time"

	"darkzone-stats-server/services"
	"darkzone-stats-server/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SnapshotClient archives every export dataset to R2 as JSON, keyed by
// date. The dashboard itself never reads these; they exist so data drops
// survive store resets and can be diffed over time.
type SnapshotClient struct {
	Export *services.ExportService
	logger *logrus.Entry
}

func NewSnapshotClient(db *gorm.DB) *SnapshotClient {
	return &SnapshotClient{
		Export: services.NewExportService(db),
		logger: utils.Logger.WithFields(logrus.Fields{
			"module": "workers.SnapshotClient",
		}),
	}
}

// UploadSnapshots exports each dataset and uploads it under
// snapshots/{date}/{dataset}.json. Datasets fail independently; the first
// error is returned after the rest have been attempted.
func (c *SnapshotClient) UploadSnapshots(ctx context.Context) error {
	date := time.Now().Format("2006-01-02")
	var firstErr error

	for _, dataset := range services.ExportDatasets {
		body, err := c.Export.DatasetJSON(ctx, dataset)
		if err == nil {
			key := "snapshots/" + date + "/" + dataset + ".json"
			err = utils.UploadBytesToR2(ctx, key, body, "application/json")
		}
		if err != nil {
			c.logger.WithError(err).WithField("dataset", dataset).Error("snapshot failed")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		c.logger.WithField("dataset", dataset).Info("snapshot uploaded")
	}

	return firstErr
}

// PollSnapshots uploads snapshots on a fixed period until ctx is done.
// One upload runs immediately at start.
func PollSnapshots(ctx context.Context, client *SnapshotClient, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := client.UploadSnapshots(ctx); err != nil {
		client.logger.WithError(err).Warn("initial snapshot incomplete")
	}

	for {
		select {
		case <-ctx.Done():
			client.logger.Info("snapshot worker stopping")
			return
		case <-ticker.C:
			if err := client.UploadSnapshots(ctx); err != nil {
				client.logger.WithError(err).Warn("snapshot incomplete")
			}
		}
	}
}
