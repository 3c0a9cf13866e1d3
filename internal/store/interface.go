package store

import (
	"context"

	"altscore/internal/store/model"
)

// ScoreHistory 打分历史仓库。
type ScoreHistory interface {
	Append(ctx context.Context, rec *model.ScoreRecordModel) error
	Recent(ctx context.Context, limit int) ([]model.ScoreRecordModel, error)
	Close() error
}
