package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"altscore/internal/logger"
	"altscore/internal/model"
	"altscore/internal/store"
	storemodel "altscore/internal/store/model"
	"altscore/internal/types"

	"github.com/google/uuid"
)

// historyService 把打分结果异步写入历史库，实现 scorehttp.HistorySink。
// 落库失败只告警，不影响已经返回给调用方的分数。
type historyService struct {
	store  store.ScoreHistory
	params *model.Parameters
	wg     sync.WaitGroup
}

func newHistoryService(st store.ScoreHistory, params *model.Parameters) *historyService {
	if st == nil {
		return nil
	}
	return &historyService{store: st, params: params}
}

func (h *historyService) Record(profile types.Profile, req any, res *types.ScoreResult) {
	if h == nil || res == nil {
		return
	}
	rec := &storemodel.ScoreRecordModel{
		TraceID:          uuid.NewString(),
		Profile:          string(profile),
		RepayProb:        res.RepaymentProbability,
		DefaultProb:      res.DefaultProbability,
		Score:            res.Score,
		PredictedDefault: res.PredictedDefault,
		RiskBand:         string(res.RiskBand),
		Threshold:        h.params.Threshold(profile),
		ModelID:          h.params.ModelID,
		CreatedAtUnix:    time.Now().Unix(),
	}
	if factors, err := json.Marshal(res.TopFactors); err == nil {
		rec.TopFactors = factors
	}
	if input, err := json.Marshal(req); err == nil {
		rec.Input = input
	}
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := h.store.Append(ctx, rec); err != nil {
			logger.Warnf("打分历史落库失败 trace=%s: %v", rec.TraceID, err)
		}
	}()
}

func (h *historyService) RecentRecords(limit int) (any, error) {
	if h == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return h.store.Recent(ctx, limit)
}

// Close 等待在途落库全部结束后再关闭底层存储。
func (h *historyService) Close() error {
	if h == nil || h.store == nil {
		return nil
	}
	h.wg.Wait()
	return h.store.Close()
}
