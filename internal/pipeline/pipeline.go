package pipeline

import (
	"context"
	"runtime"

	"altscore/internal/decision"
	"altscore/internal/feature"
	"altscore/internal/model"
	"altscore/internal/types"

	"golang.org/x/sync/errgroup"
)

// Pipeline 对单个借款人串起 特征构建 → 概率 → 分数/分级 → 解释 四步。
// 无状态：唯一共享资源是只读的模型参数，任意数量的打分可并行执行。
type Pipeline struct {
	params *model.Parameters
}

// New 构建 pipeline。参数为空或与特征表不兼容时返回 ConfigError。
func New(params *model.Parameters) (*Pipeline, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{params: params}, nil
}

// Params 暴露只读模型参数（transport 的 health 探针需要）。
func (p *Pipeline) Params() *model.Parameters { return p.params }

// Score 对单个借款人打分。画像未识别返回 ValidationError；
// 结果要么完整产出要么报错，不存在部分降级的分数。
// 画像标签先归一化再参与特征构建：大小写/空白变体与规范标签
// 必须产出逐位相同的结果。
func (p *Pipeline) Score(in *types.BorrowerInput) (*types.ScoreResult, error) {
	prof, err := types.ParseProfile(string(in.Profile))
	if err != nil {
		return nil, err
	}
	if prof != in.Profile {
		normalized := *in
		normalized.Profile = prof
		in = &normalized
	}
	vec := feature.Build(in)
	return p.scoreVector(prof, vec)
}

// ScoreColumns 对预展开的原始特征列打分（遗留 /predict 路径）。
// 该路径不携带画像标签，判定阈值固定取 salaried 档；one-hot 列只
// 进入特征向量，不参与阈值选取。
func (p *Pipeline) ScoreColumns(cols feature.Columns) (*types.ScoreResult, error) {
	return p.scoreVector(types.ProfileSalaried, feature.BuildColumns(cols))
}

func (p *Pipeline) scoreVector(prof types.Profile, vec feature.Vector) (*types.ScoreResult, error) {
	pDefault, err := model.PredictDefault(p.params, vec)
	if err != nil {
		return nil, err
	}
	d := decision.Map(p.params, prof, pDefault)
	return &types.ScoreResult{
		RepaymentProbability: 1.0 - pDefault,
		DefaultProbability:   pDefault,
		Score:                d.Score,
		PredictedDefault:     d.PredictedDefault,
		RiskBand:             d.Band,
		TopFactors:           decision.Explain(p.params, vec),
	}, nil
}

// ScoreBatch 对一批借款人独立打分：保序、保长，空集合原样返回空结果。
// 条目之间无共享可变状态，这里用 errgroup 并发执行，与顺序执行结果
// 完全一致；任何一条失败则整批报错（没有部分结果）。
// 集合大小上限由 transport 层负责，这里不设限。
func (p *Pipeline) ScoreBatch(ctx context.Context, ins []*types.BorrowerInput) ([]*types.ScoreResult, error) {
	if len(ins) == 0 {
		return []*types.ScoreResult{}, nil
	}
	results := make([]*types.ScoreResult, len(ins))
	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, in := range ins {
		i, in := i, in
		group.Go(func() error {
			res, err := p.Score(in)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
