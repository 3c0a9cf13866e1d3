package pipeline

import (
	"context"
	"os"
	"testing"

	"altscore/internal/feature"
	"altscore/internal/model"
	"altscore/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type scenarioInput struct {
	MonthlyIncome     float64 `yaml:"monthly_income"`
	IncomeVariance    float64 `yaml:"income_variance"`
	SavingsBalance    float64 `yaml:"savings_balance"`
	MonthsActive      float64 `yaml:"months_active"`
	TotalCredits      float64 `yaml:"total_credits"`
	TotalDebits       float64 `yaml:"total_debits"`
	TotalTransactions float64 `yaml:"total_transactions"`
	AvgCreditAmount   float64 `yaml:"avg_credit_amount"`
	AvgDebitAmount    float64 `yaml:"avg_debit_amount"`
	RecurringRatio    float64 `yaml:"recurring_ratio"`

	GPA              float64 `yaml:"gpa"`
	AttendanceRate   float64 `yaml:"attendance_rate"`
	PlatformRating   float64 `yaml:"platform_rating"`
	AvgWeeklyHours   float64 `yaml:"avg_weekly_hours"`
	BusinessYears    float64 `yaml:"business_years"`
	AvgDailyRevenue  float64 `yaml:"avg_daily_revenue"`
	LandSizeAcres    float64 `yaml:"land_size_acres"`
	SubsidyAmount    float64 `yaml:"subsidy_amount"`
	SeasonalityIndex float64 `yaml:"seasonality_index"`
}

type scenarioFactor struct {
	Label     string  `yaml:"label"`
	Direction string  `yaml:"direction"`
	Impact    float64 `yaml:"impact"`
}

type scenarioExpect struct {
	DefaultProbability   float64          `yaml:"default_probability"`
	RepaymentProbability float64          `yaml:"repayment_probability"`
	Score                int              `yaml:"score"`
	RiskBand             string           `yaml:"risk_band"`
	PredictedDefault     bool             `yaml:"predicted_default"`
	TopFactors           []scenarioFactor `yaml:"top_factors"`
}

type scenario struct {
	Name    string         `yaml:"name"`
	Profile string         `yaml:"profile"`
	Input   scenarioInput  `yaml:"input"`
	Expect  scenarioExpect `yaml:"expect"`
}

type scenarioFile struct {
	Scenarios []scenario `yaml:"scenarios"`
}

func loadScenarios(t *testing.T) []scenario {
	t.Helper()
	data, err := os.ReadFile("testdata/scenarios.yaml")
	require.NoError(t, err)
	var file scenarioFile
	require.NoError(t, yaml.Unmarshal(data, &file))
	require.NotEmpty(t, file.Scenarios)
	return file.Scenarios
}

func loadPipeline(t *testing.T) *Pipeline {
	t.Helper()
	params, err := model.LoadArtifact("testdata/model.json")
	require.NoError(t, err)
	p, err := New(params)
	require.NoError(t, err)
	return p
}

func (s scenario) borrower(t *testing.T) *types.BorrowerInput {
	t.Helper()
	prof, err := types.ParseProfile(s.Profile)
	require.NoError(t, err)
	in := &types.BorrowerInput{
		Profile: prof,
		SharedFields: types.SharedFields{
			MonthlyIncome:     s.Input.MonthlyIncome,
			IncomeVariance:    s.Input.IncomeVariance,
			SavingsBalance:    s.Input.SavingsBalance,
			MonthsActive:      s.Input.MonthsActive,
			TotalCredits:      s.Input.TotalCredits,
			TotalDebits:       s.Input.TotalDebits,
			TotalTransactions: s.Input.TotalTransactions,
			AvgCreditAmount:   s.Input.AvgCreditAmount,
			AvgDebitAmount:    s.Input.AvgDebitAmount,
			RecurringRatio:    s.Input.RecurringRatio,
		},
		Student:    types.StudentFields{GPA: s.Input.GPA, AttendanceRate: s.Input.AttendanceRate},
		Gig:        types.GigFields{PlatformRating: s.Input.PlatformRating, AvgWeeklyHours: s.Input.AvgWeeklyHours},
		Shopkeeper: types.ShopkeeperFields{BusinessYears: s.Input.BusinessYears, AvgDailyRevenue: s.Input.AvgDailyRevenue},
		Rural:      types.RuralFields{LandSizeAcres: s.Input.LandSizeAcres, SubsidyAmount: s.Input.SubsidyAmount, SeasonalityIndex: s.Input.SeasonalityIndex},
	}
	return in
}

func TestPipeline_Scenarios(t *testing.T) {
	p := loadPipeline(t)
	for _, sc := range loadScenarios(t) {
		t.Run(sc.Name, func(t *testing.T) {
			res, err := p.Score(sc.borrower(t))
			require.NoError(t, err)

			assert.InDelta(t, sc.Expect.DefaultProbability, res.DefaultProbability, 1e-9)
			assert.InDelta(t, sc.Expect.RepaymentProbability, res.RepaymentProbability, 1e-9)
			assert.Equal(t, sc.Expect.Score, res.Score)
			assert.Equal(t, types.RiskBand(sc.Expect.RiskBand), res.RiskBand)
			assert.Equal(t, sc.Expect.PredictedDefault, res.PredictedDefault)

			if len(sc.Expect.TopFactors) > 0 {
				require.Len(t, res.TopFactors, len(sc.Expect.TopFactors))
				for i, want := range sc.Expect.TopFactors {
					assert.Equal(t, want.Label, res.TopFactors[i].Label)
					assert.Equal(t, want.Direction, res.TopFactors[i].Direction)
					assert.InDelta(t, want.Impact, res.TopFactors[i].Impact, 1e-6)
				}
			}
		})
	}
}

// 两个概率永远互补且落在校准曲线覆盖的区间内。
func TestPipeline_ProbabilityInvariants(t *testing.T) {
	p := loadPipeline(t)
	for _, sc := range loadScenarios(t) {
		res, err := p.Score(sc.borrower(t))
		require.NoError(t, err)
		assert.InDelta(t, 1.0, res.RepaymentProbability+res.DefaultProbability, 1e-12)
		assert.GreaterOrEqual(t, res.Score, 300)
		assert.LessOrEqual(t, res.Score, 900)
		assert.LessOrEqual(t, len(res.TopFactors), 5)
	}
}

// 同一输入重复打分必须逐位一致，中间不得有任何非确定性来源。
func TestPipeline_Deterministic(t *testing.T) {
	p := loadPipeline(t)
	in := loadScenarios(t)[0].borrower(t)
	first, err := p.Score(in)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := p.Score(in)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

// 画像标签的大小写/空白变体与规范标签必须产出逐位相同的结果：
// 归一化后的标签要真正进入特征构建，而不是只用于校验。
func TestPipeline_ProfileTagNormalization(t *testing.T) {
	p := loadPipeline(t)
	sc := loadScenarios(t)[0] // gig 场景

	canonical := sc.borrower(t)
	want, err := p.Score(canonical)
	require.NoError(t, err)
	require.Equal(t, sc.Expect.Score, want.Score)

	for _, tag := range []string{"GIG", " gig ", "Gig", "\tGIG\n"} {
		t.Run(tag, func(t *testing.T) {
			variant := sc.borrower(t)
			variant.Profile = types.Profile(tag)
			got, err := p.Score(variant)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			// 入参本身不被改写
			assert.Equal(t, types.Profile(tag), variant.Profile)
		})
	}
}

func TestPipeline_UnknownProfile(t *testing.T) {
	p := loadPipeline(t)
	_, err := p.Score(&types.BorrowerInput{Profile: "astronaut"})
	require.Error(t, err)
	var verr *types.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "profile_type", verr.Field)
}

func TestPipeline_ScoreBatch(t *testing.T) {
	p := loadPipeline(t)
	scenarios := loadScenarios(t)

	t.Run("结果与输入顺序一一对应", func(t *testing.T) {
		ins := make([]*types.BorrowerInput, len(scenarios))
		for i, sc := range scenarios {
			ins[i] = sc.borrower(t)
		}
		results, err := p.ScoreBatch(context.Background(), ins)
		require.NoError(t, err)
		require.Len(t, results, len(ins))
		for i, sc := range scenarios {
			assert.Equalf(t, sc.Expect.Score, results[i].Score, "scenario %s", sc.Name)
		}
	})

	t.Run("批量与逐个打分结果一致", func(t *testing.T) {
		ins := []*types.BorrowerInput{scenarios[0].borrower(t), scenarios[1].borrower(t)}
		batch, err := p.ScoreBatch(context.Background(), ins)
		require.NoError(t, err)
		for i, in := range ins {
			single, err := p.Score(in)
			require.NoError(t, err)
			assert.Equal(t, single, batch[i])
		}
	})

	t.Run("空批量返回空结果", func(t *testing.T) {
		results, err := p.ScoreBatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("单个坏输入整批失败", func(t *testing.T) {
		ins := []*types.BorrowerInput{
			scenarios[0].borrower(t),
			{Profile: "astronaut"},
		}
		_, err := p.ScoreBatch(context.Background(), ins)
		assert.Error(t, err)
	})
}

func TestPipeline_ScoreColumns(t *testing.T) {
	p := loadPipeline(t)
	sc := loadScenarios(t)[0]
	in := sc.borrower(t)

	// gig 与 salaried 同为 0.40 档，标签化路径与预展开列路径
	// 对该场景产出完全一致的结果
	fromLabels, err := p.Score(in)
	require.NoError(t, err)
	fromColumns, err := p.ScoreColumns(feature.Expand(in))
	require.NoError(t, err)
	assert.Equal(t, fromLabels, fromColumns)
}

// 遗留列路径不携带画像标签，判定阈值固定取 salaried 档：
// 带 student one-hot 的行在 0.35~0.40 区间内不判违约。
func TestPipeline_ScoreColumns_SalariedThreshold(t *testing.T) {
	n := feature.Count
	params := &model.Parameters{
		ModelID:      "threshold-test",
		Means:        make([]float64, n),
		Scales:       make([]float64, n),
		Coefficients: make([]float64, n),
		// 常值曲线把任意原始概率都压到 0.37，正好落在两档之间
		Calibration: model.Curve{Knots: []model.Knot{
			{Raw: 0, Cal: 0.37}, {Raw: 1, Cal: 0.37},
		}},
		Thresholds: map[types.Profile]float64{
			types.ProfileSalaried:   0.40,
			types.ProfileStudent:    0.35,
			types.ProfileGig:        0.40,
			types.ProfileShopkeeper: 0.40,
			types.ProfileRural:      0.35,
		},
	}
	for i := range params.Scales {
		params.Scales[i] = 1
	}
	p, err := New(params)
	require.NoError(t, err)

	in := &types.BorrowerInput{
		Profile: types.ProfileStudent,
		Student: types.StudentFields{GPA: 3.5, AttendanceRate: 0.9},
	}

	tagged, err := p.Score(in)
	require.NoError(t, err)
	assert.InDelta(t, 0.37, tagged.DefaultProbability, 1e-12)
	assert.True(t, tagged.PredictedDefault) // 标签路径用 student 0.35 档

	legacy, err := p.ScoreColumns(feature.Expand(in))
	require.NoError(t, err)
	assert.InDelta(t, 0.37, legacy.DefaultProbability, 1e-12)
	assert.False(t, legacy.PredictedDefault) // 列路径固定 salaried 0.40 档
}
