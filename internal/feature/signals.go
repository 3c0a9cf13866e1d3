package feature

import "altscore/internal/types"

// profileSignals 计算画像相关的收入类/质量类信号。
// 用 Profile 为键的分发表取代散落在各处的条件分支，
// 保证特征构建与解释计算共享同一套选取逻辑。
type profileSignals struct {
	Income float64 // 收入类信号：GPA / 平台评分 / 日均营收 / 补贴
	Rating float64 // 质量类信号：评分+工时 / GPA+出勤；salaried 与商户/农村无此信号
}

type signalFn func(in *types.BorrowerInput) profileSignals

var signalTable = map[types.Profile]signalFn{
	types.ProfileSalaried: func(in *types.BorrowerInput) profileSignals {
		// 工薪画像没有专属信号，两项均为 0（与拟合时的 one-hot 加权语义一致）。
		return profileSignals{}
	},
	types.ProfileStudent: func(in *types.BorrowerInput) profileSignals {
		return profileSignals{
			Income: in.Student.GPA,
			Rating: in.Student.GPA + in.Student.AttendanceRate,
		}
	},
	types.ProfileGig: func(in *types.BorrowerInput) profileSignals {
		return profileSignals{
			Income: in.Gig.PlatformRating,
			Rating: in.Gig.PlatformRating + in.Gig.AvgWeeklyHours,
		}
	},
	types.ProfileShopkeeper: func(in *types.BorrowerInput) profileSignals {
		return profileSignals{Income: in.Shopkeeper.AvgDailyRevenue}
	},
	types.ProfileRural: func(in *types.BorrowerInput) profileSignals {
		return profileSignals{Income: in.Rural.SubsidyAmount}
	},
}

func selectSignals(in *types.BorrowerInput) profileSignals {
	if fn, ok := signalTable[in.Profile]; ok {
		return fn(in)
	}
	return profileSignals{}
}
