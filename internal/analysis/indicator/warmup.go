package indicator

// Requirement 声明一次查询会用到的指标及其周期，供暖机计算使用。
type Requirement struct {
	Kind   Kind
	Period int
}

type Kind int

const (
	KindMA Kind = iota
	KindKD
	KindRSI
	KindMACD
	KindStoch
	KindDeduction
)

// warmupMargin 在最大回看期之外额外预留的笔数，让递推型指标（KD、EMA 系）
// 在关注窗口起点处已经收敛。
const warmupMargin = 20

// lookback 返回单个指标自身需要的最少历史笔数。
func (r Requirement) lookback() int {
	switch r.Kind {
	case KindMA, KindDeduction:
		return r.Period
	case KindKD:
		p := r.Period
		if p <= 0 {
			p = DefaultKDPeriod
		}
		return p
	case KindRSI:
		if r.Period <= 0 {
			return 15
		}
		return r.Period + 1
	case KindMACD:
		return 35 // 26 慢线 + 9 信号线
	case KindStoch:
		return minStochBars
	default:
		return 0
	}
}

// RequiredWarmup 计算一组指标所需的暖机笔数：各指标回看期取最大值，
// 再加固定余量。调用方把它叠加在展示窗口之上作为拉取笔数，
// 不必在每个调用点重新推导。
func RequiredWarmup(reqs ...Requirement) int {
	maxLookback := 0
	for _, r := range reqs {
		if lb := r.lookback(); lb > maxLookback {
			maxLookback = lb
		}
	}
	if maxLookback == 0 {
		return 0
	}
	return maxLookback + warmupMargin
}
