package model

// 状态向量布局
// 1. 0  ~ 11 可溶性组分 (kgCOD/m3, S_IC/S_IN 为 kmol/m3)
// 2. 12 ~ 23 颗粒性组分
// 3. 24 ~ 25 阳离子 / 阴离子
// 4. 26 ~ 31 离子平衡组分
// 5. 32 ~ 34 气相浓度
// 6. 35 流量 (m3/d)，36 温度 (℃)
// 7. 37 ~ 41 附加输出

const (
	FieldCount           = 42
	LegacyInfluentLength = 27

	CationIndex      = 24
	AnionIndex       = 25
	IonicStart       = 26
	GasStart         = 32
	FlowRateIndex    = 35
	TemperatureIndex = 36
	ExtraStart       = 37

	// 进水附加输出
	GasVolumeIndex = 38
	PHIndex        = 39

	// 消化池每个时间步交接给进水的离子平衡和气相组分 [26, 34)
	CarryoverStart = IonicStart
	CarryoverEnd   = 34
)

// 记录类型
type Kind int

const (
	Initial Kind = iota
	Influent
)

func (k Kind) String() string {
	switch k {
	case Initial:
		return "initial"
	case Influent:
		return "influent"
	default:
		return "unknown"
	}
}

// ParseKind 解析消息和配置中的记录类型名称
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "initial":
		return Initial, true
	case "influent":
		return Influent, true
	}
	return 0, false
}
