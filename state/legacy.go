package state

import "adm/model"

// 数组布局，解析时确定一次
type Layout int

const (
	CurrentLayout Layout = iota
	LegacyLayout
)

func (l Layout) String() string {
	if l == LegacyLayout {
		return "legacy"
	}
	return "current"
}

// 旧版进水导出格式的固定位置，流量和温度比完整格式提前了 9 位
const (
	legacyFlowIndex        = 26
	legacyTemperatureIndex = 27
)

// ResolveLayout 根据数组长度判断布局，只有进水记录接受旧版格式
func ResolveLayout(kind model.Kind, n int) (Layout, error) {
	switch {
	case n == model.FieldCount:
		return CurrentLayout, nil
	case n == model.LegacyInfluentLength && kind == model.Influent:
		return LegacyLayout, nil
	}
	return 0, &RecordError{Kind: kind, Length: n}
}

// 旧版布局映射到 42 位数组
// 0 ~ 25 直接对应，26 为流量，27 为温度（存在时），其余 >= 26 的字段置 0
func expandLegacy(values []float64) [model.FieldCount]float64 {
	var out [model.FieldCount]float64
	copy(out[:model.IonicStart], values[:model.IonicStart])
	out[model.FlowRateIndex] = values[legacyFlowIndex]
	if legacyTemperatureIndex < len(values) {
		out[model.TemperatureIndex] = values[legacyTemperatureIndex]
	}
	return out
}

// Decode 按布局解析数组并生成新记录
func Decode(kind model.Kind, values []float64) (*Record, error) {
	r := New(kind)
	if err := r.FromArray(values); err != nil {
		return nil, err
	}
	return r, nil
}
