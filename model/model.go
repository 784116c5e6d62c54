package model

type Field struct {
	Name    string  `json:"name"`
	Index   int     `json:"index"`
	Default float64 `json:"default"`
}

// 消化池初始状态，典型污泥消化池的默认值
var initialFields = [FieldCount]Field{
	// 可溶性组分
	{"S_su", 0, 0.012},
	{"S_aa", 1, 0.0053},
	{"S_fa", 2, 0.099},
	{"S_va", 3, 0.012},
	{"S_bu", 4, 0.013},
	{"S_pro", 5, 0.016},
	{"S_ac", 6, 0.2},
	{"S_h2", 7, 2.3e-7},
	{"S_ch4", 8, 0.055},
	{"S_IC", 9, 0.15},
	{"S_IN", 10, 0.13},
	{"S_I", 11, 0.033},
	// 颗粒性组分
	{"X_xc", 12, 0.31},
	{"X_ch", 13, 0.028},
	{"X_pr", 14, 0.1},
	{"X_li", 15, 0.029},
	{"X_su", 16, 0.42},
	{"X_aa", 17, 1.18},
	{"X_fa", 18, 0.24},
	{"X_c4", 19, 0.43},
	{"X_pro", 20, 0.14},
	{"X_ac", 21, 0.76},
	{"X_h2", 22, 0.32},
	{"X_I", 23, 25.6},
	{"S_cat", 24, 0.04},
	{"S_an", 25, 0.02},
	// 离子平衡
	{"S_hva", 26, 0.011},
	{"S_hbu", 27, 0.013},
	{"S_hpro", 28, 0.016},
	{"S_hac", 29, 0.2},
	{"S_hco3", 30, 0.14},
	{"S_nh3", 31, 0.0041},
	// 气相
	{"S_gas_h2", 32, 1.02e-5},
	{"S_gas_ch4", 33, 1.63},
	{"S_gas_co2", 34, 0.014},
	{"Q_D", 35, 0},
	{"T_D", 36, 35.0},
	// 附加输出
	{"Q_gas", 37, 0},
	{"p_gas_ch4", 38, 0},
	{"COD", 39, 0},
	{"S_gas_h2s", 40, 0},
	{"aux", 41, 0},
}

// 未处理的进泥，离子平衡与气相由消化池给出
var influentFields = [FieldCount]Field{
	{"S_su", 0, 0.01},
	{"S_aa", 1, 0.001},
	{"S_fa", 2, 0.001},
	{"S_va", 3, 0.001},
	{"S_bu", 4, 0.001},
	{"S_pro", 5, 0.001},
	{"S_ac", 6, 0.001},
	{"S_h2", 7, 1e-8},
	{"S_ch4", 8, 1e-5},
	{"S_IC", 9, 0.04},
	{"S_IN", 10, 0.01},
	{"S_I", 11, 0.02},
	{"X_xc", 12, 2.0},
	{"X_ch", 13, 5.0},
	{"X_pr", 14, 20.0},
	{"X_li", 15, 5.0},
	{"X_su", 16, 0},
	{"X_aa", 17, 0.01},
	{"X_fa", 18, 0.01},
	{"X_c4", 19, 0.01},
	{"X_pro", 20, 0.01},
	{"X_ac", 21, 0.01},
	{"X_h2", 22, 0.01},
	{"X_I", 23, 25.0},
	{"S_cat", 24, 0.04},
	{"S_an", 25, 0.02},
	{"S_hva", 26, 0},
	{"S_hbu", 27, 0},
	{"S_hpro", 28, 0},
	{"S_hac", 29, 0},
	{"S_hco3", 30, 0},
	{"S_nh3", 31, 0},
	{"S_gas_h2", 32, 0},
	{"S_gas_ch4", 33, 0},
	{"S_gas_co2", 34, 0},
	{"Q_D", 35, 170.0},
	// 由消化池覆盖
	{"T_D", 36, 0},
	{"Q_gas", 37, 0},
	{"V_gas", 38, 0},
	{"pH", 39, 0},
	{"S_h2s", 40, 0},
	{"aux", 41, 0},
}

var (
	initialIndex  = buildIndex(&initialFields)
	influentIndex = buildIndex(&influentFields)
)

func buildIndex(fields *[FieldCount]Field) map[string]int {
	index := make(map[string]int, FieldCount)
	for i, f := range fields {
		index[f.Name] = i
	}
	return index
}

func schema(kind Kind) *[FieldCount]Field {
	if kind == Influent {
		return &influentFields
	}
	return &initialFields
}

// Fields 返回按下标排列的字段定义副本
func Fields(kind Kind) []Field {
	fields := schema(kind)
	res := make([]Field, FieldCount)
	copy(res, fields[:])
	return res
}

func FieldNames(kind Kind) []string {
	names := make([]string, FieldCount)
	for i, f := range schema(kind) {
		names[i] = f.Name
	}
	return names
}

func Defaults(kind Kind) []float64 {
	values := make([]float64, FieldCount)
	for i, f := range schema(kind) {
		values[i] = f.Default
	}
	return values
}

// IndexOf 返回字段下标，字段不存在时 ok 为 false
func IndexOf(kind Kind, name string) (int, bool) {
	index := initialIndex
	if kind == Influent {
		index = influentIndex
	}
	i, ok := index[name]
	return i, ok
}

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}
