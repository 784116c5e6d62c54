package state

import (
	"adm/model"
)

// Record 一条 42 位状态记录，消化池状态或进水
// 并发修改需要调用方自行加锁
type Record struct {
	kind   model.Kind
	values [model.FieldCount]float64
}

// 工厂方法，使用默认值初始化
func New(kind model.Kind) *Record {
	r := &Record{kind: kind}
	copy(r.values[:], model.Defaults(kind))
	return r
}

func NewInitial() *Record {
	return New(model.Initial)
}

func NewInfluent() *Record {
	return New(model.Influent)
}

func (r *Record) Kind() model.Kind {
	return r.kind
}

func (r *Record) index(name string) (int, error) {
	i, ok := model.IndexOf(r.kind, name)
	if !ok {
		return 0, &FieldError{Kind: r.kind, Field: name}
	}
	return i, nil
}

func (r *Record) Get(name string) (float64, error) {
	i, err := r.index(name)
	if err != nil {
		return 0, err
	}
	return r.values[i], nil
}

// MustGet 字段名写错属于编程错误，直接 panic
func (r *Record) MustGet(name string) float64 {
	v, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Set 不做取值范围校验
func (r *Record) Set(name string, value float64) error {
	i, err := r.index(name)
	if err != nil {
		return err
	}
	r.values[i] = value
	return nil
}

// At 按下标读取，越界返回 IndexError
func (r *Record) At(i int) (float64, error) {
	if i < 0 || i >= model.FieldCount {
		return 0, &IndexError{Kind: r.kind, Index: i}
	}
	return r.values[i], nil
}

func (r *Record) SetAt(i int, value float64) error {
	if i < 0 || i >= model.FieldCount {
		return &IndexError{Kind: r.kind, Index: i}
	}
	r.values[i] = value
	return nil
}

// ToArray 按下标顺序返回 42 个数值
func (r *Record) ToArray() []float64 {
	res := make([]float64, model.FieldCount)
	copy(res, r.values[:])
	return res
}

// FromArray 整体覆盖，长度不合法时记录保持不变
func (r *Record) FromArray(values []float64) error {
	layout, err := ResolveLayout(r.kind, len(values))
	if err != nil {
		return err
	}
	switch layout {
	case LegacyLayout:
		r.values = expandLegacy(values)
	default:
		copy(r.values[:], values)
	}
	return nil
}

func (r *Record) Clone() *Record {
	c := *r
	return &c
}

// Equal 逐位比较
func (r *Record) Equal(o *Record) bool {
	return r.kind == o.kind && r.values == o.values
}

// 求解器交接用到的字段

func (r *Record) FlowRate() float64 {
	return r.values[model.FlowRateIndex]
}

func (r *Record) SetFlowRate(q float64) {
	r.values[model.FlowRateIndex] = q
}

func (r *Record) Temperature() float64 {
	return r.values[model.TemperatureIndex]
}

func (r *Record) SetTemperature(t float64) {
	r.values[model.TemperatureIndex] = t
}

// PH 只有进水记录有 pH 字段
func (r *Record) PH() (float64, error) {
	return r.Get("pH")
}

func (r *Record) SetPH(ph float64) error {
	return r.Set("pH", ph)
}

// IonicEquilibrium 返回离子平衡和气相组分 [26, 34)
func (r *Record) IonicEquilibrium() []float64 {
	res := make([]float64, model.CarryoverEnd-model.CarryoverStart)
	copy(res, r.values[model.CarryoverStart:model.CarryoverEnd])
	return res
}

func (r *Record) SetIonicEquilibrium(values []float64) error {
	if len(values) != model.CarryoverEnd-model.CarryoverStart {
		return &RecordError{Kind: r.kind, Length: len(values)}
	}
	copy(r.values[model.CarryoverStart:model.CarryoverEnd], values)
	return nil
}

// Handoff 消化池把温度和上一步的离子平衡组分交给进水
func Handoff(digester, influent *Record) {
	influent.SetTemperature(digester.Temperature())
	copy(influent.values[model.CarryoverStart:model.CarryoverEnd], digester.values[model.CarryoverStart:model.CarryoverEnd])
}
