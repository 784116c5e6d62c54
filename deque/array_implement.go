package deque

import (
	"adm/state"
)

const (
	// 数组大小基数
	base = 8
)

// ArrDeque 环形数组
type ArrDeque struct {
	arr []*state.Record

	// 队首下标
	start int

	// 元素个数
	size int
	// 容量
	capacity int
}

// 工厂方法，容量按 base 向上对齐
func NewArrDeque(capacity int) *ArrDeque {
	if capacity <= 0 {
		capacity = base
	}
	remainder := capacity % base
	if remainder != 0 {
		capacity = capacity - remainder + base
	}
	return &ArrDeque{
		arr:      make([]*state.Record, capacity),
		capacity: capacity,
	}
}

func (ad *ArrDeque) Size() int {
	return ad.size
}

func (ad *ArrDeque) Capacity() int {
	return ad.capacity
}

func (ad *ArrDeque) pos(i int) int {
	return (ad.start + i) % ad.capacity
}

func (ad *ArrDeque) Get(i int) *state.Record {
	if i < 0 || i >= ad.size {
		panic("index out of length")
	}
	return ad.arr[ad.pos(i)]
}

func (ad *ArrDeque) First() *state.Record {
	if ad.size == 0 {
		return nil
	}
	return ad.arr[ad.start]
}

func (ad *ArrDeque) Traverse(f func(i int, r *state.Record)) {
	for i := 0; i < ad.size; i++ {
		f(i, ad.arr[ad.pos(i)])
	}
}

func (ad *ArrDeque) AddLast(r *state.Record) bool {
	if ad.IsFull() {
		return false
	}
	ad.arr[ad.pos(ad.size)] = r
	ad.size++
	return true
}

func (ad *ArrDeque) RemoveLast() *state.Record {
	if ad.size == 0 {
		return nil
	}
	ad.size--
	p := ad.pos(ad.size)
	r := ad.arr[p]
	ad.arr[p] = nil
	return r
}

func (ad *ArrDeque) AddFirst(r *state.Record) bool {
	if ad.IsFull() {
		return false
	}
	ad.start = (ad.start - 1 + ad.capacity) % ad.capacity
	ad.arr[ad.start] = r
	ad.size++
	return true
}

func (ad *ArrDeque) RemoveFirst() *state.Record {
	if ad.size == 0 {
		return nil
	}
	r := ad.arr[ad.start]
	ad.arr[ad.start] = nil
	ad.start = (ad.start + 1) % ad.capacity
	ad.size--
	return r
}

func (ad *ArrDeque) IsFull() bool {
	return ad.size == ad.capacity
}

func (ad *ArrDeque) IsEmpty() bool {
	return ad.size == 0
}
