/**
 *
 * 进水序列队列
 * 每个时间步从队首取出一条进水记录交给消化池，数组实现具有更好的局部性，链表实现容量不需要对齐
 *
 */

package deque

import (
	"errors"
	"fmt"

	"adm/state"
)

// 配置中可选的实现
const (
	ImplArray = "array"
	ImplList  = "list"
)

var ErrUnknownImpl = errors.New("deque: unknown implementation")

type Deque interface {
	// 队列的长度
	Size() int

	// 最多容纳的记录数
	Capacity() int

	// 获取队列中对应下标的记录
	Get(i int) *state.Record

	// 队首记录，队列为空时返回 nil
	First() *state.Record

	// 正向遍历
	Traverse(f func(i int, r *state.Record))

	// 在队列结尾增加一个元素，队列满时返回 false
	AddLast(r *state.Record) bool

	// 在队列结尾删除一个元素
	RemoveLast() *state.Record

	// 在队列头部增加一个元素
	AddFirst(r *state.Record) bool

	// 在队列头部删除一个元素
	RemoveFirst() *state.Record

	IsFull() bool

	IsEmpty() bool
}

// 工厂方法，按配置名选择实现
func New(impl string, capacity int) (Deque, error) {
	switch impl {
	case ImplArray:
		return NewArrDeque(capacity), nil
	case ImplList:
		return NewListDeque(capacity), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownImpl, impl)
	}
}
