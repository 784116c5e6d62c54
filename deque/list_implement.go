package deque

import (
	"adm/state"
)

type ListDeque struct {
	head *node
	tail *node

	size     int
	capacity int
}

type node struct {
	val  *state.Record
	pre  *node
	next *node
}

// 工厂方法，capacity <= 0 时没有上限
func NewListDeque(capacity int) *ListDeque {
	head := &node{}
	tail := &node{}
	head.next = tail
	tail.pre = head

	return &ListDeque{
		head:     head,
		tail:     tail,
		capacity: capacity,
	}
}

func (ld *ListDeque) Size() int {
	return ld.size
}

func (ld *ListDeque) Capacity() int {
	return ld.capacity
}

func (ld *ListDeque) Get(i int) *state.Record {
	if i < 0 || i >= ld.size {
		panic("index out of length")
	}
	iter := ld.head.next
	for k := 0; k < i; k++ {
		iter = iter.next
	}
	return iter.val
}

func (ld *ListDeque) First() *state.Record {
	if ld.size == 0 {
		return nil
	}
	return ld.head.next.val
}

func (ld *ListDeque) Traverse(f func(i int, r *state.Record)) {
	i := 0
	for iter := ld.head.next; iter != ld.tail; iter = iter.next {
		f(i, iter.val)
		i++
	}
}

func (ld *ListDeque) AddLast(r *state.Record) bool {
	if ld.IsFull() {
		return false
	}
	newNode := &node{
		val: r,
	}
	tmp := ld.tail.pre
	ld.tail.pre = newNode
	newNode.next = ld.tail
	newNode.pre = tmp
	tmp.next = newNode
	ld.size++
	return true
}

func (ld *ListDeque) RemoveLast() *state.Record {
	if ld.size == 0 {
		return nil
	}
	r := ld.tail.pre.val
	ld.tail.pre = ld.tail.pre.pre
	ld.tail.pre.next = ld.tail
	ld.size--
	return r
}

func (ld *ListDeque) AddFirst(r *state.Record) bool {
	if ld.IsFull() {
		return false
	}
	newNode := &node{
		val: r,
	}
	tmp := ld.head.next
	ld.head.next = newNode
	newNode.pre = ld.head
	newNode.next = tmp
	tmp.pre = newNode
	ld.size++
	return true
}

func (ld *ListDeque) RemoveFirst() *state.Record {
	if ld.size == 0 {
		return nil
	}
	r := ld.head.next.val
	ld.head.next = ld.head.next.next
	ld.head.next.pre = ld.head
	ld.size--
	return r
}

func (ld *ListDeque) IsFull() bool {
	return ld.capacity > 0 && ld.size >= ld.capacity
}

func (ld *ListDeque) IsEmpty() bool {
	return ld.size == 0
}
