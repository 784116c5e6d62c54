package state

import (
	"errors"
	"fmt"

	"adm/model"
)

var (
	// ErrUnknownField 字段名不属于该记录类型
	ErrUnknownField = errors.New("state: unknown field")

	// ErrMalformedRecord 数组长度不是可接受的长度
	ErrMalformedRecord = errors.New("state: malformed record")

	// ErrParseError 文本中存在无法解析的数值
	ErrParseError = errors.New("state: parse error")
)

type FieldError struct {
	Kind  model.Kind
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %q in %s record", ErrUnknownField, e.Field, e.Kind)
}

func (e *FieldError) Unwrap() error {
	return ErrUnknownField
}

type RecordError struct {
	Kind   model.Kind
	Length int
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s: %s record with %d values", ErrMalformedRecord, e.Kind, e.Length)
}

func (e *RecordError) Unwrap() error {
	return ErrMalformedRecord
}

// IndexError 下标超出 [0, 42)
type IndexError struct {
	Kind  model.Kind
	Index int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range in %s record", ErrUnknownField, e.Index, e.Kind)
}

func (e *IndexError) Unwrap() error {
	return ErrUnknownField
}
