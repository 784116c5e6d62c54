package codec

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"adm/model"
	"adm/state"
)

// 字段分隔符
const Separator = ";"

// Codec 状态记录和一行分号分隔文本之间的转换
type Codec struct {
	log *log.Entry
}

// 工厂方法，logger 为 nil 时不输出日志
func New(logger *log.Entry) *Codec {
	if logger == nil {
		l := log.New()
		l.Out = io.Discard
		logger = log.NewEntry(l)
	}
	return &Codec{log: logger.WithField("component", "codec")}
}

// WriteLine 输出 42 个字段，使用最短的可往返十进制表示，与地区设置无关
func (c *Codec) WriteLine(r *state.Record) string {
	values := r.ToArray()
	tokens := make([]string, len(values))
	for i, v := range values {
		tokens[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(tokens, Separator)
}

// ParseLine 只做数值解析，不校验长度
func ParseLine(text string) ([]float64, error) {
	tokens := strings.Split(strings.TrimSpace(text), Separator)
	values := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, err := parseToken(strings.TrimSpace(tok))
		if err != nil {
			return nil, fmt.Errorf("%w: token %d %q", state.ErrParseError, i, tok)
		}
		values[i] = v
	}
	return values, nil
}

// parseToken 只接受有限的十进制数，NaN、Inf、十六进制和下划线分隔都拒绝
func parseToken(tok string) (float64, error) {
	if strings.TrimLeft(tok, "0123456789+-.eE") != "" {
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

// ReadLine 解析一行文本，任何错误都不返回部分记录
func (c *Codec) ReadLine(kind model.Kind, text string) (*state.Record, error) {
	values, err := ParseLine(text)
	if err != nil {
		c.log.WithFields(log.Fields{
			"kind":  kind,
			"error": err,
		}).Warn("parse record failed")
		return nil, err
	}
	layout, err := state.ResolveLayout(kind, len(values))
	if err != nil {
		c.log.WithFields(log.Fields{
			"kind":   kind,
			"length": len(values),
		}).Warn("malformed record")
		return nil, err
	}
	if layout == state.LegacyLayout {
		c.log.WithFields(log.Fields{
			"kind":   kind,
			"length": len(values),
		}).Info("legacy influent record, fields from index 26 zero-filled")
	}
	r, err := state.Decode(kind, values)
	if err != nil {
		return nil, err
	}
	c.log.WithFields(log.Fields{
		"kind":   kind,
		"layout": layout,
	}).Debug("record decoded")
	return r, nil
}
