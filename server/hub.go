package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"adm/deque"
	"adm/model"
	"adm/state"
)

// 消息类型
const (
	typeLoad         = "load"
	typeSave         = "save"
	typeGet          = "get"
	typeSet          = "set"
	typeExport       = "export"
	typeImport       = "import"
	typeReset        = "reset"
	typeLoadSeries   = "load_series"
	typeNextInfluent = "next_influent"
	typePeekSeries   = "peek_series"
	typeRewind       = "rewind_influent"
	typeDropLast     = "drop_last_influent"

	typeLoaded       = "loaded"
	typeSaved        = "saved"
	typeValue        = "value"
	typeExported     = "exported"
	typeImported     = "imported"
	typeSeriesLoaded = "series_loaded"
	typeInfluent     = "influent"
	typeError        = "error"
)

var (
	errUnknownKind = errors.New("unknown record kind")
	errBadFile     = errors.New("invalid file name")
	errNoSeries    = errors.New("influent series is empty")
	errSeriesFull  = errors.New("influent series is full")
	errStep        = errors.New("step out of range")
)

// 请求内容，Msg.Content 中的 json
type request struct {
	Kind  string  `json:"kind"`
	Field string  `json:"field,omitempty"`
	Value float64 `json:"value,omitempty"`
	File  string  `json:"file,omitempty"`
	Line  string  `json:"line,omitempty"`
	Step  int     `json:"step,omitempty"`
}

type recordReply struct {
	Kind   string    `json:"kind"`
	Fields []string  `json:"fields"`
	Values []float64 `json:"values"`
	Line   string    `json:"line"`
	// 进水序列剩余的时间步
	Remaining int `json:"remaining,omitempty"`
}

type valueReply struct {
	Kind  string  `json:"kind"`
	Field string  `json:"field"`
	Value float64 `json:"value"`
}

type seriesReply struct {
	Impl  string `json:"impl"`
	Steps int    `json:"steps"`
	// 各时间步的进水流量
	Flows []float64 `json:"flows"`
}

// Hub 一个连接内的状态，所有修改都在 handleRequest 协程中串行执行
type Hub struct {
	conn *websocket.Conn
	env  *Env
	log  *log.Entry

	records map[model.Kind]*state.Record
	// load_series 之前为 nil
	series deque.Deque

	// request
	msg  chan model.Msg
	done chan struct{}
}

func NewHub(conn *websocket.Conn, env *Env) *Hub {
	return &Hub{
		conn: conn,
		env:  env,
		log:  env.Log.WithField("component", "hub"),
		records: map[model.Kind]*state.Record{
			model.Initial:  env.Initial.Clone(),
			model.Influent: env.Influent.Clone(),
		},
		msg:  make(chan model.Msg, 10),
		done: make(chan struct{}),
	}
}

func (h *Hub) close() {
	close(h.done)
}

func (h *Hub) handleRequest() {
	for {
		select {
		case msg := <-h.msg:
			reply := h.handle(msg)
			if err := h.conn.WriteJSON(&reply); err != nil {
				h.log.WithField("error", err).Warn("write failed")
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handle(msg model.Msg) model.Msg {
	var req request
	if msg.Content != "" {
		if err := json.Unmarshal([]byte(msg.Content), &req); err != nil {
			return errorMsg(fmt.Errorf("bad content: %w", err))
		}
	}
	h.log.WithFields(log.Fields{
		"type": msg.Type,
		"kind": req.Kind,
	}).Debug("request")

	var (
		replyType string
		content   interface{}
		err       error
	)
	switch msg.Type {
	case typeLoad:
		replyType, content, err = typeLoaded, nil, h.load(req)
	case typeSave:
		replyType, content, err = typeSaved, nil, h.save(req)
	case typeGet:
		replyType = typeValue
		content, err = h.get(req)
	case typeSet:
		replyType = typeValue
		content, err = h.set(req)
	case typeExport:
		replyType = typeExported
	case typeImport:
		replyType, err = typeImported, h.importLine(req)
	case typeReset:
		replyType, err = typeExported, h.reset(req)
	case typeLoadSeries:
		replyType = typeSeriesLoaded
		content, err = h.loadSeries(req)
	case typeNextInfluent:
		replyType = typeInfluent
		content, err = h.nextInfluent()
	case typePeekSeries:
		replyType = typeInfluent
		content, err = h.peekSeries(req)
	case typeRewind:
		replyType = typeSeriesLoaded
		content, err = h.rewind()
	case typeDropLast:
		replyType = typeSeriesLoaded
		content, err = h.dropLast()
	default:
		h.log.WithField("type", msg.Type).Warn("no such type")
		return errorMsg(fmt.Errorf("no such type %q", msg.Type))
	}
	if err != nil {
		h.log.WithFields(log.Fields{
			"type":  msg.Type,
			"error": err,
		}).Warn("request failed")
		return errorMsg(err)
	}
	if content == nil {
		content, err = h.export(req)
		if err != nil {
			return errorMsg(err)
		}
	}
	data, err := json.Marshal(content)
	if err != nil {
		return errorMsg(err)
	}
	return model.Msg{
		Type:    replyType,
		Content: string(data),
	}
}

func errorMsg(err error) model.Msg {
	return model.Msg{
		Type:    typeError,
		Content: err.Error(),
	}
}

func (h *Hub) record(kindName string) (model.Kind, *state.Record, error) {
	kind, ok := model.ParseKind(kindName)
	if !ok {
		return 0, nil, fmt.Errorf("%w: %q", errUnknownKind, kindName)
	}
	return kind, h.records[kind], nil
}

func (h *Hub) file(name string) (string, error) {
	path, ok := h.env.resolve(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", errBadFile, name)
	}
	return path, nil
}

func (h *Hub) load(req request) error {
	kind, _, err := h.record(req.Kind)
	if err != nil {
		return err
	}
	path, err := h.file(req.File)
	if err != nil {
		return err
	}
	r, err := h.env.Codec.ReadFile(path, kind)
	if err != nil {
		return err
	}
	h.records[kind] = r
	return nil
}

func (h *Hub) save(req request) error {
	_, r, err := h.record(req.Kind)
	if err != nil {
		return err
	}
	path, err := h.file(req.File)
	if err != nil {
		return err
	}
	return h.env.Codec.WriteFile(path, r)
}

func (h *Hub) get(req request) (interface{}, error) {
	_, r, err := h.record(req.Kind)
	if err != nil {
		return nil, err
	}
	v, err := r.Get(req.Field)
	if err != nil {
		return nil, err
	}
	return valueReply{Kind: req.Kind, Field: req.Field, Value: v}, nil
}

func (h *Hub) set(req request) (interface{}, error) {
	_, r, err := h.record(req.Kind)
	if err != nil {
		return nil, err
	}
	if err = r.Set(req.Field, req.Value); err != nil {
		return nil, err
	}
	return valueReply{Kind: req.Kind, Field: req.Field, Value: req.Value}, nil
}

func (h *Hub) export(req request) (interface{}, error) {
	kind, r, err := h.record(req.Kind)
	if err != nil {
		return nil, err
	}
	return h.recordReply(kind, r), nil
}

func (h *Hub) recordReply(kind model.Kind, r *state.Record) recordReply {
	return recordReply{
		Kind:   kind.String(),
		Fields: model.FieldNames(kind),
		Values: r.ToArray(),
		Line:   h.env.Codec.WriteLine(r),
	}
}

func (h *Hub) importLine(req request) error {
	kind, _, err := h.record(req.Kind)
	if err != nil {
		return err
	}
	r, err := h.env.Codec.ReadLine(kind, req.Line)
	if err != nil {
		return err
	}
	h.records[kind] = r
	return nil
}

func (h *Hub) reset(req request) error {
	kind, _, err := h.record(req.Kind)
	if err != nil {
		return err
	}
	h.records[kind] = state.New(kind)
	return nil
}

func (h *Hub) loadSeries(req request) (interface{}, error) {
	path, err := h.file(req.File)
	if err != nil {
		return nil, err
	}
	series, err := h.env.Codec.ReadSeries(path, h.env.SeriesImpl, h.env.SeriesCapacity)
	if err != nil {
		return nil, err
	}
	h.series = series
	return h.seriesReply(), nil
}

func (h *Hub) seriesReply() seriesReply {
	reply := seriesReply{Impl: h.env.SeriesImpl, Flows: []float64{}}
	if h.series == nil {
		return reply
	}
	reply.Steps = h.series.Size()
	h.series.Traverse(func(i int, r *state.Record) {
		reply.Flows = append(reply.Flows, r.FlowRate())
	})
	return reply
}

func (h *Hub) hasSeries() bool {
	return h.series != nil && !h.series.IsEmpty()
}

// nextInfluent 取出下一个时间步的进水，并接收消化池的温度和离子平衡组分
func (h *Hub) nextInfluent() (interface{}, error) {
	if !h.hasSeries() {
		return nil, errNoSeries
	}
	next := h.series.RemoveFirst()
	state.Handoff(h.records[model.Initial], next)
	h.records[model.Influent] = next

	reply := h.recordReply(model.Influent, next)
	reply.Remaining = h.series.Size()
	return reply, nil
}

// peekSeries 查看第 step 个待处理的进水，不出队
func (h *Hub) peekSeries(req request) (interface{}, error) {
	if !h.hasSeries() {
		return nil, errNoSeries
	}
	if req.Step < 0 || req.Step >= h.series.Size() {
		return nil, fmt.Errorf("%w: %d of %d", errStep, req.Step, h.series.Size())
	}
	r := h.series.First()
	if req.Step > 0 {
		r = h.series.Get(req.Step)
	}
	reply := h.recordReply(model.Influent, r)
	reply.Remaining = h.series.Size()
	return reply, nil
}

// rewind 把当前进水放回队首，下一次 next_influent 重新处理该时间步
func (h *Hub) rewind() (interface{}, error) {
	if h.series == nil {
		return nil, errNoSeries
	}
	if !h.series.AddFirst(h.records[model.Influent].Clone()) {
		return nil, fmt.Errorf("%w: capacity %d", errSeriesFull, h.series.Capacity())
	}
	return h.seriesReply(), nil
}

// dropLast 丢弃序列中最后一个时间步
func (h *Hub) dropLast() (interface{}, error) {
	if !h.hasSeries() {
		return nil, errNoSeries
	}
	h.series.RemoveLast()
	return h.seriesReply(), nil
}
