package server

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"adm/codec"
	"adm/deque"
	"adm/model"
	"adm/state"
)

// Env 每个连接共享的只读环境
type Env struct {
	Codec          *codec.Codec
	Log            *log.Entry
	DataDir        string
	SeriesCapacity int
	SeriesImpl     string

	// 新连接的起始状态，连接内使用副本
	Initial  *state.Record
	Influent *state.Record
}

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	env      *Env
}

func NewServer(addr string, upgrader websocket.Upgrader, env *Env) *Server {
	if env.Log == nil {
		env.Log = log.NewEntry(log.New())
	}
	if env.Codec == nil {
		env.Codec = codec.New(env.Log)
	}
	if env.SeriesImpl == "" {
		env.SeriesImpl = deque.ImplArray
	}
	if env.Initial == nil {
		env.Initial = state.NewInitial()
	}
	if env.Influent == nil {
		env.Influent = state.NewInfluent()
	}
	return &Server{
		addr:     addr,
		upgrader: upgrader,
		env:      env,
	}
}

// resolve 把客户端给出的文件名限制在 DataDir 内
func (e *Env) resolve(name string) (string, bool) {
	if name == "" || strings.ContainsRune(name, 0) {
		return "", false
	}
	clean := filepath.Clean("/" + filepath.ToSlash(name))
	return filepath.Join(e.DataDir, filepath.FromSlash(clean)), true
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.env.Log.WithField("error", err).Warn("upgrade failed")
		return
	}
	defer conn.Close()

	hub := NewHub(conn, s.env)
	go hub.handleRequest()
	defer hub.close()

	var msg model.Msg
	for {
		msg = model.Msg{}
		if err = conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.env.Log.WithField("error", err).Warn("read failed")
			}
			return
		}
		hub.msg <- msg
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

func (s *Server) Serve() error {
	s.env.Log.WithField("addr", s.addr).Info("state service listening")
	return http.ListenAndServe(s.addr, s.Handler())
}
