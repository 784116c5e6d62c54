package main

import (
	"flag"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"adm/codec"
	"adm/config"
	"adm/model"
	"adm/server"
	"adm/state"
)

func main() {
	cfgPath := flag.String("config", config.DefaultPath, "ini 配置文件路径")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatal(err)
	}
	entry := log.NewEntry(logger)
	c := codec.New(entry)

	initial, err := loadRecord(entry, c, cfg.State.DataDir, cfg.State.InitialFile, model.Initial)
	if err != nil {
		entry.WithField("error", err).Fatal("load digester state failed")
	}
	influent, err := loadRecord(entry, c, cfg.State.DataDir, cfg.State.InfluentFile, model.Influent)
	if err != nil {
		entry.WithField("error", err).Fatal("load influent failed")
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  cfg.Server.ReadBufferSize,
		WriteBufferSize: cfg.Server.WriteBufferSize,
	}
	upgrader.CheckOrigin = func(r *http.Request) bool {
		return true
	}
	s := server.NewServer(cfg.Server.Addr, upgrader, &server.Env{
		Codec:          c,
		Log:            entry,
		DataDir:        cfg.State.DataDir,
		SeriesCapacity: cfg.State.SeriesCapacity,
		SeriesImpl:     cfg.State.SeriesImpl,
		Initial:        initial,
		Influent:       influent,
	})
	if err = s.Serve(); err != nil {
		entry.WithField("error", err).Fatal("ListenAndServe")
	}
}

// 未配置文件或文件不存在时使用默认值
func loadRecord(entry *log.Entry, c *codec.Codec, dir, name string, kind model.Kind) (*state.Record, error) {
	if name == "" {
		return state.New(kind), nil
	}
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		entry.WithFields(log.Fields{
			"path": path,
			"kind": kind,
		}).Warn("state file not found, using defaults")
		return state.New(kind), nil
	}
	return c.ReadFile(path, kind)
}
