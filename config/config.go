package config

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"adm/deque"
)

const DefaultPath = "conf/config.ini"

type Config struct {
	Server Server
	Log    Log
	State  State
}

type Server struct {
	Addr            string
	ReadBufferSize  int
	WriteBufferSize int
}

type Log struct {
	Level  string
	Format string // text / json
}

// 状态文件，文件名均相对于 DataDir
type State struct {
	DataDir        string
	InitialFile    string
	InfluentFile   string
	SeriesCapacity int
	SeriesImpl     string // array / list
}

// Load 读取 ini 配置文件，缺失的键使用默认值
func Load(path string) (Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return Config{}, fmt.Errorf("配置文件读取错误，请检查文件路径 %s: %w", path, err)
	}
	return loadCfg(file), nil
}

func Default() Config {
	return loadCfg(ini.Empty())
}

func loadCfg(file *ini.File) Config {
	server := file.Section("server")
	logSection := file.Section("log")
	state := file.Section("state")
	return Config{
		Server: Server{
			Addr:            server.Key("Addr").MustString(":9000"),
			ReadBufferSize:  server.Key("ReadBufferSize").MustInt(1024),
			WriteBufferSize: server.Key("WriteBufferSize").MustInt(1024),
		},
		Log: Log{
			Level:  logSection.Key("Level").MustString("info"),
			Format: logSection.Key("Format").In("text", []string{"text", "json"}),
		},
		State: State{
			DataDir:        state.Key("DataDir").MustString("data"),
			InitialFile:    state.Key("InitialFile").String(),
			InfluentFile:   state.Key("InfluentFile").String(),
			SeriesCapacity: state.Key("SeriesCapacity").MustInt(4000),
			SeriesImpl:     state.Key("SeriesImpl").In(deque.ImplArray, []string{deque.ImplArray, deque.ImplList}),
		},
	}
}

// NewLogger 按配置构建 logrus 实例
func (c Config) NewLogger() (*log.Logger, error) {
	logger := log.New()
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", c.Log.Level, err)
	}
	logger.SetLevel(level)
	if c.Log.Format == "json" {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}
