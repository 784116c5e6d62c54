package codec

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"adm/deque"
	"adm/model"
	"adm/state"
)

// 单行最长长度，42 个 float64 远小于该值
const maxLineSize = 64 * 1024

var (
	ErrEmptyFile  = errors.New("codec: no data line")
	ErrSeriesFull = errors.New("codec: influent series exceeds capacity")
)

// 逐行读取非空行
func scanLines(path string, f func(lineNo int, line string) (bool, error)) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("codec: open %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		more, err := f(lineNo, line)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("codec: read %s: %w", path, err)
	}
	return nil
}

// ReadFile 读取文件中第一行数据
func (c *Codec) ReadFile(path string, kind model.Kind) (*state.Record, error) {
	var r *state.Record
	err := scanLines(path, func(lineNo int, line string) (bool, error) {
		var err error
		r, err = c.ReadLine(kind, line)
		if err != nil {
			return false, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	c.log.WithFields(log.Fields{
		"path": path,
		"kind": kind,
	}).Info("record loaded")
	return r, nil
}

// WriteFile 覆盖写入一行
func (c *Codec) WriteFile(path string, r *state.Record) error {
	line := c.WriteLine(r) + "\n"
	if err := os.WriteFile(path, []byte(line), 0644); err != nil {
		return fmt.Errorf("codec: write %s: %w", path, err)
	}
	c.log.WithFields(log.Fields{
		"path": path,
		"kind": r.Kind(),
	}).Info("record saved")
	return nil
}

// ReadSeries 每行一条进水记录，按时间步顺序放入队列，impl 为 deque.ImplArray 或 deque.ImplList
func (c *Codec) ReadSeries(path string, impl string, capacity int) (deque.Deque, error) {
	series, err := deque.New(impl, capacity)
	if err != nil {
		return nil, err
	}
	err = scanLines(path, func(lineNo int, line string) (bool, error) {
		r, err := c.ReadLine(model.Influent, line)
		if err != nil {
			return false, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		if !series.AddLast(r) {
			return false, fmt.Errorf("%w: %s:%d (capacity %d)", ErrSeriesFull, path, lineNo, series.Capacity())
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	c.log.WithFields(log.Fields{
		"path":  path,
		"impl":  impl,
		"steps": series.Size(),
	}).Info("influent series loaded")
	return series, nil
}
