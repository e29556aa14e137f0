// Package wyoming 实现 Wyoming 语音助手协议的编解码与 TCP 服务端。
//
// 线上格式: 每个事件以一行 JSON 头开始
//
//	{"type": "...", "data_length": N, "payload_length": M}
//
// 头之后紧跟 N 字节的 JSON data 与 M 字节的二进制 payload。
package wyoming

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// 事件类型常量
const (
	TypeDescribe          = "describe"
	TypeInfo              = "info"
	TypeSynthesize        = "synthesize"
	TypeSynthesizeStart   = "synthesize-start"
	TypeSynthesizeChunk   = "synthesize-chunk"
	TypeSynthesizeStop    = "synthesize-stop"
	TypeSynthesizeStopped = "synthesize-stopped"
	TypeAudioStart        = "audio-start"
	TypeAudioChunk        = "audio-chunk"
	TypeAudioStop         = "audio-stop"
	TypeError             = "error"
)

const (
	// maxHeaderLen 单行事件头的长度上限
	maxHeaderLen = 1024 * 1024
	// maxBodyLen data 与 payload 各自的长度上限
	maxBodyLen = 64 * 1024 * 1024
)

// Event Wyoming 协议的基本事件单元
type Event struct {
	Type    string
	Data    json.RawMessage
	Payload []byte
}

// Is 判断事件类型
func (e Event) Is(eventType string) bool {
	return e.Type == eventType
}

// eventHeader 事件头的线上表示
// 旧版对端会把 data 内联在头里，读取时两种都要兼容
type eventHeader struct {
	Type          string          `json:"type"`
	Data          json.RawMessage `json:"data,omitempty"`
	DataLength    int             `json:"data_length,omitempty"`
	PayloadLength int             `json:"payload_length,omitempty"`
}

// Reader 从字节流中解析事件
type Reader struct {
	br *bufio.Reader
}

// NewReader 创建事件读取器
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, 64*1024)}
}

// ReadEvent 读取一个完整事件
func (r *Reader) ReadEvent() (Event, error) {
	line, err := r.readHeaderLine()
	if err != nil {
		return Event{}, err
	}

	var header eventHeader
	if err := json.Unmarshal(line, &header); err != nil {
		return Event{}, fmt.Errorf("事件头解析失败: %w", err)
	}
	if header.Type == "" {
		return Event{}, fmt.Errorf("事件头缺少 type 字段")
	}
	if header.DataLength < 0 || header.DataLength > maxBodyLen {
		return Event{}, fmt.Errorf("data_length 越界: %d", header.DataLength)
	}
	if header.PayloadLength < 0 || header.PayloadLength > maxBodyLen {
		return Event{}, fmt.Errorf("payload_length 越界: %d", header.PayloadLength)
	}

	event := Event{Type: header.Type, Data: header.Data}

	// data_length 优先于内联 data
	if header.DataLength > 0 {
		data := make([]byte, header.DataLength)
		if _, err := io.ReadFull(r.br, data); err != nil {
			return Event{}, fmt.Errorf("读取事件 data 失败: %w", err)
		}
		event.Data = data
	}
	if header.PayloadLength > 0 {
		payload := make([]byte, header.PayloadLength)
		if _, err := io.ReadFull(r.br, payload); err != nil {
			return Event{}, fmt.Errorf("读取事件 payload 失败: %w", err)
		}
		event.Payload = payload
	}

	return event, nil
}

// readHeaderLine 读取一行事件头，超长视为协议错误
func (r *Reader) readHeaderLine() ([]byte, error) {
	var line []byte
	for {
		part, isPrefix, err := r.br.ReadLine()
		if err != nil {
			return nil, err
		}
		line = append(line, part...)
		if len(line) > maxHeaderLen {
			return nil, fmt.Errorf("事件头超过 %d 字节", maxHeaderLen)
		}
		if !isPrefix {
			return line, nil
		}
	}
}

// Writer 向字节流写出事件，支持多协程并发调用
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter 创建事件写入器
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteEvent 写出一个完整事件
func (w *Writer) WriteEvent(event Event) error {
	header := eventHeader{
		Type:          event.Type,
		DataLength:    len(event.Data),
		PayloadLength: len(event.Payload),
	}
	line, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("事件头编码失败: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.w.Write(append(line, '\n')); err != nil {
		return err
	}
	if len(event.Data) > 0 {
		if _, err := w.w.Write(event.Data); err != nil {
			return err
		}
	}
	if len(event.Payload) > 0 {
		if _, err := w.w.Write(event.Payload); err != nil {
			return err
		}
	}
	return nil
}

// mustMarshal 序列化事件 data，仅用于字段全为基础类型的事件结构
func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("事件编码失败: %v", err))
	}
	return data
}
