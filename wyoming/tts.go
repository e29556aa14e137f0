package wyoming

import (
	"encoding/json"
	"fmt"
)

// SynthesizeVoice 合成请求中指定的音色
type SynthesizeVoice struct {
	Name     string `json:"name,omitempty"`
	Language string `json:"language,omitempty"`
	Speaker  string `json:"speaker,omitempty"`
}

// Synthesize 整段文本的合成请求 (非流式)
type Synthesize struct {
	Text  string           `json:"text"`
	Voice *SynthesizeVoice `json:"voice,omitempty"`
}

// Event 转换为线上事件
func (s Synthesize) Event() Event {
	return Event{Type: TypeSynthesize, Data: mustMarshal(s)}
}

// SynthesizeFromEvent 从事件还原合成请求
func SynthesizeFromEvent(e Event) (Synthesize, error) {
	var s Synthesize
	if len(e.Data) > 0 {
		if err := json.Unmarshal(e.Data, &s); err != nil {
			return s, fmt.Errorf("synthesize 事件解析失败: %w", err)
		}
	}
	return s, nil
}

// SynthesizeStart 文本流开始
type SynthesizeStart struct {
	Voice *SynthesizeVoice `json:"voice,omitempty"`
}

// Event 转换为线上事件
func (s SynthesizeStart) Event() Event {
	return Event{Type: TypeSynthesizeStart, Data: mustMarshal(s)}
}

// SynthesizeStartFromEvent 从事件还原流开始请求
func SynthesizeStartFromEvent(e Event) (SynthesizeStart, error) {
	var s SynthesizeStart
	if len(e.Data) > 0 {
		if err := json.Unmarshal(e.Data, &s); err != nil {
			return s, fmt.Errorf("synthesize-start 事件解析失败: %w", err)
		}
	}
	return s, nil
}

// SynthesizeChunk 文本流中的一段文本
type SynthesizeChunk struct {
	Text string `json:"text"`
}

// Event 转换为线上事件
func (s SynthesizeChunk) Event() Event {
	return Event{Type: TypeSynthesizeChunk, Data: mustMarshal(s)}
}

// SynthesizeChunkFromEvent 从事件还原文本段
func SynthesizeChunkFromEvent(e Event) (SynthesizeChunk, error) {
	var s SynthesizeChunk
	if len(e.Data) > 0 {
		if err := json.Unmarshal(e.Data, &s); err != nil {
			return s, fmt.Errorf("synthesize-chunk 事件解析失败: %w", err)
		}
	}
	return s, nil
}

// SynthesizeStop 文本流结束，要求服务端输出剩余音频
type SynthesizeStop struct{}

// Event 转换为线上事件
func (SynthesizeStop) Event() Event {
	return Event{Type: TypeSynthesizeStop}
}

// SynthesizeStopped 服务端确认流式合成全部完成
type SynthesizeStopped struct{}

// Event 转换为线上事件
func (SynthesizeStopped) Event() Event {
	return Event{Type: TypeSynthesizeStopped}
}
