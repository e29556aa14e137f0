package wyoming

import (
	"encoding/json"
	"fmt"
)

// AudioStart 音频流开始，声明采样参数
type AudioStart struct {
	Rate     int `json:"rate"`
	Width    int `json:"width"`
	Channels int `json:"channels"`
}

// Event 转换为线上事件
func (a AudioStart) Event() Event {
	return Event{Type: TypeAudioStart, Data: mustMarshal(a)}
}

// AudioChunk 一段 PCM 音频，payload 为原始采样数据
type AudioChunk struct {
	Rate     int `json:"rate"`
	Width    int `json:"width"`
	Channels int `json:"channels"`

	Audio []byte `json:"-"`
}

// Event 转换为线上事件
func (a AudioChunk) Event() Event {
	return Event{
		Type: TypeAudioChunk,
		Data: mustMarshal(struct {
			Rate     int `json:"rate"`
			Width    int `json:"width"`
			Channels int `json:"channels"`
		}{a.Rate, a.Width, a.Channels}),
		Payload: a.Audio,
	}
}

// AudioChunkFromEvent 从事件还原音频段
func AudioChunkFromEvent(e Event) (AudioChunk, error) {
	var a AudioChunk
	if len(e.Data) > 0 {
		if err := json.Unmarshal(e.Data, &a); err != nil {
			return a, fmt.Errorf("audio-chunk 事件解析失败: %w", err)
		}
	}
	a.Audio = e.Payload
	return a, nil
}

// AudioStop 音频流结束
type AudioStop struct{}

// Event 转换为线上事件
func (AudioStop) Event() Event {
	return Event{Type: TypeAudioStop}
}
