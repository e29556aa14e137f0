package wyoming

import (
	"encoding/json"
	"fmt"
)

// Describe 客户端请求服务能力描述
type Describe struct{}

// Event 转换为线上事件
func (Describe) Event() Event {
	return Event{Type: TypeDescribe}
}

// Attribution 模型或程序的出处信息
type Attribution struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// TtsVoice 服务暴露的单个音色
type TtsVoice struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Attribution Attribution `json:"attribution"`
	Installed   bool        `json:"installed"`
	Version     string      `json:"version"`
	Languages   []string    `json:"languages"`
}

// TtsProgram TTS 服务的自描述
type TtsProgram struct {
	Name                        string      `json:"name"`
	Description                 string      `json:"description"`
	Attribution                 Attribution `json:"attribution"`
	Installed                   bool        `json:"installed"`
	Version                     string      `json:"version"`
	Voices                      []TtsVoice  `json:"voices"`
	SupportsSynthesizeStreaming bool        `json:"supports_synthesize_streaming"`
}

// Info describe 的应答
type Info struct {
	Tts []TtsProgram `json:"tts,omitempty"`
}

// Event 转换为线上事件
func (i Info) Event() Event {
	return Event{Type: TypeInfo, Data: mustMarshal(i)}
}

// InfoFromEvent 从事件还原服务描述
func InfoFromEvent(e Event) (Info, error) {
	var i Info
	if len(e.Data) > 0 {
		if err := json.Unmarshal(e.Data, &i); err != nil {
			return i, fmt.Errorf("info 事件解析失败: %w", err)
		}
	}
	return i, nil
}

// Error 服务端错误通知
type Error struct {
	Text string `json:"text"`
	Code string `json:"code,omitempty"`
}

// Event 转换为线上事件
func (er Error) Event() Event {
	return Event{Type: TypeError, Data: mustMarshal(er)}
}
