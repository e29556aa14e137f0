package wyoming

import (
	"bytes"
	"strings"
	"testing"
)

func TestEventRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	chunk := AudioChunk{Rate: 24000, Width: 2, Channels: 1, Audio: []byte{1, 2, 3, 4}}
	if err := w.WriteEvent(chunk.Event()); err != nil {
		t.Fatalf("写出 audio-chunk 失败: %v", err)
	}
	if err := w.WriteEvent(AudioStop{}.Event()); err != nil {
		t.Fatalf("写出 audio-stop 失败: %v", err)
	}

	r := NewReader(&buf)

	event, err := r.ReadEvent()
	if err != nil {
		t.Fatalf("读取事件失败: %v", err)
	}
	if !event.Is(TypeAudioChunk) {
		t.Fatalf("事件类型错误: %s", event.Type)
	}
	got, err := AudioChunkFromEvent(event)
	if err != nil {
		t.Fatalf("还原 audio-chunk 失败: %v", err)
	}
	if got.Rate != 24000 || got.Width != 2 || got.Channels != 1 {
		t.Fatalf("采样参数错误: %+v", got)
	}
	if !bytes.Equal(got.Audio, chunk.Audio) {
		t.Fatalf("payload 不一致: %v", got.Audio)
	}

	event, err = r.ReadEvent()
	if err != nil {
		t.Fatalf("读取事件失败: %v", err)
	}
	if !event.Is(TypeAudioStop) {
		t.Fatalf("事件类型错误: %s", event.Type)
	}
}

func TestReaderInlineData(t *testing.T) {
	raw := `{"type":"synthesize","data":{"text":"привет","voice":{"name":"baya"}}}` + "\n"

	r := NewReader(strings.NewReader(raw))
	event, err := r.ReadEvent()
	if err != nil {
		t.Fatalf("读取事件失败: %v", err)
	}

	synthesize, err := SynthesizeFromEvent(event)
	if err != nil {
		t.Fatalf("还原 synthesize 失败: %v", err)
	}
	if synthesize.Text != "привет" {
		t.Fatalf("文本错误: %s", synthesize.Text)
	}
	if synthesize.Voice == nil || synthesize.Voice.Name != "baya" {
		t.Fatalf("音色错误: %+v", synthesize.Voice)
	}
}

func TestReaderRejectsOversizedBody(t *testing.T) {
	raw := `{"type":"audio-chunk","payload_length":999999999999}` + "\n"

	r := NewReader(strings.NewReader(raw))
	if _, err := r.ReadEvent(); err == nil {
		t.Fatal("越界的 payload_length 未被拒绝")
	}
}

func TestReaderRejectsMissingType(t *testing.T) {
	raw := `{"data_length":0}` + "\n"

	r := NewReader(strings.NewReader(raw))
	if _, err := r.ReadEvent(); err == nil {
		t.Fatal("缺少 type 的事件头未被拒绝")
	}
}
