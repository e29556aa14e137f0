package main

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/getcharzp/wyoming-silero/tts/sentence"
	"github.com/getcharzp/wyoming-silero/tts/silero"
	"github.com/getcharzp/wyoming-silero/wyoming"
)

// Synthesizer 事件处理器依赖的合成接口，便于在测试中替换引擎
type Synthesizer interface {
	Synthesize(text string, speaker string, speed float32) ([]float32, error)
}

// handlerOptions 所有连接共享的处理器参数
type handlerOptions struct {
	infoEvent        wyoming.Event
	tts              Synthesizer
	voiceNames       map[string]bool
	defaultSpeaker   string
	speechRate       float32
	samplesPerChunk  int
	streamingEnabled bool
}

// eventHandler 单个连接上的 Wyoming 事件处理器
type eventHandler struct {
	handlerOptions
	writer *wyoming.Writer
	log    zerolog.Logger

	// 流式合成的连接级状态
	streaming   bool
	sbd         *sentence.Detector
	streamVoice *wyoming.SynthesizeVoice
}

// newEventHandler 为一个连接创建处理器
func newEventHandler(opts handlerOptions, w *wyoming.Writer, logger zerolog.Logger) *eventHandler {
	return &eventHandler{
		handlerOptions: opts,
		writer:         w,
		log:            logger,
	}
}

// HandleEvent 处理一个事件，返回 false 时断开连接
func (h *eventHandler) HandleEvent(e wyoming.Event) (bool, error) {
	if e.Is(wyoming.TypeDescribe) {
		if err := h.writer.WriteEvent(h.infoEvent); err != nil {
			return false, err
		}
		return true, nil
	}

	var err error
	switch e.Type {
	case wyoming.TypeSynthesize:
		err = h.handleLegacySynthesize(e)
	case wyoming.TypeSynthesizeStart:
		err = h.handleStreamStart(e)
	case wyoming.TypeSynthesizeChunk:
		err = h.handleStreamChunk(e)
	case wyoming.TypeSynthesizeStop:
		err = h.handleStreamStop()
	default:
		// 未知事件直接放过
		return true, nil
	}

	if err != nil {
		h.log.Error().Str("type", e.Type).Err(err).Msg("事件处理失败")
		_ = h.writer.WriteEvent(wyoming.Error{Text: err.Error(), Code: "SynthesisError"}.Event())
		h.resetStream()
		return false, nil
	}
	return true, nil
}

// handleLegacySynthesize 整段文本合成 (非流式)
// 流式进行中忽略该事件，避免同一段文本发两遍声音
func (h *eventHandler) handleLegacySynthesize(e wyoming.Event) error {
	if h.streaming {
		h.log.Debug().Msg("流式合成进行中，忽略整段 synthesize 事件")
		return nil
	}

	synthesize, err := wyoming.SynthesizeFromEvent(e)
	if err != nil {
		return err
	}
	return h.synthesize(synthesize.Text, synthesize.Voice)
}

// handleStreamStart 文本流开始
func (h *eventHandler) handleStreamStart(e wyoming.Event) error {
	if !h.streamingEnabled {
		h.log.Debug().Msg("流式合成已关闭，忽略 synthesize-start")
		return nil
	}

	start, err := wyoming.SynthesizeStartFromEvent(e)
	if err != nil {
		return err
	}

	h.streaming = true
	h.sbd = sentence.NewDetector()
	h.streamVoice = start.Voice
	h.log.Debug().Msg("文本流已开始")
	return nil
}

// handleStreamChunk 文本流中的一段文本，按句子边界触发合成
func (h *eventHandler) handleStreamChunk(e wyoming.Event) error {
	if !h.streaming {
		return nil
	}

	chunk, err := wyoming.SynthesizeChunkFromEvent(e)
	if err != nil {
		return err
	}

	for _, sent := range h.sbd.AddChunk(chunk.Text) {
		h.log.Debug().Str("sentence", sent).Msg("合成流式句子")
		if err := h.synthesize(sent, h.streamVoice); err != nil {
			return err
		}
	}
	return nil
}

// handleStreamStop 文本流结束，冲刷缓冲并确认完成
func (h *eventHandler) handleStreamStop() error {
	if !h.streaming {
		return nil
	}

	if final := h.sbd.Finish(); final != "" {
		if err := h.synthesize(final, h.streamVoice); err != nil {
			return err
		}
	}

	if err := h.writer.WriteEvent(wyoming.SynthesizeStopped{}.Event()); err != nil {
		return err
	}
	h.resetStream()
	h.log.Debug().Msg("文本流已结束")
	return nil
}

// synthesize 调用引擎合成并把音频按块发给客户端
func (h *eventHandler) synthesize(text string, voice *wyoming.SynthesizeVoice) error {
	if text == "" {
		return nil
	}

	speaker := h.defaultSpeaker
	if voice != nil && h.voiceNames[voice.Name] {
		speaker = voice.Name
	}

	// 多行文本合并为一行
	text = strings.Join(strings.Split(strings.TrimSpace(text), "\n"), " ")

	pcm, err := h.tts.Synthesize(text, speaker, h.speechRate)
	if err != nil {
		return err
	}
	if len(pcm) == 0 {
		return nil
	}
	audio := silero.PCM16Bytes(pcm)

	err = h.writer.WriteEvent(wyoming.AudioStart{
		Rate:     silero.SampleRate,
		Width:    silero.SampleWidth,
		Channels: 1,
	}.Event())
	if err != nil {
		return err
	}

	bytesPerChunk := silero.SampleWidth * h.samplesPerChunk
	for start := 0; start < len(audio); start += bytesPerChunk {
		end := start + bytesPerChunk
		if end > len(audio) {
			end = len(audio)
		}
		err = h.writer.WriteEvent(wyoming.AudioChunk{
			Rate:     silero.SampleRate,
			Width:    silero.SampleWidth,
			Channels: 1,
			Audio:    audio[start:end],
		}.Event())
		if err != nil {
			return err
		}
	}

	return h.writer.WriteEvent(wyoming.AudioStop{}.Event())
}

// resetStream 清理流式状态
func (h *eventHandler) resetStream() {
	h.streaming = false
	h.sbd = nil
	h.streamVoice = nil
}
