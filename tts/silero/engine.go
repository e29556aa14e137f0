// Package silero 封装 Silero v5.1 俄语 TTS 模型的 ONNX 推理与文本前端。
package silero

import (
	"fmt"
	"math"
	"sync"

	ort "github.com/getcharzp/onnxruntime_purego"
	"github.com/getcharzp/wyoming-silero"
	"github.com/up-zero/gotool/convertutil"
	"github.com/up-zero/gotool/mediautil"
)

// Engine 封装了 Silero 的 ONNX 运行时和相关资源
// 同一个会话不支持并发推理，内部用互斥锁串行化
type Engine struct {
	session    *ort.Session
	tokenMap   map[string]int64
	speakerIDs map[string]int64
	config     Config

	mu sync.Mutex
}

// NewEngine 初始化 Silero 引擎
// 模型文件不存在时按 ModelURL 下载到 DataDir
func NewEngine(cfg Config) (*Engine, error) {
	oc := new(speech.OnnxConfig)
	if err := convertutil.CopyProperties(cfg, oc); err != nil {
		return nil, fmt.Errorf("复制参数失败: %w", err)
	}
	// 初始化 ONNX
	if err := oc.New(); err != nil {
		return nil, err
	}

	// 准备模型文件 (本地缓存优先)
	modelPath, err := ensureModel(cfg)
	if err != nil {
		return nil, fmt.Errorf("准备模型文件失败: %w", err)
	}

	// 符号表: 默认内置俄语字符集，可用 TokenPath 覆盖
	tokenMap := defaultTokenMap()
	if cfg.TokenPath != "" {
		tokenMap, err = loadTokens(cfg.TokenPath)
		if err != nil {
			return nil, fmt.Errorf("加载符号表失败: %w", err)
		}
	}

	// 创建 ONNX 会话
	session, err := oc.OnnxEngine.NewSession(modelPath, oc.SessionOptions)
	if err != nil {
		return nil, fmt.Errorf("创建会话失败: %w", err)
	}

	speakerIDs := make(map[string]int64, len(Speakers))
	for i, name := range Speakers {
		speakerIDs[name] = int64(i)
	}

	return &Engine{
		session:    session,
		tokenMap:   tokenMap,
		speakerIDs: speakerIDs,
		config:     cfg,
	}, nil
}

// Synthesize 将文本转换为语音数据 (float32 PCM)
//
// # Params:
//
//	text: 需要转换的文本，内部会做俄语标准化
//	speaker: 说话人名称，未知时回退到 DefaultSpeaker
//	speed: 语速调节,数值越大越快,1.0为正常语速
//
// 标准化后文本为空时返回 (nil, nil)，表示无音频可合成
func (e *Engine) Synthesize(text string, speaker string, speed float32) ([]float32, error) {
	// 文本标准化
	normalizedText := NormalizeText(text)
	if normalizedText == "" {
		return nil, nil
	}

	// 文本转符号 ID
	inputIDs := symbolsToIDs(normalizedText, e.tokenMap)
	if len(inputIDs) <= 1 {
		return nil, fmt.Errorf("符号序列转换结果为空")
	}

	// 说话人解析
	sid, ok := e.speakerIDs[speaker]
	if !ok {
		sid = e.speakerIDs[DefaultSpeaker]
	}

	// 执行 ONNX 推理
	return e.runInference(inputIDs, sid, speed)
}

// SynthesizeToWav 将文本转换为 WAV 格式的字节流
//
// # Params:
//
//	text: 需要转换的文本
//	speaker: 说话人名称
//	speed: 语速调节,数值越大越快,1.0为正常语速
func (e *Engine) SynthesizeToWav(text string, speaker string, speed float32) ([]byte, error) {
	pcmData, err := e.Synthesize(text, speaker, speed)
	if err != nil {
		return nil, err
	}

	return mediautil.Float32ToWavBytes(pcmData, SampleRate, channels, bitsPerSample)
}

// Destroy 释放相关资源
func (e *Engine) Destroy() {
	if e.session != nil {
		e.session.Destroy()
	}
}

// runInference 推理
func (e *Engine) runInference(inputIDs []int64, sid int64, speed float32) ([]float32, error) {
	seqLength := int64(len(inputIDs))

	// input [1, seqLength]
	tInput, err := ort.NewTensor([]int64{1, seqLength}, inputIDs)
	if err != nil {
		return nil, fmt.Errorf("构建 input 失败: %w", err)
	}
	defer tInput.Destroy()

	// input_lengths [1] [seqLength]
	tInputLengths, err := ort.NewTensor([]int64{1}, []int64{seqLength})
	if err != nil {
		return nil, fmt.Errorf("构建 input_lengths 失败: %w", err)
	}
	defer tInputLengths.Destroy()

	// sid [1]
	tSid, err := ort.NewTensor([]int64{1}, []int64{sid})
	if err != nil {
		return nil, fmt.Errorf("构建 sid 失败: %w", err)
	}
	defer tSid.Destroy()

	// scales [3] [noise_scale, length_scale, noise_w]
	// 注意: length_scale 控制语速，值越大语速越慢，所以用 1.0/speed
	lengthScale := float32(1.0)
	if speed > 0 {
		lengthScale = 1.0 / speed
	}
	tScales, err := ort.NewTensor([]int64{3}, []float32{noiseScale, lengthScale, noiseScaleW})
	if err != nil {
		return nil, fmt.Errorf("构建 scales 失败: %w", err)
	}
	defer tScales.Destroy()

	inputValues := map[string]*ort.Value{
		"input":         tInput,
		"input_lengths": tInputLengths,
		"sid":           tSid,
		"scales":        tScales,
	}

	// 模型会话不可重入
	e.mu.Lock()
	outputValues, err := e.session.Run(inputValues)
	e.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("silero 推理失败: %w", err)
	}

	defer func() {
		for _, v := range outputValues {
			if v != nil {
				v.Destroy()
			}
		}
	}()

	outputValue := outputValues["output"]

	rawData, err := ort.GetTensorData[float32](outputValue)
	if err != nil {
		return nil, fmt.Errorf("读取输出数据失败: %w", err)
	}

	result := make([]float32, len(rawData))
	copy(result, rawData)
	return result, nil
}

// PCM16Bytes 将 float32 PCM 转换为 16 bit 小端字节流
func PCM16Bytes(pcm []float32) []byte {
	out := make([]byte, len(pcm)*SampleWidth)
	for i, sample := range pcm {
		if sample > 1.0 {
			sample = 1.0
		} else if sample < -1.0 {
			sample = -1.0
		}
		v := int16(math.Round(float64(sample) * 32767))
		out[i*2] = byte(v)
		out[i*2+1] = byte(v >> 8)
	}
	return out
}
