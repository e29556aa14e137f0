package silero

import "github.com/getcharzp/wyoming-silero"

const (
	// SampleRate 采样率，v5.1 俄语模型固定为 24000
	SampleRate = 24000
	// channels 声道数
	channels = 1
	// bitsPerSample 采样位数
	bitsPerSample = 16
	// SampleWidth 单个采样的字节数 (16 bit)
	SampleWidth = bitsPerSample / 8
)

const (
	// DefaultSpeaker 默认说话人
	DefaultSpeaker = "xenia"
	// ModelLanguage 模型语言
	ModelLanguage = "ru-RU"
	// ModelVersion 模型版本
	ModelVersion = "5.1"
	// DefaultModelURL 模型下载地址
	DefaultModelURL = "https://models.silero.ai/models/tts/ru/v5_1_ru.onnx"
)

// Speakers v5.1 俄语模型内置的说话人，数组下标即 sid
var Speakers = []string{"aidar", "baya", "kseniya", "xenia", "eugene"}

// 推理超参，与原始 VITS 系模型保持一致
const (
	noiseScale  = float32(0.667)
	noiseScaleW = float32(0.8)
)

// Config 定义 Silero 引擎的配置参数
type Config struct {
	// 必填参数
	OnnxRuntimeLibPath string // onnxruntime.dll (或 .so, .dylib) 的路径
	ModelPath          string // ONNX 模型路径，为空时下载到 DataDir

	// 可选参数
	TokenPath         string // (可选) 符号表路径，覆盖内置的俄语符号表
	DataDir           string // (可选) 模型缓存目录，默认当前目录
	ModelURL          string // (可选) 模型下载地址，默认 DefaultModelURL
	UseCuda           bool   // (可选) 是否启用 CUDA
	NumThreads        int    // (可选) ONNX 线程数, 默认由CPU核心数决定
	EnableCpuMemArena bool   // (可选) 是否启用内存池
}

// DefaultConfig 返回一套默认的配置 (基于常见的目录结构)
func DefaultConfig() Config {
	return Config{
		OnnxRuntimeLibPath: speech.DefaultLibraryPath(),
		DataDir:            ".",
		ModelURL:           DefaultModelURL,
	}
}
