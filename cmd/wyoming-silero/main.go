// wyoming-silero 将 Silero v5.1 俄语 TTS 模型以 Wyoming 协议对外提供服务。
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/up-zero/gotool/fileutil"

	"github.com/getcharzp/wyoming-silero/tts/silero"
	"github.com/getcharzp/wyoming-silero/wyoming"
)

// EngineFlags 引擎相关的公共参数
type EngineFlags struct {
	OnnxLib        string `name:"onnx-lib" help:"onnxruntime 动态库路径，默认按操作系统推断"`
	Model          string `name:"model" help:"Silero ONNX 模型路径，为空时下载到缓存目录" type:"path"`
	ModelURL       string `name:"model-url" help:"模型下载地址" default:"${model_url}"`
	Tokens         string `name:"tokens" help:"符号表路径 (可选，覆盖内置俄语符号表)" type:"path"`
	DataDir        string `name:"data-dir" help:"模型缓存目录" env:"WYOMING_SILERO_DATA_DIR" default:"."`
	Threads        int    `name:"threads" help:"ONNX 线程数" default:"4"`
	DefaultSpeaker string `name:"default-speaker" help:"默认说话人" default:"xenia"`
}

// engineConfig 组装引擎配置
func (f EngineFlags) engineConfig() silero.Config {
	cfg := silero.DefaultConfig()
	if f.OnnxLib != "" {
		cfg.OnnxRuntimeLibPath = f.OnnxLib
	}
	cfg.ModelPath = f.Model
	cfg.ModelURL = f.ModelURL
	cfg.TokenPath = f.Tokens
	cfg.DataDir = f.DataDir
	cfg.NumThreads = f.Threads
	return cfg
}

// speaker 校验默认说话人，未知时回退
func (f EngineFlags) speaker() string {
	for _, name := range silero.Speakers {
		if name == f.DefaultSpeaker {
			return name
		}
	}
	log.Warn().Str("speaker", f.DefaultSpeaker).Strs("known", silero.Speakers).Msg("未知的默认说话人，回退到内置默认值")
	return silero.DefaultSpeaker
}

// RunCmd 启动 Wyoming 服务
type RunCmd struct {
	EngineFlags

	URI             string  `name:"uri" help:"监听地址，unix:// 或 tcp://" default:"tcp://0.0.0.0:10208"`
	SamplesPerChunk int     `name:"samples-per-chunk" help:"单个音频块的采样数" default:"1024"`
	SpeechRate      float32 `name:"speech-rate" help:"语速,数值越大越快,1.0为正常语速" default:"1.0"`
	NoStreaming     bool    `name:"no-streaming" help:"关闭按句子边界的流式合成"`
	Voices          string  `name:"voices" help:"音色表 YAML 路径，覆盖内置说话人列表" type:"path"`
	MDNS            bool    `name:"mdns" help:"通过 mDNS 广播服务"`
	MDNSName        string  `name:"mdns-name" help:"mDNS 实例名" default:"wyoming-silero"`
}

// Run 执行 run 子命令
func (c *RunCmd) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info().Msg("启动 Silero TTS Wyoming 服务")

	engine, err := silero.NewEngine(c.engineConfig())
	if err != nil {
		return err
	}
	defer engine.Destroy()

	catalog := defaultCatalog()
	if c.Voices != "" {
		catalog, err = loadCatalog(c.Voices)
		if err != nil {
			return err
		}
	}

	opts := handlerOptions{
		infoEvent:        catalog.Info(!c.NoStreaming).Event(),
		tts:              engine,
		voiceNames:       catalog.Names(),
		defaultSpeaker:   c.speaker(),
		speechRate:       c.SpeechRate,
		samplesPerChunk:  c.SamplesPerChunk,
		streamingEnabled: !c.NoStreaming,
	}

	server, err := wyoming.NewServer(c.URI, func(w *wyoming.Writer, remote string) wyoming.Handler {
		return newEventHandler(opts, w, log.With().Str("remote", remote).Logger())
	})
	if err != nil {
		return err
	}

	if c.MDNS {
		stop := startMDNS(c.MDNSName, server.Addr())
		defer stop()
	}

	log.Info().Str("uri", c.URI).Msg("服务就绪，开始监听")
	defer log.Info().Msg("服务已退出")
	return server.Serve(ctx)
}

// SayCmd 一次性合成: 文本转 WAV 文件后退出
type SayCmd struct {
	EngineFlags

	Text   string  `arg:"" help:"需要合成的文本"`
	Output string  `name:"output" short:"o" help:"输出 WAV 文件路径" default:"output.wav"`
	Speed  float32 `name:"speed" help:"语速,数值越大越快,1.0为正常语速" default:"1.0"`
}

// Run 执行 say 子命令
func (c *SayCmd) Run() error {
	engine, err := silero.NewEngine(c.engineConfig())
	if err != nil {
		return err
	}
	defer engine.Destroy()

	wavBytes, err := engine.SynthesizeToWav(c.Text, c.speaker(), c.Speed)
	if err != nil {
		return err
	}

	if err := fileutil.FileSave(c.Output, wavBytes); err != nil {
		return err
	}
	log.Info().Str("output", c.Output).Msg("合成完成")
	return nil
}

// CLI 命令行定义
var CLI struct {
	Debug    bool   `name:"debug" short:"d" help:"开启调试日志"`
	LogLevel string `name:"log-level" help:"日志级别" enum:"trace,debug,info,warn,error" default:"info"`

	Run RunCmd `cmd:"" default:"withargs" help:"启动 Wyoming TTS 服务"`
	Say SayCmd `cmd:"" help:"合成一段文本并保存为 WAV 文件"`
}

func main() {
	// 允许通过 .env 文件注入环境变量 (如 WYOMING_SILERO_DATA_DIR)
	for _, envFile := range []string{".env", "wyoming-silero.env"} {
		if _, err := os.Stat(envFile); err == nil {
			_ = godotenv.Load(envFile)
		}
	}

	ctx := kong.Parse(&CLI,
		kong.Name("wyoming-silero"),
		kong.Description("Silero v5.1 俄语 TTS 的 Wyoming 协议服务"),
		kong.UsageOnError(),
		kong.Vars{"model_url": silero.DefaultModelURL},
	)

	level, _ := zerolog.ParseLevel(CLI.LogLevel)
	if CLI.Debug {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	if err := ctx.Run(); err != nil {
		log.Fatal().Err(err).Msg("运行失败")
	}
}
