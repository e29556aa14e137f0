package speech

import (
	"fmt"
	"runtime"

	ort "github.com/getcharzp/onnxruntime_purego"
)

// OnnxConfig ONNX 运行时的公共配置
// 各引擎通过 convertutil.CopyProperties 将自身 Config 映射到这里
type OnnxConfig struct {
	// OnnxRuntimeLibPath onnxruntime 动态库路径，为空时使用 DefaultLibraryPath
	OnnxRuntimeLibPath string
	// UseCuda 是否启用 CUDA
	UseCuda bool
	// NumThreads ONNX 线程数, 默认由CPU核心数决定
	NumThreads int
	// EnableCpuMemArena 是否启用内存池
	EnableCpuMemArena bool

	// OnnxEngine 初始化完成后的运行时句柄
	OnnxEngine *ort.Engine
	// SessionOptions 会话选项，创建会话时传入
	SessionOptions *ort.SessionOptions
}

// New 加载 onnxruntime 动态库并准备会话选项
func (c *OnnxConfig) New() error {
	libPath := c.OnnxRuntimeLibPath
	if libPath == "" {
		libPath = DefaultLibraryPath()
	}

	engine, err := ort.NewEngine(libPath)
	if err != nil {
		return fmt.Errorf("加载 ONNX Runtime 动态库失败: %w", err)
	}

	opts, err := engine.NewSessionOptions()
	if err != nil {
		return fmt.Errorf("创建 SessionOptions 失败: %w", err)
	}
	if c.NumThreads > 0 {
		opts.SetIntraOpNumThreads(int32(c.NumThreads))
	}
	if c.EnableCpuMemArena {
		opts.SetCpuMemArena(true)
	}
	if c.UseCuda {
		if err := opts.EnableCUDA(); err != nil {
			return fmt.Errorf("启用 CUDA 失败: %w", err)
		}
	}

	c.OnnxEngine = engine
	c.SessionOptions = opts
	return nil
}

// DefaultLibraryPath 按操作系统返回默认的动态库路径
func DefaultLibraryPath() string {
	switch runtime.GOOS {
	case "windows":
		return "./lib/onnxruntime.dll"
	case "darwin":
		return "./lib/libonnxruntime.dylib"
	default:
		return "./lib/libonnxruntime.so"
	}
}
