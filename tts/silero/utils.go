package silero

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// loadTokens 加载符号表
//
// 数据格式: token id
func loadTokens(tokenPath string) (map[string]int64, error) {
	file, err := os.Open(tokenPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	m := make(map[string]int64)
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 2 {
			var id int64
			if _, err := fmt.Sscanf(parts[1], "%d", &id); err == nil {
				m[parts[0]] = id
			}
		}
	}
	return m, scanner.Err()
}

// ensureModel 返回模型文件路径，本地不存在时从 ModelURL 下载到缓存目录
func ensureModel(cfg Config) (string, error) {
	modelURL := cfg.ModelURL
	if modelURL == "" {
		modelURL = DefaultModelURL
	}

	localPath := cfg.ModelPath
	if localPath == "" {
		dataDir := cfg.DataDir
		if dataDir == "" {
			dataDir = "."
		}
		localPath = filepath.Join(dataDir, path.Base(modelURL))
	}

	if _, err := os.Stat(localPath); err == nil {
		log.Info().Str("model", localPath).Msg("使用缓存模型")
		return localPath, nil
	}

	log.Info().Str("url", modelURL).Str("model", localPath).Msg("下载模型")
	if err := downloadFile(modelURL, localPath); err != nil {
		return "", err
	}
	return localPath, nil
}

// downloadFile 流式下载到临时文件，完成后原子重命名
func downloadFile(url, localPath string) error {
	if dir := filepath.Dir(localPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建缓存目录失败: %w", err)
		}
	}

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("下载失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("下载失败: 服务端返回 %s", resp.Status)
	}

	tmpPath := localPath + ".part"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("写入模型文件失败: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, localPath)
}
