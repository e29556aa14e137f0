package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/getcharzp/wyoming-silero/tts/silero"
	"github.com/getcharzp/wyoming-silero/wyoming"
)

const (
	programName        = "wyoming-silero"
	programDescription = "Wyoming server for Silero TTS"
	programVersion     = "1.0"
	attributionName    = "Silero"
	attributionURL     = "https://github.com/snakers4/silero-models"
)

// VoiceEntry 音色表中的一项
type VoiceEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Language    string `yaml:"language"`
	Version     string `yaml:"version"`
}

// VoiceCatalog 服务暴露的音色表，可通过 YAML 文件覆盖内置表
type VoiceCatalog struct {
	Voices []VoiceEntry `yaml:"voices"`
}

// defaultCatalog 按模型内置说话人生成音色表
func defaultCatalog() VoiceCatalog {
	catalog := VoiceCatalog{}
	for _, name := range silero.Speakers {
		catalog.Voices = append(catalog.Voices, VoiceEntry{
			Name:        name,
			Description: capitalize(name),
			Language:    silero.ModelLanguage,
			Version:     silero.ModelVersion,
		})
	}
	return catalog
}

// loadCatalog 从 YAML 文件加载音色表，缺省字段回填模型默认值
func loadCatalog(path string) (VoiceCatalog, error) {
	var catalog VoiceCatalog

	data, err := os.ReadFile(path)
	if err != nil {
		return catalog, err
	}
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return catalog, fmt.Errorf("解析音色表失败: %w", err)
	}
	if len(catalog.Voices) == 0 {
		return catalog, fmt.Errorf("音色表为空: %s", path)
	}

	for i := range catalog.Voices {
		if catalog.Voices[i].Description == "" {
			catalog.Voices[i].Description = capitalize(catalog.Voices[i].Name)
		}
		if catalog.Voices[i].Language == "" {
			catalog.Voices[i].Language = silero.ModelLanguage
		}
		if catalog.Voices[i].Version == "" {
			catalog.Voices[i].Version = silero.ModelVersion
		}
	}
	return catalog, nil
}

// Names 返回音色名集合，供合成请求解析
func (c VoiceCatalog) Names() map[string]bool {
	names := make(map[string]bool, len(c.Voices))
	for _, v := range c.Voices {
		names[v.Name] = true
	}
	return names
}

// Info 构建 describe 应答
func (c VoiceCatalog) Info(streaming bool) wyoming.Info {
	attribution := wyoming.Attribution{Name: attributionName, URL: attributionURL}

	voices := make([]wyoming.TtsVoice, 0, len(c.Voices))
	for _, v := range c.Voices {
		voices = append(voices, wyoming.TtsVoice{
			Name:        v.Name,
			Description: v.Description,
			Attribution: attribution,
			Installed:   true,
			Version:     v.Version,
			Languages:   []string{v.Language},
		})
	}

	return wyoming.Info{
		Tts: []wyoming.TtsProgram{{
			Name:                        programName,
			Description:                 programDescription,
			Attribution:                 attribution,
			Installed:                   true,
			Version:                     programVersion,
			Voices:                      voices,
			SupportsSynthesizeStreaming: streaming,
		}},
	}
}

// capitalize 首字母大写
func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
