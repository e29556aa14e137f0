package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := defaultCatalog()
	if len(catalog.Voices) != 5 {
		t.Fatalf("内置音色数量错误: %d", len(catalog.Voices))
	}

	names := catalog.Names()
	for _, want := range []string{"aidar", "baya", "kseniya", "xenia", "eugene"} {
		if !names[want] {
			t.Fatalf("缺少内置音色: %s", want)
		}
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voices.yaml")
	content := `voices:
  - name: xenia
    description: Ксения
  - name: aidar
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	catalog, err := loadCatalog(path)
	if err != nil {
		t.Fatalf("加载音色表失败: %v", err)
	}
	if len(catalog.Voices) != 2 {
		t.Fatalf("音色数量错误: %d", len(catalog.Voices))
	}
	if catalog.Voices[0].Description != "Ксения" {
		t.Fatalf("描述被覆盖: %s", catalog.Voices[0].Description)
	}
	// 缺省字段回填默认值
	if catalog.Voices[1].Description != "Aidar" || catalog.Voices[1].Language != "ru-RU" {
		t.Fatalf("默认值未回填: %+v", catalog.Voices[1])
	}
}

func TestLoadCatalogEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voices.yaml")
	if err := os.WriteFile(path, []byte("voices: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadCatalog(path); err == nil {
		t.Fatal("空音色表应报错")
	}
}

func TestCatalogInfo(t *testing.T) {
	info := defaultCatalog().Info(false)
	if len(info.Tts) != 1 {
		t.Fatalf("服务描述错误: %+v", info)
	}
	prog := info.Tts[0]
	if prog.Name != "wyoming-silero" || !prog.Installed {
		t.Fatalf("程序信息错误: %+v", prog)
	}
	if prog.SupportsSynthesizeStreaming {
		t.Fatal("流式能力不应上报")
	}
	if len(prog.Voices) != 5 || prog.Voices[0].Languages[0] != "ru-RU" {
		t.Fatalf("音色信息错误: %+v", prog.Voices)
	}
}
