package wyoming

import (
	"context"
	"net"
	"testing"
	"time"
)

// describeHandler 只应答 describe 的测试处理器
type describeHandler struct {
	w    *Writer
	info Event
}

func (h *describeHandler) HandleEvent(e Event) (bool, error) {
	if e.Is(TypeDescribe) {
		if err := h.w.WriteEvent(h.info); err != nil {
			return false, err
		}
	}
	return true, nil
}

func TestServerDescribe(t *testing.T) {
	info := Info{
		Tts: []TtsProgram{{
			Name:    "test-tts",
			Voices:  []TtsVoice{{Name: "xenia", Languages: []string{"ru-RU"}}},
			Version: "1.0",
		}},
	}.Event()

	server, err := NewServer("tcp://127.0.0.1:0", func(w *Writer, remote string) Handler {
		return &describeHandler{w: w, info: info}
	})
	if err != nil {
		t.Fatalf("创建服务失败: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx) }()

	conn, err := net.Dial("tcp", server.Addr().String())
	if err != nil {
		t.Fatalf("连接服务失败: %v", err)
	}
	defer conn.Close()

	if err := NewWriter(conn).WriteEvent(Describe{}.Event()); err != nil {
		t.Fatalf("发送 describe 失败: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	event, err := NewReader(conn).ReadEvent()
	if err != nil {
		t.Fatalf("读取应答失败: %v", err)
	}
	if !event.Is(TypeInfo) {
		t.Fatalf("应答类型错误: %s", event.Type)
	}

	got, err := InfoFromEvent(event)
	if err != nil {
		t.Fatalf("还原 info 失败: %v", err)
	}
	if len(got.Tts) != 1 || got.Tts[0].Name != "test-tts" {
		t.Fatalf("服务描述错误: %+v", got)
	}

	// Serve 会等待连接协程收尾，先断开客户端
	conn.Close()
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("服务退出异常: %v", err)
	}
}

func TestServerShutdownClosesConnections(t *testing.T) {
	server, err := NewServer("tcp://127.0.0.1:0", func(w *Writer, remote string) Handler {
		return &describeHandler{w: w, info: Info{}.Event()}
	})
	if err != nil {
		t.Fatalf("创建服务失败: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx) }()

	conn, err := net.Dial("tcp", server.Addr().String())
	if err != nil {
		t.Fatalf("连接服务失败: %v", err)
	}
	defer conn.Close()

	// 先完成一次往返，确保连接协程已在读事件
	if err := NewWriter(conn).WriteEvent(Describe{}.Event()); err != nil {
		t.Fatalf("发送 describe 失败: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, err := NewReader(conn).ReadEvent(); err != nil {
		t.Fatalf("读取应答失败: %v", err)
	}

	// 客户端保持连接，取消后服务端应主动关闭连接并退出
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("服务退出异常: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ctx 取消后 Serve 未返回")
	}

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	if _, err := NewReader(conn).ReadEvent(); err == nil {
		t.Fatal("活动连接未被服务端关闭")
	}
}

func TestParseURI(t *testing.T) {
	network, address, err := ParseURI("tcp://0.0.0.0:10208")
	if err != nil || network != "tcp" || address != "0.0.0.0:10208" {
		t.Fatalf("tcp 地址解析错误: %s %s %v", network, address, err)
	}

	network, address, err = ParseURI("unix:///tmp/tts.sock")
	if err != nil || network != "unix" || address != "/tmp/tts.sock" {
		t.Fatalf("unix 地址解析错误: %s %s %v", network, address, err)
	}

	if _, _, err := ParseURI("http://127.0.0.1"); err == nil {
		t.Fatal("非法地址未被拒绝")
	}
}
