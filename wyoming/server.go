package wyoming

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// Handler 处理单个连接上的事件序列
// HandleEvent 返回 false 时关闭当前连接
type Handler interface {
	HandleEvent(e Event) (bool, error)
}

// HandlerFactory 为每个连接创建独立的 Handler
type HandlerFactory func(w *Writer, remoteAddr string) Handler

// Server Wyoming 事件服务端，每个连接一个协程
type Server struct {
	factory HandlerFactory
	ln      net.Listener

	network string
	address string

	mu      sync.Mutex
	conns   map[net.Conn]struct{}
	closing bool
}

// ParseURI 解析 tcp:// 或 unix:// 形式的监听地址
func ParseURI(uri string) (network, address string, err error) {
	switch {
	case strings.HasPrefix(uri, "tcp://"):
		return "tcp", strings.TrimPrefix(uri, "tcp://"), nil
	case strings.HasPrefix(uri, "unix://"):
		return "unix", strings.TrimPrefix(uri, "unix://"), nil
	default:
		return "", "", fmt.Errorf("不支持的监听地址: %s (需要 tcp:// 或 unix://)", uri)
	}
}

// NewServer 创建服务端并开始监听
func NewServer(uri string, factory HandlerFactory) (*Server, error) {
	network, address, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}

	if network == "unix" {
		// 清理上次退出遗留的 socket 文件
		_ = os.Remove(address)
	}

	ln, err := net.Listen(network, address)
	if err != nil {
		return nil, fmt.Errorf("监听 %s 失败: %w", uri, err)
	}

	return &Server{
		factory: factory,
		ln:      ln,
		network: network,
		address: address,
		conns:   make(map[net.Conn]struct{}),
	}, nil
}

// Addr 返回实际监听地址
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Serve 运行接收循环，直到 ctx 取消或监听器出错
// ctx 取消时关闭监听器与全部活动连接，等连接协程收尾后返回
func (s *Server) Serve(ctx context.Context) error {
	var wg sync.WaitGroup

	go func() {
		<-ctx.Done()
		_ = s.ln.Close()
		s.closeConns()
	}()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			wg.Wait()
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("接收连接失败: %w", err)
		}

		if !s.track(conn) {
			_ = conn.Close()
			continue
		}

		wg.Add(1)
		go func(conn net.Conn) {
			defer wg.Done()
			defer s.untrack(conn)
			s.serveConn(conn)
		}(conn)
	}
}

// track 登记活动连接，服务已进入关闭流程时拒绝
func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

// untrack 关闭连接并从登记表移除
func (s *Server) untrack(conn net.Conn) {
	_ = conn.Close()
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

// closeConns 关闭全部活动连接，让阻塞在读取上的协程退出
func (s *Server) closeConns() {
	s.mu.Lock()
	s.closing = true
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.Unlock()
}

// serveConn 单个连接的事件循环
func (s *Server) serveConn(conn net.Conn) {
	remote := conn.RemoteAddr().String()
	log.Debug().Str("remote", remote).Msg("客户端已连接")

	reader := NewReader(conn)
	writer := NewWriter(conn)
	handler := s.factory(writer, remote)

	for {
		event, err := reader.ReadEvent()
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				log.Warn().Str("remote", remote).Err(err).Msg("读取事件失败")
			}
			break
		}

		keep, err := handler.HandleEvent(event)
		if err != nil {
			log.Error().Str("remote", remote).Str("type", event.Type).Err(err).Msg("事件处理失败")
			break
		}
		if !keep {
			break
		}
	}

	log.Debug().Str("remote", remote).Msg("客户端已断开")
}
