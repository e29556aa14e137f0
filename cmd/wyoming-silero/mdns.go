package main

import (
	"net"
	"strconv"

	"github.com/grandcat/zeroconf"
	"github.com/rs/zerolog/log"
)

const (
	mdnsService = "_wyoming._tcp"
	mdnsDomain  = "local."
)

// startMDNS 通过 mDNS 广播服务，便于 Home Assistant 自动发现
// 返回清理函数；仅 tcp 监听时有效
func startMDNS(name string, addr net.Addr) func() {
	tcpAddr, ok := addr.(*net.TCPAddr)
	if !ok {
		log.Warn().Msg("非 tcp 监听，跳过 mDNS 广播")
		return func() {}
	}

	txt := []string{
		"program=" + programName,
		"version=" + programVersion,
		"port=" + strconv.Itoa(tcpAddr.Port),
	}

	server, err := zeroconf.Register(name, mdnsService, mdnsDomain, tcpAddr.Port, txt, nil)
	if err != nil {
		log.Warn().Err(err).Msg("mDNS 注册失败")
		return func() {}
	}

	log.Info().Str("name", name).Str("service", mdnsService).Int("port", tcpAddr.Port).Msg("mDNS 已广播")
	return func() {
		server.Shutdown()
	}
}
