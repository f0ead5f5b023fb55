package server

import (
	"context"
	"net"

	"layeh.com/radius"
)

// Server はRADIUSアカウンティング用UDPサーバーのラッパー
type Server struct {
	ps *radius.PacketServer
}

// NewServer は新しいServerを生成する
func NewServer(addr string, handler radius.Handler, secretSource radius.SecretSource) *Server {
	return &Server{
		ps: &radius.PacketServer{
			Addr:         addr,
			Network:      "udp",
			SecretSource: secretSource,
			Handler:      handler,
		},
	}
}

// ListenAndServe はUDPサーバーを起動する
func (s *Server) ListenAndServe() error {
	return s.ps.ListenAndServe()
}

// Serve は確保済みのコネクションで受信を開始する
func (s *Server) Serve(conn net.PacketConn) error {
	return s.ps.Serve(conn)
}

// Shutdown はサーバーをグレースフルに停止する。
// 処理中のリクエストの完了を待つ。
func (s *Server) Shutdown(ctx context.Context) error {
	return s.ps.Shutdown(ctx)
}
