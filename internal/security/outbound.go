// Package security はアプリケーションのセキュリティ機能を提供する。
package security

import (
	"net/http"
	"time"

	"github.com/doyensec/safeurl"
)

// OutboundClientFactory は外部ファクトチェック提供元へのHTTPアクセスに使う
// クライアント生成のインターフェースを定義する。
// 全ソースアダプタが共通のクライアント生成経路を使用する。
type OutboundClientFactory interface {
	// NewSafeClient はSSRF防止機能付きのHTTPクライアントを生成する。
	// safeurlライブラリにより、プライベートIP、ループバック、リンクローカル、
	// メタデータIPへのリクエストが自動的にブロックされる。
	// DNS再バインディング攻撃への対策も有効化される。
	NewSafeClient(timeout time.Duration) *http.Client
}

// outboundGuard はOutboundClientFactoryの実装。
type outboundGuard struct{}

// NewOutboundGuard はOutboundClientFactoryの新しいインスタンスを生成する。
func NewOutboundGuard() *outboundGuard {
	return &outboundGuard{}
}

// NewSafeClient はSSRF防止機能付きのHTTPクライアントを生成する。
// アダプタのアクセス先は固定された公開提供元だが、リダイレクトや
// DNS設定の変化で内部ネットワークに到達しないようDialerレベルで検証する。
func (g *outboundGuard) NewSafeClient(timeout time.Duration) *http.Client {
	config := safeurl.GetConfigBuilder().
		SetTimeout(timeout).
		SetAllowedSchemes("http", "https").
		SetAllowedPorts(80, 443).
		Build()

	wrappedClient := safeurl.Client(config)
	return wrappedClient.Client
}
