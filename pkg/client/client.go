package client

import (
	"context"
	"net/http"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// ----------------------------------------------------------------------
// 定数とインターフェース
// ----------------------------------------------------------------------

const (
	// DefaultHTTPTimeout は、1回のGETリクエストに許す時間です。
	DefaultHTTPTimeout = 10 * time.Second

	// DefaultUserAgent は、サイトからのブロックを避けるためのブラウザ風User-Agentです。
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Doer は、標準の *http.Client.Do() と互換性のあるHTTPクライアントのインターフェースを定義します。
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// userAgentDoer は、すべてのリクエストに固定のUser-Agentを設定してから委譲します。
type userAgentDoer struct {
	next      Doer
	userAgent string
}

func (d *userAgentDoer) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", d.userAgent)
	return d.next.Do(req)
}

// Client は httpkit.Client をラップし、1回限りのGETとUser-Agentの付与をカプセル化します。
// リトライは行いません。失敗はすべて *FetchError として返されます。
type Client struct {
	kit       *httpkit.Client
	doer      Doer
	userAgent string
}

// ----------------------------------------------------------------------
// 設定とコンストラクタ
// ----------------------------------------------------------------------

// ClientOption はClientの設定を行うための関数型です。
type ClientOption func(*Client)

// WithHTTPClient はカスタムのDoerを設定します (主にテスト用)。
func WithHTTPClient(doer Doer) ClientOption {
	return func(c *Client) {
		c.doer = doer
	}
}

// New は新しいClientを初期化します。
// timeout が0以下の場合は DefaultHTTPTimeout、userAgent が空の場合は DefaultUserAgent を使用します。
func New(timeout time.Duration, userAgent string, options ...ClientOption) *Client {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	c := &Client{
		doer:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
	for _, opt := range options {
		opt(c)
	}

	// 1. リトライ回数0で httpkit.Client を初期化
	// 2. User-Agent を付与する Doer を差し込む
	c.kit = httpkit.New(
		timeout,
		httpkit.WithMaxRetries(0),
		httpkit.WithHTTPClient(&userAgentDoer{next: c.doer, userAgent: userAgent}),
	)

	return c
}

// UserAgent は、リクエストに設定されるUser-Agentを返します。
func (c *Client) UserAgent() string {
	return c.userAgent
}

// ----------------------------------------------------------------------
// httpkit メソッドの利用
// ----------------------------------------------------------------------

// FetchBytes は URL に対して1回だけGETを行い、レスポンスボディを生のバイト配列として返します。
// ネットワークエラー、タイムアウト、2xx以外のステータスは *FetchError になります。
func (c *Client) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	body, err := c.kit.FetchBytes(ctx, url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return body, nil
}
