package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// FetchError は、ページ取得の唯一の失敗モードを表します。
// ネットワーク/接続エラー、タイムアウト、2xx以外のHTTPステータスのいずれかです。
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("ページの取得に失敗しました (URL: %s): %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Timeout は、失敗の原因がタイムアウトであるかどうかを返します。
func (e *FetchError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}

// IsStatusError は、失敗の原因がサーバーの応答ステータス (2xx・5xx 以外) であるかどうかを返します。
// 接続エラー、タイムアウト、5xx では false です。
func (e *FetchError) IsStatusError() bool {
	return httpkit.IsNonRetryableError(e.Err)
}

// AsFetchError は err の連鎖から *FetchError を取り出します。
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
