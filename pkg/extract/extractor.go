package extract

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"

	"github.com/shouni/hospital-exact/pkg/types"
)

// Fetcher は、病院一覧ページの生HTMLを取得します。
// 失敗は呼び出し元がそのまま判別できる形 (*client.FetchError) で返すことを想定しています。
type Fetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Extractor は、Fetcher を使って病院レコードの抽出プロセスを管理します。
type Extractor struct {
	fetcher Fetcher
}

// NewExtractor は、新しいExtractorのインスタンスを生成します。
func NewExtractor(fetcher Fetcher) (*Extractor, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("extract.NewExtractor: Fetcher cannot be nil")
	}
	return &Extractor{
		fetcher: fetcher,
	}, nil
}

// ----------------------------------------------------------------------
// メイン関数 (メソッド化)
// ----------------------------------------------------------------------

// FetchAndExtract は指定されたURLからページを取得し、病院レコードを抽出します。
// 取得の失敗は Fetcher のエラーをそのまま返します (*client.FetchError)。
func (e *Extractor) FetchAndExtract(ctx context.Context, url string) ([]types.HospitalRecord, error) {
	// 1. Fetcherから生のバイト配列を取得 (通信の責務)
	log.Info().Str("url", url).Msg("Webサイトからデータを取得しています...")
	htmlBytes, err := e.fetcher.FetchBytes(ctx, url)
	if err != nil {
		return nil, err
	}

	// 2. 解析の責務
	return ExtractFromHTML(htmlBytes)
}

// ExtractFromHTML は、生のHTMLバイト列から病院レコードを抽出します。
// 文字コードは <meta charset> などから判定し、UTF-8 に変換してから解析します。
func ExtractFromHTML(htmlBytes []byte) ([]types.HospitalRecord, error) {
	log.Info().Int("bytes", len(htmlBytes)).Msg("HTMLコンテンツを解析しています...")

	reader, err := charset.NewReader(bytes.NewReader(htmlBytes), "")
	if err != nil {
		return nil, fmt.Errorf("文字コードの判定に失敗しました: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("HTML解析に失敗しました: %w", err)
	}

	return ExtractFromDocument(doc), nil
}

// ExtractFromDocument は goquery.Document から病院レコードを抽出します。
// 構造が想定と違っても失敗はせず、ドキュメント全体の走査に退避します。
func ExtractFromDocument(doc *goquery.Document) []types.HospitalRecord {
	// 1. メインコンテンツの特定
	content, locator := LocateContent(doc)
	log.Debug().Str("locator", locator).Msg("本文領域を特定しました")

	// 2. テキスト要素の収集
	texts, candidates := CollectTexts(content)
	log.Info().Int("elements", candidates).Msgf("処理対象のテキスト要素が %d 件見つかりました", candidates)

	// 3. ブロック分割とフィールド抽出
	return RecordsFromBlocks(SegmentLines(texts))
}

// RecordsFromBlocks は各ブロックをパースし、名前を持つレコードだけを出現順に返します。
func RecordsFromBlocks(blocks []types.TextBlock) []types.HospitalRecord {
	records := make([]types.HospitalRecord, 0, len(blocks))
	for _, block := range blocks {
		rec := ParseRecord(block.Text())
		if !rec.HasName() {
			continue
		}
		records = append(records, rec)
	}
	return records
}
