package extract

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

// DocumentFallback は、どのセレクターにも一致しなかった場合に返される戦略名です。
const DocumentFallback = "document"

// contentLocator は、本文領域を探す1つの戦略です。
type contentLocator struct {
	name     string
	selector string
}

// standardLocators と alternativeLocators は優先順に試されます。最初に一致したものが採用されます。
var (
	standardLocators = []contentLocator{
		{name: "entry-content", selector: "div.entry-content"},
		{name: "content-class", selector: "div.content"},
		{name: "content-id", selector: "div#content"},
		{name: "article", selector: "article"},
	}
	alternativeLocators = []contentLocator{
		{name: "role-main", selector: "div[role='main']"},
		{name: "main", selector: "main"},
	}
)

// LocateContent は、病院一覧を含む可能性が最も高いノードを返します。
// 2つ目の戻り値は一致した戦略名で、フォールバック時は DocumentFallback です。
// 最後のフォールバックはドキュメント全体なので、この関数は失敗しません。
func LocateContent(doc *goquery.Document) (*goquery.Selection, string) {
	if sel, name, ok := firstMatch(doc, standardLocators); ok {
		return sel, name
	}

	log.Warn().Msg("標準セレクターで本文領域が見つかりませんでした。代替手段を試します")
	if sel, name, ok := firstMatch(doc, alternativeLocators); ok {
		return sel, name
	}

	return doc.Selection, DocumentFallback
}

func firstMatch(doc *goquery.Document, locators []contentLocator) (*goquery.Selection, string, bool) {
	for _, l := range locators {
		if sel := doc.Find(l.selector).First(); sel.Length() > 0 {
			return sel, l.name, true
		}
	}
	return nil, "", false
}
