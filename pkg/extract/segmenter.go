package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shouni/hospital-exact/pkg/types"
)

const (
	// textElementTags は、セグメンテーション対象の要素です。goquery はDOMの出現順に返します。
	textElementTags = "p, div, h3, h4"

	// MaxHeadingTokens 以下の語数の行は、新しい病院エントリの見出しとみなされます。
	MaxHeadingTokens = 5
)

// blockStartKeywords のいずれかを (小文字化して) 含む行も新しいエントリの開始です。
var blockStartKeywords = []string{"hospital", "medical", "institute", "centre", "clinic"}

// IsBlockStart は、text が新しい病院エントリの開始に見えるかどうかを判定します。
// 短い行 (MaxHeadingTokens 語以下) か、キーワードを含む行が該当します。
// 本文中の短い行も該当するため、誤検出はありえます。
func IsBlockStart(text string) bool {
	if len(strings.Fields(text)) <= MaxHeadingTokens {
		return true
	}
	return containsAny(strings.ToLower(text), blockStartKeywords)
}

// Segmenter は、テキスト行を病院ごとのブロックに分割する2状態の状態機械です。
// 蓄積中 (current が空でない) と、フラッシュ直後 (current が空) の2状態を持ちます。
type Segmenter struct {
	current types.TextBlock
	blocks  []types.TextBlock
}

// Push は1行を処理します。text はトリム済みであることを前提とし、空行は無視されます。
func (s *Segmenter) Push(text string) {
	if text == "" {
		return
	}
	if IsBlockStart(text) {
		s.flush()
	}
	// フラッシュの有無にかかわらず、現在の行はブロックの先頭 (または続き) になる
	s.current = append(s.current, text)
}

// Close は残りの蓄積をフラッシュし、すべてのブロックを返します。入力の終端は暗黙の境界です。
func (s *Segmenter) Close() []types.TextBlock {
	s.flush()
	blocks := s.blocks
	s.blocks = nil
	return blocks
}

func (s *Segmenter) flush() {
	if len(s.current) == 0 {
		return
	}
	s.blocks = append(s.blocks, s.current)
	s.current = nil
}

// SegmentLines は、テキスト行の並びをブロックに分割します。
func SegmentLines(lines []string) []types.TextBlock {
	var s Segmenter
	for _, line := range lines {
		s.Push(strings.TrimSpace(line))
	}
	return s.Close()
}

// CollectTexts は、content 配下の p, div, h3, h4 要素のトリム済みテキストを出現順に返します。
// 2つ目の戻り値は、テキストが空だったものも含めた候補要素の数です。
func CollectTexts(content *goquery.Selection) ([]string, int) {
	elements := content.Find(textElementTags)
	texts := make([]string, 0, elements.Length())
	elements.Each(func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			texts = append(texts, text)
		}
	})
	return texts, elements.Length()
}
