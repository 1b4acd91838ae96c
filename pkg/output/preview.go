package output

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	textUtils "github.com/shouni/go-utils/text"

	"github.com/shouni/hospital-exact/pkg/types"
)

// DefaultPreviewRows は、コンソールに表示する先頭レコード数の既定値です。
const DefaultPreviewRows = 5

// RenderPreview は、先頭 n 件のレコードを表形式で w に描画します。
// セル内の改行やタブは1行に正規化されます。n が0以下、またはレコードが空なら何も描画しません。
func RenderPreview(w io.Writer, records []types.HospitalRecord, n int) {
	if n <= 0 || len(records) == 0 {
		return
	}
	if n > len(records) {
		n = len(records)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, 0, len(types.Columns))
	for _, col := range types.Columns {
		header = append(header, col)
	}
	t.AppendHeader(header)

	for _, rec := range records[:n] {
		row := make(table.Row, 0, len(types.Columns))
		for _, v := range rec.Row() {
			row = append(row, textUtils.NormalizeText(v))
		}
		t.AppendRow(row)
	}

	t.Render()
}
