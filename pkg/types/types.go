package types

import "strings"

// Columns は CSV 出力の列順です。HospitalRecord.Row() もこの順序で値を返します。
var Columns = []string{"Name", "Address", "Email", "Phone", "Website", "Pincode"}

// HospitalRecord は、1つのテキストブロックから抽出された病院情報です。
// 見つからなかったフィールドは空文字列のままになります。
type HospitalRecord struct {
	Name    string // 病院名 (ブロックの先頭行)
	Address string // 住所 (連絡先ラベルが現れるまでの行を空白で連結)
	Email   string
	Phone   string
	Website string
	Pincode string // 6桁の郵便番号
}

// HasName は、レコードを出力に残すべきかどうかを返します。
func (r HospitalRecord) HasName() bool {
	return strings.TrimSpace(r.Name) != ""
}

// Row は Columns と同じ順序でフィールド値を返します。
func (r HospitalRecord) Row() []string {
	return []string{r.Name, r.Address, r.Email, r.Phone, r.Website, r.Pincode}
}

// TextBlock は、セグメンテーション中に蓄積される、空でないトリム済みテキスト行の並びです。
type TextBlock []string

// Text は行を改行で連結したブロックテキストを返します。
func (b TextBlock) Text() string {
	return strings.Join(b, "\n")
}
