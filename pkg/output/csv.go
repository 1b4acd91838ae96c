package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/shouni/hospital-exact/pkg/types"
)

// WriteCSV は、ヘッダー行と1レコード1行のCSVを w に書き込みます。
// カンマや改行を含む値は標準のCSVクォートで囲まれます。
func WriteCSV(w io.Writer, records []types.HospitalRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(types.Columns); err != nil {
		return fmt.Errorf("CSVヘッダーの書き込みに失敗しました: %w", err)
	}
	for i, rec := range records {
		if err := cw.Write(rec.Row()); err != nil {
			return fmt.Errorf("CSVの%d行目の書き込みに失敗しました: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("CSVのフラッシュに失敗しました: %w", err)
	}
	return nil
}

// SaveCSV は path にCSVファイルを作成します。既存のファイルは上書きされます。
func SaveCSV(path string, records []types.HospitalRecord) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("出力ファイルの作成に失敗しました (%s): %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("出力ファイルのクローズに失敗しました (%s): %w", path, cerr)
		}
	}()

	return WriteCSV(f, records)
}
