package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/shouni/hospital-exact/internal/config"
	"github.com/shouni/hospital-exact/pkg/extract"
	"github.com/shouni/hospital-exact/pkg/output"
	"github.com/shouni/hospital-exact/pkg/types"
)

// Summary は、1回の実行結果をまとめたものです。
type Summary struct {
	Records    []types.HospitalRecord
	OutputPath string
	Written    bool // CSVファイルを書き出したかどうか
}

// Run は、取得 → 抽出 → CSV書き出しを順に実行するメインの処理パイプラインです。
// 取得の失敗は *client.FetchError のまま返します。レコードが0件の場合はエラーではなく、
// ファイルを書き出さずに Written=false を返します。
func Run(ctx context.Context, extractor *extract.Extractor, cfg config.Config) (Summary, error) {
	summary := Summary{OutputPath: cfg.Output}

	// 1. 取得と抽出
	records, err := extractor.FetchAndExtract(ctx, cfg.URL)
	if err != nil {
		return summary, err
	}
	summary.Records = records

	if len(records) == 0 {
		log.Warn().Str("url", cfg.URL).Msg("病院データが1件も抽出できませんでした")
		return summary, nil
	}

	// 2. CSVの書き出し (1件以上の場合のみ)
	if err := output.SaveCSV(cfg.Output, records); err != nil {
		return summary, fmt.Errorf("CSV書き出しエラー: %w", err)
	}
	summary.Written = true
	log.Debug().Str("path", cfg.Output).Int("records", len(records)).Msg("CSVを書き出しました")

	return summary, nil
}
