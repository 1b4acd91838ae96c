package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shouni/hospital-exact/internal/config"
	"github.com/shouni/hospital-exact/internal/pipeline"
	"github.com/shouni/hospital-exact/pkg/client"
	"github.com/shouni/hospital-exact/pkg/extract"
	"github.com/shouni/hospital-exact/pkg/output"
)

// scrapeFlags は scrape サブコマンド固有のフラグです。値は viper 経由で参照します。
var scrapeFlags struct {
	url         string
	output      string
	userAgent   string
	previewRows int
}

// runScrapePipeline は、1回のスクレイピングを全体タイムアウト付きで実行します。
func runScrapePipeline(cfg config.Config) (pipeline.Summary, error) {
	// 1. 全体処理のコンテキストを設定
	overallTimeout := cfg.Timeout * overallTimeoutFactor
	ctx, cancel := context.WithTimeout(context.Background(), overallTimeout)
	defer cancel()

	// 2. 依存性の初期化 (Fetcher -> Extractor)
	fetcher := client.New(cfg.Timeout, cfg.UserAgent)
	extractor, err := extract.NewExtractor(fetcher)
	if err != nil {
		return pipeline.Summary{}, fmt.Errorf("Extractorの初期化エラー: %w", err)
	}

	log.Info().
		Str("url", cfg.URL).
		Dur("timeout", cfg.Timeout).
		Dur("overall_timeout", overallTimeout).
		Msg("スクレイピングを開始します")

	// 3. メインロジックの実行
	return pipeline.Run(ctx, extractor, cfg)
}

// printNoDataHelp は、データが得られなかったときの考えられる原因を表示します。
func printNoDataHelp(w io.Writer, pageURL string) {
	fmt.Fprintln(w, "\n病院データが見つかりませんでした。考えられる原因:")
	fmt.Fprintln(w, "- Webサイトの構造が変更された")
	fmt.Fprintln(w, "- コンテンツがJavaScriptで動的に読み込まれている")
	fmt.Fprintln(w, "- Webサイトがスクレイパーをブロックしている")
	fmt.Fprintln(w, "\nコンテンツが存在するか、ブラウザでページを直接確認してください:")
	fmt.Fprintln(w, pageURL)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "病院一覧ページを取得し、抽出した病院情報をCSVに書き出します",
	Long: `病院一覧ページを1回だけ取得し、本文中のテキストブロックから
病院名・住所・メール・電話番号・Webサイト・郵便番号を抽出してCSVに書き出します。
取得に失敗した場合や1件も抽出できなかった場合は、診断メッセージを表示してファイルは作成しません。`,
	Args: cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		// 1. 設定の解決
		cfg, err := config.Load(settings)
		if err != nil {
			return fmt.Errorf("設定エラー: %w", err)
		}

		// 2. メインロジックの実行
		summary, err := runScrapePipeline(cfg)
		if fe, ok := client.AsFetchError(err); ok {
			// 取得の失敗は「0件」と同じ扱い。プロセスは正常終了する
			log.Error().
				Err(fe).
				Bool("timeout", fe.Timeout()).
				Bool("status_error", fe.IsStatusError()).
				Msg("データのスクレイピング中にエラーが発生しました")
			printNoDataHelp(out, cfg.URL)
			return nil
		}
		if err != nil {
			return err
		}

		// 3. 結果の出力
		if !summary.Written {
			printNoDataHelp(out, cfg.URL)
			return nil
		}

		fmt.Fprintf(out, "\n%d 件の病院データを %s に保存しました\n", len(summary.Records), summary.OutputPath)
		if cfg.PreviewRows > 0 {
			fmt.Fprintf(out, "\n先頭 %d 件:\n", min(cfg.PreviewRows, len(summary.Records)))
			output.RenderPreview(out, summary.Records, cfg.PreviewRows)
		}

		return nil
	},
}

func init() {
	f := scrapeCmd.Flags()
	f.StringVarP(&scrapeFlags.url, "url", "u", config.DefaultURL, "病院一覧ページのURL")
	f.StringVarP(&scrapeFlags.output, "output", "o", config.DefaultOutput, "CSVの出力先パス")
	f.StringVar(&scrapeFlags.userAgent, "user-agent", client.DefaultUserAgent, "リクエストに付与するUser-Agent")
	f.IntVar(&scrapeFlags.previewRows, "preview", output.DefaultPreviewRows, "保存後にコンソールへ表示する件数 (0で非表示)")

	_ = settings.BindPFlag(config.KeyURL, f.Lookup("url"))
	_ = settings.BindPFlag(config.KeyOutput, f.Lookup("output"))
	_ = settings.BindPFlag(config.KeyUserAgent, f.Lookup("user-agent"))
	_ = settings.BindPFlag(config.KeyPreviewRows, f.Lookup("preview"))
}
