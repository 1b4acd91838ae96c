package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"

	"github.com/shouni/hospital-exact/internal/config"
)

// --- グローバル定数 ---

const (
	appName = "hospital-exact"

	// 全体処理のタイムアウトは、HTTPクライアントのタイムアウトの何倍か
	overallTimeoutFactor = 2
)

// --- グローバル変数とフラグ構造体 ---

// AppFlags はこのアプリケーション固有の永続フラグを保持
type AppFlags struct {
	ConfigFile string // --config-file 設定ファイル (YAML)
	TimeoutSec int    // --timeout タイムアウト
}

var Flags AppFlags // アプリケーション固有フラグにアクセスするためのグローバル変数

// settings は デフォルト値 < 設定ファイル < 環境変数 < フラグ の順で値を解決します。
var settings = config.New()

// --- 初期化とロジック (clibaseへのコールバックとして利用) ---

// addAppPersistentFlags は、アプリケーション固有の永続フラグをルートコマンドに追加します。
func addAppPersistentFlags(rootCmd *cobra.Command) {
	rootCmd.Short = "トリシュール県の病院一覧ページから病院情報を抽出し、CSVに書き出します"

	rootCmd.PersistentFlags().StringVar(
		&Flags.ConfigFile,
		"config-file",
		"",
		"設定ファイル (YAML) のパス",
	)
	rootCmd.PersistentFlags().IntVar(
		&Flags.TimeoutSec,
		"timeout",
		config.DefaultTimeoutSec,
		"HTTPリクエストのタイムアウト時間（秒）",
	)
	_ = settings.BindPFlag(config.KeyTimeoutSec, rootCmd.PersistentFlags().Lookup("timeout"))
}

// initAppPreRunE は、clibase共通処理の後に実行される、アプリケーション固有のPersistentPreRunEです。
// NOTE: clibaseの PersistentPreRunE チェーンにより、clibase.Flags.Verbose はこの関数実行前に設定済み
func initAppPreRunE(cmd *cobra.Command, args []string) error {
	setupLogger(clibase.Flags.Verbose)

	if err := config.ReadFile(settings, Flags.ConfigFile); err != nil {
		return err
	}
	if Flags.ConfigFile != "" {
		log.Debug().Str("path", Flags.ConfigFile).Msg("設定ファイルを読み込みました")
	}
	return nil
}

// setupLogger は、標準エラー出力に人間向けの形式でログを出すよう zerolog を設定します。
func setupLogger(verbose bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
}

// --- エントリポイント ---

// Execute は、rootCmd を実行するメイン関数です。clibaseのExecuteを使用する。
func Execute() {
	clibase.Execute(
		appName,
		addAppPersistentFlags,
		initAppPreRunE,
		scrapeCmd,
	)
	// clibase.Execute() の中で os.Exit(1) が処理されるため、ここでは不要
}
