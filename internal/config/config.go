package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/shouni/hospital-exact/pkg/client"
	"github.com/shouni/hospital-exact/pkg/output"
)

// 設定キー。環境変数は EnvPrefix + "_" + 大文字キー (例: HOSPITAL_URL) で上書きできます。
const (
	KeyURL         = "url"
	KeyOutput      = "output"
	KeyUserAgent   = "user_agent"
	KeyTimeoutSec  = "timeout_sec"
	KeyPreviewRows = "preview_rows"

	EnvPrefix = "HOSPITAL"
)

const (
	// DefaultURL は、トリシュール県の病院一覧ページです。
	DefaultURL = "https://thrissur.nic.in/en/public-utility-category/hospitals/"
	// DefaultOutput は、CSVの出力先 (カレントディレクトリからの相対パス) です。
	DefaultOutput     = "thrissur_hospitals.csv"
	DefaultTimeoutSec = 10
)

// Config は、1回のスクレイピング実行に必要な設定を保持します。
type Config struct {
	URL         string
	Output      string
	UserAgent   string
	Timeout     time.Duration
	PreviewRows int
}

// New は、デフォルト値・環境変数を設定済みの viper インスタンスを返します。
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults は、すべてのキーにデフォルト値を設定します。
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyURL, DefaultURL)
	v.SetDefault(KeyOutput, DefaultOutput)
	v.SetDefault(KeyUserAgent, client.DefaultUserAgent)
	v.SetDefault(KeyTimeoutSec, DefaultTimeoutSec)
	v.SetDefault(KeyPreviewRows, output.DefaultPreviewRows)
}

// ReadFile は、path が指定されていれば設定ファイル (YAMLなど) を読み込みます。
// path が空の場合は何もしません。
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("設定ファイルの読み込みに失敗しました (%s): %w", path, err)
	}
	return nil
}

// Load は viper から Config を組み立て、検証します。
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		URL:         strings.TrimSpace(v.GetString(KeyURL)),
		Output:      strings.TrimSpace(v.GetString(KeyOutput)),
		UserAgent:   strings.TrimSpace(v.GetString(KeyUserAgent)),
		Timeout:     time.Duration(v.GetInt(KeyTimeoutSec)) * time.Second,
		PreviewRows: v.GetInt(KeyPreviewRows),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate は設定値の整合性を確認します。
func (c Config) Validate() error {
	var errs []error
	if c.URL == "" {
		errs = append(errs, errors.New("URLが設定されていません"))
	} else if !strings.HasPrefix(c.URL, "http://") && !strings.HasPrefix(c.URL, "https://") {
		errs = append(errs, fmt.Errorf("無効なURLスキームです。httpまたはhttpsを指定してください: %s", c.URL))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("出力ファイルのパスが設定されていません"))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("タイムアウトは正の秒数を指定してください: %s", c.Timeout))
	}
	if c.PreviewRows < 0 {
		errs = append(errs, fmt.Errorf("プレビュー件数は0以上を指定してください: %d", c.PreviewRows))
	}
	return errors.Join(errs...)
}
