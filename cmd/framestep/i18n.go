// Package main provides localization for the framestep CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Configuration": "設定",
		"Decoding":      "デコード",
		"Logging":       "ログ",

		// Root command
		"Step through MP4 and WEBP animations frame by frame": "MP4とWEBPアニメーションをコマ送りで確認",

		"framestep decodes short animations in the background and lets you play, step and export single frames while they load.": "framestepは短いアニメーションをバックグラウンドでデコードし、読み込み中でも再生、コマ送り、1フレームの書き出しができます。",

		// Arguments
		"[files or directories...]": "[ファイルまたはディレクトリ...]",
		"<file>":                    "<ファイル>",

		// Commands
		"Open the viewer window (default)":    "ビューアウィンドウを開く（デフォルト）",
		"Save one frame of a file as PNG":     "ファイルの1フレームをPNGで保存",
		"Decode a file and report its frames": "ファイルをデコードしてフレーム情報を表示",
		"Show version information":            "バージョン情報を表示",
		"framestep version %s":                "framestep バージョン %s",

		// Global flags
		"Settings file (default: user config directory)":  "設定ファイル（デフォルト: ユーザー設定ディレクトリ）",
		"Refuse items with more frames than this":         "これより多いフレーム数のファイルを拒否",
		"Path to the ffmpeg executable":                   "ffmpeg実行ファイルのパス",
		"Log level (debug, info, warn, error)":            "ログレベル（debug, info, warn, error）",
		"Append logs to this file instead of the console": "ログをコンソールではなくこのファイルに追記",
		"Suppress all log output":                         "全てのログ出力を抑制",

		// Extract flags
		"Frame number to save (1-origin)":               "保存するフレーム番号（1始まり）",
		"Output PNG path (default: next to the source)": "出力PNGパス（デフォルト: 元ファイルと同じ場所）",

		// Probe flags
		"Write a Markdown report to this file": "Markdown形式のレポートをこのファイルに出力",

		// Probe output
		"Summary saved to %s":                        "サマリーを %s に保存しました",
		"Container: %s %dx%d, %d frames at %.3f fps": "コンテナ: %s %dx%d, %d フレーム, %.3f fps",
		"Decoding frame %d":                          "フレーム %d をデコード中",
		"[%s] %d / %d frames":                        "[%s] %d / %d フレーム",
		"%s: %d / %d frames, %.3f fps, %dx%d":        "%s: %d / %d フレーム, %.3f fps, %dx%d",
	})
}
