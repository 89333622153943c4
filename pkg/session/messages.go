package session

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Status line
		"File: %d / %d  Frame: %d / %d  Loaded: %d  Speed: %s": "ファイル: %d / %d  フレーム: %d / %d  読込済: %d  速度: %s",
		"Drop MP4 or WEBP files here":                           "MP4 または WEBP ファイルをここにドロップしてください",
		"Stopped":                                               "停止",
		"Loading...":                                            "読み込み中...",

		// Item failures
		"Unsupported format":             "未対応の形式です",
		"Too many frames: %d (limit %d)": "フレーム数が多すぎます: %d (上限 %d)",
		"Error: %s":                      "エラー: %s",

		// Export
		"Saved: %s":               "保存しました: %s",
		"Copied to clipboard":     "クリップボードにコピーしました",
		"Frame not loaded yet":    "フレームはまだ読み込まれていません",
		"Export is not available": "書き出しは利用できません",
	})
}
