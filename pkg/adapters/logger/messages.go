package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Decode job
		"Opening %s (%s)":           "%s を開いています (%s)",
		"%s: %d frames at %.2f fps": "%s: %d フレーム / %.2f fps",
		"Loaded %d frames from %s":  "%[2]s から %[1]d フレームを読み込みました",
		"Decode cancelled: %s":      "デコードを中止しました: %s",
		"Decode failed: %s":         "デコードに失敗しました: %s",

		// Decoders
		"Using ffmpeg at %s":              "ffmpeg を使用します: %s",
		"Probed %s: codec %s, %d samples": "%s を解析: コーデック %s, %d サンプル",
		"ffmpeg exited: %s":               "ffmpeg が終了しました: %s",
		"%s: %dx%d canvas, %d frames":     "%s: %dx%d キャンバス, %d フレーム",
		"Container probe failed: %s":      "コンテナの解析に失敗しました: %s",

		// Playlist and session
		"Playlist: %d files, starting at %d": "プレイリスト: %d ファイル, %d 番目から開始",
		"Opening %d / %d: %s":                "%d / %d を開いています: %s",
		"No playable files in drop":          "ドロップに再生可能なファイルがありません",
		"Ignoring stale event from job %s":   "古いジョブ %s のイベントを無視します",
		"Exported frame %d to %s":            "フレーム %d を %s に書き出しました",
		"Export failed: %s":                  "書き出しに失敗しました: %s",

		// Window
		"Dropped %d entries":      "%d 件がドロップされました",
		"Fitting window to %dx%d": "ウィンドウを %dx%d に合わせます",
		"Save ignored: %s":        "保存できませんでした: %s",
		"Copy ignored: %s":        "コピーできませんでした: %s",

		// Audio
		"Audio cues disabled: %s": "効果音を無効化しました: %s",

		// Settings
		"Loaded settings from %s":     "%s から設定を読み込みました",
		"Saved settings to %s":        "%s に設定を保存しました",
		"Failed to save settings: %s": "設定の保存に失敗しました: %s",
	})
}
