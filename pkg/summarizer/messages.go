package summarizer

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		"Decode Summary": "デコードサマリー",
		"Generated":      "生成日時",
		"Generated by":   "生成:",
		"Item":           "項目",
		"Value":          "値",
		"Unknown":        "不明",
		"None":           "なし",

		// Sections
		"File":      "ファイル",
		"Container": "コンテナ",
		"Results":   "実行結果",
		"Settings":  "設定",

		// Rows
		"Path":                    "パス",
		"Kind":                    "種類",
		"File Size":               "ファイルサイズ",
		"Codec":                   "コーデック",
		"Dimensions":              "サイズ",
		"Declared Frames":         "宣言フレーム数",
		"Nominal Rate":            "公称フレームレート",
		"State":                   "状態",
		"Frame Count":             "フレーム数",
		"Playback Rate":           "再生レート",
		"Frame Size":              "フレームサイズ",
		"Decode Time":             "デコード時間",
		"Error":                   "エラー",
		"Frame Limit":             "フレーム数上限",
		"Fallback Rate":           "既定フレームレート",
		"Fallback Frame Duration": "既定フレーム表示時間",
		"Decoder":                 "デコーダー",

		// Decode states
		"finished":  "完了",
		"cancelled": "中止",
		"failed":    "失敗",
	})
}
