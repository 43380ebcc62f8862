package summarize

import (
	"regexp"
	"strings"
	"unicode"
)

// モデル出力とプロンプト入力の整形に使う正規表現。
// パッケージ初期化時に1回だけコンパイルする。
var (
	// boldRe はMarkdownの強調（**bold**）を中身だけ残して除去する。
	boldRe = regexp.MustCompile(`\*\*(.*?)\*\*`)
	// italicRe はMarkdownの斜体（*italic*）を中身だけ残して除去する。
	italicRe = regexp.MustCompile(`\*(.*?)\*`)
	// specialRe はモデルが混入させがちな整形用文字を除去する。
	specialRe = regexp.MustCompile("[_`#>~:-]")
	// multiSpaceRe は2つ以上連続する空白を1つに畳む。
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
	// unsafeTitleRe はプロンプトに埋め込むタイトルから安全集合
	// （文字・数字・空白・基本的な句読点）以外の文字を除去する。
	unsafeTitleRe = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?-]`)
)

// CleanModelOutput はモデルの生成テキストからMarkdown装飾と
// 整形用文字を除去し、空白を正規化した平文を返す。
// 翻訳結果と要約結果の両方に適用される。
func CleanModelOutput(text string) string {
	text = boldRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	text = specialRe.ReplaceAllString(text, "")
	text = multiSpaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// SanitizeTitle はプロンプトに埋め込むタイトルを安全集合に制限する。
// 非英語の文字はそのまま残し、後続の翻訳ステップに委ねる。
func SanitizeTitle(title string) string {
	return strings.TrimSpace(unsafeTitleRe.ReplaceAllString(title, ""))
}

// NormalizeRating は判定ラベルからコロンを除去し、
// 先頭文字を大文字・残りを小文字に正規化する。
func NormalizeRating(rating string) string {
	rating = strings.ReplaceAll(rating, ":", "")
	if rating == "" {
		return rating
	}

	runes := []rune(rating)
	first := string(unicode.ToUpper(runes[0]))
	rest := strings.ToLower(string(runes[1:]))
	return first + rest
}
