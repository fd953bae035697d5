package recognizer

import "imgtext/internal/domain"

// BuildInstruction returns the recognition instruction sent with every image.
// It asks for the visible text only, or the fixed "no text detected" sentinel
// followed by one of the listed reasons.
func BuildInstruction() string {
	return `この画像からテキストを抽出してください。以下の規則に従って応答してください：

1. 画像内にテキストが存在する場合：
   - テキストのみを抽出して出力
   - 余計な説明は不要
   - 箇条書きや番号付けは不要
   - 「画像には」「テキストは」などの前置きは不要

2. 画像内にテキストが存在しない場合：
   以下のような形式で応答してください：
   "` + domain.NoTextSentinelPrefix + `[理由を以下から選択して記入]"

   理由の例：
   - 画像にテキストが含まれていない
   - 画像が人物や風景の写真である
   - 画像の品質が低い
   - テキストが小さすぎる/不鮮明
   - 画像が装飾的な要素のみ
   - その他、具体的な理由

3. 応答形式：
   - テキストが存在する場合：テキストのみを出力
   - テキストが存在しない場合：「` + domain.NoTextSentinelPrefix + `[具体的な理由]」
`
}
