// internal/questionnaire/options.go
package questionnaire

import (
	"strings"

	"sake-reco/internal/models"
)

// Option is one selectable answer mapped to a tag.
type Option struct {
	Label string `json:"label"`
	Tag   string `json:"tag"`
}

var (
	SceneOptions = []Option{
		{Label: "食事と合わせたい（食中酒）", Tag: "食中酒"},
		{Label: "プレゼントにしたい", Tag: "プレゼント"},
		{Label: "日本酒初心者向けがいい", Tag: "初心者"},
		{Label: "今っぽい/モダンな感じ", Tag: "モダン"},
		{Label: "王道/クラシックが好き", Tag: "クラシック"},
	}

	DirectionOptions = []Option{
		{Label: "フルーティ", Tag: "フルーティ"},
		{Label: "すっきり", Tag: "すっきり"},
		{Label: "辛口", Tag: "辛口"},
		{Label: "甘口", Tag: "甘口"},
	}

	BodyOptions = []Option{
		{Label: "旨味", Tag: "旨味"},
		{Label: "コク", Tag: "コク"},
		{Label: "キレ", Tag: "キレ"},
		{Label: "濃醇", Tag: "濃醇"},
	}
)

// TempOptions lists the temperature step choices.
func TempOptions() []Option {
	out := make([]Option, len(models.AllTempKeys))
	for i, k := range models.AllTempKeys {
		out[i] = Option{Label: k.Label(), Tag: string(k)}
	}
	return out
}

// Bot messages.
const (
	MsgIntro     = "日本酒AIです。5つの質問で、好みに合う銘柄を提案します🍶"
	MsgQ1        = "Q1：今日はどんなシーン？（近いものを選んでください）"
	MsgQ2        = "Q2：味の方向はどれが近い？（1つ選ぶ）"
	MsgQ3        = "Q3：質感の好みは？（複数OK）"
	MsgQ4        = "Q4：飲み方（温度）は？（複数OK）"
	MsgQ5        = "Q5：最後に。苦手なタイプ・合わせたい料理・予算など自由にどうぞ（任意）"
	MsgClosing   = "了解！条件をまとめて、おすすめを出します…"
	MsgNoMatches = "該当が見つかりませんでした。条件を少しゆるめて試してみてください。"

	unspecified  = "指定なし"
	noFreeText   = "（自由入力なし）"
	listJoin     = " / "
	summaryJoin  = "｜"
	summaryLabel = "条件まとめ："
)

// findOption accepts either the tag or the label.
func findOption(opts []Option, value string) (Option, bool) {
	value = strings.TrimSpace(value)
	for _, o := range opts {
		if o.Tag == value || o.Label == value {
			return o, true
		}
	}
	return Option{}, false
}

func tags(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Tag
	}
	return out
}

func within(values []string, opts []Option) []string {
	var out []string
	for _, v := range values {
		if _, ok := findOption(opts, v); ok {
			out = append(out, v)
		}
	}
	return out
}

func tempLabels(keys []models.TempKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.Label()
	}
	return out
}

// Summarize renders the conditions line, e.g.
// "シーン：食中酒｜方向：辛口｜質感：旨味 / キレ｜温度：冷やして". Empty
// groups are omitted; with nothing selected the result is "".
func Summarize(p models.Preferences) string {
	var parts []string
	if p.StyleTags.Len() > 0 {
		parts = append(parts, "シーン："+strings.Join(p.StyleTags.Values(), listJoin))
	}
	taste := p.TasteTags.Values()
	if d := within(taste, DirectionOptions); len(d) > 0 {
		parts = append(parts, "方向："+strings.Join(d, listJoin))
	}
	if b := within(taste, BodyOptions); len(b) > 0 {
		parts = append(parts, "質感："+strings.Join(b, listJoin))
	}
	if p.TempKeys.Len() > 0 {
		parts = append(parts, "温度："+strings.Join(tempLabels(p.TempKeys.Values()), listJoin))
	}
	return strings.Join(parts, summaryJoin)
}

// SummaryLine is Summarize with its display prefix, falling back to 指定なし.
func SummaryLine(p models.Preferences) string {
	s := Summarize(p)
	if s == "" {
		s = unspecified
	}
	return summaryLabel + s
}
