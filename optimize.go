package md2rich

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Precompiled rewrite patterns shared by the platform profiles.
var (
	fontFamilyDecl  = regexp.MustCompile(`font-family\s*:\s*[^;"}]+;?`)
	relativeUnit    = regexp.MustCompile(`(\d+(?:\.\d+)?)(em|rem)\b`)
	cssVariableDecl = regexp.MustCompile(`--[\w-]+\s*:\s*[^;"}]+;?`)
	borderDecl      = regexp.MustCompile(`border(?:-top|-right|-bottom|-left)?\s*:\s*[^;"}]+`)
	unsupportedDecl = regexp.MustCompile(`(?:box-shadow|border-radius|transition|transform|animation(?:-[\w-]+)?)\s*:\s*[^;"}]+;?`)
	floatingDecl    = regexp.MustCompile(`(?:position|float|z-index)\s*:\s*[^;"}]+;?`)
	blockquoteOpen  = regexp.MustCompile(`<blockquote[^>]*>`)
)

// relativeUnitBase converts em/rem to px assuming the browser default.
const relativeUnitBase = 16

// Optimize rewrites html for the quirks of one paste target. Unknown
// targets fall back to the universal profile. Every profile is a pure
// function; no state is shared between calls.
func Optimize(html string, target Target) string {
	switch target {
	case TargetGoogleDocs:
		return optimizeGoogleDocs(html)
	case TargetWord:
		return optimizeWord(html)
	case TargetGmail:
		return optimizeGmail(html)
	case TargetSlack:
		return optimizeSlack(html)
	default:
		return optimizeUniversal(html)
	}
}

// optimizeUniversal applies rewrites safe for any rich-text editor:
// pixel units and no CSS custom properties.
func optimizeUniversal(html string) string {
	html = convertRelativeUnits(html)
	html = cssVariableDecl.ReplaceAllString(html, "")
	return html
}

// optimizeGoogleDocs normalizes fonts to the Docs default stack, forces
// pixel units, and squares off table borders, which Docs otherwise drops.
func optimizeGoogleDocs(html string) string {
	html = fontFamilyDecl.ReplaceAllString(html, "font-family:Arial,sans-serif;")
	html = convertRelativeUnits(html)
	html = cssVariableDecl.ReplaceAllString(html, "")
	html = borderDecl.ReplaceAllString(html, "border:1px solid #000000")
	return html
}

// optimizeWord strips CSS that word processors ignore or mangle and wraps
// blockquote content so the quote bar survives the paste.
func optimizeWord(html string) string {
	html = convertRelativeUnits(html)
	html = unsupportedDecl.ReplaceAllString(html, "")
	html = cssVariableDecl.ReplaceAllString(html, "")
	html = blockquoteOpen.ReplaceAllString(html,
		`<blockquote style="border-left:3px solid #cccccc;margin:0;padding-left:12px">`)
	return html
}

// optimizeGmail removes layout CSS the Gmail composer discards anyway and
// keeps the rest pixel-based.
func optimizeGmail(html string) string {
	html = convertRelativeUnits(html)
	html = floatingDecl.ReplaceAllString(html, "")
	html = cssVariableDecl.ReplaceAllString(html, "")
	return html
}

// convertRelativeUnits rewrites em/rem lengths to px.
func convertRelativeUnits(html string) string {
	return relativeUnit.ReplaceAllStringFunc(html, func(m string) string {
		sub := relativeUnit.FindStringSubmatch(m)
		v, err := strconv.ParseFloat(sub[1], 64)
		if err != nil {
			return m
		}
		return fmt.Sprintf("%.0fpx", v*relativeUnitBase)
	})
}

// Slack mrkdwn rewrites. Slack has no rich HTML paste path, so the entire
// document collapses to its lightweight inline markup with block tags
// discarded.
var (
	slackHeading = regexp.MustCompile(`(?s)<h[1-6][^>]*>(.*?)</h[1-6]>`)
	slackStrong  = regexp.MustCompile(`(?s)<(?:strong|b)[^>]*>(.*?)</(?:strong|b)>`)
	slackEm      = regexp.MustCompile(`(?s)<(?:em|i)[^>]*>(.*?)</(?:em|i)>`)
	slackDel     = regexp.MustCompile(`(?s)<del[^>]*>(.*?)</del>`)
	slackPre     = regexp.MustCompile(`(?s)<pre[^>]*>(.*?)</pre>`)
	slackCode    = regexp.MustCompile(`(?s)<code[^>]*>(.*?)</code>`)
	slackAnchor  = regexp.MustCompile(`(?s)<a\s+[^>]*href="([^"]*)"[^>]*>(.*?)</a>`)
	slackItem    = regexp.MustCompile(`(?s)<li[^>]*>(.*?)</li>`)
	slackQuote   = regexp.MustCompile(`(?s)<blockquote[^>]*>(.*?)</blockquote>`)
	slackBlock   = regexp.MustCompile(`</(?:p|div|tr|ul|ol|table|blockquote|section|dl)>|<br\s*/?>|<hr\s*/?>`)
	anyTag       = regexp.MustCompile(`(?s)<[^>]*>`)
	blankRuns    = regexp.MustCompile(`\n{3,}`)
)

// optimizeSlack converts the HTML into Slack mrkdwn. The output contains
// no HTML tags at all.
func optimizeSlack(html string) string {
	html = slackPre.ReplaceAllString(html, "\n```\n$1\n```\n")
	html = slackHeading.ReplaceAllString(html, "\n*$1*\n")
	html = slackStrong.ReplaceAllString(html, "*$1*")
	// ${1} instead of $1: the trailing underscore would otherwise be
	// parsed as part of the group name.
	html = slackEm.ReplaceAllString(html, "_${1}_")
	html = slackDel.ReplaceAllString(html, "~$1~")
	html = slackCode.ReplaceAllString(html, "`$1`")
	// Slack link syntax uses < and >, which the tag-stripping pass below
	// would eat. Emit with sentinels and restore afterwards.
	html = slackAnchor.ReplaceAllString(html, "\x02$1|$2\x03")
	html = slackItem.ReplaceAllString(html, "• $1\n")
	html = slackQuote.ReplaceAllStringFunc(html, func(m string) string {
		inner := slackQuote.FindStringSubmatch(m)[1]
		inner = anyTag.ReplaceAllString(inner, "")
		return "> " + strings.TrimSpace(inner) + "\n"
	})
	html = slackBlock.ReplaceAllString(html, "\n")
	html = anyTag.ReplaceAllString(html, "")
	html = strings.ReplaceAll(html, "\x02", "<")
	html = strings.ReplaceAll(html, "\x03", ">")
	html = decodeEntities(html)
	html = blankRuns.ReplaceAllString(html, "\n\n")
	return strings.TrimSpace(html) + "\n"
}
