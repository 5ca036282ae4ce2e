//    HipparchiaNLPNotebook
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package newsgroups

import (
	"regexp"
	"strings"
)

var (
	quoteline = regexp.MustCompile(`(writes in|writes:|wrote:|says:|said:|^In article|^Quoted from|^\||^>)`)
	dashline  = regexp.MustCompile(`^-+$`)
)

// Strip - apply the requested removals: any of "headers", "footers", "quotes"
func Strip(text string, remove []string) string {
	for _, r := range remove {
		switch strings.TrimSpace(r) {
		case "headers":
			text = StripHeaders(text)
		case "quotes":
			text = StripQuotes(text)
		case "footers":
			text = StripFooter(text)
		}
	}
	return text
}

// StripHeaders - everything before the first blank line goes; a post with no blank line is all header
func StripHeaders(text string) string {
	_, after, _ := strings.Cut(text, "\n\n")
	return after
}

// StripQuotes - drop lines that quote or introduce a quote of another post
func StripQuotes(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if !quoteline.MatchString(l) {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}

// StripFooter - cut at the last blank or all-dash line, treated as the start of a signature block
func StripFooter(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	cut := -1
	for i := len(lines) - 1; i >= 0; i-- {
		l := strings.TrimSpace(lines[i])
		if l == "" || dashline.MatchString(l) {
			cut = i
			break
		}
	}
	if cut > 0 {
		return strings.Join(lines[:cut], "\n")
	}
	return text
}
