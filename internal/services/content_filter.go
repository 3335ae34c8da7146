package services

import (
	"errors"
	"regexp"
	"strings"
)

var ErrCommentRejected = errors.New("comment rejected by content screening")

var bannedWords = []string{
	"fuck", "fucking", "fucker", "shit", "shitty", "bullshit",
	"ass", "asshole", "bastard", "bitch", "cunt",
	"retard", "retarded",
	"spam", "scam", "scammer", "phishing", "malware",
}

// ContentFilter screens review comments before they are stored: profanity,
// link spam and character flooding are rejected up front instead of waiting
// for a moderator to delete them.
type ContentFilter struct {
	bannedWordRegexps   []*regexp.Regexp
	urlPattern          *regexp.Regexp
	repeatedCharPattern *regexp.Regexp
}

func NewContentFilter() *ContentFilter {
	f := &ContentFilter{
		urlPattern:          regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`),
		repeatedCharPattern: regexp.MustCompile(`(.)\1{9,}`),
	}
	f.bannedWordRegexps = make([]*regexp.Regexp, 0, len(bannedWords))
	for _, word := range bannedWords {
		f.bannedWordRegexps = append(f.bannedWordRegexps,
			regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(word)+`\b`))
	}
	return f
}

// ScreenComment returns ErrCommentRejected when the comment fails screening.
func (f *ContentFilter) ScreenComment(comment string) error {
	trimmed := strings.TrimSpace(comment)
	if trimmed == "" {
		return errors.New("comment is required")
	}
	if len(trimmed) > 2000 {
		return errors.New("comment must be under 2000 characters")
	}
	for _, re := range f.bannedWordRegexps {
		if re.MatchString(trimmed) {
			return ErrCommentRejected
		}
	}
	if f.urlPattern.MatchString(trimmed) {
		return ErrCommentRejected
	}
	if f.repeatedCharPattern.MatchString(trimmed) {
		return ErrCommentRejected
	}
	return nil
}
