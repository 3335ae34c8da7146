package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenCommentAcceptsCleanText(t *testing.T) {
	f := NewContentFilter()

	require.NoError(t, f.ScreenComment("The application process was smooth and the feedback arrived quickly."))
	require.NoError(t, f.ScreenComment("Classy scholarship, would recommend."))
}

func TestScreenCommentRejectsProfanity(t *testing.T) {
	f := NewContentFilter()

	assert.ErrorIs(t, f.ScreenComment("this is bullshit"), ErrCommentRejected)
	assert.ErrorIs(t, f.ScreenComment("What a SCAM"), ErrCommentRejected)
}

func TestScreenCommentBannedWordsMatchWholeWords(t *testing.T) {
	f := NewContentFilter()

	// "class" contains "ass" but is not a banned word on its own.
	assert.NoError(t, f.ScreenComment("great class options at this university"))
}

func TestScreenCommentRejectsLinks(t *testing.T) {
	f := NewContentFilter()

	assert.ErrorIs(t, f.ScreenComment("check out https://example.com/deal"), ErrCommentRejected)
	assert.ErrorIs(t, f.ScreenComment("visit www.example.com now"), ErrCommentRejected)
}

func TestScreenCommentRejectsCharacterFlooding(t *testing.T) {
	f := NewContentFilter()

	assert.ErrorIs(t, f.ScreenComment("niceeeeeeeeeee"), ErrCommentRejected)
}

func TestScreenCommentLengthAndPresence(t *testing.T) {
	f := NewContentFilter()

	assert.Error(t, f.ScreenComment(""))
	assert.Error(t, f.ScreenComment("   "))
	assert.Error(t, f.ScreenComment(strings.Repeat("a b ", 600)))
}
