package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommentTransitions(t *testing.T) {
	assert.True(t, CommentPending.Allows(CharacterActionApprove))
	assert.True(t, CommentPending.Allows(CharacterActionReject))

	for _, terminal := range []CommentStatus{CommentApproved, CommentRejected} {
		assert.False(t, terminal.Allows(CharacterActionApprove), "%s", terminal)
		assert.False(t, terminal.Allows(CharacterActionReject), "%s", terminal)
	}
}

func TestCreateCommentInputValidate(t *testing.T) {
	valid := CreateCommentInput{Rating: 3, Text: "A solid character design."}
	assert.NoError(t, valid.Validate())

	assert.Error(t, CreateCommentInput{Rating: 0, Text: valid.Text}.Validate())
	assert.Error(t, CreateCommentInput{Rating: 6, Text: valid.Text}.Validate())
	assert.Error(t, CreateCommentInput{Rating: 3, Text: "short"}.Validate())
	assert.Error(t, CreateCommentInput{Rating: 3, Text: "   padded  "}.Validate())
	assert.Error(t, CreateCommentInput{Rating: 3, Text: strings.Repeat("x", 501)}.Validate())

	// Bounds are inclusive.
	assert.NoError(t, CreateCommentInput{Rating: 1, Text: strings.Repeat("x", 10)}.Validate())
	assert.NoError(t, CreateCommentInput{Rating: 5, Text: strings.Repeat("x", 500)}.Validate())

	// Bounds count characters, not bytes.
	assert.Error(t, CreateCommentInput{Rating: 3, Text: strings.Repeat("é", 9)}.Validate())
	assert.NoError(t, CreateCommentInput{Rating: 3, Text: strings.Repeat("é", 10)}.Validate())
	assert.NoError(t, CreateCommentInput{Rating: 3, Text: strings.Repeat("é", 500)}.Validate())
	assert.Error(t, CreateCommentInput{Rating: 3, Text: strings.Repeat("é", 501)}.Validate())
}

func TestValidateRejectionReason(t *testing.T) {
	assert.NoError(t, ValidateRejectionReason("contains offensive language"))
	assert.Error(t, ValidateRejectionReason("bad"))
	assert.Error(t, ValidateRejectionReason(strings.Repeat("x", 501)))
	assert.Error(t, ValidateRejectionReason("          "))
	assert.NoError(t, ValidateRejectionReason(strings.Repeat("é", 500)))
}
