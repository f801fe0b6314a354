package web

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericfisherdev/approverhover/internal/domain/model"
)

func TestRenderMarkdown_EmptyInput(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(""))
}

func TestRenderMarkdown_PlainText(t *testing.T) {
	result := RenderMarkdown("No commit found for this line.")
	assert.Contains(t, result, "No commit found for this line.")
}

func TestRenderMarkdown_Bold(t *testing.T) {
	result := RenderMarkdown("**Approved by:** alice")
	assert.Contains(t, result, "<strong>Approved by:</strong>")
}

func TestRenderMarkdown_InlineCode(t *testing.T) {
	result := RenderMarkdown("No PR found for commit `abc123`.")
	assert.Contains(t, result, "<code>abc123</code>")
}

func TestRenderMarkdown_SanitizesScript(t *testing.T) {
	result := RenderMarkdown(`<script>alert("xss")</script>`)
	assert.NotContains(t, result, "<script>")
}

func TestRenderMarkdown_ApprovedHover(t *testing.T) {
	md := model.ApprovedBy("abc123", 42, []model.Review{{ReviewerLogin: "alice"}, {ReviewerLogin: "bob"}}).Markdown()

	result := RenderMarkdown(md)

	assert.Contains(t, result, "<strong>Approved by:</strong>")
	assert.Contains(t, result, "<code>alice</code>")
	assert.Contains(t, result, "<code>bob</code>")
	assert.Contains(t, result, "PR #42")
}
