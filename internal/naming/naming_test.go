package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnderscore(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Blog", "blog"},
		{"AcmeBlog", "acme_blog"},
		{"HTTPKernel", "http_kernel"},
		{"Api2Client", "api2_client"},
		{"already_snake", "already_snake"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Underscore(tt.in))
		})
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"backend", "Backend"},
		{"edit", "Edit"},
		{"newItem", "NewItem"},
		{"Frontend", "Frontend"},
		{"été", "Été"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Capitalize(tt.in))
		})
	}
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"Blog", "Post"}, SplitPath(`Blog\Post`))
	assert.Equal(t, []string{"Blog", "Post"}, SplitPath("Blog/Post"))
	assert.Equal(t, []string{"Blog", "Post"}, SplitPath("Blog.Post"))
	assert.Equal(t, []string{"Post"}, SplitPath("Post"))
	assert.Equal(t, []string{"Acme", "BlogBundle"}, SplitPath(`\Acme\\BlogBundle\`))
	assert.Empty(t, SplitPath(""))
}

func TestSlashAndBackslashPath(t *testing.T) {
	assert.Equal(t, "Blog/Post", SlashPath(`Blog\Post`))
	assert.Equal(t, `Blog\Post`, BackslashPath("Blog/Post"))
	assert.Equal(t, `Acme\BlogBundle`, BackslashPath("Acme/BlogBundle"))
}
