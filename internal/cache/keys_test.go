package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "recipe:42", RecipeKey("42"))
	assert.Equal(t, "recipe:42:response:json", RecipeResponseKey("42", MediaJSON))
	assert.Equal(t, "recipe:42:response:xml", RecipeResponseKey("42", MediaXML))
	assert.Equal(t, "recipes:page:3", RecipePageKey(3))
}

func TestRecipeKeysCoversEveryMediaType(t *testing.T) {
	keys := RecipeKeys("abc")

	assert.Len(t, keys, len(MediaTypes)+1)
	assert.Contains(t, keys, RecipeKey("abc"))
	for _, m := range MediaTypes {
		assert.Contains(t, keys, RecipeResponseKey("abc", m))
	}
	assert.NotContains(t, keys, RecipePageKey(0))
}

func TestNamespace(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{RecipeKey("1"), "recipe"},
		{RecipeResponseKey("1", MediaXML), "response"},
		{RecipePageKey(0), "page"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, namespace(tt.key))
		})
	}
}
