package cache

import (
	"strconv"
	"time"
)

// MediaType names a rendered representation stored under a recipe's response keys
type MediaType string

const (
	MediaJSON MediaType = "json"
	MediaXML  MediaType = "xml"
)

// MediaTypes is the closed set of representations cached per recipe.
// Eviction walks this list, so every rendered form must be declared here.
var MediaTypes = []MediaType{MediaJSON, MediaXML}

// PageTTL bounds how long an unfiltered listing page may be served stale
const PageTTL = 120 * time.Second

// RecipeKey holds the raw snapshot of a recipe
func RecipeKey(id string) string {
	return "recipe:" + id
}

// RecipeResponseKey holds a fully rendered response body for a recipe
func RecipeResponseKey(id string, media MediaType) string {
	return "recipe:" + id + ":response:" + string(media)
}

// RecipePageKey holds one page of the unfiltered listing
func RecipePageKey(page int) string {
	return "recipes:page:" + strconv.Itoa(page)
}

// RecipeKeys returns every key derived from a recipe id: the snapshot plus
// one response key per media type
func RecipeKeys(id string) []string {
	keys := make([]string, 0, len(MediaTypes)+1)
	keys = append(keys, RecipeKey(id))
	for _, m := range MediaTypes {
		keys = append(keys, RecipeResponseKey(id, m))
	}
	return keys
}
