package types

// RecipeRequest is the payload for creating or fully replacing a recipe
type RecipeRequest struct {
	Name        string   `json:"name" xml:"name" form:"name" binding:"required,max=255"`
	Description string   `json:"description" xml:"description" form:"description" binding:"max=1000"`
	Steps       string   `json:"steps" xml:"steps" form:"steps" binding:"required"`
	Difficulty  string   `json:"difficulty" xml:"difficulty" form:"difficulty" binding:"required,oneof=EASY MEDIUM HARD"`
	Kitchen     string   `json:"kitchen" xml:"kitchen" form:"kitchen" binding:"max=100"`
	Rations     int      `json:"rations" xml:"rations" form:"rations" binding:"required,min=1"`
	Time        int      `json:"time" xml:"time" form:"time" binding:"required,min=1"`
	Type        string   `json:"type" xml:"type" form:"type" binding:"required,oneof=STARTER MAIN_COURSE DESSERT SIDE_DISH DRINK"`
	Ingredients []string `json:"ingredients" xml:"ingredients>ingredient" form:"ingredients" binding:"omitempty,unique,dive,required,max=100"`
	Tags        []string `json:"tags" xml:"tags>tag" form:"tags" binding:"omitempty,unique,dive,required,max=100"`
}

// ReviewRequest is the payload for reviewing a recipe
type ReviewRequest struct {
	Comment string   `json:"comment" xml:"comment" form:"comment" binding:"required,max=255"`
	Rating  *float32 `json:"rating" xml:"rating" form:"rating" binding:"required,gte=0,lte=5"`
}
