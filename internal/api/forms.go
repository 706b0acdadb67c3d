package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// CredentialsForm is the body of the register and login forms
type CredentialsForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// RecipeForm is the body of the create and edit recipe forms
type RecipeForm struct {
	Title       string `form:"title" json:"title"`
	Ingredients string `form:"ingredients" json:"ingredients"`
	Method      string `form:"method" json:"method"`
}

// recipeIDParam parses the :id path segment. Ids that are not positive
// integers cannot match a row and are reported as not ok.
func recipeIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
