package storefrontserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// pathInt64 binds a simple-style integer path parameter and answers 400 on failure.
func pathInt64(c *gin.Context, name string) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("invalid %s: %w", name, err))
		return 0, false
	}
	return id, true
}

// queryString binds an optional form-style query parameter.
func queryString(c *gin.Context, name string) (string, bool) {
	var value string
	if err := runtime.BindQueryParameter("form", true, false, name, c.Request.URL.Query(), &value); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Errorf("invalid %s: %w", name, err))
		return "", false
	}
	return value, true
}
