package storefrontserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	advisorapp "github.com/Apurer/henri-storefront/internal/domains/advisor/application"
	advisorports "github.com/Apurer/henri-storefront/internal/domains/advisor/ports"
)

// ChatAPI proxies shopper questions to the product advisor. It answers with
// {response} or {error} rather than problem JSON.
type ChatAPI struct {
	advisor advisorports.Service
}

func NewChatAPI(advisor advisorports.Service) ChatAPI {
	return ChatAPI{advisor: advisor}
}

// ChatRequest is the chat widget body.
type ChatRequest struct {
	Message string `json:"message"`
}

// Post /chat
func (api *ChatAPI) Chat(c *gin.Context) {
	var payload ChatRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No message provided"})
		return
	}
	reply, err := api.advisor.Advise(c.Request.Context(), payload.Message)
	if err != nil {
		status, message := chatError(err)
		c.JSON(status, gin.H{"error": message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": reply})
}

func chatError(err error) (int, string) {
	switch {
	case errors.Is(err, advisorapp.ErrEmptyMessage):
		return http.StatusBadRequest, "No message provided"
	case errors.Is(err, advisorports.ErrNotConfigured):
		return http.StatusInternalServerError, "API key not configured"
	case errors.Is(err, advisorports.ErrUpstream):
		return http.StatusInternalServerError, "Failed to get response from AI"
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
