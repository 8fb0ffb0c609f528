package storefrontserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	sessiondomain "github.com/Apurer/henri-storefront/internal/domains/sessions/domain"
	userhttpmapper "github.com/Apurer/henri-storefront/internal/domains/users/adapters/http/mapper"
	userapp "github.com/Apurer/henri-storefront/internal/domains/users/application"
	userports "github.com/Apurer/henri-storefront/internal/domains/users/ports"
)

// AccountAPI handles customer registration and the customer half of the session.
type AccountAPI struct {
	users userports.Service
}

func NewAccountAPI(users userports.Service) AccountAPI {
	return AccountAPI{users: users}
}

// SessionCustomer identifies the logged-in customer.
type SessionCustomer struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SessionAdmin reports the admin half of the session.
type SessionAdmin struct {
	LoggedIn bool   `json:"loggedIn"`
	Email    string `json:"email,omitempty"`
}

// SessionState is returned by GET /api/session. Reading it drains the notices.
type SessionState struct {
	Customer  *SessionCustomer       `json:"customer"`
	Admin     SessionAdmin           `json:"admin"`
	CartCount int                    `json:"cartCount"`
	Notices   []sessiondomain.Notice `json:"notices"`
}

// Post /api/register
// Registration does not log the customer in.
func (api *AccountAPI) Register(c *gin.Context) {
	var payload userhttpmapper.RegisterPayload
	if err := c.ShouldBind(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	session := currentSession(c)
	user, err := api.users.Register(c.Request.Context(), userhttpmapper.ToRegisterInput(payload))
	if err != nil {
		if errors.Is(err, userapp.ErrConflict) {
			session.AddNotice(sessiondomain.NoticeError, "Email already registered")
		}
		respondServiceError(c, err)
		return
	}
	message := "Registration successful! Please login."
	session.AddNotice(sessiondomain.NoticeSuccess, message)
	c.JSON(http.StatusCreated, gin.H{"user": userhttpmapper.FromDomainUser(user), "message": message})
}

// Post /api/login
func (api *AccountAPI) Login(c *gin.Context) {
	var payload userhttpmapper.Credentials
	if err := c.ShouldBind(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	session := currentSession(c)
	user, err := api.users.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, userapp.ErrAuthentication) {
			session.AddNotice(sessiondomain.NoticeError, "Invalid email or password")
		}
		respondServiceError(c, err)
		return
	}
	renewSession(c)
	session.LoginCustomer(user.ID, user.Email, user.Name)
	message := "Login successful!"
	session.AddNotice(sessiondomain.NoticeSuccess, message)
	c.JSON(http.StatusOK, gin.H{"user": userhttpmapper.FromDomainUser(user), "message": message})
}

// Post /api/logout
// Clears the whole session, cart and admin login included, under a new token.
func (api *AccountAPI) Logout(c *gin.Context) {
	session := currentSession(c)
	session.Clear()
	renewSession(c)
	message := "Logged out successfully!"
	session.AddNotice(sessiondomain.NoticeSuccess, message)
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Get /api/session
func (api *AccountAPI) GetSession(c *gin.Context) {
	session := currentSession(c)
	state := SessionState{
		Admin:     SessionAdmin{LoggedIn: session.AdminLoggedIn, Email: session.AdminEmail},
		CartCount: session.Cart.Count(),
		Notices:   session.DrainNotices(),
	}
	if session.HasCustomer() {
		state.Customer = &SessionCustomer{ID: session.CustomerID, Email: session.CustomerEmail, Name: session.CustomerName}
	}
	c.JSON(http.StatusOK, state)
}
