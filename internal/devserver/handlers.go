package devserver

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/milkchain/milkchain/internal/accounts"
	"github.com/milkchain/milkchain/internal/config"
	"github.com/milkchain/milkchain/internal/middleware"
)

type handler struct {
	cfg config.Server
	svc *accounts.Service
}

func newHandler(cfg config.Server, svc *accounts.Service) *handler {
	return &handler{cfg: cfg, svc: svc}
}

// userPayload is the profile shape the client consumes.
type userPayload struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	County string `json:"county"`
	Status string `json:"status"`
}

func toPayload(a accounts.Account) userPayload {
	return userPayload{
		ID:     a.ID,
		Name:   a.Name,
		Phone:  a.Phone,
		Email:  a.Email,
		Role:   a.Role,
		County: a.County,
		Status: a.Status,
	}
}

func ok(c *fiber.Ctx, data any, message string) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "data": data, "message": message})
}

type loginRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Login authenticates by email and issues a bearer token unless the
// onboarding fee is still outstanding.
func (h *handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	account, err := h.svc.AuthenticateEmail(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}
	return h.respondLogin(c, account)
}

// LoginPhone authenticates by phone number.
func (h *handler) LoginPhone(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	account, err := h.svc.AuthenticatePhone(c.UserContext(), req.Phone, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}
	return h.respondLogin(c, account)
}

func (h *handler) respondLogin(c *fiber.Ctx, account accounts.Account) error {
	if account.PaymentDue {
		return ok(c, fiber.Map{
			"user":            toPayload(account),
			"requiresPayment": true,
		}, "onboarding payment required to activate your account")
	}

	token, err := signToken(account, []byte(h.cfg.TokenSecret), h.cfg.TokenTTL)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return ok(c, fiber.Map{"user": toPayload(account), "token": token}, "")
}

type registerRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
	PIN      string `json:"pin"`
	Role     string `json:"role"`
	County   string `json:"county"`
}

// Register creates a provisional account and reports the onboarding fee.
func (h *handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	account, err := h.svc.Register(c.UserContext(), accounts.RegisterInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
		PIN:      req.PIN,
		Role:     req.Role,
		County:   req.County,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return ok(c, fiber.Map{
		"user":            toPayload(account),
		"paymentRequired": true,
		"onboardingFee":   h.cfg.OnboardingFee,
	}, "account created, onboarding payment required")
}

type verifyPinRequest struct {
	PIN string `json:"pin"`
}

// VerifyPin checks the re-entry PIN for the authenticated account.
func (h *handler) VerifyPin(c *fiber.Ctx) error {
	var req verifyPinRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	accountID, _ := c.Locals(middleware.AccountIDKey).(string)
	if err := h.svc.VerifyPIN(c.UserContext(), accountID, req.PIN); err != nil {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}
	return ok(c, nil, "")
}

type completePaymentRequest struct {
	UserID string `json:"userId"`
}

// CompletePayment settles the onboarding fee for a provisional account. The
// production platform does this through its payment rails; the dev server
// takes it on faith.
func (h *handler) CompletePayment(c *fiber.Ctx) error {
	var req completePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.UserID == "" {
		return fiber.NewError(http.StatusBadRequest, "userId is required")
	}
	account, err := h.svc.CompletePayment(c.UserContext(), req.UserID)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return ok(c, fiber.Map{"user": toPayload(account)}, "payment verified")
}

// bearerAuth validates the Authorization header and stores the account id
// for downstream handlers and the attempt limiter.
func (h *handler) bearerAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])
		accountID, err := parseToken(tokenStr, []byte(h.cfg.TokenSecret))
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}
		c.Locals(middleware.AccountIDKey, accountID)
		return c.Next()
	}
}
